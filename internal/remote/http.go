package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"docupload/internal/config"
	"docupload/internal/model"
)

const (
	employeePath = "/api/get-employee/"
	uploadPath   = "/api/upload-document"
)

// httpAPI implements EmployeeAPI over plain HTTP.
// It is safe for concurrent use by multiple goroutines.
type httpAPI struct {
	client  *http.Client
	baseURL string
}

// NewHTTP creates an EmployeeAPI client for the configured base URL.
// Outgoing requests are traced through an otelhttp transport.
func NewHTTP(cfg config.RemoteConfig) (EmployeeAPI, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote base url is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parse remote base url: %w", err)
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &httpAPI{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: cfg.BaseURL,
	}, nil
}

// GetEmployee issues GET /api/get-employee/{phone}.
func (a *httpAPI) GetEmployee(ctx context.Context, phone string) (*model.Employee, error) {
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+employeePath+url.PathEscape(phone), nil)
	if err != nil {
		return nil, fmt.Errorf("build employee request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Op: "get employee", StatusCode: resp.StatusCode}
	}

	var emp model.Employee
	if err := json.NewDecoder(resp.Body).Decode(&emp); err != nil {
		return nil, fmt.Errorf("decode employee: %w", err)
	}
	return &emp, nil
}

// UploadDocuments issues POST /api/upload-document with a multipart body.
// The whole body is assembled before sending so a request is never partial.
func (a *httpAPI) UploadDocuments(ctx context.Context, up UploadRequest) error {
	if up.Phone == "" {
		return ErrPhoneRequired
	}
	body, contentType, err := encodeUpload(up)
	if err != nil {
		return fmt.Errorf("encode upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+uploadPath, body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload documents: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: "upload documents", StatusCode: resp.StatusCode}
	}
	return nil
}

// Ping treats any HTTP response as reachable; only transport errors fail.
func (a *httpAPI) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, a.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// quoteEscaper matches the escaping mime/multipart applies to form-data names.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func encodeUpload(up UploadRequest) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := w.WriteField("phone", up.Phone); err != nil {
		return nil, "", err
	}
	for _, p := range up.Parts {
		ct := p.File.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(string(p.Slot)), escapeQuotes(p.File.Filename)))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(p.File.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
