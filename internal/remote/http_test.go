package remote

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"docupload/internal/config"
	"docupload/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, h http.HandlerFunc) EmployeeAPI {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	api, err := NewHTTP(config.RemoteConfig{BaseURL: srv.URL, TimeoutSec: 5})
	require.NoError(t, err)
	return api
}

func TestNewHTTP(t *testing.T) {
	_, err := NewHTTP(config.RemoteConfig{})
	assert.Error(t, err)

	_, err = NewHTTP(config.RemoteConfig{BaseURL: "not a url"})
	assert.Error(t, err)
}

func TestHTTPAPI_GetEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/get-employee/9999999999", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"name":"Asha","phone":"9999999999"}`)
		})

		emp, err := api.GetEmployee(ctx, "9999999999")

		require.NoError(t, err)
		assert.Equal(t, "Asha", emp.Name)
	})

	t.Run("not found", func(t *testing.T) {
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := api.GetEmployee(ctx, "1")

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusNotFound, se.StatusCode)
	})

	t.Run("bad body", func(t *testing.T) {
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "<html>")
		})

		_, err := api.GetEmployee(ctx, "1")
		assert.ErrorContains(t, err, "decode employee")
	})

	t.Run("empty phone", func(t *testing.T) {
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := api.GetEmployee(ctx, "")
		assert.ErrorIs(t, err, ErrPhoneRequired)
	})
}

func TestHTTPAPI_UploadDocuments(t *testing.T) {
	ctx := context.Background()
	req := UploadRequest{Phone: "9999999999"}
	for _, s := range model.Slots {
		req.Parts = append(req.Parts, UploadPart{
			Slot: s.Key,
			File: model.File{Filename: string(s.Key) + ".pdf", ContentType: "application/pdf", Data: []byte("%PDF-" + s.Key)},
		})
	}

	t.Run("success", func(t *testing.T) {
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/upload-document", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))

			assert.Equal(t, "9999999999", r.FormValue("phone"))
			for _, s := range model.Slots {
				f, fh, err := r.FormFile(string(s.Key))
				require.NoError(t, err, s.Key)
				b, _ := io.ReadAll(f)
				f.Close()
				assert.Equal(t, string(s.Key)+".pdf", fh.Filename)
				assert.Equal(t, "application/pdf", fh.Header.Get("Content-Type"))
				assert.Equal(t, "%PDF-"+string(s.Key), string(b))
			}
			w.WriteHeader(http.StatusOK)
		})

		assert.NoError(t, api.UploadDocuments(ctx, req))
	})

	t.Run("server error", func(t *testing.T) {
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		err := api.UploadDocuments(ctx, req)

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	})

	t.Run("network error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		api, err := NewHTTP(config.RemoteConfig{BaseURL: srv.URL, TimeoutSec: 1})
		require.NoError(t, err)
		srv.Close()

		assert.Error(t, api.UploadDocuments(ctx, req))
	})
}

func TestEncodeUpload_Filenames(t *testing.T) {
	names := []string{
		"plain.pdf",
		`scan "final".pdf`,
		"tab\there.pdf",
		`back\slash.pdf`,
		"versión 2.pdf",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			body, ct, err := encodeUpload(UploadRequest{
				Phone: "9999999999",
				Parts: []UploadPart{{Slot: model.SlotPanCard, File: model.File{Filename: name, Data: []byte("x")}}},
			})
			require.NoError(t, err)

			_, params, err := mime.ParseMediaType(ct)
			require.NoError(t, err)
			mr := multipart.NewReader(body, params["boundary"])

			phone, err := mr.NextPart()
			require.NoError(t, err)
			assert.Equal(t, "phone", phone.FormName())

			part, err := mr.NextPart()
			require.NoError(t, err)
			assert.Equal(t, string(model.SlotPanCard), part.FormName())
			assert.Equal(t, name, part.FileName())
			assert.Equal(t, "application/octet-stream", part.Header.Get("Content-Type"))
		})
	}
}

func TestHTTPAPI_Ping(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	assert.NoError(t, api.Ping(context.Background()))
}
