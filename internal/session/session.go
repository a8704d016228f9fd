package session

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"docupload/internal/logging"
	"docupload/internal/metrics"
	"docupload/internal/remote"
)

// IdentifierKey is the client storage key holding the logged-in user's phone number.
const IdentifierKey = "userPhone"

// DefaultPlaceholder is shown when no display name could be fetched.
const DefaultPlaceholder = "Student"

// Storage is read-only access to client-side persistent storage.
type Storage interface {
	Get(key string) (string, bool)
}

// MapStorage is a Storage backed by a plain map.
type MapStorage map[string]string

func (m MapStorage) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Context is what a form needs from the session at open time.
type Context struct {
	Identifier  string
	Present     bool
	DisplayName string
	// NameSet is false when no lookup was issued.
	NameSet bool
}

// LoadIdentifier reads the identifier once from client storage.
// Blank values count as absent.
func LoadIdentifier(store Storage) (string, bool) {
	if store == nil {
		return "", false
	}
	v, ok := store.Get(IdentifierKey)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Reader resolves display names for identifiers.
type Reader struct {
	api         remote.EmployeeAPI
	placeholder string
	log         *logging.Logger
	metrics     *metrics.Metrics
}

// NewReader constructs a Reader. An empty placeholder uses DefaultPlaceholder.
func NewReader(api remote.EmployeeAPI, placeholder string, log *logging.Logger, m *metrics.Metrics) *Reader {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Reader{api: api, placeholder: placeholder, log: log, metrics: m}
}

// Placeholder returns the fallback display name.
func (r *Reader) Placeholder() string {
	return r.placeholder
}

// FetchDisplayName makes a single lookup attempt. Any failure is logged and
// degrades to the placeholder; "not found" and "unreachable" are not told apart.
func (r *Reader) FetchDisplayName(ctx context.Context, identifier string) string {
	ctx, span := otel.Tracer("docupload/session").Start(ctx, "session.FetchDisplayName")
	defer span.End()

	emp, err := r.api.GetEmployee(ctx, identifier)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		r.metrics.Lookup("error")
		r.log.Error("employee_lookup_failed", err, map[string]any{"component": "session"})
		return r.placeholder
	}
	if emp == nil || strings.TrimSpace(emp.Name) == "" {
		span.SetAttributes(attribute.Bool("name.empty", true))
		r.metrics.Lookup("empty")
		return r.placeholder
	}
	r.metrics.Lookup("ok")
	return emp.Name
}

// Load reads the identifier and, only when present, looks up the display name.
func (r *Reader) Load(ctx context.Context, store Storage) Context {
	id, ok := LoadIdentifier(store)
	if !ok {
		return Context{}
	}
	return Context{
		Identifier:  id,
		Present:     true,
		DisplayName: r.FetchDisplayName(ctx, id),
		NameSet:     true,
	}
}
