package service

import (
	"context"
	"sync"
	"time"

	"docupload/internal/logging"
	"docupload/internal/metrics"
)

// Registry holds the live forms keyed by form ID.
type Registry struct {
	mu      sync.RWMutex
	forms   map[string]*Form
	metrics *metrics.Metrics
}

// NewRegistry returns an empty registry. m may be nil.
func NewRegistry(m *metrics.Metrics) *Registry {
	return &Registry{forms: make(map[string]*Form), metrics: m}
}

// Put stores f under its ID, replacing any previous form with the same ID.
func (r *Registry) Put(f *Form) {
	r.mu.Lock()
	if old, ok := r.forms[f.ID()]; ok && old != f {
		old.Close()
	}
	r.forms[f.ID()] = f
	n := len(r.forms)
	r.mu.Unlock()
	r.metrics.SetOpenForms(n)
}

// Get returns the form with the given ID.
func (r *Registry) Get(id string) (*Form, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.forms[id]
	if !ok {
		return nil, ErrFormNotFound
	}
	return f, nil
}

// Remove closes and drops a form. It reports whether the form existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	f, ok := r.forms[id]
	delete(r.forms, id)
	n := len(r.forms)
	r.mu.Unlock()

	if ok {
		f.Close()
	}
	r.metrics.SetOpenForms(n)
	return ok
}

// Len returns the number of live forms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.forms)
}

// Sweep removes forms untouched for longer than maxAge and returns how many were dropped.
func (r *Registry) Sweep(now time.Time, maxAge time.Duration) int {
	r.mu.RLock()
	var stale []string
	for id, f := range r.forms {
		if f.stale(now, maxAge) {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	for _, id := range stale {
		r.Remove(id)
	}
	return len(stale)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, maxAge time.Duration, log *logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now, maxAge); n > 0 {
				log.Info("forms_swept", map[string]any{"component": "registry", "removed": n})
			}
		}
	}
}
