package service

import (
	"context"

	"github.com/google/uuid"

	"docupload/internal/logging"
	"docupload/internal/model"
	"docupload/internal/remote"
	"docupload/internal/session"
)

// FormService defines the upload form use cases exposed to the HTTP layer.
type FormService interface {
	// Open reads the identifier from client storage, resolves the display name
	// and registers a fresh form with every slot empty.
	Open(ctx context.Context, store session.Storage) (*View, error)

	// View returns the form and drains its pending notices. A form whose
	// redirect already fired is discarded after this call.
	View(ctx context.Context, id string) (*View, error)

	// SelectFile sets one slot of the form.
	SelectFile(ctx context.Context, id string, key model.SlotKey, file model.File) (*View, error)

	// Submit validates and uploads the form.
	Submit(ctx context.Context, id string) (*View, Outcome, error)

	// Close tears a form down, cancelling any pending redirect.
	Close(ctx context.Context, id string) error
}

type formService struct {
	reader   *session.Reader
	api      remote.EmployeeAPI
	registry *Registry
	opts     FormOptions
	log      *logging.Logger
}

// NewFormService constructs a new FormService.
func NewFormService(reader *session.Reader, api remote.EmployeeAPI, registry *Registry, opts FormOptions) FormService {
	opts = opts.withDefaults()
	s := &formService{reader: reader, api: api, registry: registry, log: opts.Logger}
	if opts.Navigator == nil {
		opts.Navigator = NavigatorFunc(func(formID, target string) {
			s.log.Info("form_navigated", map[string]any{"component": "form", "form_id": formID, "target": target})
		})
	}
	s.opts = opts
	return s
}

func (s *formService) Open(ctx context.Context, store session.Storage) (*View, error) {
	ctx, span := tracer.Start(ctx, "forms.Open")
	defer span.End()

	sc := s.reader.Load(ctx, store)
	f := NewForm(uuid.NewString(), sc, s.api, s.opts)
	s.registry.Put(f)

	s.log.Info("form_opened", map[string]any{
		"component":          "form",
		"form_id":            f.ID(),
		"identifier_present": sc.Present,
	})
	v := f.Snapshot()
	return &v, nil
}

func (s *formService) View(_ context.Context, id string) (*View, error) {
	f, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	v := f.Snapshot()
	v.Notices = f.DrainNotices()
	if v.Redirect != "" && v.State == StateSuccess {
		s.registry.Remove(id)
	}
	return &v, nil
}

func (s *formService) SelectFile(_ context.Context, id string, key model.SlotKey, file model.File) (*View, error) {
	f, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	if err := f.SelectFile(key, file); err != nil {
		return nil, err
	}
	v := f.Snapshot()
	return &v, nil
}

func (s *formService) Submit(ctx context.Context, id string) (*View, Outcome, error) {
	f, err := s.registry.Get(id)
	if err != nil {
		return nil, Outcome{}, err
	}
	out, err := f.Submit(ctx)
	v := f.Snapshot()
	v.Notices = f.DrainNotices()
	return &v, out, err
}

func (s *formService) Close(_ context.Context, id string) error {
	if !s.registry.Remove(id) {
		return ErrFormNotFound
	}
	return nil
}
