package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docupload/internal/logging"
	"docupload/internal/metrics"
	"docupload/internal/model"
	"docupload/internal/remote"
	"docupload/internal/session"
)

// HeadingPrefix precedes the display name in the page heading.
const HeadingPrefix = "Upload Documents for "

const (
	MsgMissingSession = "Phone number missing. Please login again."
	MsgUploading      = "Uploading documents..."
	MsgUploadSuccess  = "All documents uploaded successfully!"
	MsgUploadFailed   = "Upload failed. Try again."
)

var tracer = otel.Tracer("docupload/service")

// State is the submission state of a form.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
)

// FormOptions configures navigation and collaborators of a Form.
type FormOptions struct {
	LoginPath     string
	ResultsPath   string
	RedirectDelay time.Duration
	Placeholder   string
	Scheduler     Scheduler
	Navigator     Navigator
	Logger        *logging.Logger
	Metrics       *metrics.Metrics
	Now           func() time.Time
}

func (o FormOptions) withDefaults() FormOptions {
	if o.LoginPath == "" {
		o.LoginPath = "/"
	}
	if o.ResultsPath == "" {
		o.ResultsPath = "/admin-dashboard/employees"
	}
	if o.RedirectDelay <= 0 {
		o.RedirectDelay = 2 * time.Second
	}
	if o.Placeholder == "" {
		o.Placeholder = session.DefaultPlaceholder
	}
	if o.Scheduler == nil {
		o.Scheduler = realScheduler{}
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Outcome describes where a submit attempt left the form.
type Outcome struct {
	State         State
	Redirect      string
	RedirectAfter time.Duration
}

// SlotView is the read-only state of one slot.
type SlotView struct {
	model.Slot
	Accept   string `json:"accept"`
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Selected bool   `json:"selected"`
}

// View is a snapshot of a form for rendering.
type View struct {
	ID                string         `json:"id"`
	Heading           string         `json:"heading"`
	DisplayName       string         `json:"display_name"`
	IdentifierPresent bool           `json:"identifier_present"`
	State             State          `json:"state"`
	Slots             []SlotView     `json:"slots"`
	Notices           []model.Notice `json:"notices"`
	Redirect          string         `json:"redirect,omitempty"`
}

// Form is the upload form controller. It owns the six document slots and the
// submission state; all methods are safe for concurrent use.
type Form struct {
	id   string
	sess session.Context
	api  remote.EmployeeAPI
	opts FormOptions

	mu        sync.Mutex
	state     State
	slots     map[model.SlotKey]*model.File
	notices   []model.Notice
	redirect  string
	pending   Timer
	closed    bool
	touchedAt time.Time
}

// NewForm creates a form with every slot empty. The identifier is passed in
// explicitly through sess; the form never reads client storage itself.
func NewForm(id string, sess session.Context, api remote.EmployeeAPI, opts FormOptions) *Form {
	opts = opts.withDefaults()
	return &Form{
		id:        id,
		sess:      sess,
		api:       api,
		opts:      opts,
		state:     StateIdle,
		slots:     make(map[model.SlotKey]*model.File, len(model.Slots)),
		touchedAt: opts.Now(),
	}
}

// ID returns the form identifier.
func (f *Form) ID() string { return f.id }

// Heading is the page title, using the placeholder until a name is known.
func (f *Form) Heading() string {
	name := f.sess.DisplayName
	if !f.sess.NameSet || name == "" {
		name = f.opts.Placeholder
	}
	return HeadingPrefix + name
}

// SelectFile replaces the file of one slot and leaves the others untouched.
func (f *Form) SelectFile(key model.SlotKey, file model.File) error {
	slot, ok := model.LookupSlot(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, key)
	}
	if file.Filename == "" {
		return ErrFileRequired
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFormClosed
	}
	if file.Size == 0 {
		file.Size = int64(len(file.Data))
	}
	// key may alias a request buffer; the catalog key is owned by us.
	f.slots[slot.Key] = &file
	f.touchedAt = f.opts.Now()
	return nil
}

// Submit validates the form and, when complete, uploads all six documents in
// one request. On failure the selected files stay in place for a retry.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "form.Submit", trace.WithAttributes(attribute.String("form.id", f.id)))
	defer span.End()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Outcome{}, ErrFormClosed
	}
	f.touchedAt = f.opts.Now()

	if !f.sess.Present {
		f.pushNotice(model.NoticeError, MsgMissingSession)
		f.redirect = f.opts.LoginPath
		f.mu.Unlock()
		f.opts.Metrics.Submission("missing_session")
		f.navigate(f.opts.LoginPath)
		return Outcome{State: StateIdle, Redirect: f.opts.LoginPath}, ErrMissingSession
	}

	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		f.opts.Metrics.Submission("in_flight")
		return Outcome{State: StateSubmitting}, ErrSubmitInFlight
	case StateSuccess:
		f.mu.Unlock()
		return Outcome{State: StateSuccess, Redirect: f.opts.ResultsPath}, ErrAlreadySubmitted
	}

	req := remote.UploadRequest{Phone: f.sess.Identifier, Parts: make([]remote.UploadPart, 0, len(model.Slots))}
	for _, s := range model.Slots {
		file := f.slots[s.Key]
		if file == nil {
			f.pushNotice(model.NoticeWarning, "Please upload "+s.Label)
			f.mu.Unlock()
			f.opts.Metrics.Submission("incomplete")
			span.SetAttributes(attribute.String("form.missing_slot", string(s.Key)))
			return Outcome{State: StateIdle}, &IncompleteError{Slot: s}
		}
		req.Parts = append(req.Parts, remote.UploadPart{Slot: s.Key, File: *file})
	}

	f.state = StateSubmitting
	f.pushNotice(model.NoticeInfo, MsgUploading)
	f.mu.Unlock()

	start := time.Now()
	err := f.api.UploadDocuments(ctx, req)
	f.opts.Metrics.ObserveUpload(time.Since(start).Seconds())

	f.mu.Lock()
	defer f.mu.Unlock()
	f.touchedAt = f.opts.Now()

	if err != nil {
		f.state = StateIdle
		f.pushNotice(model.NoticeError, MsgUploadFailed)
		f.opts.Metrics.Submission("failed")
		f.opts.Logger.Error("upload_failed", err, map[string]any{"component": "form", "form_id": f.id})
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		return Outcome{State: StateIdle}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	f.state = StateSuccess
	f.pushNotice(model.NoticeSuccess, MsgUploadSuccess)
	f.opts.Metrics.Submission("success")
	f.opts.Logger.Info("upload_succeeded", map[string]any{"component": "form", "form_id": f.id})
	if !f.closed {
		f.pending = f.opts.Scheduler.AfterFunc(f.opts.RedirectDelay, f.fireRedirect)
	}
	return Outcome{State: StateSuccess, Redirect: f.opts.ResultsPath, RedirectAfter: f.opts.RedirectDelay}, nil
}

func (f *Form) fireRedirect() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.pending = nil
	f.redirect = f.opts.ResultsPath
	f.mu.Unlock()
	f.navigate(f.opts.ResultsPath)
}

func (f *Form) navigate(target string) {
	if f.opts.Navigator != nil {
		f.opts.Navigator.Navigate(f.id, target)
	}
}

// pushNotice must be called with f.mu held.
func (f *Form) pushNotice(level model.NoticeLevel, msg string) {
	f.notices = append(f.notices, model.Notice{Level: level, Message: msg})
}

// Close tears the form down and cancels a pending redirect.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
}

// DrainNotices returns queued notices and clears the queue.
func (f *Form) DrainNotices() []model.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.notices
	f.notices = nil
	if out == nil {
		out = []model.Notice{}
	}
	return out
}

// Snapshot returns the current state without draining notices.
func (f *Form) Snapshot() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		ID:                f.id,
		Heading:           f.Heading(),
		DisplayName:       f.sess.DisplayName,
		IdentifierPresent: f.sess.Present,
		State:             f.state,
		Slots:             make([]SlotView, 0, len(model.Slots)),
		Notices:           []model.Notice{},
		Redirect:          f.redirect,
	}
	for _, s := range model.Slots {
		sv := SlotView{Slot: s, Accept: model.AcceptHint}
		if file := f.slots[s.Key]; file != nil {
			sv.Filename = file.Filename
			sv.Size = file.Size
			sv.Selected = true
		}
		v.Slots = append(v.Slots, sv)
	}
	return v
}

// State returns the current submission state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// File returns the file selected for key, if any.
func (f *Form) File(key model.SlotKey) (model.File, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file := f.slots[key]
	if file == nil {
		return model.File{}, false
	}
	return *file, true
}

// stale reports whether the form has been idle for longer than maxAge.
// Forms with an upload in flight are never stale.
func (f *Form) stale(now time.Time, maxAge time.Duration) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state != StateSubmitting && now.Sub(f.touchedAt) > maxAge
}
