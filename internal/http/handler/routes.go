package handler

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docupload/internal/model"
	"docupload/internal/service"
	"docupload/internal/session"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators needed by the HTTP routes.
type Deps struct {
	Forms          service.FormService
	Remote         Pinger
	Gatherer       prometheus.Gatherer
	MaxUploadBytes int64
}

// submitResponse is returned by a successful submit.
type submitResponse struct {
	Form            *service.View `json:"form"`
	Redirect        string        `json:"redirect"`
	RedirectAfterMs int64         `json:"redirect_after_ms"`
}

// cookieStorage exposes the request cookies as read-only client storage.
// Values are copied out of the request buffer, which fasthttp reuses.
type cookieStorage struct {
	c *fiber.Ctx
}

func (s cookieStorage) Get(key string) (string, bool) {
	v := utils.CopyString(s.c.Cookies(key))
	return v, v != ""
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.Remote))
	app.Get("/healthz", LivenessProbe())

	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	app.Get("/upload-docs", UploadPage(d.Forms))

	api := app.Group("/api/forms")
	api.Post("/", OpenForm(d.Forms))
	api.Get("/:id", GetForm(d.Forms))
	api.Put("/:id/slots/:slot", SelectFile(d.Forms, d.MaxUploadBytes))
	api.Post("/:id/submit", SubmitForm(d.Forms))
	api.Delete("/:id", CloseForm(d.Forms))
}

// HealthCheck checks that the remote API answers.
func HealthCheck(p Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if p == nil || p.Ping(ctx) != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// OpenForm godoc
// @Summary Open an upload form
// @Description Reads the userPhone cookie, looks up the display name and creates a form with six empty slots.
// @Tags forms
// @Produce json
// @Success 201 {object} service.View
// @Router /api/forms [post]
func OpenForm(svc service.FormService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := svc.Open(c.UserContext(), cookieStorage{c: c})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(v)
	}
}

// GetForm godoc
// @Summary Get a form
// @Description Returns the form state and drains pending notices.
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} service.View
// @Failure 404 {object} errorPayload
// @Router /api/forms/{id} [get]
func GetForm(svc service.FormService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := svc.View(c.UserContext(), c.Params("id"))
		if err != nil {
			return formError(c, err)
		}
		return c.JSON(v)
	}
}

// SelectFile godoc
// @Summary Select a file for a slot
// @Tags forms
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Form ID"
// @Param slot path string true "Slot key"
// @Param file formData file true "Document"
// @Success 200 {object} service.View
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Router /api/forms/{id}/slots/{slot} [put]
func SelectFile(svc service.FormService, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := model.SlotKey(utils.CopyString(c.Params("slot")))
		if _, ok := model.LookupSlot(key); !ok {
			return writeError(c, fiber.StatusNotFound, "UNKNOWN_SLOT", "unknown document slot")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		if maxBytes > 0 && fh.Size > maxBytes {
			return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file too large")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		v, err := svc.SelectFile(c.UserContext(), c.Params("id"), key, model.File{
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			Data:        data,
		})
		if err != nil {
			return formError(c, err)
		}
		return c.JSON(v)
	}
}

// SubmitForm godoc
// @Summary Submit a form
// @Description Validates that all six slots are filled and uploads them in one multipart request.
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} submitResponse
// @Failure 401 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/forms/{id}/submit [post]
func SubmitForm(svc service.FormService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, out, err := svc.Submit(c.UserContext(), c.Params("id"))
		if err == nil {
			return c.JSON(submitResponse{
				Form:            v,
				Redirect:        out.Redirect,
				RedirectAfterMs: out.RedirectAfter.Milliseconds(),
			})
		}

		var inc *service.IncompleteError
		switch {
		case errors.Is(err, service.ErrMissingSession):
			return writeErrorPayload(c, fiber.StatusUnauthorized, errorEnvelope{
				Code:     "MISSING_SESSION",
				Message:  service.MsgMissingSession,
				Redirect: out.Redirect,
			}, v)
		case errors.As(err, &inc):
			return writeErrorPayload(c, fiber.StatusUnprocessableEntity, errorEnvelope{
				Code:    "INCOMPLETE_INPUT",
				Message: "Please upload " + inc.Slot.Label,
				Slot:    string(inc.Slot.Key),
			}, v)
		case errors.Is(err, service.ErrSubmitInFlight):
			return writeErrorPayload(c, fiber.StatusConflict, errorEnvelope{
				Code:    "SUBMIT_IN_FLIGHT",
				Message: "upload already in progress",
			}, v)
		case errors.Is(err, service.ErrAlreadySubmitted):
			return writeErrorPayload(c, fiber.StatusConflict, errorEnvelope{
				Code:     "ALREADY_SUBMITTED",
				Message:  "documents already submitted",
				Redirect: out.Redirect,
			}, v)
		case errors.Is(err, service.ErrUploadFailed):
			return writeErrorPayload(c, fiber.StatusBadGateway, errorEnvelope{
				Code:    "UPLOAD_FAILED",
				Message: service.MsgUploadFailed,
			}, v)
		default:
			return formError(c, err)
		}
	}
}

// CloseForm godoc
// @Summary Close a form
// @Description Discards the form and cancels a pending redirect.
// @Tags forms
// @Param id path string true "Form ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/forms/{id} [delete]
func CloseForm(svc service.FormService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Close(c.UserContext(), c.Params("id")); err != nil {
			return formError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// formError translates the shared form errors.
func formError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFormNotFound):
		return writeError(c, fiber.StatusNotFound, "FORM_NOT_FOUND", "form not found")
	case errors.Is(err, service.ErrFormClosed):
		return writeError(c, fiber.StatusGone, "FORM_CLOSED", "form is closed")
	case errors.Is(err, service.ErrUnknownSlot):
		return writeError(c, fiber.StatusNotFound, "UNKNOWN_SLOT", "unknown document slot")
	case errors.Is(err, service.ErrFileRequired):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

var _ session.Storage = cookieStorage{}
