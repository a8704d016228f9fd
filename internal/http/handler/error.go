package handler

import (
	"github.com/gofiber/fiber/v2"

	"docupload/internal/http/middleware"
	"docupload/internal/service"
)

// errorPayload defines the standardized error response body.
// Form is attached for submit failures so the page can show the queued notices.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
	Form      *service.View `json:"form,omitempty"`
}

type errorEnvelope struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Slot     string `json:"slot,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "FORM_NOT_FOUND", "UPLOAD_FAILED")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeErrorPayload(c, status, errorEnvelope{Code: code, Message: message}, nil)
}

func writeErrorPayload(c *fiber.Ctx, status int, env errorEnvelope, form *service.View) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     env,
		Form:      form,
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "file too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
