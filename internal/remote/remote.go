package remote

import (
	"context"
	"errors"
	"fmt"

	"docupload/internal/model"
)

// Package remote contains the client for the external employee/document API.
// The remote service is opaque: only the two form endpoints are used.

var ErrPhoneRequired = errors.New("phone is required")

// UploadPart is one file of an upload, sent under the slot key as field name.
type UploadPart struct {
	Slot model.SlotKey
	File model.File
}

// UploadRequest is the multipart payload for a single submission attempt.
// It is built fresh per attempt and is never persisted.
type UploadRequest struct {
	Phone string
	Parts []UploadPart
}

// StatusError reports a non-2xx response from the remote API.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

// EmployeeAPI is the remote API used by the upload form.
type EmployeeAPI interface {
	// GetEmployee fetches the employee record keyed by phone number.
	GetEmployee(ctx context.Context, phone string) (*model.Employee, error)
	// UploadDocuments posts all document parts plus the phone as one multipart request.
	UploadDocuments(ctx context.Context, req UploadRequest) error
	// Ping checks that the remote API answers at all.
	Ping(ctx context.Context) error
}
