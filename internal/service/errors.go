package service

import (
	"errors"

	"docupload/internal/model"
)

var (
	ErrMissingSession   = errors.New("phone number missing")
	ErrSubmitInFlight   = errors.New("submission already in progress")
	ErrAlreadySubmitted = errors.New("documents already submitted")
	ErrUploadFailed     = errors.New("upload failed")
	ErrUnknownSlot      = errors.New("unknown document slot")
	ErrFileRequired     = errors.New("file is required")
	ErrFormClosed       = errors.New("form is closed")
	ErrFormNotFound     = errors.New("form not found")
)

// IncompleteError names the first empty slot found at submit time.
type IncompleteError struct {
	Slot model.Slot
}

func (e *IncompleteError) Error() string {
	return "missing document: " + string(e.Slot.Key)
}
