package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalid       = errors.New("invalid")
	ErrBusy          = errors.New("busy")
	ErrMisconfigured = errors.New("misconfigured")
	ErrFetch         = errors.New("fetch failed")
)

// GenerationError is a backend failure during a generation call. Message and
// Code come from the backend; credentials never do.
type GenerationError struct {
	Message string
	Code    string
}

func (e *GenerationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("generation failed: %s (%s)", e.Message, e.Code)
	}
	return "generation failed: " + e.Message
}

// EmptyOutputError means the backend call succeeded but produced no usable
// text. Distinct from a transport failure; carries the backend's raw
// response body for client-side diagnosis.
type EmptyOutputError struct {
	Model string
	Raw   string
}

func (e *EmptyOutputError) Error() string {
	return "model returned empty response"
}
