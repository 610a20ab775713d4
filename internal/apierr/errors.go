// Package apierr defines the error taxonomy shared by all endpoints.
// Components return errors carrying a Kind; handlers branch on the kind
// at their boundary instead of inspecting error text.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates failure categories across the service.
type Kind int

const (
	// KindInternal is the catch-all for unclassified failures.
	KindInternal Kind = iota
	// KindInvalidInput marks malformed or missing request fields.
	KindInvalidInput
	// KindNotFound marks an unknown patient or transcript.
	KindNotFound
	// KindUnavailable marks a subsystem that never initialized,
	// such as recognition models missing at startup.
	KindUnavailable
	// KindExternalService marks an oracle, synthesis, or biomarker
	// collaborator failure.
	KindExternalService
	// KindAudioConversion marks a non-zero exit from the media
	// conversion subprocess.
	KindAudioConversion
	// KindAudioTimeout marks a conversion subprocess that exceeded
	// its deadline.
	KindAudioTimeout
	// KindInvalidAudioFormat marks transcoded audio that failed the
	// mono/16-bit validation.
	KindInvalidAudioFormat
	// KindEmptySynthesis marks a synthesis run that completed without
	// producing any audio bytes.
	KindEmptySynthesis
	// KindPersistence marks a filesystem read/write failure.
	KindPersistence
)

// Error is a classified error value.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a human-readable message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain. Unclassified errors
// report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the human-readable message for an error chain,
// falling back to err.Error() for unclassified errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps a kind to the status code the endpoints respond with.
// External failures map to 500 rather than 502, matching the observable
// behavior of the service this replaces.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput, KindInvalidAudioFormat:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
