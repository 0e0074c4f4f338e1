// Package apperror defines the error taxonomy shared by every layer.
//
// Each sentinel below represents one failure class a caller might want to
// branch on. The layers wrap these with fmt.Errorf("%w"), so callers check
// with errors.Is regardless of how deeply the error was wrapped:
//
//	snippet, err := svc.Get(ctx, id)
//	if errors.Is(err, apperror.ErrNotFound) { ... }
//
// Nothing in this package knows about HTTP, SQL, or the terminal — the
// presentation layer decides how each class is displayed.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound: the remote store has no blob at the requested identifier.
	ErrNotFound = errors.New("not found")
	// ErrValidation: a caller-supplied value failed a business rule.
	ErrValidation = errors.New("validation error")
	// ErrRemote: the blob service answered with a non-2xx other than not-found.
	ErrRemote = errors.New("remote error")
	// ErrMalformed: a fetched payload is not valid JSON at all.
	ErrMalformed = errors.New("malformed document")
	// ErrInvalidSnippet: the payload parses as JSON but fails the snippet schema.
	ErrInvalidSnippet = errors.New("invalid snippet")
	// ErrLocalStore: the local recent-items store failed.
	ErrLocalStore = errors.New("local store error")
)

// AppError carries the sentinel plus human-readable context.
type AppError struct {
	Err     error  // sentinel identifying the failure class
	Message string // human-readable error message
	Field   string // optional: field causing the error
	Status  int    // optional: HTTP status from the remote service
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no blob exists at the given identifier.
func NotFound(id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("snippet not found with blob id %s", id),
	}
}

// ValidationFailed reports a single bad input field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Remote wraps a non-2xx response from the blob service. The message is the
// service-supplied detail when one could be decoded, else the status text.
func Remote(status int, message string) *AppError {
	return &AppError{
		Err:     ErrRemote,
		Message: fmt.Sprintf("blob service returned %d: %s", status, message),
		Status:  status,
	}
}

// Malformed reports a payload that is not valid JSON.
func Malformed(err error) *AppError {
	return &AppError{
		Err:     ErrMalformed,
		Message: fmt.Sprintf("stored document is not valid JSON: %v", err),
	}
}

// InvalidSnippet reports schema validation failures. Every failing field is
// listed, not just the first — callers see the whole picture at once.
func InvalidSnippet(fields []string) *AppError {
	return &AppError{
		Err:     ErrInvalidSnippet,
		Message: fmt.Sprintf("invalid snippet data: %s", strings.Join(fields, "; ")),
	}
}

// LocalStore wraps a failure from the recent-items store.
func LocalStore(op string, err error) *AppError {
	return &AppError{
		Err:     ErrLocalStore,
		Message: fmt.Sprintf("recent snippets store: %s: %v", op, err),
	}
}
