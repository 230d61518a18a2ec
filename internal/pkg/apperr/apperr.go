// Package apperr defines the error classes surfaced to API clients.
// Validation, permission and not-found failures are distinct and never
// converted into one another.
package apperr

import (
	"errors"
	"sort"
	"strings"
)

const NonFieldErrors = "non_field_errors"

var (
	ErrNotAuthenticated = errors.New("Authentication credentials were not provided.")
	ErrInvalidToken     = errors.New("Invalid token.")
	ErrPermissionDenied = errors.New("You do not have permission to perform this action.")
	ErrNotFound         = errors.New("No object found.")
)

// ValidationError carries client input problems keyed by field name.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidation(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// OrNil returns e as an error, or nil when nothing was recorded.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

type notFoundError struct {
	detail string
}

func (e *notFoundError) Error() string { return e.detail }
func (e *notFoundError) Unwrap() error { return ErrNotFound }

// NotFound returns an ErrNotFound carrying a client-facing message.
func NotFound(detail string) error {
	return &notFoundError{detail: detail}
}
