package apperrors

import (
	"errors"
	"sort"
	"strings"
)

// Common errors
var (
	ErrValidation           = errors.New("validation failed")
	ErrConflict             = errors.New("conflict")
	ErrInvalidCredentials   = errors.New("Invalid credentials")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotAuthenticated     = errors.New("Authentication credentials were not provided.")
	ErrNotFound             = errors.New("not found")
	ErrAlreadyExists        = errors.New("already exists")
)

// FieldErrors maps a request field to its violation messages.
type FieldErrors map[string][]string

// Add appends msg to the violations of field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Empty reports whether no violations were recorded.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Err returns a *ValidationError when violations exist, nil otherwise.
func (f FieldErrors) Err() error {
	if f.Empty() {
		return nil
	}
	return &ValidationError{Fields: f}
}

// ValidationError is returned when request input breaks field constraints.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError reports a unique key collision on Field.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflict builds a ConflictError for field.
func NewConflict(field, msg string) error {
	return &ConflictError{Field: field, Message: msg}
}

// AuthError carries the detail shown to a client whose credentials were rejected.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return e.Detail
}

func (e *AuthError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// AuthenticationFailed builds an AuthError with detail.
func AuthenticationFailed(detail string) error {
	return &AuthError{Detail: detail}
}
