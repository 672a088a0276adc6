package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnauthenticated  = errors.New("user not authenticated")
	ErrValidationFailed = errors.New("validation failed")
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("user not authorized to access this resource")
	ErrStore            = errors.New("store error")
	ErrConflict         = errors.New("resource already exist")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrTooManyRequests  = errors.New("too many requests")
)

// ValidationError carries one message per rejected field, keyed by the field's json name.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (v *ValidationError) Error() string {
	names := make([]string, 0, len(v.Fields))
	for name := range v.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, v.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(parts, ", "))
}

func (v *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Store marks err as a persistence failure while keeping the cause reachable through errors.Is.
func Store(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStore, err)
}
