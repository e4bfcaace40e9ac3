package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("login required")
	ErrBadCreds        = errors.New("invalid email or password")
	ErrNotVerified     = errors.New("email not verified")
	ErrEmailTaken      = errors.New("email already registered")
	ErrBadToken        = errors.New("invalid or expired verification token")
)

// ValidationError carries one message per rejected input field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Viewer is who a request acts as. Admin and a logged-in user are mutually
// exclusive for one session.
type Viewer struct {
	UserID string
	Name   string
	Admin  bool
}
