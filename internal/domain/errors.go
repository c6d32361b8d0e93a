package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// FieldErrors maps a request field name to its validation message.
type FieldErrors map[string]string

// Add keeps the first message recorded for a field.
func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return ValidationError{Fields: f}
}

type ValidationError struct {
	Fields FieldErrors
	Err    error
}

func (e ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func (e ValidationError) Unwrap() error { return e.Err }

// NewValidation is shorthand for a single-field validation error.
func NewValidation(field, msg string) ValidationError {
	return ValidationError{Fields: FieldErrors{field: msg}}
}

type InvalidTransitionError struct {
	Resource string
	From     string
	To       string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: invalid status transition %s -> %s", e.Resource, e.From, e.To)
}

type ImmutableStateError struct {
	Resource string
	Status   string
}

func (e ImmutableStateError) Error() string {
	return fmt.Sprintf("%s cannot be edited in status %s", e.Resource, e.Status)
}

type AlreadySettledError struct {
	Resource string
	ID       int64
}

func (e AlreadySettledError) Error() string {
	return fmt.Sprintf("%s %d already settled", e.Resource, e.ID)
}

type ReferentialIntegrityError struct {
	Resource     string
	ReferencedBy string
}

func (e ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s is still referenced by %s", e.Resource, e.ReferencedBy)
}

type UnauthorizedError struct {
	Action string
}

func (e UnauthorizedError) Error() string {
	if e.Action == "" {
		return "unauthorized"
	}
	return fmt.Sprintf("unauthorized: %s", e.Action)
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// Fields extracts the field map of a ValidationError, or nil.
func Fields(err error) FieldErrors {
	var target ValidationError
	if errors.As(err, &target) {
		return target.Fields
	}
	return nil
}

func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}

func IsImmutableState(err error) bool {
	var target ImmutableStateError
	return errors.As(err, &target)
}

func IsAlreadySettled(err error) bool {
	var target AlreadySettledError
	return errors.As(err, &target)
}

func IsReferentialIntegrity(err error) bool {
	var target ReferentialIntegrityError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}
