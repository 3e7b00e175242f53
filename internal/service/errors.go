package service

import (
	"errors"
	"fmt"
)

// Service errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrEmailTaken         = errors.New("email already registered")
	ErrRequestNotFound    = errors.New("request not found")
	ErrWalkerNotFound     = errors.New("walker not found")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError reports malformed input. Details lists one message per failed field.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Details)
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ForbiddenError is returned when a user mutates a listing they do not own.
type ForbiddenError struct {
	Kind string // "requests", "walker profiles"
	Verb string // "update", "delete"
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("You can only %s your own %s.", e.Verb, e.Kind)
}

// Is lets errors.Is(err, ErrForbidden) match.
func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}
