package service

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Error kinds surfaced to the HTTP layer. Entity specific errors wrap one of these.
var (
	ErrNotFound             = errors.New("not found")
	ErrConstraintViolation  = errors.New("constraint violation")
	ErrReferentialViolation = errors.New("referential violation")
)

var (
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrPostNotFound = fmt.Errorf("post %w", ErrNotFound)
	ErrTagNotFound  = fmt.Errorf("tag %w", ErrNotFound)

	ErrTagExists = fmt.Errorf("tag name already exists: %w", ErrConstraintViolation)

	ErrAuthorNotFound = fmt.Errorf("post author does not exist: %w", ErrReferentialViolation)
	ErrUnknownTag     = fmt.Errorf("selected tag does not exist: %w", ErrReferentialViolation)
)

// RequiredFieldError reports a blank required field.
type RequiredFieldError struct {
	Field string
}

func (e *RequiredFieldError) Error() string {
	return e.Field + " is required"
}

// Is makes RequiredFieldError match ErrConstraintViolation.
func (e *RequiredFieldError) Is(target error) bool {
	return target == ErrConstraintViolation
}

func requireField(field, value string) error {
	if value == "" {
		return &RequiredFieldError{Field: field}
	}
	return nil
}

// FieldTooLongError reports a value longer than its column allows.
type FieldTooLongError struct {
	Field string
	Max   int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("%s must be at most %d characters", e.Field, e.Max)
}

func (e *FieldTooLongError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// limitField counts characters, matching varchar limits on postgres.
func limitField(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return &FieldTooLongError{Field: field, Max: max}
	}
	return nil
}
