package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNothingAffected is returned when a write touched no rows.
	ErrNothingAffected = errors.New("an error occurred while saving the record")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("email is already taken")
	// ErrInvalidCredentials is returned on login failure without revealing
	// which of email or password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountLocked is returned when the account is temporarily locked out.
	ErrAccountLocked = errors.New("account is locked out")
	// ErrPermissionDenied is returned when the caller lacks a required claim.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError carries field-level validation failures.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from an ozzo validation result.
func NewValidationError(err error) *ValidationError {
	fields := make(map[string]string)

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			fields[field] = ferr.Error()
		}
	} else {
		fields["request"] = err.Error()
	}

	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
