package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

// NewMissingAuthorization signals an absent credential header at issuance.
func NewMissingAuthorization() error {
	return NewDomainError("MISSING_AUTHORIZATION", "authorization header required", http.StatusUnauthorized, nil)
}

// NewInvalidAuthorizationFormat signals a malformed credential header at issuance.
func NewInvalidAuthorizationFormat() error {
	return NewDomainError("INVALID_AUTHORIZATION_FORMAT", "authorization header must use the Bearer scheme", http.StatusUnauthorized, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewInvalidRole signals a role outside the closed enum.
func NewInvalidRole(provided string) error {
	return NewDomainError(
		"INVALID_ROLE",
		"invalid role provided, must be one of: super_admin, zone_admin, normal_user",
		http.StatusBadRequest,
		map[string]any{"provided_role": provided},
	)
}

// NewInvalidZone signals an unknown or badly formatted zone code.
func NewInvalidZone(provided string) error {
	return NewDomainError(
		"INVALID_ZONE",
		"invalid zone code, must be a known zone identifier (e.g. GSEZ, OSEZ)",
		http.StatusBadRequest,
		map[string]any{"provided_zone": provided},
	)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewConflict(code, message string, details map[string]any) error {
	return NewDomainError(code, message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
