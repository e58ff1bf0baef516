package dto

import (
	"time"

	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"
)

// CreateUserRequest is the POST /user payload. Only super admins reach
// this endpoint.
type CreateUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Zone  string `json:"zone"`
}

// Validate checks the user creation payload. Role and zone membership are
// verified in the user service to keep the dedicated error codes.
func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Role, validation.Required, validation.Length(1, 20)),
		validation.Field(&r.Zone, validation.Required, validation.Length(1, 10)),
	)
}

// UpdateUserRequest is the PUT /user/:email payload; nil fields are left
// unchanged.
type UpdateUserRequest struct {
	Role   *string `json:"role"`
	Zone   *string `json:"zone"`
	Active *bool   `json:"active"`
}

// Validate checks the user update payload.
func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Length(1, 20)),
		validation.Field(&r.Zone, validation.Length(1, 10)),
	)
}

// UserResponse is the wire representation of an administrative user.
// AccessKey is present only in the creation response; it is never
// recoverable afterwards.
type UserResponse struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Zone      string    `json:"zone"`
	Active    bool      `json:"active"`
	AccessKey string    `json:"accessKey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
