// Package domain defines users, their tenant roles and login sessions.
package domain

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/gatewayconsole/internal/validation"
)

// User is an actor of the console.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TenantRoles are the roles a user holds within one tenant.
type TenantRoles struct {
	IsAdmin        bool `json:"is_admin"`
	IsDeviceAdmin  bool `json:"is_device_admin"`
	IsGatewayAdmin bool `json:"is_gateway_admin"`
}

// TenantUser binds a user to a tenant with a set of roles.
type TenantUser struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	TenantRoles
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserInput contains the fields required to register a user.
type CreateUserInput struct {
	Email    string
	Password string
	IsAdmin  bool
}

// Validate checks the email format and password strength.
func (i *CreateUserInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
			validation.Length(5, 255),
		),
		validation.Field(&i.Password,
			validation.Required,
			validation.Length(8, 128),
			customValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return customValidation.WrapValidationError(err)
}

// SetTenantUserInput grants (or replaces) the roles of a user within a tenant.
type SetTenantUserInput struct {
	TenantID uuid.UUID
	Email    string
	TenantRoles
}

// Validate checks that a tenant and a user email are given.
func (i *SetTenantUserInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.TenantID, customValidation.NotNilUUID),
		validation.Field(&i.Email, validation.Required, customValidation.Email),
	)
	return customValidation.WrapValidationError(err)
}
