// Package domain defines tenants, the owners of gateways.
package domain

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/gatewayconsole/internal/errors"
	customValidation "github.com/allisson/gatewayconsole/internal/validation"
)

// ErrTenantNotFound indicates a tenant with the specified ID was not found.
var ErrTenantNotFound = errors.Wrap(errors.ErrNotFound, "tenant not found")

// Tenant is an organisation owning gateways.
type Tenant struct {
	ID              uuid.UUID
	Name            string
	Description     string
	CanHaveGateways bool
	// MaxGatewayCount caps the gateways of the tenant; zero means unlimited.
	MaxGatewayCount int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AcceptsGateways reports whether a tenant currently owning count gateways
// may receive one more.
func (t *Tenant) AcceptsGateways(count int) bool {
	if !t.CanHaveGateways {
		return false
	}
	return t.MaxGatewayCount == 0 || count < t.MaxGatewayCount
}

// CreateTenantInput contains the fields required to create a tenant.
type CreateTenantInput struct {
	Name            string
	Description     string
	CanHaveGateways bool
	MaxGatewayCount int
}

// Validate checks the input and wraps failures as invalid input.
func (i *CreateTenantInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&i.Description, validation.Length(0, 255)),
		validation.Field(&i.MaxGatewayCount, validation.Min(0)),
	)
	return customValidation.WrapValidationError(err)
}
