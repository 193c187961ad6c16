// Package domain defines gateways and the write requests that modify them.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/gatewayconsole/internal/validation"
)

// DefaultStatsIntervalSecs is applied when a gateway is created without an interval.
const DefaultStatsIntervalSecs = 30

// Location is the physical position of a gateway.
type Location struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// Gateway is a network gateway owned by exactly one tenant. ID is the EUI-64
// of the gateway as 16 lowercase hex characters.
type Gateway struct {
	ID                string
	TenantID          uuid.UUID
	Name              string
	Description       string
	Location          Location
	StatsIntervalSecs int
	Tags              map[string]string
	Properties        map[string]string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	LastSeenAt        *time.Time
}

// Normalize lowercases the ID and replaces nil maps with empty ones.
func (g *Gateway) Normalize() {
	g.ID = strings.ToLower(g.ID)
	if g.Tags == nil {
		g.Tags = map[string]string{}
	}
	if g.Properties == nil {
		g.Properties = map[string]string{}
	}
}

// Validate checks the editable fields of the gateway.
func (g *Gateway) Validate() error {
	err := validation.ValidateStruct(g,
		validation.Field(&g.ID, validation.Required, customValidation.EUI64),
		validation.Field(&g.TenantID, customValidation.NotNilUUID),
		validation.Field(&g.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&g.StatsIntervalSecs, validation.Required, validation.Min(1)),
		validation.Field(&g.Location, validation.By(validateLocation)),
	)
	return customValidation.WrapValidationError(err)
}

func validateLocation(value interface{}) error {
	loc, _ := value.(Location)
	return validation.ValidateStruct(&loc,
		validation.Field(&loc.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&loc.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// UpdateGatewayRequest is the write intent sent to the gateway service. It
// wraps exactly one gateway snapshot and is built fresh for every submission.
type UpdateGatewayRequest struct {
	Gateway *Gateway
}

// Validate checks that the wrapped gateway identifies an existing record.
func (r *UpdateGatewayRequest) Validate() error {
	if r == nil || r.Gateway == nil {
		return customValidation.WrapValidationError(
			validation.NewError("validation_gateway_required", "gateway: cannot be blank"),
		)
	}
	return r.Gateway.Validate()
}
