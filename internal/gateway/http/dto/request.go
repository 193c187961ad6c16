// Package dto provides the JSON bodies of the gateway endpoints. The same
// gateway body is submitted by the console edit form.
package dto

import (
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
	customValidation "github.com/allisson/gatewayconsole/internal/validation"
)

// LocationRequest is the position of a gateway.
type LocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

// GatewayRequest is a complete gateway as submitted by a client.
type GatewayRequest struct {
	ID                string            `json:"id"`
	TenantID          string            `json:"tenant_id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Location          LocationRequest   `json:"location"`
	StatsIntervalSecs int               `json:"stats_interval_secs"`
	Tags              map[string]string `json:"tags"`
	Properties        map[string]string `json:"properties"`
}

// Validate checks the field formats. Business rules are enforced by the use case.
func (r *GatewayRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, customValidation.EUI64),
		validation.Field(&r.TenantID, validation.Required, customValidation.UUID),
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.StatsIntervalSecs, validation.Min(0)),
		validation.Field(&r.Location, validation.By(validateLocation)),
	)
}

func validateLocation(value interface{}) error {
	loc, _ := value.(LocationRequest)
	return validation.ValidateStruct(&loc,
		validation.Field(&loc.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&loc.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// ToDomain converts a validated request into a gateway. Call Validate first.
func (r *GatewayRequest) ToDomain() *gatewayDomain.Gateway {
	tenantID, _ := uuid.Parse(r.TenantID)
	return &gatewayDomain.Gateway{
		ID:          strings.ToLower(r.ID),
		TenantID:    tenantID,
		Name:        r.Name,
		Description: r.Description,
		Location: gatewayDomain.Location{
			Latitude:  r.Location.Latitude,
			Longitude: r.Location.Longitude,
			Altitude:  r.Location.Altitude,
		},
		StatsIntervalSecs: r.StatsIntervalSecs,
		Tags:              r.Tags,
		Properties:        r.Properties,
	}
}

// GatewayEnvelope wraps a gateway body, as in {"gateway": {...}}.
type GatewayEnvelope struct {
	Gateway *GatewayRequest `json:"gateway"`
}

// Validate requires a gateway and validates it.
func (e *GatewayEnvelope) Validate() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.Gateway, validation.Required),
	)
}
