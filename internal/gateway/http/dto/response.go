package dto

import (
	"time"

	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
)

// GatewayResponse represents a gateway in API responses.
type GatewayResponse struct {
	ID                string            `json:"id"`
	TenantID          string            `json:"tenant_id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Location          LocationRequest   `json:"location"`
	StatsIntervalSecs int               `json:"stats_interval_secs"`
	Tags              map[string]string `json:"tags"`
	Properties        map[string]string `json:"properties"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	LastSeenAt        *time.Time        `json:"last_seen_at"`
}

// MapGatewayToResponse converts a domain gateway to an API response.
func MapGatewayToResponse(gateway *gatewayDomain.Gateway) GatewayResponse {
	tags := gateway.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	properties := gateway.Properties
	if properties == nil {
		properties = map[string]string{}
	}

	return GatewayResponse{
		ID:          gateway.ID,
		TenantID:    gateway.TenantID.String(),
		Name:        gateway.Name,
		Description: gateway.Description,
		Location: LocationRequest{
			Latitude:  gateway.Location.Latitude,
			Longitude: gateway.Location.Longitude,
			Altitude:  gateway.Location.Altitude,
		},
		StatsIntervalSecs: gateway.StatsIntervalSecs,
		Tags:              tags,
		Properties:        properties,
		CreatedAt:         gateway.CreatedAt,
		UpdatedAt:         gateway.UpdatedAt,
		LastSeenAt:        gateway.LastSeenAt,
	}
}

// ListGatewaysResponse represents a page of gateways.
type ListGatewaysResponse struct {
	Data []GatewayResponse `json:"data"`
}

// MapGatewaysToListResponse converts domain gateways to a list response.
func MapGatewaysToListResponse(gateways []*gatewayDomain.Gateway) ListGatewaysResponse {
	data := make([]GatewayResponse, 0, len(gateways))
	for _, gateway := range gateways {
		data = append(data, MapGatewayToResponse(gateway))
	}
	return ListGatewaysResponse{Data: data}
}
