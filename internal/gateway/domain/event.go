package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outbox event types emitted by the gateway service.
const (
	EventGatewayCreated = "gateway.created"
	EventGatewayUpdated = "gateway.updated"
)

// GatewayEvent is the JSON payload of gateway outbox events.
type GatewayEvent struct {
	GatewayID string    `json:"gateway_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
