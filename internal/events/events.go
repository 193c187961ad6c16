// Package events publishes outbox events to a message broker.
package events

import "context"

// Publisher delivers an encoded event payload for the given event type.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload []byte) error
	Close() error
}

// Subject returns the broker subject for an event type, e.g.
// "gatewayconsole.gateway.updated".
func Subject(prefix, eventType string) string {
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}
