package events

import "context"

// NoopPublisher discards every event. It is used when NATS is not configured.
type NoopPublisher struct{}

// NewNoopPublisher creates a NoopPublisher.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (n *NoopPublisher) Publish(ctx context.Context, eventType string, payload []byte) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
