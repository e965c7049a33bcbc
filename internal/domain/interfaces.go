package domain

import "context"

// LimiterRepository tracks request budgets per client key.
type LimiterRepository interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// EventPublisher publishes serialized domain events.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
