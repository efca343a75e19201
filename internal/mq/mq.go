package mq

import (
	"context"
	"strings"
)

// Publisher fans out encoded events to a broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, data []byte) error
	Close() error
}

// RoutingKey maps an event type to its topic key, e.g. LIKE -> blog.like.
func RoutingKey(eventType string) string {
	return "blog." + strings.ToLower(strings.TrimSpace(eventType))
}

// Nop discards everything. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, []byte) error { return nil }
func (Nop) Close() error                                  { return nil }
