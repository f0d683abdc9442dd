// Package pubsub fans events out from one publisher to any number of
// subscribers. Sessions publish key and completion events on it and the
// logger mirrors every line.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	// LoadedEvent fires when a session loads a challenge or sandbox text.
	LoadedEvent EventType = "loaded"
	// KeyEvent fires after every key a session applies.
	KeyEvent EventType = "key"
	// CompletedEvent fires once, when a challenge is first solved.
	CompletedEvent EventType = "completed"
	// ResetEvent fires when a session restarts its challenge.
	ResetEvent EventType = "reset"
	// HintEvent fires when a hint is revealed.
	HintEvent EventType = "hint"
	// LogEvent carries one formatted log line.
	LogEvent EventType = "log"
)

// Event is one published occurrence with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
