// Package notify fans domain events out to the live dashboard feed and
// to Kafka.
// File: notify/notify.go
package notify

import (
	"context"
	"errors"
	"time"
)

// Actions carried in Event.Action.
const (
	RegistrationCreated = "registration.created"
	UserDeleted         = "user.deleted"
	EventAdded          = "event.added"
	EventDeleted        = "event.deleted"
)

// Event is one domain change, serialised as {"action","at","data"}.
type Event struct {
	Action string      `json:"action"`
	At     time.Time   `json:"at"`
	Data   interface{} `json:"data,omitempty"`
}

// New stamps an event with the current UTC time.
func New(action string, data interface{}) Event {
	return Event{Action: action, At: time.Now().UTC(), Data: data}
}

// Publisher delivers events. Publish must not block on slow consumers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, Event) error { return nil }

// Multi publishes to each publisher and joins their errors.
type Multi []Publisher

// Publish delivers e to every publisher even when an earlier one fails.
func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
