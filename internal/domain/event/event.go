// Package event describes the notifications emitted after an entity change
// has been committed.
package event

import (
	"context"
	"time"
)

// Type names a committed change.
type Type string

const (
	AccountCreated Type = "account.created"
	AccountUpdated Type = "account.updated"
	AccountDeleted Type = "account.deleted"
	PostCreated    Type = "post.created"
	PostUpdated    Type = "post.updated"
	PostDeleted    Type = "post.deleted"
)

// Event is the message body published for a change. Data is the public JSON
// view of the entity, nil for deletions.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Entity     string    `json:"entity"`
	EntityID   int64     `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// Publisher delivers events. Implementations must not block the request
// longer than their own timeout.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
