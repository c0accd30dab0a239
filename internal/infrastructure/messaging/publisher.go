// Package messaging delivers entity events to RabbitMQ.
package messaging

import (
	"context"
	"fmt"

	"github.com/oksasatya/postboard-api/internal/domain/event"
	"github.com/oksasatya/postboard-api/internal/infrastructure/metrics"
)

// JSONPublisher is implemented by *helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, msgType, msgID string, body any) error
}

// EventPublisher adapts a JSONPublisher to event.Publisher.
type EventPublisher struct {
	pub JSONPublisher
}

func NewEventPublisher(pub JSONPublisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

func (p *EventPublisher) Publish(ctx context.Context, e event.Event) error {
	err := p.pub.PublishJSON(ctx, string(e.Type), e.ID, e)
	metrics.RecordPublish(string(e.Type), err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

var _ event.Publisher = (*EventPublisher)(nil)
