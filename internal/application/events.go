package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/postboard-api/internal/domain/event"
)

const publishTimeout = 2 * time.Second

// notifier publishes committed changes. Failures are logged and dropped.
type notifier struct {
	events event.Publisher
	logger *logrus.Logger
}

func newNotifier(events event.Publisher, logger *logrus.Logger) notifier {
	if events == nil {
		events = event.Nop{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return notifier{events: events, logger: logger}
}

func (n notifier) emit(ctx context.Context, typ event.Type, entityName string, id int64, data any) {
	e := event.Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Entity:     entityName,
		EntityID:   id,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := n.events.Publish(pctx, e); err != nil {
		n.logger.WithError(err).WithFields(logrus.Fields{
			"event":     string(typ),
			"entity_id": id,
		}).Warn("event publish failed")
	}
}
