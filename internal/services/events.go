package services

import (
	"context"
	"log/slog"

	"household/internal/amqp"
	"household/internal/metrics"
)

// eventEmitter announces expense changes. Publishing never fails the
// caller: the change is already stored.
type eventEmitter struct {
	publisher EventPublisher
	metrics   *metrics.Metrics
}

func (em eventEmitter) publish(ctx context.Context, t amqp.EventType, id, groupID string) {
	if em.publisher == nil {
		slog.DebugContext(ctx, "Event publisher not available, skipping event", "type", t, "id", id)
		return
	}
	ev := amqp.NewExpenseEvent(t, id, groupID)
	if err := em.publisher.PublishExpenseEvent(ctx, *ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"type", t,
			"id", id,
			"error", err)
		if em.metrics != nil {
			em.metrics.PublishFailures.Inc()
		}
		return
	}
	if em.metrics != nil {
		em.metrics.EventsPublished.WithLabelValues(string(t)).Inc()
	}
}
