package router

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/estatehub/internal/domain"
)

// EventPublisher delivers estate events. redis.PubSub satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, ev domain.Event) error
	Broadcast(ctx context.Context, ev domain.Event, estateIDs []uuid.UUID) error
}

// publish sends ev to its estate, or to every estate when it has none.
// Failures are logged and counted but never reported to the caller: the
// command has already been applied.
func (r *Router) publish(ctx context.Context, ev domain.Event) {
	if r.publisher == nil {
		return
	}

	ev.OccurredAt = r.now().UTC()

	var err error
	if ev.Broadcast() {
		estates := r.store.Estates()
		ids := make([]uuid.UUID, 0, len(estates))
		for _, rec := range estates {
			ids = append(ids, rec.ID)
		}
		err = r.publisher.Broadcast(ctx, ev, ids)
	} else {
		err = r.publisher.PublishEvent(ctx, ev)
	}

	if r.metrics != nil {
		r.metrics.ObservePublish(err)
	}
	if err != nil {
		log.Warn().Err(err).
			Str("event", ev.Type).
			Str("estate_id", ev.EstateID.String()).
			Msg("publish event")
	}
}
