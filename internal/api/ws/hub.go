package ws

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
)

// PubSub is the broker behind the hub. redis.PubSub satisfies it.
type PubSub interface {
	PublishEvent(ctx context.Context, ev domain.Event) error
	Broadcast(ctx context.Context, ev domain.Event, estateIDs []uuid.UUID) error
	SubscribeEstate(ctx context.Context, estateID uuid.UUID) (<-chan []byte, func(), error)
}

// Hub manages WebSocket connections backed by pub/sub.
type Hub struct {
	pubsub PubSub
}

// NewHub creates a new WebSocket hub.
func NewHub(pubsub PubSub) *Hub {
	return &Hub{pubsub: pubsub}
}

// ServeEstate streams an estate's change events to a WebSocket client, one
// JSON text message per event, until the client goes away.
func (h *Hub) ServeEstate(w http.ResponseWriter, r *http.Request) {
	estateID, err := uuid.Parse(chi.URLParam(r, "estateID"))
	if err != nil {
		http.Error(w, "invalid estate id", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	// Clients never send; CloseRead handles control frames and cancels ctx
	// when the peer disconnects.
	ctx := conn.CloseRead(r.Context())

	messages, cleanup, err := h.pubsub.SubscribeEstate(ctx, estateID)
	if err != nil {
		log.Error().Err(err).Str("estate_id", estateID.String()).Msg("websocket subscribe")
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer cleanup()

	log.Debug().Str("estate_id", estateID.String()).Msg("websocket subscribed")

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		case msg, msgOK := <-messages:
			if !msgOK {
				_ = conn.Close(websocket.StatusNormalClosure, "channel closed")
				return
			}
			if writeErr := conn.Write(ctx, websocket.MessageText, msg); writeErr != nil {
				log.Debug().Err(writeErr).Msg("websocket write")
				return
			}
		}
	}
}

// PublishEvent and Broadcast let the hub stand in as the router's
// EventPublisher.
func (h *Hub) PublishEvent(ctx context.Context, ev domain.Event) error {
	if err := h.pubsub.PublishEvent(ctx, ev); err != nil {
		return fmt.Errorf("ws.Hub.PublishEvent: %w", err)
	}
	return nil
}

func (h *Hub) Broadcast(ctx context.Context, ev domain.Event, estateIDs []uuid.UUID) error {
	if err := h.pubsub.Broadcast(ctx, ev, estateIDs); err != nil {
		return fmt.Errorf("ws.Hub.Broadcast: %w", err)
	}
	return nil
}
