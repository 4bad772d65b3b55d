// Package redis carries estate change events over Redis pub/sub. Every estate
// has its own channel and events travel as JSON.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/estatehub/internal/domain"
)

// subscriberBuffer is how many undelivered events a subscriber may lag by
// before go-redis starts dropping them.
const subscriberBuffer = 64

// ErrMalformedEvent is returned by DecodeEvent for payloads that are not
// estate events.
var ErrMalformedEvent = errors.New("redis: malformed event")

// PubSub publishes estate events and streams them back per estate.
type PubSub struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection with a PING.
func New(ctx context.Context, addr, password string, db int) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &PubSub{client: client}, nil
}

func (ps *PubSub) Close() error {
	if err := ps.client.Close(); err != nil {
		return fmt.Errorf("redis.PubSub.Close: %w", err)
	}
	return nil
}

// PublishEvent sends ev on the channel of ev.EstateID.
func (ps *PubSub) PublishEvent(ctx context.Context, ev domain.Event) error {
	if ev.Broadcast() {
		return fmt.Errorf("redis.PubSub.PublishEvent: %s: %w", ev.Type, ErrMalformedEvent)
	}

	payload, err := EncodeEvent(ev)
	if err != nil {
		return fmt.Errorf("redis.PubSub.PublishEvent: %w", err)
	}
	if err := ps.client.Publish(ctx, EstateChannel(ev.EstateID), payload).Err(); err != nil {
		return fmt.Errorf("redis.PubSub.PublishEvent: %w", err)
	}
	return nil
}

// Broadcast sends a copy of ev to each estate in one pipeline, with EstateID
// set to the receiving estate.
func (ps *PubSub) Broadcast(ctx context.Context, ev domain.Event, estateIDs []uuid.UUID) error {
	if len(estateIDs) == 0 {
		return nil
	}

	payloads, err := fanOut(ev, estateIDs)
	if err != nil {
		return fmt.Errorf("redis.PubSub.Broadcast: %w", err)
	}

	_, err = ps.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for channel, payload := range payloads {
			pipe.Publish(ctx, channel, payload)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis.PubSub.Broadcast: %w", err)
	}
	return nil
}

// SubscribeEstate streams the raw payload of every well-formed event published
// for estateID until ctx is done or the returned cleanup func is called.
func (ps *PubSub) SubscribeEstate(ctx context.Context, estateID uuid.UUID) (<-chan []byte, func(), error) {
	channel := EstateChannel(estateID)
	sub := ps.client.Subscribe(ctx, channel)

	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis.PubSub.SubscribeEstate: receive confirmation: %w", err)
	}

	out := make(chan []byte)
	go forward(ctx, sub.Channel(redis.WithChannelSize(subscriberBuffer)), out)

	return out, func() { _ = sub.Close() }, nil
}

// forward relays payloads from in to out, dropping anything that does not
// decode as an event. out is closed when in closes or ctx is done.
func forward(ctx context.Context, in <-chan *redis.Message, out chan<- []byte) {
	defer close(out)
	for {
		var msg *redis.Message
		select {
		case <-ctx.Done():
			return
		case m, ok := <-in:
			if !ok {
				return
			}
			msg = m
		}

		payload := []byte(msg.Payload)
		if _, err := DecodeEvent(payload); err != nil {
			log.Debug().Err(err).Str("channel", msg.Channel).Msg("drop event")
			continue
		}

		select {
		case out <- payload:
		case <-ctx.Done():
			return
		}
	}
}

// fanOut encodes one payload per estate channel.
func fanOut(ev domain.Event, estateIDs []uuid.UUID) (map[string][]byte, error) {
	out := make(map[string][]byte, len(estateIDs))
	for _, id := range estateIDs {
		ev.EstateID = id
		payload, err := EncodeEvent(ev)
		if err != nil {
			return nil, err
		}
		out[EstateChannel(id)] = payload
	}
	return out, nil
}

// EncodeEvent is the wire form of an estate event.
func EncodeEvent(ev domain.Event) ([]byte, error) {
	if ev.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedEvent)
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return payload, nil
}

// DecodeEvent parses a payload produced by EncodeEvent. Payloads without a
// type or an estate are rejected.
func DecodeEvent(payload []byte) (domain.Event, error) {
	var ev domain.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return domain.Event{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if ev.Type == "" || ev.Broadcast() {
		return domain.Event{}, ErrMalformedEvent
	}
	return ev, nil
}

// EstateChannel returns the Redis channel name for an estate's change events.
func EstateChannel(estateID uuid.UUID) string {
	return "estate:" + estateID.String()
}
