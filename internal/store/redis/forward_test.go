package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/estatehub/internal/domain"
)

func TestForward_DropsMalformedPayloads(t *testing.T) {
	t.Parallel()

	estateID := uuid.New()
	good, err := EncodeEvent(domain.Event{Type: domain.EventOperatorCreated, EstateID: estateID})
	require.NoError(t, err)

	in := make(chan *redis.Message, 3)
	in <- &redis.Message{Channel: EstateChannel(estateID), Payload: "garbage"}
	in <- &redis.Message{Channel: EstateChannel(estateID), Payload: string(good)}
	close(in)

	out := make(chan []byte)
	go forward(context.Background(), in, out)

	var got [][]byte
	for payload := range out {
		got = append(got, payload)
	}
	assert.Equal(t, [][]byte{good}, got)
}

func TestForward_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan *redis.Message)
	out := make(chan []byte)
	go forward(ctx, in, out)

	cancel()

	select {
	case _, ok := <-out:
		assert.False(t, ok, "out is closed")
	case <-time.After(5 * time.Second):
		t.Fatal("forward did not stop")
	}
}

func TestFanOut(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	payloads, err := fanOut(domain.Event{Type: domain.EventStoreReset}, []uuid.UUID{a, b})
	require.NoError(t, err)
	require.Len(t, payloads, 2)

	for _, id := range []uuid.UUID{a, b} {
		ev, err := DecodeEvent(payloads[EstateChannel(id)])
		require.NoError(t, err)
		assert.Equal(t, id, ev.EstateID)
		assert.Equal(t, domain.EventStoreReset, ev.Type)
	}
}
