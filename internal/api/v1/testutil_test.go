package v1_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	v1 "github.com/gosuda/estatehub/internal/api/v1"
	"github.com/gosuda/estatehub/internal/router"
	"github.com/gosuda/estatehub/internal/store/memory"
)

var testNow = time.Date(2025, time.February, 14, 10, 30, 0, 0, time.UTC) //nolint:gochecknoglobals // fixed clock

// ---------------------------------------------------------------------------
// Test API backed by a seeded store
// ---------------------------------------------------------------------------

func newTestAPI(t *testing.T) (humatest.TestAPI, *memory.Store) {
	t.Helper()

	store := memory.New()
	return newTestAPIWith(t, store), store
}

func newTestAPIWith(t *testing.T, store *memory.Store) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	r := router.New(store, router.WithClock(func() time.Time { return testNow }))

	v1.RegisterEstateRoutes(api, r)
	v1.RegisterMerchantRoutes(api, r)
	v1.RegisterOperatorRoutes(api, r)
	v1.RegisterContractRoutes(api, r)
	v1.RegisterAnalyticsRoutes(api, r)
	return api
}

type idBody struct {
	ID uuid.UUID `json:"id"`
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func errorDetail(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[huma.ErrorModel](t, resp).Detail
}

// ---------------------------------------------------------------------------
// Mock Dispatcher
// ---------------------------------------------------------------------------

type mockDispatcher struct {
	dispatchFunc func(ctx context.Context, req router.Request) (any, error)
}

func (m *mockDispatcher) Dispatch(ctx context.Context, req router.Request) (any, error) {
	return m.dispatchFunc(ctx, req)
}
