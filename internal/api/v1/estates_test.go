package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/estatehub/internal/domain"
	"github.com/gosuda/estatehub/internal/store/memory"
)

// ---------------------------------------------------------------------------
// TestListEstates
// ---------------------------------------------------------------------------

func TestListEstates(t *testing.T) {
	t.Parallel()

	t.Run("seeded", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get("/estates")

		require.Equal(t, http.StatusOK, resp.Code)
		estates := decode[[]domain.EstateRecord](t, resp)
		require.Len(t, estates, 1)
		assert.Equal(t, memory.DefaultEstateID, estates[0].ID)
		assert.Equal(t, "Test Estate", estates[0].Name)
	})

	t.Run("empty_store_is_empty_array", func(t *testing.T) {
		t.Parallel()

		api := newTestAPIWith(t, memory.NewEmpty())
		resp := api.Get("/estates")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `[]`, resp.Body.String())
	})
}

// ---------------------------------------------------------------------------
// TestGetEstate
// ---------------------------------------------------------------------------

func TestGetEstate(t *testing.T) {
	t.Parallel()

	t.Run("known", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get("/estates/" + memory.DefaultEstateID.String())

		require.Equal(t, http.StatusOK, resp.Code)
		estate := decode[domain.Estate](t, resp)
		assert.Equal(t, "Test Estate", estate.Name)
		assert.Len(t, estate.Merchants, memory.DefaultMerchantCount)
		assert.Len(t, estate.Operators, memory.DefaultOperatorCount)
		assert.Len(t, estate.Contracts, memory.DefaultContractCount)
	})

	t.Run("unknown_is_placeholder", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		id := uuid.New()
		resp := api.Get("/estates/" + id.String())

		require.Equal(t, http.StatusOK, resp.Code)
		estate := decode[domain.Estate](t, resp)
		assert.Equal(t, id, estate.ID)
		assert.Equal(t, domain.UnknownEstateName, estate.Name)
		assert.Empty(t, estate.Merchants)
	})

	t.Run("malformed_id", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get("/estates/not-a-uuid")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// TestPutEstate
// ---------------------------------------------------------------------------

func TestPutEstate(t *testing.T) {
	t.Parallel()

	t.Run("create_then_rename", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		id := uuid.New()
		path := "/estates/" + id.String()

		resp := api.Put(path, map[string]any{"name": "Second Estate", "reference": "Estate2"})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, id, decode[idBody](t, resp).ID)

		resp = api.Put(path, map[string]any{"name": "Renamed Estate"})
		require.Equal(t, http.StatusOK, resp.Code)

		estate := decode[domain.Estate](t, api.Get(path))
		assert.Equal(t, "Renamed Estate", estate.Name)
	})

	t.Run("empty_name", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Put("/estates/"+uuid.NewString(), map[string]any{"name": ""})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// TestResetStore
// ---------------------------------------------------------------------------

func TestResetStore(t *testing.T) {
	t.Parallel()

	api, _ := newTestAPI(t)
	merchants := "/estates/" + memory.DefaultEstateID.String() + "/merchants"

	resp := api.Post(merchants, map[string]any{"name": "Extra Merchant"})
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Len(t, decode[[]domain.Merchant](t, api.Get(merchants)), memory.DefaultMerchantCount+1)

	resp = api.Post("/admin/reset")
	require.Equal(t, http.StatusNoContent, resp.Code)
	assert.Len(t, decode[[]domain.Merchant](t, api.Get(merchants)), memory.DefaultMerchantCount)
}
