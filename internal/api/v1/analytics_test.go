package v1_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/gosuda/estatehub/internal/api/v1"
	"github.com/gosuda/estatehub/internal/domain"
	"github.com/gosuda/estatehub/internal/router"
	"github.com/gosuda/estatehub/internal/store/memory"
)

// ---------------------------------------------------------------------------
// TestSalesViews
// ---------------------------------------------------------------------------

func TestSalesViews(t *testing.T) {
	t.Parallel()

	t.Run("comparison_dates", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get(estatePath("/analytics/comparison-dates"))

		require.Equal(t, http.StatusOK, resp.Code)
		dates := decode[[]domain.ComparisonDate](t, resp)
		require.NotEmpty(t, dates)
		assert.Equal(t, "Yesterday", dates[0].Description)
	})

	t.Run("todays_sales_is_deterministic", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		path := estatePath("/analytics/todays-sales?comparison_date=2025-02-07")

		first := api.Get(path)
		second := api.Get(path)
		require.Equal(t, http.StatusOK, first.Code)
		assert.JSONEq(t, first.Body.String(), second.Body.String())
	})

	t.Run("todays_sales_merchant_filter", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		all := decode[domain.TodaysSales](t, api.Get(estatePath("/analytics/todays-sales")))

		var sum int
		for _, id := range []uuid.UUID{memory.Merchant1ID, memory.Merchant2ID, memory.Merchant3ID} {
			resp := api.Get(estatePath("/analytics/todays-sales?merchant_id=" + id.String()))
			require.Equal(t, http.StatusOK, resp.Code)
			sum += decode[domain.TodaysSales](t, resp).TodaysSalesCount
		}
		assert.Equal(t, all.TodaysSalesCount, sum)
	})

	t.Run("todays_settlement", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		all := decode[domain.TodaysSettlement](t, api.Get(estatePath("/analytics/todays-settlement")))

		var sum int
		for _, id := range []uuid.UUID{memory.SafaricomOperatorID, memory.VoucherOperatorID} {
			resp := api.Get(estatePath("/analytics/todays-settlement?operator_id=" + id.String()))
			require.Equal(t, http.StatusOK, resp.Code)
			part := decode[domain.TodaysSettlement](t, resp)
			assert.Positive(t, part.TodaysSettlementCount)
			sum += part.TodaysSettlementCount
		}
		assert.Equal(t, all.TodaysSettlementCount, sum)
	})

	t.Run("sales_by_hour", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get(estatePath("/analytics/sales-by-hour"))

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Len(t, decode[[]domain.HourlySales](t, resp), 24)
	})

	t.Run("merchant_kpi", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get(estatePath("/analytics/merchant-kpi"))
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("bad_query_values", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		for _, q := range []string{
			"/analytics/todays-sales?comparison_date=14-02-2025",
			"/analytics/todays-sales?merchant_id=nope",
			"/analytics/todays-settlement?operator_id=nope",
			"/analytics/sales-by-hour?comparison_date=yesterday",
		} {
			assert.Equal(t, http.StatusBadRequest, api.Get(estatePath(q)).Code, q)
		}
	})
}

// ---------------------------------------------------------------------------
// TestTopBottom
// ---------------------------------------------------------------------------

func TestTopBottom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entity string
		query  string
		want   int
	}{
		{entity: "merchants", query: "?which=top&count=2", want: 2},
		{entity: "merchants", query: "?which=bottom", want: memory.DefaultMerchantCount},
		{entity: "operators", query: "", want: memory.DefaultOperatorCount},
		{entity: "products", query: "?count=1", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.entity+tt.query, func(t *testing.T) {
			t.Parallel()

			api, _ := newTestAPI(t)
			resp := api.Get(estatePath("/analytics/top-bottom/" + tt.entity + tt.query))

			require.Equal(t, http.StatusOK, resp.Code)
			assert.Len(t, decode[[]domain.TopBottomData](t, resp), tt.want)
		})
	}

	t.Run("bottom_is_ascending", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		rows := decode[[]domain.TopBottomData](t, api.Get(estatePath("/analytics/top-bottom/merchants?which=bottom")))
		for i := 1; i < len(rows); i++ {
			assert.LessOrEqual(t, rows[i-1].SalesValue, rows[i].SalesValue)
		}
	})

	t.Run("unknown_which", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get(estatePath("/analytics/top-bottom/merchants?which=middle"))
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// TestRangeViews
// ---------------------------------------------------------------------------

func TestRangeViews(t *testing.T) {
	t.Parallel()

	const january = "?start_date=2025-01-01&end_date=2025-01-31"

	t.Run("product_performance", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get(estatePath("/analytics/product-performance" + january))

		require.Equal(t, http.StatusOK, resp.Code)
		perf := decode[domain.ProductPerformance](t, resp)
		assert.Len(t, perf.Products, memory.SafaricomProductCount+memory.VoucherProductCount)

		var total domain.Percent
		for _, p := range perf.Products {
			total += p.PercentageOfTransactions
		}
		assert.Equal(t, domain.PercentWhole, total)
	})

	t.Run("settlement_summary_status_filter", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get(estatePath("/analytics/settlement-summary" + january + "&status=" + domain.StatusSettled))

		require.Equal(t, http.StatusOK, resp.Code)
		for _, row := range decode[[]domain.SettlementSummaryRow](t, resp) {
			assert.Equal(t, domain.StatusSettled, row.Status)
		}
	})

	t.Run("settlement_history_merchant_filter", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get(estatePath("/analytics/settlement-history" + january + "&merchant_id=" + memory.Merchant2ID.String()))

		require.Equal(t, http.StatusOK, resp.Code)
		rows := decode[[]domain.SettlementHistoryRow](t, resp)
		require.NotEmpty(t, rows)
		for _, row := range rows {
			assert.Equal(t, memory.Merchant2ID, row.MerchantID)
		}
	})

	t.Run("transactions_filtered_by_list", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		q := january + "&merchant_id=" + memory.Merchant1ID.String() + "," + memory.Merchant3ID.String()
		resp := api.Get(estatePath("/analytics/transactions" + q))

		require.Equal(t, http.StatusOK, resp.Code)
		report := decode[domain.TransactionDetailReport](t, resp)
		require.NotEmpty(t, report.Transactions)
		for _, tx := range report.Transactions {
			assert.Contains(t, []uuid.UUID{memory.Merchant1ID, memory.Merchant3ID}, tx.MerchantID)
		}
		assert.Equal(t, len(report.Transactions), report.Summary.TransactionCount)
	})

	t.Run("inverted_range", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get(estatePath("/analytics/product-performance?start_date=2025-02-01&end_date=2025-01-01"))

		require.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "end_date is before start_date", errorDetail(t, resp))
	})

	t.Run("overlong_range", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		for _, view := range []string{"product-performance", "settlement-summary", "settlement-history", "transactions"} {
			resp := api.Get(estatePath("/analytics/" + view + "?start_date=2023-01-01&end_date=2024-12-31"))
			require.Equal(t, http.StatusBadRequest, resp.Code, view)
			assert.Contains(t, errorDetail(t, resp), "731 days", view)
		}
	})

	t.Run("bad_ids_in_list", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t)
		resp := api.Get(estatePath("/analytics/transactions" + january + "&product_id=nope"))
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// TestErrorMapping
// ---------------------------------------------------------------------------

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name   string
		result any
		err    error
		want   int
	}{
		{name: "not_found", err: domain.NewNotFound(domain.KindMerchant, id), want: http.StatusNotFound},
		{name: "invalid", err: domain.Invalid("bad"), want: http.StatusBadRequest},
		{name: "conflict", err: domain.NewConflict(domain.KindMerchant, id), want: http.StatusConflict},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrong_result_type", result: "not a merchant", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got router.Request
			_, api := humatest.New(t)
			v1.RegisterMerchantRoutes(api, &mockDispatcher{
				dispatchFunc: func(_ context.Context, req router.Request) (any, error) {
					got = req
					return tt.result, tt.err
				},
			})

			resp := api.Get("/estates/" + memory.DefaultEstateID.String() + "/merchants/" + id.String())
			assert.Equal(t, tt.want, resp.Code)
			assert.Equal(t, router.GetMerchant{EstateID: memory.DefaultEstateID, MerchantID: id}, got)
		})
	}
}
