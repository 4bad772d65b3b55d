package analytics_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/estatehub/internal/analytics"
	"github.com/gosuda/estatehub/internal/domain"
	"github.com/gosuda/estatehub/internal/store/memory"
)

var (
	january = analytics.DateRange{ //nolint:gochecknoglobals // shared test range
		Start: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
	today      = time.Date(2025, time.February, 14, 10, 30, 0, 0, time.UTC) //nolint:gochecknoglobals // fixed clock
	comparison = today.AddDate(0, 0, -7)                                    //nolint:gochecknoglobals // fixed clock
)

func newGenerator(t *testing.T) *analytics.Generator {
	t.Helper()
	return analytics.New(memory.New())
}

// ---------------------------------------------------------------------------
// Product performance
// ---------------------------------------------------------------------------

func TestProductPerformance_Deterministic(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	a := g.ProductPerformance(memory.DefaultEstateID, january)
	b := g.ProductPerformance(memory.DefaultEstateID, january)

	assert.Equal(t, a, b)

	// A fresh store with the same contents gives the same answer.
	c := newGenerator(t).ProductPerformance(memory.DefaultEstateID, january)
	assert.Equal(t, a, c)
}

func TestProductPerformance_PercentagesSumToHundred(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	ranges := []analytics.DateRange{
		january,
		{Start: january.Start, End: january.Start},
		{Start: time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), End: time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, span := range ranges {
		pp := g.ProductPerformance(memory.DefaultEstateID, span)
		require.Len(t, pp.Products, memory.SafaricomProductCount+memory.VoucherProductCount)

		var total domain.Percent
		var count int
		var value domain.Money
		for _, p := range pp.Products {
			assert.GreaterOrEqual(t, p.PercentageOfTransactions, domain.Percent(0))
			assert.Positive(t, p.TransactionCount)
			total += p.PercentageOfTransactions
			count += p.TransactionCount
			value += p.TransactionValue
		}
		assert.Equal(t, domain.PercentWhole, total)
		assert.Equal(t, count, pp.Summary.TotalCount)
		assert.Equal(t, value, pp.Summary.TotalValue)
	}
}

func TestProductPerformance_FixedProductsUseFaceValue(t *testing.T) {
	t.Parallel()

	pp := newGenerator(t).ProductPerformance(memory.DefaultEstateID, january)
	for _, p := range pp.Products {
		if p.ProductName == "100 KES Topup" {
			assert.Equal(t, domain.Money(10000), p.AverageValue)
			assert.Equal(t, domain.Money(10000)*domain.Money(p.TransactionCount), p.TransactionValue)
		}
	}
}

func TestProductPerformance_RangeChangesOutput(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	a := g.ProductPerformance(memory.DefaultEstateID, january)
	b := g.ProductPerformance(memory.DefaultEstateID, analytics.DateRange{Start: january.Start, End: january.End.AddDate(0, 0, 1)})

	assert.NotEqual(t, a, b)
}

func TestProductPerformance_UnknownEstateOrEmptyRange(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)

	pp := g.ProductPerformance(uuid.New(), january)
	assert.Empty(t, pp.Products)
	assert.Zero(t, pp.Summary.TotalCount)

	inverted := g.ProductPerformance(memory.DefaultEstateID, analytics.DateRange{Start: january.End, End: january.Start})
	assert.Empty(t, inverted.Products)
}

// ---------------------------------------------------------------------------
// Settlement
// ---------------------------------------------------------------------------

func TestSettlementSummary_FilterIsProjection(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	all := g.SettlementSummary(memory.DefaultEstateID, january, analytics.SettlementFilter{})
	require.Len(t, all, 31*memory.DefaultMerchantCount)

	for _, merchantID := range []uuid.UUID{memory.Merchant1ID, memory.Merchant2ID, memory.Merchant3ID} {
		var want []domain.SettlementSummaryRow
		for _, row := range all {
			if row.MerchantID == merchantID {
				want = append(want, row)
			}
		}

		got := g.SettlementSummary(memory.DefaultEstateID, january, analytics.SettlementFilter{MerchantID: merchantID})
		assert.Equal(t, want, got)
	}
}

func TestSettlementSummary_StatusFilter(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	all := g.SettlementSummary(memory.DefaultEstateID, january, analytics.SettlementFilter{})
	pending := g.SettlementSummary(memory.DefaultEstateID, january, analytics.SettlementFilter{Status: domain.StatusPending})
	settled := g.SettlementSummary(memory.DefaultEstateID, january, analytics.SettlementFilter{Status: domain.StatusSettled})

	assert.Len(t, all, len(pending)+len(settled))
	for _, row := range pending {
		assert.Equal(t, domain.StatusPending, row.Status)
	}
	for _, row := range all {
		assert.Equal(t, row.GrossValue-row.FeeValue, row.NetValue)
	}
}

func TestMerchantSettlementHistory_WeeklyRows(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	rows := g.MerchantSettlementHistory(memory.DefaultEstateID, january, uuid.Nil)

	// January 2025 has four Mondays: 6, 13, 20, 27.
	require.Len(t, rows, 4*memory.DefaultMerchantCount)

	seen := make(map[string]bool)
	for i, row := range rows {
		assert.Equal(t, time.Monday, row.SettlementDate.Weekday())
		assert.False(t, seen[row.SettlementReference], "duplicate reference %s", row.SettlementReference)
		seen[row.SettlementReference] = true
		if i > 0 {
			assert.Greater(t, row.SettlementReference, rows[i-1].SettlementReference)
		}
	}
	assert.Equal(t, "STL-20250106-0001", rows[0].SettlementReference)
}

func TestMerchantSettlementHistory_FilterIsProjection(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	all := g.MerchantSettlementHistory(memory.DefaultEstateID, january, uuid.Nil)
	only := g.MerchantSettlementHistory(memory.DefaultEstateID, january, memory.Merchant2ID)

	var want []domain.SettlementHistoryRow
	for _, row := range all {
		if row.MerchantID == memory.Merchant2ID {
			want = append(want, row)
		}
	}
	assert.Equal(t, want, only)
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

func TestTransactionDetail_FilterIsProjection(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	week := analytics.DateRange{Start: january.Start, End: january.Start.AddDate(0, 0, 6)}

	all := g.TransactionDetail(memory.DefaultEstateID, week, analytics.TransactionFilter{})
	require.NotEmpty(t, all.Transactions)
	assert.Equal(t, all, g.TransactionDetail(memory.DefaultEstateID, week, analytics.TransactionFilter{}))

	filter := analytics.TransactionFilter{
		MerchantIDs: []uuid.UUID{memory.Merchant1ID},
		OperatorIDs: []uuid.UUID{memory.SafaricomOperatorID},
	}
	got := g.TransactionDetail(memory.DefaultEstateID, week, filter)

	var want []domain.TransactionDetail
	var total domain.Money
	for _, tx := range all.Transactions {
		if tx.MerchantID == memory.Merchant1ID && tx.OperatorID == memory.SafaricomOperatorID {
			want = append(want, tx)
			total += tx.Value
		}
	}
	if want == nil {
		want = []domain.TransactionDetail{}
	}
	assert.Equal(t, want, got.Transactions)
	assert.Equal(t, len(want), got.Summary.TransactionCount)
	assert.Equal(t, total, got.Summary.TotalValue)
}

func TestTransactionDetail_FailedSalesCarryNoFee(t *testing.T) {
	t.Parallel()

	report := newGenerator(t).TransactionDetail(memory.DefaultEstateID, january, analytics.TransactionFilter{})
	ids := make(map[uuid.UUID]bool)
	for _, tx := range report.Transactions {
		assert.False(t, ids[tx.TransactionID], "transaction ids are unique")
		ids[tx.TransactionID] = true

		if tx.Status == domain.StatusFailed {
			assert.Zero(t, tx.Fee)
			assert.Empty(t, tx.SettlementReference)
		} else {
			assert.Equal(t, tx.Value-tx.Fee, tx.NetAmount)
		}
	}
}

func TestTransactionDetail_ReferencesMatchSettlementHistory(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	report := g.TransactionDetail(memory.DefaultEstateID, january, analytics.TransactionFilter{})
	require.NotEmpty(t, report.Transactions)

	// January sales settle on Mondays up to 3 February.
	covering := analytics.DateRange{Start: january.Start, End: january.End.AddDate(0, 0, 7)}
	owner := make(map[string]uuid.UUID)
	for _, row := range g.MerchantSettlementHistory(memory.DefaultEstateID, covering, uuid.Nil) {
		owner[row.SettlementReference] = row.MerchantID
	}

	for _, tx := range report.Transactions {
		if tx.Status != domain.StatusSuccessful {
			continue
		}
		merchantID, ok := owner[tx.SettlementReference]
		require.True(t, ok, "reference %s has no settlement row", tx.SettlementReference)
		assert.Equal(t, tx.MerchantID, merchantID, tx.SettlementReference)
	}
}

// ---------------------------------------------------------------------------
// Today's figures and rankings
// ---------------------------------------------------------------------------

func TestTodaysSales_FiltersPartitionTotal(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	all := g.TodaysSales(memory.DefaultEstateID, today, comparison, analytics.SalesFilter{})
	assert.Equal(t, all, g.TodaysSales(memory.DefaultEstateID, today, comparison, analytics.SalesFilter{}))

	var count int
	var value domain.Money
	for _, id := range []uuid.UUID{memory.Merchant1ID, memory.Merchant2ID, memory.Merchant3ID} {
		part := g.TodaysSales(memory.DefaultEstateID, today, comparison, analytics.SalesFilter{MerchantID: id})
		count += part.TodaysSalesCount
		value += part.TodaysSalesValue
	}
	assert.Equal(t, all.TodaysSalesCount, count)
	assert.Equal(t, all.TodaysSalesValue, value)
	assert.Positive(t, all.TodaysAverageValue)
}

func TestTodaysSettlement_FiltersPartitionTotal(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	all := g.TodaysSettlement(memory.DefaultEstateID, today, comparison, analytics.SalesFilter{})
	require.Positive(t, all.TodaysSettlementValue)
	assert.Equal(t, all, g.TodaysSettlement(memory.DefaultEstateID, today, comparison, analytics.SalesFilter{}))

	partitions := map[string][]analytics.SalesFilter{
		"merchant": {
			{MerchantID: memory.Merchant1ID},
			{MerchantID: memory.Merchant2ID},
			{MerchantID: memory.Merchant3ID},
		},
		"operator": {
			{OperatorID: memory.SafaricomOperatorID},
			{OperatorID: memory.VoucherOperatorID},
		},
	}

	for name, filters := range partitions {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var sum domain.TodaysSettlement
			for _, f := range filters {
				part := g.TodaysSettlement(memory.DefaultEstateID, today, comparison, f)
				assert.Positive(t, part.TodaysSettlementCount)
				sum.TodaysSettlementCount += part.TodaysSettlementCount
				sum.TodaysSettlementValue += part.TodaysSettlementValue
				sum.TodaysPendingSettlementCount += part.TodaysPendingSettlementCount
				sum.TodaysPendingSettlementValue += part.TodaysPendingSettlementValue
				sum.ComparisonSettlementCount += part.ComparisonSettlementCount
				sum.ComparisonSettlementValue += part.ComparisonSettlementValue
				sum.ComparisonPendingSettlementCount += part.ComparisonPendingSettlementCount
				sum.ComparisonPendingSettlementValue += part.ComparisonPendingSettlementValue
			}
			assert.Equal(t, all, sum)
		})
	}

	t.Run("merchant and operator", func(t *testing.T) {
		t.Parallel()

		both := g.TodaysSettlement(memory.DefaultEstateID, today, comparison, analytics.SalesFilter{
			MerchantID: memory.Merchant1ID,
			OperatorID: memory.SafaricomOperatorID,
		})
		assert.Positive(t, both.TodaysSettlementCount)
		assert.Less(t, both.TodaysSettlementCount, all.TodaysSettlementCount)
	})
}

func TestSalesByHour(t *testing.T) {
	t.Parallel()

	rows := newGenerator(t).SalesByHour(memory.DefaultEstateID, today, comparison)
	require.Len(t, rows, 24)
	for i, row := range rows {
		assert.Equal(t, i, row.Hour)
		assert.GreaterOrEqual(t, row.TodaysCount, 0)
	}
}

func TestMerchantKPI_Bounded(t *testing.T) {
	t.Parallel()

	kpi := newGenerator(t).MerchantKPI(memory.DefaultEstateID)

	assert.LessOrEqual(t, kpi.MerchantsWithSaleInLastHour+kpi.MerchantsWithNoSaleToday, memory.DefaultMerchantCount)
	assert.LessOrEqual(t, kpi.MerchantsWithNoSaleInLast7Days, kpi.MerchantsWithNoSaleToday)
}

func TestTopBottom(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)

	top := g.TopBottomProducts(memory.DefaultEstateID, domain.Top, 3)
	require.Len(t, top, 3)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].SalesValue, top[i].SalesValue)
	}

	bottom := g.TopBottomMerchants(memory.DefaultEstateID, domain.Bottom, 10)
	require.Len(t, bottom, memory.DefaultMerchantCount)
	for i := 1; i < len(bottom); i++ {
		assert.LessOrEqual(t, bottom[i-1].SalesValue, bottom[i].SalesValue)
	}

	ops := g.TopBottomOperators(memory.DefaultEstateID, domain.Top, 0)
	assert.Len(t, ops, memory.DefaultOperatorCount)
	assert.Equal(t, ops, g.TopBottomOperators(memory.DefaultEstateID, domain.Top, 0))
}

func TestComparisonDates(t *testing.T) {
	t.Parallel()

	dates := analytics.ComparisonDates(today)
	require.NotEmpty(t, dates)

	assert.Equal(t, "Yesterday", dates[0].Description)
	assert.Equal(t, time.Date(2025, time.February, 13, 0, 0, 0, 0, time.UTC), dates[0].Date)
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i].Date.Before(dates[i-1].Date))
	}

	var descriptions []string
	for _, d := range dates {
		descriptions = append(descriptions, d.Description)
	}
	assert.Contains(t, descriptions, "Last Week")
	assert.Contains(t, descriptions, "Last Month")
}

// ---------------------------------------------------------------------------
// Date ranges
// ---------------------------------------------------------------------------

func TestDateRange_Validate(t *testing.T) {
	t.Parallel()

	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		end     time.Time
		wantLen int
		wantErr bool
	}{
		{name: "single day", end: start, wantLen: 1},
		{name: "longest allowed", end: start.AddDate(0, 0, analytics.MaxRangeDays-1), wantLen: analytics.MaxRangeDays},
		{name: "one day too long", end: start.AddDate(0, 0, analytics.MaxRangeDays), wantLen: analytics.MaxRangeDays + 1, wantErr: true},
		{name: "two years", end: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), wantLen: 731, wantErr: true},
		{name: "inverted", end: start.AddDate(0, 0, -1), wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			span := analytics.DateRange{Start: start, End: tt.end}
			assert.Equal(t, tt.wantLen, span.Len())

			err := span.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalid)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRangeViews_OverlongRangeYieldsNothing(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)
	span := analytics.DateRange{
		Start: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.Empty(t, g.MerchantSettlementHistory(memory.DefaultEstateID, span, memory.Merchant1ID))
	assert.Empty(t, g.SettlementSummary(memory.DefaultEstateID, span, analytics.SettlementFilter{}))
	assert.Empty(t, g.TransactionDetail(memory.DefaultEstateID, span, analytics.TransactionFilter{}).Transactions)
}
