package analytics

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
)

// SalesFilter narrows today's figures. A nil id matches everything.
type SalesFilter struct {
	MerchantID uuid.UUID
	OperatorID uuid.UUID
}

// ComparisonDates lists the dates the dashboard offers for comparison with
// today, most recent first.
func ComparisonDates(today time.Time) []domain.ComparisonDate {
	today = truncateDay(today)

	out := []domain.ComparisonDate{
		{Date: today.AddDate(0, 0, -1), Description: "Yesterday"},
		{Date: today.AddDate(0, 0, -7), Description: "Last Week"},
		{Date: today.AddDate(0, -1, 0), Description: "Last Month"},
	}
	for i := 2; i <= 6; i++ {
		d := today.AddDate(0, 0, -i)
		out = append(out, domain.ComparisonDate{Date: d, Description: d.Format("Mon 02 Jan 2006")})
	}

	slices.SortStableFunc(out, func(a, b domain.ComparisonDate) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// salesCell holds one merchant/operator pair's figures for both days.
type salesCell struct {
	merchantID uuid.UUID
	operatorID uuid.UUID

	todayCount      int
	todayValue      domain.Money
	comparisonCount int
	comparisonValue domain.Money
}

func (g *Generator) salesCells(r *rand.Rand, estateID uuid.UUID) []salesCell {
	merchants := g.src.GetMerchants(estateID)
	operators := g.src.GetOperators(estateID)

	cells := make([]salesCell, 0, len(merchants)*len(operators))
	for _, m := range merchants {
		for _, o := range operators {
			c := salesCell{merchantID: m.ID, operatorID: o.ID}
			c.todayCount = between(r, 5, 40)
			c.todayValue = domain.Money(c.todayCount) * unitsBetween(r, 50, 500)
			c.comparisonCount = between(r, 5, 40)
			c.comparisonValue = domain.Money(c.comparisonCount) * unitsBetween(r, 50, 500)
			cells = append(cells, c)
		}
	}
	return cells
}

func (f SalesFilter) match(merchantID, operatorID uuid.UUID) bool {
	if f.MerchantID != uuid.Nil && f.MerchantID != merchantID {
		return false
	}
	if f.OperatorID != uuid.Nil && f.OperatorID != operatorID {
		return false
	}
	return true
}

// TodaysSales totals today's sales against the comparison date.
func (g *Generator) TodaysSales(estateID uuid.UUID, today, comparison time.Time, filter SalesFilter) domain.TodaysSales {
	r := newRand(rangeSeed(comparison, today))

	var out domain.TodaysSales
	for _, c := range g.salesCells(r, estateID) {
		if !filter.match(c.merchantID, c.operatorID) {
			continue
		}
		out.TodaysSalesCount += c.todayCount
		out.TodaysSalesValue += c.todayValue
		out.ComparisonSalesCount += c.comparisonCount
		out.ComparisonSalesValue += c.comparisonValue
	}
	out.TodaysAverageValue = average(out.TodaysSalesValue, out.TodaysSalesCount)
	out.ComparisonAverageValue = average(out.ComparisonSalesValue, out.ComparisonSalesCount)

	return out
}

// settlementCell holds one merchant/operator pair's settled and pending
// figures for both days.
type settlementCell struct {
	merchantID uuid.UUID
	operatorID uuid.UUID

	settledCount, pendingCount       int
	settled, pending                 domain.Money
	cmpSettledCount, cmpPendingCount int
	cmpSettled, cmpPending           domain.Money
}

func (g *Generator) settlementCells(r *rand.Rand, estateID uuid.UUID) []settlementCell {
	merchants := g.src.GetMerchants(estateID)
	operators := g.src.GetOperators(estateID)

	cells := make([]settlementCell, 0, len(merchants)*len(operators))
	for _, m := range merchants {
		for _, o := range operators {
			c := settlementCell{merchantID: m.ID, operatorID: o.ID}
			c.settledCount = between(r, 1, 25)
			c.settled = domain.Money(c.settledCount) * unitsBetween(r, 100, 1000)
			c.pendingCount = between(r, 0, 10)
			c.pending = domain.Money(c.pendingCount) * unitsBetween(r, 100, 1000)
			c.cmpSettledCount = between(r, 1, 25)
			c.cmpSettled = domain.Money(c.cmpSettledCount) * unitsBetween(r, 100, 1000)
			c.cmpPendingCount = between(r, 0, 10)
			c.cmpPending = domain.Money(c.cmpPendingCount) * unitsBetween(r, 100, 1000)
			cells = append(cells, c)
		}
	}
	return cells
}

// TodaysSettlement splits today's and the comparison date's settlement into
// settled and pending amounts.
func (g *Generator) TodaysSettlement(estateID uuid.UUID, today, comparison time.Time, filter SalesFilter) domain.TodaysSettlement {
	r := newRand(rangeSeed(comparison, today))

	var out domain.TodaysSettlement
	for _, c := range g.settlementCells(r, estateID) {
		if !filter.match(c.merchantID, c.operatorID) {
			continue
		}
		out.TodaysSettlementCount += c.settledCount
		out.TodaysSettlementValue += c.settled
		out.TodaysPendingSettlementCount += c.pendingCount
		out.TodaysPendingSettlementValue += c.pending
		out.ComparisonSettlementCount += c.cmpSettledCount
		out.ComparisonSettlementValue += c.cmpSettled
		out.ComparisonPendingSettlementCount += c.cmpPendingCount
		out.ComparisonPendingSettlementValue += c.cmpPending
	}

	return out
}

// hourWeight shapes the hourly curve: quiet overnight, busiest in trading hours.
func hourWeight(hour int) int {
	switch {
	case hour < 6:
		return 1
	case hour < 10:
		return 3
	case hour < 18:
		return 5
	case hour < 22:
		return 3
	default:
		return 1
	}
}

// SalesByHour returns 24 rows of today's sales against the comparison date.
func (g *Generator) SalesByHour(estateID uuid.UUID, today, comparison time.Time) []domain.HourlySales {
	r := newRand(rangeSeed(comparison, today))
	merchants := len(g.src.GetMerchants(estateID))

	out := make([]domain.HourlySales, 24)
	for hour := range out {
		limit := hourWeight(hour) * merchants * 3
		row := domain.HourlySales{Hour: hour}
		row.TodaysCount = between(r, 0, limit)
		row.TodaysValue = domain.Money(row.TodaysCount) * unitsBetween(r, 50, 300)
		row.ComparisonCount = between(r, 0, limit)
		row.ComparisonValue = domain.Money(row.ComparisonCount) * unitsBetween(r, 50, 300)
		out[hour] = row
	}
	return out
}

// MerchantKPI reports how many merchants have traded recently.
func (g *Generator) MerchantKPI(estateID uuid.UUID) domain.MerchantKPI {
	r := newRand(fixedSeed)
	n := len(g.src.GetMerchants(estateID))

	withSale := between(r, 0, n)
	noSaleToday := between(r, 0, n-withSale)
	noSale7 := between(r, 0, noSaleToday)

	return domain.MerchantKPI{
		MerchantsWithSaleInLastHour:    withSale,
		MerchantsWithNoSaleToday:       noSaleToday,
		MerchantsWithNoSaleInLast7Days: noSale7,
	}
}

// DefaultTopBottomCount is used when a ranking request asks for no rows.
const DefaultTopBottomCount = 5

type named struct {
	id   uuid.UUID
	name string
}

func rank(r *rand.Rand, entities []named, which domain.TopBottom, count int) []domain.TopBottomData {
	rows := make([]domain.TopBottomData, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, domain.TopBottomData{
			ID:         e.id,
			Name:       e.name,
			SalesValue: unitsBetween(r, 1_000, 100_000),
		})
	}

	slices.SortStableFunc(rows, func(a, b domain.TopBottomData) int {
		if which == domain.Bottom {
			return cmp.Compare(a.SalesValue, b.SalesValue)
		}
		return cmp.Compare(b.SalesValue, a.SalesValue)
	})

	if count <= 0 {
		count = DefaultTopBottomCount
	}
	if len(rows) > count {
		rows = rows[:count]
	}
	return rows
}

// TopBottomMerchants ranks merchants by sales value.
func (g *Generator) TopBottomMerchants(estateID uuid.UUID, which domain.TopBottom, count int) []domain.TopBottomData {
	var es []named
	for _, m := range g.src.GetMerchants(estateID) {
		es = append(es, named{id: m.ID, name: m.Name})
	}
	return rank(newRand(fixedSeed), es, which, count)
}

// TopBottomOperators ranks operators by sales value.
func (g *Generator) TopBottomOperators(estateID uuid.UUID, which domain.TopBottom, count int) []domain.TopBottomData {
	var es []named
	for _, o := range g.src.GetOperators(estateID) {
		es = append(es, named{id: o.ID, name: o.Name})
	}
	return rank(newRand(fixedSeed), es, which, count)
}

// TopBottomProducts ranks products by sales value.
func (g *Generator) TopBottomProducts(estateID uuid.UUID, which domain.TopBottom, count int) []domain.TopBottomData {
	var es []named
	for _, p := range g.products(estateID) {
		es = append(es, named{id: p.product.ID, name: p.product.Name})
	}
	return rank(newRand(fixedSeed), es, which, count)
}
