package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
)

// SettlementWeekday anchors weekly settlement history rows.
const SettlementWeekday = time.Monday

// SettlementFilter narrows settlement views. Zero values match everything.
type SettlementFilter struct {
	MerchantID uuid.UUID
	Status     string
}

func (f SettlementFilter) match(merchantID uuid.UUID, status string) bool {
	if f.MerchantID != uuid.Nil && f.MerchantID != merchantID {
		return false
	}
	if f.Status != "" && f.Status != status {
		return false
	}
	return true
}

// SettlementSummary returns one row per merchant per day in the range.
func (g *Generator) SettlementSummary(estateID uuid.UUID, span DateRange, filter SettlementFilter) []domain.SettlementSummaryRow {
	r := newRand(rangeSeed(span.Start, span.End))
	merchants := g.src.GetMerchants(estateID)

	var all []domain.SettlementSummaryRow
	for _, day := range span.days() {
		for _, m := range merchants {
			count := between(r, 1, 100)
			gross := domain.Money(count) * unitsBetween(r, 50, 500)
			// Fee rate between 0.5% and 1.5% of gross.
			fee := gross * domain.Money(between(r, 5, 15)) / 1000
			status := domain.StatusSettled
			if r.IntN(10) >= 8 {
				status = domain.StatusPending
			}

			all = append(all, domain.SettlementSummaryRow{
				SettlementDate:   day,
				MerchantID:       m.ID,
				MerchantName:     m.Name,
				Status:           status,
				TransactionCount: count,
				GrossValue:       gross,
				FeeValue:         fee,
				NetValue:         gross - fee,
			})
		}
	}

	out := make([]domain.SettlementSummaryRow, 0, len(all))
	for _, row := range all {
		if filter.match(row.MerchantID, row.Status) {
			out = append(out, row)
		}
	}
	return out
}

// settlementReference identifies one merchant's settlement run on day. seq is
// the merchant's 1-based position in the estate's merchant list.
func settlementReference(day time.Time, seq int) string {
	return fmt.Sprintf("STL-%s-%04d", day.Format("20060102"), seq)
}

// settlementDay is the first SettlementWeekday on or after day, the run a
// sale on day is paid out in.
func settlementDay(day time.Time) time.Time {
	offset := (int(SettlementWeekday) - int(day.Weekday()) + 7) % 7
	return truncateDay(day).AddDate(0, 0, offset)
}

// weeklyAnchors returns every SettlementWeekday inside the range.
func weeklyAnchors(span DateRange) []time.Time {
	var out []time.Time
	for _, d := range span.days() {
		if d.Weekday() == SettlementWeekday {
			out = append(out, d)
		}
	}
	return out
}

// MerchantSettlementHistory returns one settled row per merchant for every
// settlement weekday in the range. A nil merchantID returns all merchants.
func (g *Generator) MerchantSettlementHistory(estateID uuid.UUID, span DateRange, merchantID uuid.UUID) []domain.SettlementHistoryRow {
	r := newRand(rangeSeed(span.Start, span.End))
	merchants := g.src.GetMerchants(estateID)

	var all []domain.SettlementHistoryRow
	for _, day := range weeklyAnchors(span) {
		for i, m := range merchants {
			count := between(r, 20, 700)
			all = append(all, domain.SettlementHistoryRow{
				SettlementDate:      day,
				SettlementReference: settlementReference(day, i+1),
				MerchantID:          m.ID,
				MerchantName:        m.Name,
				TransactionCount:    count,
				NetAmount:           domain.Money(count) * unitsBetween(r, 50, 500),
				Status:              domain.StatusSettled,
			})
		}
	}

	filter := SettlementFilter{MerchantID: merchantID}
	out := make([]domain.SettlementHistoryRow, 0, len(all))
	for _, row := range all {
		if filter.match(row.MerchantID, row.Status) {
			out = append(out, row)
		}
	}
	return out
}
