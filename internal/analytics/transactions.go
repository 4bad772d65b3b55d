package analytics

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
)

// TransactionFilter narrows the transaction detail report. Empty lists match
// everything.
type TransactionFilter struct {
	MerchantIDs []uuid.UUID
	OperatorIDs []uuid.UUID
	ProductIDs  []uuid.UUID
}

func (f TransactionFilter) match(t domain.TransactionDetail) bool {
	return matchAny(f.MerchantIDs, t.MerchantID) &&
		matchAny(f.OperatorIDs, t.OperatorID) &&
		matchAny(f.ProductIDs, t.ProductID)
}

func matchAny(ids []uuid.UUID, id uuid.UUID) bool {
	return len(ids) == 0 || slices.Contains(ids, id)
}

// feeFor applies a product's merchant fees to a sale value.
func feeFor(p domain.Product, value domain.Money) domain.Money {
	var fee domain.Money
	for _, f := range p.TransactionFees {
		if f.FeeType != domain.FeeTypeMerchant {
			continue
		}
		switch f.CalculationType {
		case domain.CalculationPercentage:
			fee += domain.Money(math.Round(float64(value) * f.Value / 100))
		default:
			fee += domain.MoneyFromFloat(f.Value)
		}
	}
	return fee
}

// TransactionDetail lists individual sales in the range with a summary of the
// filtered set.
func (g *Generator) TransactionDetail(estateID uuid.UUID, span DateRange, filter TransactionFilter) domain.TransactionDetailReport {
	r := newRand(rangeSeed(span.Start, span.End))
	merchants := g.src.GetMerchants(estateID)
	refs := g.products(estateID)

	report := domain.TransactionDetailReport{Transactions: []domain.TransactionDetail{}}
	if len(refs) == 0 {
		return report
	}

	var all []domain.TransactionDetail
	for _, day := range span.days() {
		for i, m := range merchants {
			for range between(r, 1, 5) {
				all = append(all, newTransaction(r, day, m, i+1, refs))
			}
		}
	}

	for _, t := range all {
		if !filter.match(t) {
			continue
		}
		report.Transactions = append(report.Transactions, t)
		report.Summary.TransactionCount++
		report.Summary.TotalValue += t.Value
		report.Summary.TotalFees += t.Fee
		report.Summary.NetValue += t.NetAmount
	}

	return report
}

// newTransaction draws one sale for m, the merchantSeq'th merchant of the
// estate. Successful sales point at the weekly settlement run that pays them.
func newTransaction(r *rand.Rand, day time.Time, m domain.Merchant, merchantSeq int, refs []productRef) domain.TransactionDetail {
	ref := refs[r.IntN(len(refs))]
	id := newID(r)
	at := day.Add(time.Duration(r.IntN(24*60*60)) * time.Second)
	value := productValue(r, ref.product)

	status := domain.StatusSuccessful
	if r.IntN(10) == 0 {
		status = domain.StatusFailed
	}

	t := domain.TransactionDetail{
		TransactionID: id,
		DateTime:      at,
		MerchantID:    m.ID,
		MerchantName:  m.Name,
		OperatorID:    ref.operator.ID,
		OperatorName:  ref.operator.Name,
		ProductID:     ref.product.ID,
		ProductName:   ref.product.Name,
		Type:          "Sale",
		Status:        status,
		Value:         value,
	}
	if status == domain.StatusSuccessful {
		t.Fee = feeFor(ref.product, value)
		t.NetAmount = value - t.Fee
		t.SettlementReference = settlementReference(settlementDay(day), merchantSeq)
	}
	return t
}
