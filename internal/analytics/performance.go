package analytics

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
)

// ProductPerformance reports per-product transaction counts and values over
// the range, with each product's share of all transactions.
func (g *Generator) ProductPerformance(estateID uuid.UUID, span DateRange) domain.ProductPerformance {
	r := newRand(rangeSeed(span.Start, span.End))
	days := len(span.days())

	refs := g.products(estateID)
	out := domain.ProductPerformance{
		Products: make([]domain.ProductPerformanceDetail, 0, len(refs)),
	}
	if days == 0 {
		return out
	}

	counts := make([]int, 0, len(refs))
	for _, ref := range refs {
		count := between(r, 10, 500) * days
		value := productValue(r, ref.product) * domain.Money(count)

		out.Products = append(out.Products, domain.ProductPerformanceDetail{
			ProductID:           ref.product.ID,
			ProductName:         ref.product.Name,
			ContractID:          ref.contract.ID,
			ContractDescription: ref.contract.Description,
			TransactionCount:    count,
			TransactionValue:    value,
			AverageValue:        average(value, count),
		})
		counts = append(counts, count)

		out.Summary.TotalCount += count
		out.Summary.TotalValue += value
	}

	for i, p := range shares(counts) {
		out.Products[i].PercentageOfTransactions = p
	}
	out.Summary.AverageValue = average(out.Summary.TotalValue, out.Summary.TotalCount)

	return out
}

// productValue is the face value of a fixed product, or a drawn amount for a
// variable one. The draw happens for every product so the sequence does not
// depend on product values.
func productValue(r *rand.Rand, p domain.Product) domain.Money {
	drawn := unitsBetween(r, 20, 1000)
	if p.IsVariable() {
		return drawn
	}
	v, err := domain.ParseMoney(p.Value)
	if err != nil {
		return drawn
	}
	return v
}
