// Package analytics generates reproducible sales, settlement and product
// figures that stand in for a real transaction ledger.
//
// Every call builds its own seeded source. Calls that take a date range seed
// from a hash of both boundaries; the rest use a fixed seed. Identical inputs
// against identical store contents therefore always produce identical output.
// Filters are applied to the fully generated set so they never change which
// values were drawn.
package analytics

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
)

// fixedSeed seeds every generator that has no date range to hash.
const fixedSeed uint64 = 0x5eed_e57a_7e00_0001

// MaxRangeDays is the longest date range, in calendar days, a single call
// will generate.
const MaxRangeDays = 366

// Source is the read side of the estate store the generator draws names and
// ids from.
type Source interface {
	GetMerchants(estateID uuid.UUID) []domain.Merchant
	GetOperators(estateID uuid.UUID) []domain.Operator
	GetContracts(estateID uuid.UUID) []domain.Contract
}

// Generator produces analytics views for an estate. It holds no mutable
// state and is safe for concurrent use.
type Generator struct {
	src Source
}

func New(src Source) *Generator {
	return &Generator{src: src}
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Len is the number of calendar days in r, zero when inverted.
func (r DateRange) Len() int {
	start := truncateDay(r.Start)
	end := truncateDay(r.End)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// Validate rejects ranges longer than MaxRangeDays.
func (r DateRange) Validate() error {
	if n := r.Len(); n > MaxRangeDays {
		return domain.Invalid("date range spans %d days, at most %d are allowed", n, MaxRangeDays)
	}
	return nil
}

// days returns each calendar day in r. Inverted ranges and ranges that fail
// Validate yield nothing rather than a truncated prefix.
func (r DateRange) days() []time.Time {
	n := r.Len()
	if n == 0 || n > MaxRangeDays {
		return nil
	}

	out := make([]time.Time, 0, n)
	for d := truncateDay(r.Start); len(out) < n; d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// rangeSeed hashes both range boundaries at day precision.
func rangeSeed(start, end time.Time) uint64 {
	return xxhash.Sum64String(truncateDay(start).Format(time.DateOnly) + "|" + truncateDay(end).Format(time.DateOnly))
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e37_79b9_7f4a_7c15)) //nolint:gosec // synthetic data, not security sensitive
}

// between returns a uniform int in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// unitsBetween returns a whole-unit amount in [lo, hi] as Money.
func unitsBetween(r *rand.Rand, lo, hi int) domain.Money {
	return domain.Money(between(r, lo, hi)) * 100
}

func average(total domain.Money, count int) domain.Money {
	if count == 0 {
		return 0
	}
	return domain.Money(math.Round(float64(total) / float64(count)))
}

// shares converts counts into percentages of their total. Every entry but the
// last is rounded on its own; the last takes whatever is left so the set sums
// to exactly 100, but never drops below zero.
func shares(counts []int) []domain.Percent {
	out := make([]domain.Percent, len(counts))
	if len(counts) == 0 {
		return out
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	var acc domain.Percent
	for i := range len(counts) - 1 {
		if total > 0 {
			out[i] = domain.Percent(math.Round(float64(counts[i]) * float64(domain.PercentWhole) / float64(total)))
		}
		acc += out[i]
	}
	out[len(out)-1] = max(domain.PercentWhole-acc, 0)

	return out
}

// randReader adapts a seeded source to io.Reader so ids can be drawn from it.
type randReader struct {
	r *rand.Rand
}

func (rr randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(rr.r.Uint32())
	}
	return len(p), nil
}

func newID(r *rand.Rand) uuid.UUID {
	id, err := uuid.NewRandomFromReader(randReader{r: r})
	if err != nil {
		// randReader never fails.
		panic(err)
	}
	return id
}

// productRef pairs a product with the contract and operator it is sold under.
type productRef struct {
	product  domain.Product
	contract domain.Contract
	operator domain.Operator
}

func (g *Generator) products(estateID uuid.UUID) []productRef {
	operators := make(map[uuid.UUID]domain.Operator)
	for _, o := range g.src.GetOperators(estateID) {
		operators[o.ID] = o
	}

	var out []productRef
	for _, c := range g.src.GetContracts(estateID) {
		op, ok := operators[c.OperatorID]
		if !ok {
			op = domain.Operator{ID: c.OperatorID, Name: c.OperatorName}
		}
		for _, p := range c.Products {
			out = append(out, productRef{product: p, contract: c, operator: op})
		}
	}
	return out
}
