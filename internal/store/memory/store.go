// Package memory is the in-memory estate store used in place of the remote
// estate backend for demos and tests. All collections are safe for
// concurrent use without external locking.
package memory

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
)

// Store owns every estate and its merchant, operator and contract
// collections. Values are copied on the way in and on the way out.
type Store struct {
	estates   syncMap[domain.EstateRecord]
	merchants tenantMap[domain.Merchant]
	operators tenantMap[domain.Operator]
	contracts tenantMap[domain.Contract]
}

// New returns a store seeded with the default fixture.
func New() *Store {
	s := NewEmpty()
	s.Reset()
	return s
}

// NewEmpty returns a store with no estates.
func NewEmpty() *Store {
	return &Store{}
}

// ---------------------------------------------------------------------------
// Estates
// ---------------------------------------------------------------------------

// GetEstate never reports absence: unknown ids get a placeholder view.
// Known estates have their child lists rebuilt from the current collections.
func (s *Store) GetEstate(estateID uuid.UUID) domain.Estate {
	rec, ok := s.estates.load(estateID)
	if !ok {
		return domain.UnknownEstate(estateID)
	}

	e := domain.Estate{
		ID:        rec.ID,
		Name:      rec.Name,
		Reference: rec.Reference,
		Merchants: []domain.EstateMerchant{},
		Operators: []domain.EstateOperator{},
		Contracts: []domain.EstateContract{},
		Users:     []domain.EstateUser{domain.DefaultUser},
	}
	for _, m := range s.GetMerchants(estateID) {
		e.Merchants = append(e.Merchants, domain.EstateMerchant{ID: m.ID, Name: m.Name, Reference: m.Reference})
	}
	for _, o := range s.GetOperators(estateID) {
		e.Operators = append(e.Operators, domain.EstateOperator{
			ID:                          o.ID,
			Name:                        o.Name,
			RequireCustomMerchantNumber: o.RequireCustomMerchantNumber,
			RequireCustomTerminalNumber: o.RequireCustomTerminalNumber,
		})
	}
	for _, c := range s.GetContracts(estateID) {
		e.Contracts = append(e.Contracts, domain.EstateContract{
			ID:           c.ID,
			Description:  c.Description,
			OperatorID:   c.OperatorID,
			OperatorName: c.OperatorName,
		})
	}

	return e
}

// SetEstate upserts the estate record and makes sure its child collections
// exist without clearing them.
func (s *Store) SetEstate(rec domain.EstateRecord) {
	s.estates.store(rec.ID, rec)
	s.merchants.ensure(rec.ID)
	s.operators.ensure(rec.ID)
	s.contracts.ensure(rec.ID)
}

// HasEstate reports whether the estate has been stored.
func (s *Store) HasEstate(estateID uuid.UUID) bool {
	_, ok := s.estates.load(estateID)
	return ok
}

// Estates lists stored estate records ordered by name.
func (s *Store) Estates() []domain.EstateRecord {
	recs := s.estates.values()
	slices.SortFunc(recs, func(a, b domain.EstateRecord) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return recs
}

// ---------------------------------------------------------------------------
// Merchants
// ---------------------------------------------------------------------------

func (s *Store) GetMerchant(estateID, merchantID uuid.UUID) (domain.Merchant, bool) {
	m, ok := s.merchants.get(estateID, merchantID)
	if !ok {
		return domain.Merchant{}, false
	}
	return m.Clone(), true
}

// GetMerchants lists the estate's merchants ordered by name, then id.
func (s *Store) GetMerchants(estateID uuid.UUID) []domain.Merchant {
	ms := s.merchants.list(estateID)
	out := make([]domain.Merchant, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Clone())
	}
	slices.SortFunc(out, func(a, b domain.Merchant) int {
		return byNameThenID(a.Name, b.Name, a.ID, b.ID)
	})
	return out
}

// AddMerchant stores m under its id. An existing merchant with the same id
// is replaced. m.EstateID is overwritten with estateID so a value can never
// sit under a different estate than the one it claims.
func (s *Store) AddMerchant(estateID uuid.UUID, m domain.Merchant) {
	m.EstateID = estateID
	s.merchants.put(estateID, m.ID, m.Clone())
}

func (s *Store) UpdateMerchant(estateID uuid.UUID, m domain.Merchant) {
	s.AddMerchant(estateID, m)
}

func (s *Store) RemoveMerchant(estateID, merchantID uuid.UUID) {
	s.merchants.remove(estateID, merchantID)
}

// GetRecentMerchants projects the estate's merchants into summaries, newest
// first.
func (s *Store) GetRecentMerchants(estateID uuid.UUID) []domain.RecentMerchant {
	ms := s.GetMerchants(estateID)
	out := make([]domain.RecentMerchant, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Summary())
	}
	slices.SortStableFunc(out, func(a, b domain.RecentMerchant) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

func (s *Store) GetOperator(estateID, operatorID uuid.UUID) (domain.Operator, bool) {
	return s.operators.get(estateID, operatorID)
}

func (s *Store) GetOperators(estateID uuid.UUID) []domain.Operator {
	out := s.operators.list(estateID)
	if out == nil {
		out = []domain.Operator{}
	}
	slices.SortFunc(out, func(a, b domain.Operator) int {
		return byNameThenID(a.Name, b.Name, a.ID, b.ID)
	})
	return out
}

// AddOperator stores o under its id, replacing any existing operator and
// stamping o.EstateID like AddMerchant.
func (s *Store) AddOperator(estateID uuid.UUID, o domain.Operator) {
	o.EstateID = estateID
	s.operators.put(estateID, o.ID, o)
}

func (s *Store) UpdateOperator(estateID uuid.UUID, o domain.Operator) {
	s.AddOperator(estateID, o)
}

func (s *Store) RemoveOperator(estateID, operatorID uuid.UUID) {
	s.operators.remove(estateID, operatorID)
}

// ---------------------------------------------------------------------------
// Contracts
// ---------------------------------------------------------------------------

func (s *Store) GetContract(estateID, contractID uuid.UUID) (domain.Contract, bool) {
	c, ok := s.contracts.get(estateID, contractID)
	if !ok {
		return domain.Contract{}, false
	}
	return c.Clone(), true
}

func (s *Store) GetContracts(estateID uuid.UUID) []domain.Contract {
	cs := s.contracts.list(estateID)
	out := make([]domain.Contract, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Clone())
	}
	slices.SortFunc(out, func(a, b domain.Contract) int {
		return byNameThenID(a.Description, b.Description, a.ID, b.ID)
	})
	return out
}

// AddContract stores c under its id, replacing any existing contract and
// stamping c.EstateID like AddMerchant.
func (s *Store) AddContract(estateID uuid.UUID, c domain.Contract) {
	c.EstateID = estateID
	s.contracts.put(estateID, c.ID, c.Clone())
}

func (s *Store) UpdateContract(estateID uuid.UUID, c domain.Contract) {
	s.AddContract(estateID, c)
}

func (s *Store) RemoveContract(estateID, contractID uuid.UUID) {
	s.contracts.remove(estateID, contractID)
}

// ---------------------------------------------------------------------------
// Reset
// ---------------------------------------------------------------------------

// Reset drops every estate and reseeds the default fixture.
//
// Reset is not atomic. Readers running alongside it may briefly see the
// placeholder for a fixture estate or a partly seeded one, and a write that
// lands between the clear and the reseed is lost.
func (s *Store) Reset() {
	s.estates.clear()
	s.merchants.clear()
	s.operators.clear()
	s.contracts.clear()

	seed(s)
}

func byNameThenID(an, bn string, aid, bid uuid.UUID) int {
	return cmp.Or(cmp.Compare(an, bn), cmp.Compare(aid.String(), bid.String()))
}
