package domain

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Settlement schedule labels.
const (
	SettlementImmediate = "Immediate"
	SettlementWeekly    = "Weekly"
	SettlementMonthly   = "Monthly"
)

// ValidSettlementSchedule reports whether s is a known schedule label.
func ValidSettlementSchedule(s string) bool {
	switch s {
	case SettlementImmediate, SettlementWeekly, SettlementMonthly:
		return true
	default:
		return false
	}
}

type Merchant struct {
	ID                 uuid.UUID
	EstateID           uuid.UUID
	Name               string
	Reference          string
	Balance            Money
	AvailableBalance   Money
	SettlementSchedule string

	AddressLine1 string
	Town         string
	Region       string
	PostalCode   string
	Country      string

	ContactName  string
	ContactEmail string
	ContactPhone string

	Operators []MerchantOperator
	Contracts []MerchantContract
	Devices   map[uuid.UUID]string // device id -> device identifier
	Deposits  []MerchantDeposit

	CreatedAt time.Time
}

// MerchantOperator is an operator assignment on a merchant.
type MerchantOperator struct {
	OperatorID     uuid.UUID
	Name           string
	MerchantNumber string
	TerminalNumber string
	IsDeleted      bool
}

// MerchantContract is a contract assignment on a merchant.
type MerchantContract struct {
	ContractID   uuid.UUID
	Description  string
	OperatorName string
}

type MerchantDeposit struct {
	ID        uuid.UUID
	Amount    Money
	Date      time.Time
	Reference string
}

// RecentMerchant is the summary shape used by the recent-merchants listing.
type RecentMerchant struct {
	ID        uuid.UUID
	Name      string
	Reference string
	CreatedAt time.Time
}

// Clone returns a deep copy of m.
func (m Merchant) Clone() Merchant {
	c := m
	c.Operators = slices.Clone(m.Operators)
	c.Contracts = slices.Clone(m.Contracts)
	c.Deposits = slices.Clone(m.Deposits)
	c.Devices = maps.Clone(m.Devices)
	return c
}

// Summary projects m into its recent-merchant shape.
func (m Merchant) Summary() RecentMerchant {
	return RecentMerchant{
		ID:        m.ID,
		Name:      m.Name,
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
	}
}

// ActiveOperators returns the operator assignments that are not deleted.
func (m Merchant) ActiveOperators() []MerchantOperator {
	out := make([]MerchantOperator, 0, len(m.Operators))
	for _, op := range m.Operators {
		if !op.IsDeleted {
			out = append(out, op)
		}
	}
	return out
}

// HasOperator reports whether the operator is actively assigned to m.
func (m Merchant) HasOperator(operatorID uuid.UUID) bool {
	return slices.ContainsFunc(m.Operators, func(op MerchantOperator) bool {
		return op.OperatorID == operatorID && !op.IsDeleted
	})
}

// HasContract reports whether the contract is assigned to m.
func (m Merchant) HasContract(contractID uuid.UUID) bool {
	return slices.ContainsFunc(m.Contracts, func(c MerchantContract) bool {
		return c.ContractID == contractID
	})
}
