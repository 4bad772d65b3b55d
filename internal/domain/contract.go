package domain

import (
	"slices"

	"github.com/google/uuid"
)

// VariableValue marks a product whose value is chosen at sale time.
const VariableValue = "Variable"

// CalculationType says how a transaction fee is computed.
type CalculationType int

const (
	CalculationFixed      CalculationType = 0
	CalculationPercentage CalculationType = 1
)

func (c CalculationType) String() string {
	switch c {
	case CalculationFixed:
		return "Fixed"
	case CalculationPercentage:
		return "Percentage"
	default:
		return "Unknown"
	}
}

// FeeType says who a transaction fee is charged to.
type FeeType int

const (
	FeeTypeMerchant        FeeType = 0
	FeeTypeServiceProvider FeeType = 1
)

func (f FeeType) String() string {
	switch f {
	case FeeTypeMerchant:
		return "Merchant"
	case FeeTypeServiceProvider:
		return "Service Provider"
	default:
		return "Unknown"
	}
}

type Contract struct {
	ID           uuid.UUID
	EstateID     uuid.UUID
	Description  string
	OperatorID   uuid.UUID
	OperatorName string // snapshot taken when the contract was created
	Products     []Product
}

type Product struct {
	ID              uuid.UUID
	Name            string
	DisplayText     string
	Value           string // fixed decimal text or VariableValue
	TransactionFees []TransactionFee
}

type TransactionFee struct {
	ID              uuid.UUID
	Description     string
	Value           float64
	CalculationType CalculationType
	FeeType         FeeType
}

// IsVariable reports whether the product has no fixed value.
func (p Product) IsVariable() bool {
	return p.Value == VariableValue
}

// Clone returns a deep copy of c. A nil product list stays nil.
func (c Contract) Clone() Contract {
	out := c
	if c.Products == nil {
		return out
	}
	out.Products = make([]Product, len(c.Products))
	for i, p := range c.Products {
		out.Products[i] = p.Clone()
	}
	return out
}

// Clone returns a deep copy of p.
func (p Product) Clone() Product {
	out := p
	out.TransactionFees = slices.Clone(p.TransactionFees)
	return out
}

// ProductIndex returns the position of the product in c, or -1.
func (c Contract) ProductIndex(productID uuid.UUID) int {
	return slices.IndexFunc(c.Products, func(p Product) bool { return p.ID == productID })
}

// FeeIndex returns the position of the fee in p, or -1.
func (p Product) FeeIndex(feeID uuid.UUID) int {
	return slices.IndexFunc(p.TransactionFees, func(f TransactionFee) bool { return f.ID == feeID })
}
