package domain

import (
	"github.com/google/uuid"
)

// Placeholder values returned for estates that were never stored.
const (
	UnknownEstateName      = "Unknown Estate"
	UnknownEstateReference = "Unknown"
)

// EstateRecord is the stored part of an estate. Child collections live in
// their own per-estate stores.
type EstateRecord struct {
	ID        uuid.UUID
	Name      string
	Reference string
}

// Estate is the read view of a tenant. The child lists are derived from the
// merchant, operator, contract and user collections at read time.
type Estate struct {
	ID        uuid.UUID
	Name      string
	Reference string
	Merchants []EstateMerchant
	Operators []EstateOperator
	Contracts []EstateContract
	Users     []EstateUser
}

type EstateMerchant struct {
	ID        uuid.UUID
	Name      string
	Reference string
}

type EstateOperator struct {
	ID                          uuid.UUID
	Name                        string
	RequireCustomMerchantNumber bool
	RequireCustomTerminalNumber bool
}

type EstateContract struct {
	ID           uuid.UUID
	Description  string
	OperatorID   uuid.UUID
	OperatorName string
}

type EstateUser struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// UnknownEstate is the placeholder view for an estate id with no record.
func UnknownEstate(id uuid.UUID) Estate {
	return Estate{
		ID:        id,
		Name:      UnknownEstateName,
		Reference: UnknownEstateReference,
		Merchants: []EstateMerchant{},
		Operators: []EstateOperator{},
		Contracts: []EstateContract{},
		Users:     []EstateUser{},
	}
}
