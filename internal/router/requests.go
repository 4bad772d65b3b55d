package router

import (
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
)

// Request is the closed set of queries and commands the router accepts. Only
// types declared in this package implement it.
type Request interface {
	request()
}

type query struct{}

func (query) request() {}

type command struct{}

func (command) request() {}

// ---------------------------------------------------------------------------
// Estate queries
// ---------------------------------------------------------------------------

// GetEstate returns the estate projection. Unknown estates yield a
// placeholder rather than a failure.
type GetEstate struct {
	query
	EstateID uuid.UUID
}

// GetEstates lists every known estate record.
type GetEstates struct {
	query
}

type GetMerchants struct {
	query
	EstateID uuid.UUID
}

type GetMerchant struct {
	query
	EstateID   uuid.UUID
	MerchantID uuid.UUID
}

type GetRecentMerchants struct {
	query
	EstateID uuid.UUID
}

type GetOperators struct {
	query
	EstateID uuid.UUID
}

type GetOperator struct {
	query
	EstateID   uuid.UUID
	OperatorID uuid.UUID
}

type GetContracts struct {
	query
	EstateID uuid.UUID
}

type GetContract struct {
	query
	EstateID   uuid.UUID
	ContractID uuid.UUID
}

type GetMerchantContracts struct {
	query
	EstateID   uuid.UUID
	MerchantID uuid.UUID
}

// GetMerchantOperators returns the merchant's active operator assignments.
type GetMerchantOperators struct {
	query
	EstateID   uuid.UUID
	MerchantID uuid.UUID
}

type GetMerchantDevices struct {
	query
	EstateID   uuid.UUID
	MerchantID uuid.UUID
}

// ---------------------------------------------------------------------------
// Analytics queries
// ---------------------------------------------------------------------------

// GetComparisonDates lists the dates offered for comparison with today.
type GetComparisonDates struct {
	query
	EstateID uuid.UUID
}

type GetTodaysSales struct {
	query
	EstateID       uuid.UUID
	ComparisonDate time.Time
	MerchantID     uuid.UUID
	OperatorID     uuid.UUID
}

type GetTodaysSettlement struct {
	query
	EstateID       uuid.UUID
	ComparisonDate time.Time
	MerchantID     uuid.UUID
	OperatorID     uuid.UUID
}

type GetSalesByHour struct {
	query
	EstateID       uuid.UUID
	ComparisonDate time.Time
}

type GetMerchantKPI struct {
	query
	EstateID uuid.UUID
}

type GetTopBottomProducts struct {
	query
	EstateID uuid.UUID
	Which    domain.TopBottom
	Count    int
}

type GetTopBottomMerchants struct {
	query
	EstateID uuid.UUID
	Which    domain.TopBottom
	Count    int
}

type GetTopBottomOperators struct {
	query
	EstateID uuid.UUID
	Which    domain.TopBottom
	Count    int
}

type GetProductPerformance struct {
	query
	EstateID  uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

type GetSettlementSummary struct {
	query
	EstateID   uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	MerchantID uuid.UUID
	Status     string
}

type GetMerchantSettlementHistory struct {
	query
	EstateID   uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	MerchantID uuid.UUID
}

type GetTransactionDetail struct {
	query
	EstateID    uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	MerchantIDs []uuid.UUID
	OperatorIDs []uuid.UUID
	ProductIDs  []uuid.UUID
}

// ---------------------------------------------------------------------------
// Estate and merchant commands
// ---------------------------------------------------------------------------

// UpsertEstate creates the estate or renames an existing one.
type UpsertEstate struct {
	command
	EstateID  uuid.UUID
	Name      string
	Reference string
}

// AddMerchant creates a merchant. A nil MerchantID mints a new id.
type AddMerchant struct {
	command
	EstateID           uuid.UUID
	MerchantID         uuid.UUID
	Name               string
	Reference          string
	SettlementSchedule string
	Address            Address
	Contact            Contact
}

type Address struct {
	AddressLine1 string
	Town         string
	Region       string
	PostalCode   string
	Country      string
}

type Contact struct {
	Name  string
	Email string
	Phone string
}

type UpdateMerchant struct {
	command
	EstateID           uuid.UUID
	MerchantID         uuid.UUID
	Name               string
	SettlementSchedule string
}

type UpdateMerchantAddress struct {
	command
	EstateID   uuid.UUID
	MerchantID uuid.UUID
	Address    Address
}

type UpdateMerchantContact struct {
	command
	EstateID   uuid.UUID
	MerchantID uuid.UUID
	Contact    Contact
}

type RemoveMerchant struct {
	command
	EstateID   uuid.UUID
	MerchantID uuid.UUID
}

type AssignOperatorToMerchant struct {
	command
	EstateID       uuid.UUID
	MerchantID     uuid.UUID
	OperatorID     uuid.UUID
	MerchantNumber string
	TerminalNumber string
}

// RemoveOperatorFromMerchant soft-deletes the assignment.
type RemoveOperatorFromMerchant struct {
	command
	EstateID   uuid.UUID
	MerchantID uuid.UUID
	OperatorID uuid.UUID
}

type AssignContractToMerchant struct {
	command
	EstateID   uuid.UUID
	MerchantID uuid.UUID
	ContractID uuid.UUID
}

type RemoveContractFromMerchant struct {
	command
	EstateID   uuid.UUID
	MerchantID uuid.UUID
	ContractID uuid.UUID
}

// AddMerchantDevice registers a device. A nil DeviceID mints a new id.
type AddMerchantDevice struct {
	command
	EstateID         uuid.UUID
	MerchantID       uuid.UUID
	DeviceID         uuid.UUID
	DeviceIdentifier string
}

// SwapMerchantDevice replaces the identifier of an existing device.
type SwapMerchantDevice struct {
	command
	EstateID            uuid.UUID
	MerchantID          uuid.UUID
	DeviceID            uuid.UUID
	NewDeviceIdentifier string
}

// MakeMerchantDeposit credits the merchant balance. A zero Date uses the
// router clock.
type MakeMerchantDeposit struct {
	command
	EstateID   uuid.UUID
	MerchantID uuid.UUID
	DepositID  uuid.UUID
	Amount     domain.Money
	Date       time.Time
	Reference  string
}

// ---------------------------------------------------------------------------
// Operator and contract commands
// ---------------------------------------------------------------------------

type CreateOperator struct {
	command
	EstateID                    uuid.UUID
	OperatorID                  uuid.UUID
	Name                        string
	RequireCustomMerchantNumber bool
	RequireCustomTerminalNumber bool
}

type UpdateOperator struct {
	command
	EstateID                    uuid.UUID
	OperatorID                  uuid.UUID
	Name                        string
	RequireCustomMerchantNumber bool
	RequireCustomTerminalNumber bool
}

type RemoveOperator struct {
	command
	EstateID   uuid.UUID
	OperatorID uuid.UUID
}

type CreateContract struct {
	command
	EstateID    uuid.UUID
	ContractID  uuid.UUID
	OperatorID  uuid.UUID
	Description string
}

type RemoveContract struct {
	command
	EstateID   uuid.UUID
	ContractID uuid.UUID
}

// AddProductToContract adds a product. Value is a decimal amount or
// domain.VariableValue; empty means variable.
type AddProductToContract struct {
	command
	EstateID    uuid.UUID
	ContractID  uuid.UUID
	ProductID   uuid.UUID
	Name        string
	DisplayText string
	Value       string
}

type AddTransactionFeeToProduct struct {
	command
	EstateID        uuid.UUID
	ContractID      uuid.UUID
	ProductID       uuid.UUID
	FeeID           uuid.UUID
	Description     string
	Value           float64
	CalculationType domain.CalculationType
	FeeType         domain.FeeType
}

type RemoveTransactionFeeFromProduct struct {
	command
	EstateID   uuid.UUID
	ContractID uuid.UUID
	ProductID  uuid.UUID
	FeeID      uuid.UUID
}

// ResetStore discards all state and reloads the default fixture.
type ResetStore struct {
	command
}
