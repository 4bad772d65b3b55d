package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction and settlement status labels used by the analytics views.
const (
	StatusSuccessful = "Successful"
	StatusFailed     = "Failed"
	StatusSettled    = "Settled"
	StatusPending    = "Pending"
)

// ComparisonDate is a selectable date for today-versus comparisons.
type ComparisonDate struct {
	Date        time.Time
	Description string
}

type TodaysSales struct {
	TodaysSalesCount       int
	TodaysSalesValue       Money
	ComparisonSalesCount   int
	ComparisonSalesValue   Money
	TodaysAverageValue     Money
	ComparisonAverageValue Money
}

type TodaysSettlement struct {
	TodaysSettlementCount            int
	TodaysSettlementValue            Money
	TodaysPendingSettlementCount     int
	TodaysPendingSettlementValue     Money
	ComparisonSettlementCount        int
	ComparisonSettlementValue        Money
	ComparisonPendingSettlementCount int
	ComparisonPendingSettlementValue Money
}

// HourlySales is one hour of today's sales against the comparison date.
type HourlySales struct {
	Hour            int
	TodaysCount     int
	ComparisonCount int
	TodaysValue     Money
	ComparisonValue Money
}

type MerchantKPI struct {
	MerchantsWithSaleInLastHour    int
	MerchantsWithNoSaleToday       int
	MerchantsWithNoSaleInLast7Days int
}

// TopBottom selects which end of a ranking is returned.
type TopBottom string

const (
	Top    TopBottom = "top"
	Bottom TopBottom = "bottom"
)

type TopBottomData struct {
	ID         uuid.UUID
	Name       string
	SalesValue Money
}

type ProductPerformance struct {
	Products []ProductPerformanceDetail
	Summary  ProductPerformanceSummary
}

type ProductPerformanceDetail struct {
	ProductID                uuid.UUID
	ProductName              string
	ContractID               uuid.UUID
	ContractDescription      string
	TransactionCount         int
	TransactionValue         Money
	AverageValue             Money
	PercentageOfTransactions Percent
}

type ProductPerformanceSummary struct {
	TotalCount   int
	TotalValue   Money
	AverageValue Money
}

type SettlementSummaryRow struct {
	SettlementDate   time.Time
	MerchantID       uuid.UUID
	MerchantName     string
	Status           string
	TransactionCount int
	GrossValue       Money
	FeeValue         Money
	NetValue         Money
}

type SettlementHistoryRow struct {
	SettlementDate      time.Time
	SettlementReference string
	MerchantID          uuid.UUID
	MerchantName        string
	TransactionCount    int
	NetAmount           Money
	Status              string
}

type TransactionDetail struct {
	TransactionID       uuid.UUID
	DateTime            time.Time
	MerchantID          uuid.UUID
	MerchantName        string
	OperatorID          uuid.UUID
	OperatorName        string
	ProductID           uuid.UUID
	ProductName         string
	Type                string
	Status              string
	Value               Money
	Fee                 Money
	NetAmount           Money
	SettlementReference string
}

type TransactionDetailSummary struct {
	TransactionCount int
	TotalValue       Money
	TotalFees        Money
	NetValue         Money
}

type TransactionDetailReport struct {
	Transactions []TransactionDetail
	Summary      TransactionDetailSummary
}
