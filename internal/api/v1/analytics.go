package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
	"github.com/gosuda/estatehub/internal/router"
)

type ComparisonDatesOutput struct {
	Body []domain.ComparisonDate
}

type SalesInput struct {
	EstatePath
	ComparisonDate string `query:"comparison_date" doc:"YYYY-MM-DD; defaults to yesterday"`
	MerchantID     string `query:"merchant_id" doc:"Only this merchant"`
	OperatorID     string `query:"operator_id" doc:"Only this operator"`
}

type TodaysSalesOutput struct {
	Body domain.TodaysSales
}

type TodaysSettlementOutput struct {
	Body domain.TodaysSettlement
}

type SalesByHourInput struct {
	EstatePath
	ComparisonDate string `query:"comparison_date" doc:"YYYY-MM-DD; defaults to yesterday"`
}

type SalesByHourOutput struct {
	Body []domain.HourlySales
}

type MerchantKPIOutput struct {
	Body domain.MerchantKPI
}

type TopBottomInput struct {
	EstatePath
	Which string `query:"which" enum:"top,bottom" default:"top"`
	Count int    `query:"count" minimum:"0" maximum:"100" doc:"Rows to return; 0 means the default"`
}

type TopBottomOutput struct {
	Body []domain.TopBottomData
}

type RangeInput struct {
	EstatePath
	StartDate string `query:"start_date" doc:"YYYY-MM-DD"`
	EndDate   string `query:"end_date" doc:"YYYY-MM-DD"`
}

type ProductPerformanceOutput struct {
	Body domain.ProductPerformance
}

type SettlementSummaryInput struct {
	RangeInput
	MerchantID string `query:"merchant_id"`
	Status     string `query:"status" enum:"Settled,Pending"`
}

type SettlementSummaryOutput struct {
	Body []domain.SettlementSummaryRow
}

type SettlementHistoryInput struct {
	RangeInput
	MerchantID string `query:"merchant_id"`
}

type SettlementHistoryOutput struct {
	Body []domain.SettlementHistoryRow
}

type TransactionDetailInput struct {
	RangeInput
	MerchantIDs []string `query:"merchant_id" doc:"Merchant IDs, repeated or comma-separated"`
	OperatorIDs []string `query:"operator_id" doc:"Operator IDs, repeated or comma-separated"`
	ProductIDs  []string `query:"product_id" doc:"Product IDs, repeated or comma-separated"`
}

type TransactionDetailOutput struct {
	Body domain.TransactionDetailReport
}

// ids parses the optional merchant and operator filters.
func (in *SalesInput) ids() (merchantID, operatorID uuid.UUID, err error) {
	if merchantID, err = parseID("merchant_id", in.MerchantID); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if operatorID, err = parseID("operator_id", in.OperatorID); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return merchantID, operatorID, nil
}

func RegisterAnalyticsRoutes(api huma.API, d Dispatcher) {
	tags := []string{"Analytics"}

	huma.Register(api, huma.Operation{
		OperationID: "get-comparison-dates",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/analytics/comparison-dates",
		Summary:     "List dates today's figures can be compared against",
		Tags:        tags,
	}, func(ctx context.Context, input *EstatePath) (*ComparisonDatesOutput, error) {
		dates, err := dispatch[[]domain.ComparisonDate](ctx, d, router.GetComparisonDates{EstateID: input.EstateID})
		if err != nil {
			return nil, err
		}
		return &ComparisonDatesOutput{Body: dates}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-todays-sales",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/analytics/todays-sales",
		Summary:     "Today's sales against a comparison date",
		Tags:        tags,
	}, func(ctx context.Context, input *SalesInput) (*TodaysSalesOutput, error) {
		cmpDate, err := parseDate("comparison_date", input.ComparisonDate)
		if err != nil {
			return nil, err
		}
		merchantID, operatorID, err := input.ids()
		if err != nil {
			return nil, err
		}
		sales, err := dispatch[domain.TodaysSales](ctx, d, router.GetTodaysSales{
			EstateID:       input.EstateID,
			ComparisonDate: cmpDate,
			MerchantID:     merchantID,
			OperatorID:     operatorID,
		})
		if err != nil {
			return nil, err
		}
		return &TodaysSalesOutput{Body: sales}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-todays-settlement",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/analytics/todays-settlement",
		Summary:     "Today's settlement against a comparison date",
		Tags:        tags,
	}, func(ctx context.Context, input *SalesInput) (*TodaysSettlementOutput, error) {
		cmpDate, err := parseDate("comparison_date", input.ComparisonDate)
		if err != nil {
			return nil, err
		}
		merchantID, operatorID, err := input.ids()
		if err != nil {
			return nil, err
		}
		st, err := dispatch[domain.TodaysSettlement](ctx, d, router.GetTodaysSettlement{
			EstateID:       input.EstateID,
			ComparisonDate: cmpDate,
			MerchantID:     merchantID,
			OperatorID:     operatorID,
		})
		if err != nil {
			return nil, err
		}
		return &TodaysSettlementOutput{Body: st}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-sales-by-hour",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/analytics/sales-by-hour",
		Summary:     "Hourly sales for today and the comparison date",
		Tags:        tags,
	}, func(ctx context.Context, input *SalesByHourInput) (*SalesByHourOutput, error) {
		cmpDate, err := parseDate("comparison_date", input.ComparisonDate)
		if err != nil {
			return nil, err
		}
		rows, err := dispatch[[]domain.HourlySales](ctx, d, router.GetSalesByHour{
			EstateID:       input.EstateID,
			ComparisonDate: cmpDate,
		})
		if err != nil {
			return nil, err
		}
		return &SalesByHourOutput{Body: rows}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-merchant-kpi",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/analytics/merchant-kpi",
		Summary:     "Merchant activity counts",
		Tags:        tags,
	}, func(ctx context.Context, input *EstatePath) (*MerchantKPIOutput, error) {
		kpi, err := dispatch[domain.MerchantKPI](ctx, d, router.GetMerchantKPI{EstateID: input.EstateID})
		if err != nil {
			return nil, err
		}
		return &MerchantKPIOutput{Body: kpi}, nil
	})

	registerTopBottom(api, d, "products", func(in *TopBottomInput) router.Request {
		return router.GetTopBottomProducts{EstateID: in.EstateID, Which: domain.TopBottom(in.Which), Count: in.Count}
	})
	registerTopBottom(api, d, "merchants", func(in *TopBottomInput) router.Request {
		return router.GetTopBottomMerchants{EstateID: in.EstateID, Which: domain.TopBottom(in.Which), Count: in.Count}
	})
	registerTopBottom(api, d, "operators", func(in *TopBottomInput) router.Request {
		return router.GetTopBottomOperators{EstateID: in.EstateID, Which: domain.TopBottom(in.Which), Count: in.Count}
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-product-performance",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/analytics/product-performance",
		Summary:     "Per-product transaction counts and values over a date range",
		Tags:        tags,
	}, func(ctx context.Context, input *RangeInput) (*ProductPerformanceOutput, error) {
		start, end, err := parseRange(input.StartDate, input.EndDate)
		if err != nil {
			return nil, err
		}
		perf, err := dispatch[domain.ProductPerformance](ctx, d, router.GetProductPerformance{
			EstateID:  input.EstateID,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			return nil, err
		}
		return &ProductPerformanceOutput{Body: perf}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-settlement-summary",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/analytics/settlement-summary",
		Summary:     "Daily settlement rows per merchant",
		Tags:        tags,
	}, func(ctx context.Context, input *SettlementSummaryInput) (*SettlementSummaryOutput, error) {
		start, end, err := parseRange(input.StartDate, input.EndDate)
		if err != nil {
			return nil, err
		}
		merchantID, err := parseID("merchant_id", input.MerchantID)
		if err != nil {
			return nil, err
		}
		rows, err := dispatch[[]domain.SettlementSummaryRow](ctx, d, router.GetSettlementSummary{
			EstateID:   input.EstateID,
			StartDate:  start,
			EndDate:    end,
			MerchantID: merchantID,
			Status:     input.Status,
		})
		if err != nil {
			return nil, err
		}
		return &SettlementSummaryOutput{Body: rows}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-settlement-history",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/analytics/settlement-history",
		Summary:     "Weekly settlement history per merchant",
		Tags:        tags,
	}, func(ctx context.Context, input *SettlementHistoryInput) (*SettlementHistoryOutput, error) {
		start, end, err := parseRange(input.StartDate, input.EndDate)
		if err != nil {
			return nil, err
		}
		merchantID, err := parseID("merchant_id", input.MerchantID)
		if err != nil {
			return nil, err
		}
		rows, err := dispatch[[]domain.SettlementHistoryRow](ctx, d, router.GetMerchantSettlementHistory{
			EstateID:   input.EstateID,
			StartDate:  start,
			EndDate:    end,
			MerchantID: merchantID,
		})
		if err != nil {
			return nil, err
		}
		return &SettlementHistoryOutput{Body: rows}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-transaction-detail",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/analytics/transactions",
		Summary:     "Transaction detail with totals",
		Tags:        tags,
	}, func(ctx context.Context, input *TransactionDetailInput) (*TransactionDetailOutput, error) {
		start, end, err := parseRange(input.StartDate, input.EndDate)
		if err != nil {
			return nil, err
		}
		merchants, err := parseIDs("merchant_id", input.MerchantIDs)
		if err != nil {
			return nil, err
		}
		operators, err := parseIDs("operator_id", input.OperatorIDs)
		if err != nil {
			return nil, err
		}
		products, err := parseIDs("product_id", input.ProductIDs)
		if err != nil {
			return nil, err
		}
		report, err := dispatch[domain.TransactionDetailReport](ctx, d, router.GetTransactionDetail{
			EstateID:    input.EstateID,
			StartDate:   start,
			EndDate:     end,
			MerchantIDs: merchants,
			OperatorIDs: operators,
			ProductIDs:  products,
		})
		if err != nil {
			return nil, err
		}
		return &TransactionDetailOutput{Body: report}, nil
	})
}

func registerTopBottom(api huma.API, d Dispatcher, entity string, build func(*TopBottomInput) router.Request) {
	huma.Register(api, huma.Operation{
		OperationID: "get-top-bottom-" + entity,
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/analytics/top-bottom/" + entity,
		Summary:     "Rank " + entity + " by sales value",
		Tags:        []string{"Analytics"},
	}, func(ctx context.Context, input *TopBottomInput) (*TopBottomOutput, error) {
		rows, err := dispatch[[]domain.TopBottomData](ctx, d, build(input))
		if err != nil {
			return nil, err
		}
		return &TopBottomOutput{Body: rows}, nil
	})
}
