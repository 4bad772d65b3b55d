// Package router is the single entry point that turns typed queries and
// commands into estate store operations and analytics views.
package router

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/estatehub/internal/analytics"
	"github.com/gosuda/estatehub/internal/domain"
	"github.com/gosuda/estatehub/internal/metrics"
)

// ErrUnimplementedRequest is the panic value (wrapped) raised when Dispatch
// receives a Request it has no case for.
var ErrUnimplementedRequest = errors.New("router: unimplemented request")

// Store is the estate store the router reads and mutates.
type Store interface {
	analytics.Source

	GetEstate(estateID uuid.UUID) domain.Estate
	SetEstate(rec domain.EstateRecord)
	Estates() []domain.EstateRecord

	GetMerchant(estateID, merchantID uuid.UUID) (domain.Merchant, bool)
	GetRecentMerchants(estateID uuid.UUID) []domain.RecentMerchant
	AddMerchant(estateID uuid.UUID, m domain.Merchant)
	UpdateMerchant(estateID uuid.UUID, m domain.Merchant)
	RemoveMerchant(estateID, merchantID uuid.UUID)

	GetOperator(estateID, operatorID uuid.UUID) (domain.Operator, bool)
	AddOperator(estateID uuid.UUID, o domain.Operator)
	UpdateOperator(estateID uuid.UUID, o domain.Operator)
	RemoveOperator(estateID, operatorID uuid.UUID)

	GetContract(estateID, contractID uuid.UUID) (domain.Contract, bool)
	AddContract(estateID uuid.UUID, c domain.Contract)
	UpdateContract(estateID uuid.UUID, c domain.Contract)
	RemoveContract(estateID, contractID uuid.UUID)

	Reset()
}

// Router dispatches requests. It holds no per-request state and may be shared
// across goroutines.
type Router struct {
	store     Store
	gen       *analytics.Generator
	now       func() time.Time
	publisher EventPublisher
	metrics   *metrics.Metrics
}

type Option func(*Router)

// WithClock overrides the clock used for "today" and for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// WithPublisher publishes a domain.Event after every successful command.
func WithPublisher(p EventPublisher) Option {
	return func(r *Router) { r.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

func New(store Store, opts ...Option) *Router {
	r := &Router{
		store: store,
		gen:   analytics.New(store),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dispatch runs req to completion. Queries return their value; commands
// return the id of the entity they touched. A non-nil error is the failure
// result: domain.ErrNotFound for missing entities, domain.ErrInvalid for bad
// input and domain.ErrConflict for duplicate ids.
//
// A Request type without a case here is a wiring fault: Dispatch logs it and
// panics with an error wrapping ErrUnimplementedRequest.
func (r *Router) Dispatch(ctx context.Context, req Request) (any, error) {
	name := RequestName(req)
	start := time.Now()

	result, ev, err := r.dispatch(req)

	if r.metrics != nil {
		r.metrics.ObserveDispatch(name, err, time.Since(start))
	}
	if err != nil {
		log.Debug().Err(err).Str("request", name).Msg("dispatch failed")
		return nil, err
	}
	if ev != nil {
		r.publish(ctx, *ev)
	}
	return result, nil
}

// RequestName is the bare type name of req, used as a log field and metric
// label.
func RequestName(req Request) string {
	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "nil"
	}
	return t.Name()
}

func (r *Router) dispatch(req Request) (any, *domain.Event, error) {
	switch req := req.(type) {
	// Estate queries
	case GetEstate:
		return r.store.GetEstate(req.EstateID), nil, nil
	case GetEstates:
		return r.store.Estates(), nil, nil
	case GetMerchants:
		return r.store.GetMerchants(req.EstateID), nil, nil
	case GetMerchant:
		return r.getMerchant(req.EstateID, req.MerchantID)
	case GetRecentMerchants:
		return r.store.GetRecentMerchants(req.EstateID), nil, nil
	case GetOperators:
		return r.store.GetOperators(req.EstateID), nil, nil
	case GetOperator:
		return r.getOperator(req.EstateID, req.OperatorID)
	case GetContracts:
		return r.store.GetContracts(req.EstateID), nil, nil
	case GetContract:
		return r.getContract(req.EstateID, req.ContractID)
	case GetMerchantContracts:
		return r.getMerchantContracts(req)
	case GetMerchantOperators:
		return r.getMerchantOperators(req)
	case GetMerchantDevices:
		return r.getMerchantDevices(req)

	// Analytics queries
	case GetComparisonDates:
		return analytics.ComparisonDates(r.today()), nil, nil
	case GetTodaysSales:
		filter := analytics.SalesFilter{MerchantID: req.MerchantID, OperatorID: req.OperatorID}
		return r.gen.TodaysSales(req.EstateID, r.today(), r.comparison(req.ComparisonDate), filter), nil, nil
	case GetTodaysSettlement:
		filter := analytics.SalesFilter{MerchantID: req.MerchantID, OperatorID: req.OperatorID}
		return r.gen.TodaysSettlement(req.EstateID, r.today(), r.comparison(req.ComparisonDate), filter), nil, nil
	case GetSalesByHour:
		return r.gen.SalesByHour(req.EstateID, r.today(), r.comparison(req.ComparisonDate)), nil, nil
	case GetMerchantKPI:
		return r.gen.MerchantKPI(req.EstateID), nil, nil
	case GetTopBottomProducts:
		return r.gen.TopBottomProducts(req.EstateID, req.Which, req.Count), nil, nil
	case GetTopBottomMerchants:
		return r.gen.TopBottomMerchants(req.EstateID, req.Which, req.Count), nil, nil
	case GetTopBottomOperators:
		return r.gen.TopBottomOperators(req.EstateID, req.Which, req.Count), nil, nil
	case GetProductPerformance:
		return ranged(req.StartDate, req.EndDate, func(s analytics.DateRange) domain.ProductPerformance {
			return r.gen.ProductPerformance(req.EstateID, s)
		})
	case GetSettlementSummary:
		filter := analytics.SettlementFilter{MerchantID: req.MerchantID, Status: req.Status}
		return ranged(req.StartDate, req.EndDate, func(s analytics.DateRange) []domain.SettlementSummaryRow {
			return r.gen.SettlementSummary(req.EstateID, s, filter)
		})
	case GetMerchantSettlementHistory:
		return ranged(req.StartDate, req.EndDate, func(s analytics.DateRange) []domain.SettlementHistoryRow {
			return r.gen.MerchantSettlementHistory(req.EstateID, s, req.MerchantID)
		})
	case GetTransactionDetail:
		filter := analytics.TransactionFilter{
			MerchantIDs: req.MerchantIDs,
			OperatorIDs: req.OperatorIDs,
			ProductIDs:  req.ProductIDs,
		}
		return ranged(req.StartDate, req.EndDate, func(s analytics.DateRange) domain.TransactionDetailReport {
			return r.gen.TransactionDetail(req.EstateID, s, filter)
		})

	// Estate and merchant commands
	case UpsertEstate:
		return applied(r.upsertEstate(req))
	case AddMerchant:
		return applied(r.addMerchant(req))
	case UpdateMerchant:
		return applied(r.updateMerchant(req))
	case UpdateMerchantAddress:
		return applied(r.updateMerchantAddress(req))
	case UpdateMerchantContact:
		return applied(r.updateMerchantContact(req))
	case RemoveMerchant:
		return applied(r.removeMerchant(req))
	case AssignOperatorToMerchant:
		return applied(r.assignOperator(req))
	case RemoveOperatorFromMerchant:
		return applied(r.unassignOperator(req))
	case AssignContractToMerchant:
		return applied(r.assignContract(req))
	case RemoveContractFromMerchant:
		return applied(r.unassignContract(req))
	case AddMerchantDevice:
		return applied(r.addDevice(req))
	case SwapMerchantDevice:
		return applied(r.swapDevice(req))
	case MakeMerchantDeposit:
		return applied(r.makeDeposit(req))

	// Operator and contract commands
	case CreateOperator:
		return applied(r.createOperator(req))
	case UpdateOperator:
		return applied(r.updateOperator(req))
	case RemoveOperator:
		return applied(r.removeOperator(req))
	case CreateContract:
		return applied(r.createContract(req))
	case RemoveContract:
		return applied(r.removeContract(req))
	case AddProductToContract:
		return applied(r.addProduct(req))
	case AddTransactionFeeToProduct:
		return applied(r.addFee(req))
	case RemoveTransactionFeeFromProduct:
		return applied(r.removeFee(req))
	case ResetStore:
		r.store.Reset()
		return applied(domain.Event{Type: domain.EventStoreReset}, nil)

	default:
		panic(unimplemented(req))
	}
}

func unimplemented(req Request) error {
	err := fmt.Errorf("%w: %T", ErrUnimplementedRequest, req)
	log.Error().Err(err).Msg("router has no case for request")
	return err
}

// applied adapts a command handler's outcome to the dispatch shape.
func applied(ev domain.Event, err error) (any, *domain.Event, error) {
	if err != nil {
		return nil, nil, err
	}
	return ev.EntityID, &ev, nil
}

func (r *Router) today() time.Time {
	return r.now().UTC()
}

// comparison defaults to yesterday when the request leaves it unset.
func (r *Router) comparison(d time.Time) time.Time {
	if d.IsZero() {
		return r.today().AddDate(0, 0, -1)
	}
	return d
}

// ranged runs a date range view after rejecting ranges the generator would
// refuse to produce.
func ranged[T any](start, end time.Time, view func(analytics.DateRange) T) (any, *domain.Event, error) {
	span := analytics.DateRange{Start: start, End: end}
	if err := span.Validate(); err != nil {
		return nil, nil, err
	}
	return view(span), nil, nil
}

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

func (r *Router) getMerchant(estateID, merchantID uuid.UUID) (any, *domain.Event, error) {
	m, err := r.merchant(estateID, merchantID)
	if err != nil {
		return nil, nil, err
	}
	return m, nil, nil
}

func (r *Router) getOperator(estateID, operatorID uuid.UUID) (any, *domain.Event, error) {
	o, err := r.operator(estateID, operatorID)
	if err != nil {
		return nil, nil, err
	}
	return o, nil, nil
}

func (r *Router) getContract(estateID, contractID uuid.UUID) (any, *domain.Event, error) {
	c, err := r.contract(estateID, contractID)
	if err != nil {
		return nil, nil, err
	}
	return c, nil, nil
}

func (r *Router) getMerchantContracts(req GetMerchantContracts) (any, *domain.Event, error) {
	m, err := r.merchant(req.EstateID, req.MerchantID)
	if err != nil {
		return nil, nil, err
	}
	if m.Contracts == nil {
		return []domain.MerchantContract{}, nil, nil
	}
	return m.Contracts, nil, nil
}

func (r *Router) getMerchantOperators(req GetMerchantOperators) (any, *domain.Event, error) {
	m, err := r.merchant(req.EstateID, req.MerchantID)
	if err != nil {
		return nil, nil, err
	}
	return m.ActiveOperators(), nil, nil
}

func (r *Router) getMerchantDevices(req GetMerchantDevices) (any, *domain.Event, error) {
	m, err := r.merchant(req.EstateID, req.MerchantID)
	if err != nil {
		return nil, nil, err
	}
	if m.Devices == nil {
		return map[uuid.UUID]string{}, nil, nil
	}
	return m.Devices, nil, nil
}

func (r *Router) merchant(estateID, merchantID uuid.UUID) (domain.Merchant, error) {
	m, ok := r.store.GetMerchant(estateID, merchantID)
	if !ok {
		return domain.Merchant{}, domain.NewNotFound(domain.KindMerchant, merchantID)
	}
	return m, nil
}

func (r *Router) operator(estateID, operatorID uuid.UUID) (domain.Operator, error) {
	o, ok := r.store.GetOperator(estateID, operatorID)
	if !ok {
		return domain.Operator{}, domain.NewNotFound(domain.KindOperator, operatorID)
	}
	return o, nil
}

func (r *Router) contract(estateID, contractID uuid.UUID) (domain.Contract, error) {
	c, ok := r.store.GetContract(estateID, contractID)
	if !ok {
		return domain.Contract{}, domain.NewNotFound(domain.KindContract, contractID)
	}
	return c, nil
}
