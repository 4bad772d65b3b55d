package router

import (
	"strings"

	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
)

// Every handler resolves the entities it references before touching the
// store, so a failed command leaves state unchanged.

func idOrNew(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

// The exists helpers report whether a caller-supplied id is already taken.
// A nil id is never taken: it is about to be minted.

func (r *Router) merchantExists(estateID, id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}
	_, ok := r.store.GetMerchant(estateID, id)
	return ok
}

func (r *Router) operatorExists(estateID, id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}
	_, ok := r.store.GetOperator(estateID, id)
	return ok
}

func (r *Router) contractExists(estateID, id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}
	_, ok := r.store.GetContract(estateID, id)
	return ok
}

func event(typ string, estateID, entityID uuid.UUID) domain.Event {
	return domain.Event{Type: typ, EstateID: estateID, EntityID: entityID}
}

// withMerchant loads the merchant, applies fn and stores the result when fn
// succeeds.
func (r *Router) withMerchant(estateID, merchantID uuid.UUID, fn func(*domain.Merchant) error) error {
	m, err := r.merchant(estateID, merchantID)
	if err != nil {
		return err
	}
	if err := fn(&m); err != nil {
		return err
	}
	r.store.UpdateMerchant(estateID, m)
	return nil
}

func (r *Router) withContract(estateID, contractID uuid.UUID, fn func(*domain.Contract) error) error {
	c, err := r.contract(estateID, contractID)
	if err != nil {
		return err
	}
	if err := fn(&c); err != nil {
		return err
	}
	r.store.UpdateContract(estateID, c)
	return nil
}

// ---------------------------------------------------------------------------
// Estate
// ---------------------------------------------------------------------------

func (r *Router) upsertEstate(req UpsertEstate) (domain.Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Event{}, domain.Invalid("estate name is required")
	}

	id := idOrNew(req.EstateID)
	r.store.SetEstate(domain.EstateRecord{ID: id, Name: name, Reference: req.Reference})
	return event(domain.EventEstateUpserted, id, id), nil
}

// ---------------------------------------------------------------------------
// Merchants
// ---------------------------------------------------------------------------

func settlementSchedule(s string) (string, error) {
	if s == "" {
		return domain.SettlementImmediate, nil
	}
	if !domain.ValidSettlementSchedule(s) {
		return "", domain.Invalid("unknown settlement schedule %q", s)
	}
	return s, nil
}

func (r *Router) addMerchant(req AddMerchant) (domain.Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Event{}, domain.Invalid("merchant name is required")
	}
	schedule, err := settlementSchedule(req.SettlementSchedule)
	if err != nil {
		return domain.Event{}, err
	}
	if r.merchantExists(req.EstateID, req.MerchantID) {
		return domain.Event{}, domain.NewConflict(domain.KindMerchant, req.MerchantID)
	}

	m := domain.Merchant{
		ID:                 idOrNew(req.MerchantID),
		Name:               name,
		Reference:          req.Reference,
		SettlementSchedule: schedule,
		Operators:          []domain.MerchantOperator{},
		Contracts:          []domain.MerchantContract{},
		Devices:            map[uuid.UUID]string{},
		Deposits:           []domain.MerchantDeposit{},
		CreatedAt:          r.now().UTC(),
	}
	applyAddress(&m, req.Address)
	applyContact(&m, req.Contact)

	r.store.AddMerchant(req.EstateID, m)
	return event(domain.EventMerchantAdded, req.EstateID, m.ID), nil
}

func applyAddress(m *domain.Merchant, a Address) {
	m.AddressLine1 = a.AddressLine1
	m.Town = a.Town
	m.Region = a.Region
	m.PostalCode = a.PostalCode
	m.Country = a.Country
}

func applyContact(m *domain.Merchant, c Contact) {
	m.ContactName = c.Name
	m.ContactEmail = c.Email
	m.ContactPhone = c.Phone
}

// updateMerchant changes the name and schedule. Empty fields are left as
// they are.
func (r *Router) updateMerchant(req UpdateMerchant) (domain.Event, error) {
	err := r.withMerchant(req.EstateID, req.MerchantID, func(m *domain.Merchant) error {
		if req.SettlementSchedule != "" {
			if !domain.ValidSettlementSchedule(req.SettlementSchedule) {
				return domain.Invalid("unknown settlement schedule %q", req.SettlementSchedule)
			}
			m.SettlementSchedule = req.SettlementSchedule
		}
		if name := strings.TrimSpace(req.Name); name != "" {
			m.Name = name
		}
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventMerchantUpdated, req.EstateID, req.MerchantID), nil
}

func (r *Router) updateMerchantAddress(req UpdateMerchantAddress) (domain.Event, error) {
	err := r.withMerchant(req.EstateID, req.MerchantID, func(m *domain.Merchant) error {
		applyAddress(m, req.Address)
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventMerchantUpdated, req.EstateID, req.MerchantID), nil
}

func (r *Router) updateMerchantContact(req UpdateMerchantContact) (domain.Event, error) {
	err := r.withMerchant(req.EstateID, req.MerchantID, func(m *domain.Merchant) error {
		applyContact(m, req.Contact)
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventMerchantUpdated, req.EstateID, req.MerchantID), nil
}

func (r *Router) removeMerchant(req RemoveMerchant) (domain.Event, error) {
	if _, err := r.merchant(req.EstateID, req.MerchantID); err != nil {
		return domain.Event{}, err
	}
	r.store.RemoveMerchant(req.EstateID, req.MerchantID)
	return event(domain.EventMerchantRemoved, req.EstateID, req.MerchantID), nil
}

// assignOperator adds the operator to the merchant, reviving a previously
// removed assignment in place.
func (r *Router) assignOperator(req AssignOperatorToMerchant) (domain.Event, error) {
	op, err := r.operator(req.EstateID, req.OperatorID)
	if err != nil {
		return domain.Event{}, err
	}
	if op.RequireCustomMerchantNumber && req.MerchantNumber == "" {
		return domain.Event{}, domain.Invalid("operator %s requires a merchant number", op.Name)
	}
	if op.RequireCustomTerminalNumber && req.TerminalNumber == "" {
		return domain.Event{}, domain.Invalid("operator %s requires a terminal number", op.Name)
	}

	err = r.withMerchant(req.EstateID, req.MerchantID, func(m *domain.Merchant) error {
		assignment := domain.MerchantOperator{
			OperatorID:     op.ID,
			Name:           op.Name,
			MerchantNumber: req.MerchantNumber,
			TerminalNumber: req.TerminalNumber,
		}
		for i := range m.Operators {
			if m.Operators[i].OperatorID == op.ID {
				m.Operators[i] = assignment
				return nil
			}
		}
		m.Operators = append(m.Operators, assignment)
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventMerchantUpdated, req.EstateID, req.MerchantID), nil
}

func (r *Router) unassignOperator(req RemoveOperatorFromMerchant) (domain.Event, error) {
	err := r.withMerchant(req.EstateID, req.MerchantID, func(m *domain.Merchant) error {
		if !m.HasOperator(req.OperatorID) {
			return domain.NewNotFound(domain.KindOperator, req.OperatorID)
		}
		for i := range m.Operators {
			if m.Operators[i].OperatorID == req.OperatorID {
				m.Operators[i].IsDeleted = true
			}
		}
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventMerchantUpdated, req.EstateID, req.MerchantID), nil
}

func (r *Router) assignContract(req AssignContractToMerchant) (domain.Event, error) {
	c, err := r.contract(req.EstateID, req.ContractID)
	if err != nil {
		return domain.Event{}, err
	}

	err = r.withMerchant(req.EstateID, req.MerchantID, func(m *domain.Merchant) error {
		if m.HasContract(c.ID) {
			return nil
		}
		m.Contracts = append(m.Contracts, domain.MerchantContract{
			ContractID:   c.ID,
			Description:  c.Description,
			OperatorName: c.OperatorName,
		})
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventMerchantUpdated, req.EstateID, req.MerchantID), nil
}

func (r *Router) unassignContract(req RemoveContractFromMerchant) (domain.Event, error) {
	err := r.withMerchant(req.EstateID, req.MerchantID, func(m *domain.Merchant) error {
		if !m.HasContract(req.ContractID) {
			return domain.NewNotFound(domain.KindContract, req.ContractID)
		}
		kept := m.Contracts[:0]
		for _, c := range m.Contracts {
			if c.ContractID != req.ContractID {
				kept = append(kept, c)
			}
		}
		m.Contracts = kept
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventMerchantUpdated, req.EstateID, req.MerchantID), nil
}

func (r *Router) addDevice(req AddMerchantDevice) (domain.Event, error) {
	identifier := strings.TrimSpace(req.DeviceIdentifier)
	if identifier == "" {
		return domain.Event{}, domain.Invalid("device identifier is required")
	}

	deviceID := idOrNew(req.DeviceID)
	err := r.withMerchant(req.EstateID, req.MerchantID, func(m *domain.Merchant) error {
		if _, exists := m.Devices[deviceID]; exists {
			return domain.NewConflict(domain.KindDevice, deviceID)
		}
		if m.Devices == nil {
			m.Devices = make(map[uuid.UUID]string)
		}
		m.Devices[deviceID] = identifier
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventMerchantUpdated, req.EstateID, req.MerchantID), nil
}

func (r *Router) swapDevice(req SwapMerchantDevice) (domain.Event, error) {
	identifier := strings.TrimSpace(req.NewDeviceIdentifier)
	if identifier == "" {
		return domain.Event{}, domain.Invalid("device identifier is required")
	}

	err := r.withMerchant(req.EstateID, req.MerchantID, func(m *domain.Merchant) error {
		if _, exists := m.Devices[req.DeviceID]; !exists {
			return domain.NewNotFound(domain.KindDevice, req.DeviceID)
		}
		m.Devices[req.DeviceID] = identifier
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventMerchantUpdated, req.EstateID, req.MerchantID), nil
}

func (r *Router) makeDeposit(req MakeMerchantDeposit) (domain.Event, error) {
	if req.Amount <= 0 {
		return domain.Event{}, domain.Invalid("deposit amount must be positive, got %s", req.Amount)
	}

	date := req.Date
	if date.IsZero() {
		date = r.now().UTC()
	}

	err := r.withMerchant(req.EstateID, req.MerchantID, func(m *domain.Merchant) error {
		m.Deposits = append(m.Deposits, domain.MerchantDeposit{
			ID:        idOrNew(req.DepositID),
			Amount:    req.Amount,
			Date:      date,
			Reference: req.Reference,
		})
		m.Balance += req.Amount
		m.AvailableBalance += req.Amount
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventMerchantDeposit, req.EstateID, req.MerchantID), nil
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

func (r *Router) createOperator(req CreateOperator) (domain.Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Event{}, domain.Invalid("operator name is required")
	}
	if r.operatorExists(req.EstateID, req.OperatorID) {
		return domain.Event{}, domain.NewConflict(domain.KindOperator, req.OperatorID)
	}

	o := domain.Operator{
		ID:                          idOrNew(req.OperatorID),
		Name:                        name,
		RequireCustomMerchantNumber: req.RequireCustomMerchantNumber,
		RequireCustomTerminalNumber: req.RequireCustomTerminalNumber,
	}
	r.store.AddOperator(req.EstateID, o)
	return event(domain.EventOperatorCreated, req.EstateID, o.ID), nil
}

func (r *Router) updateOperator(req UpdateOperator) (domain.Event, error) {
	o, err := r.operator(req.EstateID, req.OperatorID)
	if err != nil {
		return domain.Event{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		o.Name = name
	}
	o.RequireCustomMerchantNumber = req.RequireCustomMerchantNumber
	o.RequireCustomTerminalNumber = req.RequireCustomTerminalNumber

	r.store.UpdateOperator(req.EstateID, o)
	return event(domain.EventOperatorUpdated, req.EstateID, o.ID), nil
}

func (r *Router) removeOperator(req RemoveOperator) (domain.Event, error) {
	if _, err := r.operator(req.EstateID, req.OperatorID); err != nil {
		return domain.Event{}, err
	}
	r.store.RemoveOperator(req.EstateID, req.OperatorID)
	return event(domain.EventOperatorRemoved, req.EstateID, req.OperatorID), nil
}

// ---------------------------------------------------------------------------
// Contracts
// ---------------------------------------------------------------------------

func (r *Router) createContract(req CreateContract) (domain.Event, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Event{}, domain.Invalid("contract description is required")
	}
	op, err := r.operator(req.EstateID, req.OperatorID)
	if err != nil {
		return domain.Event{}, err
	}
	if r.contractExists(req.EstateID, req.ContractID) {
		return domain.Event{}, domain.NewConflict(domain.KindContract, req.ContractID)
	}

	c := domain.Contract{
		ID:           idOrNew(req.ContractID),
		Description:  description,
		OperatorID:   op.ID,
		OperatorName: op.Name,
		Products:     []domain.Product{},
	}
	r.store.AddContract(req.EstateID, c)
	return event(domain.EventContractCreated, req.EstateID, c.ID), nil
}

func (r *Router) removeContract(req RemoveContract) (domain.Event, error) {
	if _, err := r.contract(req.EstateID, req.ContractID); err != nil {
		return domain.Event{}, err
	}
	r.store.RemoveContract(req.EstateID, req.ContractID)
	return event(domain.EventContractRemoved, req.EstateID, req.ContractID), nil
}

// productValue normalizes a product value to two decimals, or to
// domain.VariableValue when empty.
func productValue(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, domain.VariableValue) {
		return domain.VariableValue, nil
	}
	m, err := domain.ParseMoney(v)
	if err != nil {
		return "", domain.Invalid("product value %q is not an amount", v)
	}
	if m <= 0 {
		return "", domain.Invalid("product value must be positive, got %s", m)
	}
	return m.String(), nil
}

func (r *Router) addProduct(req AddProductToContract) (domain.Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Event{}, domain.Invalid("product name is required")
	}
	value, err := productValue(req.Value)
	if err != nil {
		return domain.Event{}, err
	}

	productID := idOrNew(req.ProductID)
	err = r.withContract(req.EstateID, req.ContractID, func(c *domain.Contract) error {
		if c.ProductIndex(productID) >= 0 {
			return domain.NewConflict(domain.KindProduct, productID)
		}
		c.Products = append(c.Products, domain.Product{
			ID:              productID,
			Name:            name,
			DisplayText:     req.DisplayText,
			Value:           value,
			TransactionFees: []domain.TransactionFee{},
		})
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventContractUpdated, req.EstateID, req.ContractID), nil
}

func (r *Router) addFee(req AddTransactionFeeToProduct) (domain.Event, error) {
	if req.Value < 0 {
		return domain.Event{}, domain.Invalid("fee value must not be negative")
	}
	if req.CalculationType != domain.CalculationFixed && req.CalculationType != domain.CalculationPercentage {
		return domain.Event{}, domain.Invalid("unknown calculation type %d", req.CalculationType)
	}
	if req.FeeType != domain.FeeTypeMerchant && req.FeeType != domain.FeeTypeServiceProvider {
		return domain.Event{}, domain.Invalid("unknown fee type %d", req.FeeType)
	}

	feeID := idOrNew(req.FeeID)
	err := r.withContract(req.EstateID, req.ContractID, func(c *domain.Contract) error {
		i := c.ProductIndex(req.ProductID)
		if i < 0 {
			return domain.NewNotFound(domain.KindProduct, req.ProductID)
		}
		p := &c.Products[i]
		if p.FeeIndex(feeID) >= 0 {
			return domain.NewConflict(domain.KindTransactionFee, feeID)
		}
		p.TransactionFees = append(p.TransactionFees, domain.TransactionFee{
			ID:              feeID,
			Description:     req.Description,
			Value:           req.Value,
			CalculationType: req.CalculationType,
			FeeType:         req.FeeType,
		})
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventContractUpdated, req.EstateID, req.ContractID), nil
}

func (r *Router) removeFee(req RemoveTransactionFeeFromProduct) (domain.Event, error) {
	err := r.withContract(req.EstateID, req.ContractID, func(c *domain.Contract) error {
		i := c.ProductIndex(req.ProductID)
		if i < 0 {
			return domain.NewNotFound(domain.KindProduct, req.ProductID)
		}
		p := &c.Products[i]
		j := p.FeeIndex(req.FeeID)
		if j < 0 {
			return domain.NewNotFound(domain.KindTransactionFee, req.FeeID)
		}
		p.TransactionFees = append(p.TransactionFees[:j], p.TransactionFees[j+1:]...)
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event(domain.EventContractUpdated, req.EstateID, req.ContractID), nil
}
