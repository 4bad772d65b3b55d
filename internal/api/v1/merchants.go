package v1

import (
	"cmp"
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
	"github.com/gosuda/estatehub/internal/router"
)

type MerchantPath struct {
	EstateID   uuid.UUID `path:"estateID" doc:"Estate ID"`
	MerchantID uuid.UUID `path:"merchantID" doc:"Merchant ID"`
}

type AddressBody struct {
	AddressLine1 string `json:"address_line1,omitempty" maxLength:"255"`
	Town         string `json:"town,omitempty" maxLength:"100"`
	Region       string `json:"region,omitempty" maxLength:"100"`
	PostalCode   string `json:"postal_code,omitempty" maxLength:"20"`
	Country      string `json:"country,omitempty" maxLength:"100"`
}

func (a AddressBody) address() router.Address {
	return router.Address{
		AddressLine1: a.AddressLine1,
		Town:         a.Town,
		Region:       a.Region,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
	}
}

type ContactBody struct {
	Name  string `json:"name,omitempty" maxLength:"255"`
	Email string `json:"email,omitempty" maxLength:"255" format:"email"`
	Phone string `json:"phone,omitempty" maxLength:"50"`
}

func (c ContactBody) contact() router.Contact {
	return router.Contact{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

type ListMerchantsOutput struct {
	Body []domain.Merchant
}

type RecentMerchantsOutput struct {
	Body []domain.RecentMerchant
}

type GetMerchantOutput struct {
	Body domain.Merchant
}

type AddMerchantInput struct {
	EstatePath
	Body struct {
		ID                 uuid.UUID   `json:"id,omitempty" doc:"Merchant ID; minted when omitted"`
		Name               string      `json:"name" minLength:"1" maxLength:"255" doc:"Merchant name"`
		Reference          string      `json:"reference,omitempty" maxLength:"64"`
		SettlementSchedule string      `json:"settlement_schedule,omitempty" enum:"Immediate,Weekly,Monthly"`
		Address            AddressBody `json:"address,omitempty"`
		Contact            ContactBody `json:"contact,omitempty"`
	}
}

type UpdateMerchantInput struct {
	MerchantPath
	Body struct {
		Name               string `json:"name,omitempty" maxLength:"255"`
		SettlementSchedule string `json:"settlement_schedule,omitempty" enum:"Immediate,Weekly,Monthly"`
	}
}

type UpdateAddressInput struct {
	MerchantPath
	Body AddressBody
}

type UpdateContactInput struct {
	MerchantPath
	Body ContactBody
}

type MerchantOperatorsOutput struct {
	Body []domain.MerchantOperator
}

type AssignOperatorInput struct {
	MerchantPath
	Body struct {
		OperatorID     uuid.UUID `json:"operator_id" doc:"Operator ID"`
		MerchantNumber string    `json:"merchant_number,omitempty" maxLength:"64"`
		TerminalNumber string    `json:"terminal_number,omitempty" maxLength:"64"`
	}
}

type MerchantOperatorPath struct {
	MerchantPath
	OperatorID uuid.UUID `path:"operatorID" doc:"Operator ID"`
}

type MerchantContractsOutput struct {
	Body []domain.MerchantContract
}

type AssignContractInput struct {
	MerchantPath
	Body struct {
		ContractID uuid.UUID `json:"contract_id" doc:"Contract ID"`
	}
}

type MerchantContractPath struct {
	MerchantPath
	ContractID uuid.UUID `path:"contractID" doc:"Contract ID"`
}

type Device struct {
	ID         uuid.UUID `json:"device_id"`
	Identifier string    `json:"device_identifier"`
}

type MerchantDevicesOutput struct {
	Body []Device
}

type AddDeviceInput struct {
	MerchantPath
	Body struct {
		ID         uuid.UUID `json:"device_id,omitempty" doc:"Device ID; minted when omitted"`
		Identifier string    `json:"device_identifier" minLength:"1" maxLength:"255"`
	}
}

type SwapDeviceInput struct {
	MerchantPath
	DeviceID uuid.UUID `path:"deviceID" doc:"Device ID"`
	Body     struct {
		Identifier string `json:"device_identifier" minLength:"1" maxLength:"255"`
	}
}

type DepositInput struct {
	MerchantPath
	Body struct {
		ID        uuid.UUID `json:"deposit_id,omitempty" doc:"Deposit ID; minted when omitted"`
		Amount    float64   `json:"amount" exclusiveMinimum:"0" doc:"Amount in major units"`
		Date      time.Time `json:"date,omitempty" doc:"Deposit date; defaults to now"`
		Reference string    `json:"reference,omitempty" maxLength:"64"`
	}
}

func RegisterMerchantRoutes(api huma.API, d Dispatcher) {
	tags := []string{"Merchants"}

	huma.Register(api, huma.Operation{
		OperationID: "list-merchants",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/merchants",
		Summary:     "List merchants in an estate",
		Tags:        tags,
	}, func(ctx context.Context, input *EstatePath) (*ListMerchantsOutput, error) {
		ms, err := dispatch[[]domain.Merchant](ctx, d, router.GetMerchants{EstateID: input.EstateID})
		if err != nil {
			return nil, err
		}
		return &ListMerchantsOutput{Body: ms}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-recent-merchants",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/merchants/recent",
		Summary:     "List merchants newest first",
		Tags:        tags,
	}, func(ctx context.Context, input *EstatePath) (*RecentMerchantsOutput, error) {
		ms, err := dispatch[[]domain.RecentMerchant](ctx, d, router.GetRecentMerchants{EstateID: input.EstateID})
		if err != nil {
			return nil, err
		}
		return &RecentMerchantsOutput{Body: ms}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-merchant",
		Method:        http.MethodPost,
		Path:          "/estates/{estateID}/merchants",
		Summary:       "Add a merchant",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *AddMerchantInput) (*IDOutput, error) {
		return command(ctx, d, router.AddMerchant{
			EstateID:           input.EstateID,
			MerchantID:         input.Body.ID,
			Name:               input.Body.Name,
			Reference:          input.Body.Reference,
			SettlementSchedule: input.Body.SettlementSchedule,
			Address:            input.Body.Address.address(),
			Contact:            input.Body.Contact.contact(),
		})
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-merchant",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/merchants/{merchantID}",
		Summary:     "Get a merchant",
		Tags:        tags,
	}, func(ctx context.Context, input *MerchantPath) (*GetMerchantOutput, error) {
		m, err := dispatch[domain.Merchant](ctx, d, router.GetMerchant{EstateID: input.EstateID, MerchantID: input.MerchantID})
		if err != nil {
			return nil, err
		}
		return &GetMerchantOutput{Body: m}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-merchant",
		Method:      http.MethodPut,
		Path:        "/estates/{estateID}/merchants/{merchantID}",
		Summary:     "Update a merchant's name or settlement schedule",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateMerchantInput) (*IDOutput, error) {
		return command(ctx, d, router.UpdateMerchant{
			EstateID:           input.EstateID,
			MerchantID:         input.MerchantID,
			Name:               input.Body.Name,
			SettlementSchedule: input.Body.SettlementSchedule,
		})
	})

	huma.Register(api, huma.Operation{
		OperationID:   "remove-merchant",
		Method:        http.MethodDelete,
		Path:          "/estates/{estateID}/merchants/{merchantID}",
		Summary:       "Remove a merchant",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *MerchantPath) (*struct{}, error) {
		_, err := command(ctx, d, router.RemoveMerchant{EstateID: input.EstateID, MerchantID: input.MerchantID})
		return nil, err
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-merchant-address",
		Method:      http.MethodPut,
		Path:        "/estates/{estateID}/merchants/{merchantID}/address",
		Summary:     "Replace a merchant's address",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateAddressInput) (*IDOutput, error) {
		return command(ctx, d, router.UpdateMerchantAddress{
			EstateID:   input.EstateID,
			MerchantID: input.MerchantID,
			Address:    input.Body.address(),
		})
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-merchant-contact",
		Method:      http.MethodPut,
		Path:        "/estates/{estateID}/merchants/{merchantID}/contact",
		Summary:     "Replace a merchant's contact",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateContactInput) (*IDOutput, error) {
		return command(ctx, d, router.UpdateMerchantContact{
			EstateID:   input.EstateID,
			MerchantID: input.MerchantID,
			Contact:    input.Body.contact(),
		})
	})

	// Operator assignments

	huma.Register(api, huma.Operation{
		OperationID: "list-merchant-operators",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/merchants/{merchantID}/operators",
		Summary:     "List a merchant's active operators",
		Tags:        tags,
	}, func(ctx context.Context, input *MerchantPath) (*MerchantOperatorsOutput, error) {
		ops, err := dispatch[[]domain.MerchantOperator](ctx, d, router.GetMerchantOperators{EstateID: input.EstateID, MerchantID: input.MerchantID})
		if err != nil {
			return nil, err
		}
		return &MerchantOperatorsOutput{Body: ops}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-merchant-operator",
		Method:      http.MethodPost,
		Path:        "/estates/{estateID}/merchants/{merchantID}/operators",
		Summary:     "Assign an operator to a merchant",
		Tags:        tags,
	}, func(ctx context.Context, input *AssignOperatorInput) (*IDOutput, error) {
		return command(ctx, d, router.AssignOperatorToMerchant{
			EstateID:       input.EstateID,
			MerchantID:     input.MerchantID,
			OperatorID:     input.Body.OperatorID,
			MerchantNumber: input.Body.MerchantNumber,
			TerminalNumber: input.Body.TerminalNumber,
		})
	})

	huma.Register(api, huma.Operation{
		OperationID:   "remove-merchant-operator",
		Method:        http.MethodDelete,
		Path:          "/estates/{estateID}/merchants/{merchantID}/operators/{operatorID}",
		Summary:       "Remove an operator from a merchant",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *MerchantOperatorPath) (*struct{}, error) {
		_, err := command(ctx, d, router.RemoveOperatorFromMerchant{
			EstateID:   input.EstateID,
			MerchantID: input.MerchantID,
			OperatorID: input.OperatorID,
		})
		return nil, err
	})

	// Contract assignments

	huma.Register(api, huma.Operation{
		OperationID: "list-merchant-contracts",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/merchants/{merchantID}/contracts",
		Summary:     "List a merchant's contracts",
		Tags:        tags,
	}, func(ctx context.Context, input *MerchantPath) (*MerchantContractsOutput, error) {
		cs, err := dispatch[[]domain.MerchantContract](ctx, d, router.GetMerchantContracts{EstateID: input.EstateID, MerchantID: input.MerchantID})
		if err != nil {
			return nil, err
		}
		return &MerchantContractsOutput{Body: cs}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-merchant-contract",
		Method:      http.MethodPost,
		Path:        "/estates/{estateID}/merchants/{merchantID}/contracts",
		Summary:     "Assign a contract to a merchant",
		Tags:        tags,
	}, func(ctx context.Context, input *AssignContractInput) (*IDOutput, error) {
		return command(ctx, d, router.AssignContractToMerchant{
			EstateID:   input.EstateID,
			MerchantID: input.MerchantID,
			ContractID: input.Body.ContractID,
		})
	})

	huma.Register(api, huma.Operation{
		OperationID:   "remove-merchant-contract",
		Method:        http.MethodDelete,
		Path:          "/estates/{estateID}/merchants/{merchantID}/contracts/{contractID}",
		Summary:       "Remove a contract from a merchant",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *MerchantContractPath) (*struct{}, error) {
		_, err := command(ctx, d, router.RemoveContractFromMerchant{
			EstateID:   input.EstateID,
			MerchantID: input.MerchantID,
			ContractID: input.ContractID,
		})
		return nil, err
	})

	// Devices and deposits

	huma.Register(api, huma.Operation{
		OperationID: "list-merchant-devices",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/merchants/{merchantID}/devices",
		Summary:     "List a merchant's devices",
		Tags:        tags,
	}, func(ctx context.Context, input *MerchantPath) (*MerchantDevicesOutput, error) {
		devices, err := dispatch[map[uuid.UUID]string](ctx, d, router.GetMerchantDevices{EstateID: input.EstateID, MerchantID: input.MerchantID})
		if err != nil {
			return nil, err
		}

		out := make([]Device, 0, len(devices))
		for id, identifier := range devices {
			out = append(out, Device{ID: id, Identifier: identifier})
		}
		slices.SortFunc(out, func(a, b Device) int {
			return cmp.Or(cmp.Compare(a.Identifier, b.Identifier), cmp.Compare(a.ID.String(), b.ID.String()))
		})
		return &MerchantDevicesOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-merchant-device",
		Method:        http.MethodPost,
		Path:          "/estates/{estateID}/merchants/{merchantID}/devices",
		Summary:       "Register a device for a merchant",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *AddDeviceInput) (*IDOutput, error) {
		deviceID := input.Body.ID
		if deviceID == uuid.Nil {
			deviceID = uuid.New()
		}
		if _, err := command(ctx, d, router.AddMerchantDevice{
			EstateID:         input.EstateID,
			MerchantID:       input.MerchantID,
			DeviceID:         deviceID,
			DeviceIdentifier: input.Body.Identifier,
		}); err != nil {
			return nil, err
		}
		return idOutput(deviceID), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "swap-merchant-device",
		Method:      http.MethodPut,
		Path:        "/estates/{estateID}/merchants/{merchantID}/devices/{deviceID}",
		Summary:     "Swap the identifier of a merchant device",
		Tags:        tags,
	}, func(ctx context.Context, input *SwapDeviceInput) (*IDOutput, error) {
		if _, err := command(ctx, d, router.SwapMerchantDevice{
			EstateID:            input.EstateID,
			MerchantID:          input.MerchantID,
			DeviceID:            input.DeviceID,
			NewDeviceIdentifier: input.Body.Identifier,
		}); err != nil {
			return nil, err
		}
		return idOutput(input.DeviceID), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "make-merchant-deposit",
		Method:        http.MethodPost,
		Path:          "/estates/{estateID}/merchants/{merchantID}/deposits",
		Summary:       "Credit a merchant's balance",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *DepositInput) (*IDOutput, error) {
		depositID := input.Body.ID
		if depositID == uuid.Nil {
			depositID = uuid.New()
		}
		if _, err := command(ctx, d, router.MakeMerchantDeposit{
			EstateID:   input.EstateID,
			MerchantID: input.MerchantID,
			DepositID:  depositID,
			Amount:     domain.MoneyFromFloat(input.Body.Amount),
			Date:       input.Body.Date,
			Reference:  input.Body.Reference,
		}); err != nil {
			return nil, err
		}
		return idOutput(depositID), nil
	})
}
