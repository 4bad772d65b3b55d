package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
	"github.com/gosuda/estatehub/internal/router"
)

type ContractPath struct {
	EstateID   uuid.UUID `path:"estateID" doc:"Estate ID"`
	ContractID uuid.UUID `path:"contractID" doc:"Contract ID"`
}

type ProductPath struct {
	ContractPath
	ProductID uuid.UUID `path:"productID" doc:"Product ID"`
}

type FeePath struct {
	ProductPath
	FeeID uuid.UUID `path:"feeID" doc:"Transaction fee ID"`
}

type ListContractsOutput struct {
	Body []domain.Contract
}

type GetContractOutput struct {
	Body domain.Contract
}

type CreateContractInput struct {
	EstatePath
	Body struct {
		ID          uuid.UUID `json:"id,omitempty" doc:"Contract ID; minted when omitted"`
		OperatorID  uuid.UUID `json:"operator_id" doc:"Operator the contract is with"`
		Description string    `json:"description" minLength:"1" maxLength:"255"`
	}
}

type AddProductInput struct {
	ContractPath
	Body struct {
		ID          uuid.UUID `json:"id,omitempty" doc:"Product ID; minted when omitted"`
		Name        string    `json:"name" minLength:"1" maxLength:"255"`
		DisplayText string    `json:"display_text,omitempty" maxLength:"255"`
		Value       string    `json:"value,omitempty" doc:"Fixed amount such as 100.00, or Variable"`
	}
}

type AddFeeInput struct {
	ProductPath
	Body struct {
		ID              uuid.UUID `json:"id,omitempty" doc:"Fee ID; minted when omitted"`
		Description     string    `json:"description,omitempty" maxLength:"255"`
		Value           float64   `json:"value" minimum:"0"`
		CalculationType int       `json:"calculation_type,omitempty" enum:"0,1" doc:"0 fixed, 1 percentage"`
		FeeType         int       `json:"fee_type,omitempty" enum:"0,1" doc:"0 merchant, 1 service provider"`
	}
}

func RegisterContractRoutes(api huma.API, d Dispatcher) {
	tags := []string{"Contracts"}

	huma.Register(api, huma.Operation{
		OperationID: "list-contracts",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/contracts",
		Summary:     "List contracts in an estate",
		Tags:        tags,
	}, func(ctx context.Context, input *EstatePath) (*ListContractsOutput, error) {
		cs, err := dispatch[[]domain.Contract](ctx, d, router.GetContracts{EstateID: input.EstateID})
		if err != nil {
			return nil, err
		}
		return &ListContractsOutput{Body: cs}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-contract",
		Method:        http.MethodPost,
		Path:          "/estates/{estateID}/contracts",
		Summary:       "Create a contract with an operator",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateContractInput) (*IDOutput, error) {
		return command(ctx, d, router.CreateContract{
			EstateID:    input.EstateID,
			ContractID:  input.Body.ID,
			OperatorID:  input.Body.OperatorID,
			Description: input.Body.Description,
		})
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-contract",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/contracts/{contractID}",
		Summary:     "Get a contract with its products and fees",
		Tags:        tags,
	}, func(ctx context.Context, input *ContractPath) (*GetContractOutput, error) {
		c, err := dispatch[domain.Contract](ctx, d, router.GetContract{EstateID: input.EstateID, ContractID: input.ContractID})
		if err != nil {
			return nil, err
		}
		return &GetContractOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "remove-contract",
		Method:        http.MethodDelete,
		Path:          "/estates/{estateID}/contracts/{contractID}",
		Summary:       "Remove a contract",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *ContractPath) (*struct{}, error) {
		_, err := command(ctx, d, router.RemoveContract{EstateID: input.EstateID, ContractID: input.ContractID})
		return nil, err
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-contract-product",
		Method:        http.MethodPost,
		Path:          "/estates/{estateID}/contracts/{contractID}/products",
		Summary:       "Add a product to a contract",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *AddProductInput) (*IDOutput, error) {
		productID := input.Body.ID
		if productID == uuid.Nil {
			productID = uuid.New()
		}
		if _, err := command(ctx, d, router.AddProductToContract{
			EstateID:    input.EstateID,
			ContractID:  input.ContractID,
			ProductID:   productID,
			Name:        input.Body.Name,
			DisplayText: input.Body.DisplayText,
			Value:       input.Body.Value,
		}); err != nil {
			return nil, err
		}
		return idOutput(productID), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-product-fee",
		Method:        http.MethodPost,
		Path:          "/estates/{estateID}/contracts/{contractID}/products/{productID}/fees",
		Summary:       "Add a transaction fee to a product",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *AddFeeInput) (*IDOutput, error) {
		feeID := input.Body.ID
		if feeID == uuid.Nil {
			feeID = uuid.New()
		}
		if _, err := command(ctx, d, router.AddTransactionFeeToProduct{
			EstateID:        input.EstateID,
			ContractID:      input.ContractID,
			ProductID:       input.ProductID,
			FeeID:           feeID,
			Description:     input.Body.Description,
			Value:           input.Body.Value,
			CalculationType: domain.CalculationType(input.Body.CalculationType),
			FeeType:         domain.FeeType(input.Body.FeeType),
		}); err != nil {
			return nil, err
		}
		return idOutput(feeID), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "remove-product-fee",
		Method:        http.MethodDelete,
		Path:          "/estates/{estateID}/contracts/{contractID}/products/{productID}/fees/{feeID}",
		Summary:       "Remove a transaction fee from a product",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *FeePath) (*struct{}, error) {
		_, err := command(ctx, d, router.RemoveTransactionFeeFromProduct{
			EstateID:   input.EstateID,
			ContractID: input.ContractID,
			ProductID:  input.ProductID,
			FeeID:      input.FeeID,
		})
		return nil, err
	})
}
