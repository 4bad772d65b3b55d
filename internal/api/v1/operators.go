package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
	"github.com/gosuda/estatehub/internal/router"
)

type OperatorPath struct {
	EstateID   uuid.UUID `path:"estateID" doc:"Estate ID"`
	OperatorID uuid.UUID `path:"operatorID" doc:"Operator ID"`
}

type ListOperatorsOutput struct {
	Body []domain.Operator
}

type GetOperatorOutput struct {
	Body domain.Operator
}

type OperatorBody struct {
	Name                        string `json:"name" minLength:"1" maxLength:"255" doc:"Operator name"`
	RequireCustomMerchantNumber bool   `json:"require_custom_merchant_number,omitempty"`
	RequireCustomTerminalNumber bool   `json:"require_custom_terminal_number,omitempty"`
}

type CreateOperatorInput struct {
	EstatePath
	Body struct {
		ID uuid.UUID `json:"id,omitempty" doc:"Operator ID; minted when omitted"`
		OperatorBody
	}
}

type UpdateOperatorInput struct {
	OperatorPath
	Body OperatorBody
}

func RegisterOperatorRoutes(api huma.API, d Dispatcher) {
	tags := []string{"Operators"}

	huma.Register(api, huma.Operation{
		OperationID: "list-operators",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/operators",
		Summary:     "List operators in an estate",
		Tags:        tags,
	}, func(ctx context.Context, input *EstatePath) (*ListOperatorsOutput, error) {
		ops, err := dispatch[[]domain.Operator](ctx, d, router.GetOperators{EstateID: input.EstateID})
		if err != nil {
			return nil, err
		}
		return &ListOperatorsOutput{Body: ops}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-operator",
		Method:        http.MethodPost,
		Path:          "/estates/{estateID}/operators",
		Summary:       "Create an operator",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateOperatorInput) (*IDOutput, error) {
		return command(ctx, d, router.CreateOperator{
			EstateID:                    input.EstateID,
			OperatorID:                  input.Body.ID,
			Name:                        input.Body.Name,
			RequireCustomMerchantNumber: input.Body.RequireCustomMerchantNumber,
			RequireCustomTerminalNumber: input.Body.RequireCustomTerminalNumber,
		})
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-operator",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}/operators/{operatorID}",
		Summary:     "Get an operator",
		Tags:        tags,
	}, func(ctx context.Context, input *OperatorPath) (*GetOperatorOutput, error) {
		o, err := dispatch[domain.Operator](ctx, d, router.GetOperator{EstateID: input.EstateID, OperatorID: input.OperatorID})
		if err != nil {
			return nil, err
		}
		return &GetOperatorOutput{Body: o}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-operator",
		Method:      http.MethodPut,
		Path:        "/estates/{estateID}/operators/{operatorID}",
		Summary:     "Update an operator",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateOperatorInput) (*IDOutput, error) {
		return command(ctx, d, router.UpdateOperator{
			EstateID:                    input.EstateID,
			OperatorID:                  input.OperatorID,
			Name:                        input.Body.Name,
			RequireCustomMerchantNumber: input.Body.RequireCustomMerchantNumber,
			RequireCustomTerminalNumber: input.Body.RequireCustomTerminalNumber,
		})
	})

	huma.Register(api, huma.Operation{
		OperationID:   "remove-operator",
		Method:        http.MethodDelete,
		Path:          "/estates/{estateID}/operators/{operatorID}",
		Summary:       "Remove an operator",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *OperatorPath) (*struct{}, error) {
		_, err := command(ctx, d, router.RemoveOperator{EstateID: input.EstateID, OperatorID: input.OperatorID})
		return nil, err
	})
}
