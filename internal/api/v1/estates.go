package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
	"github.com/gosuda/estatehub/internal/router"
)

type EstatePath struct {
	EstateID uuid.UUID `path:"estateID" doc:"Estate ID"`
}

type ListEstatesInput struct{}

type ListEstatesOutput struct {
	Body []domain.EstateRecord
}

type GetEstateOutput struct {
	Body domain.Estate
}

type PutEstateInput struct {
	EstatePath
	Body struct {
		Name      string `json:"name" minLength:"1" maxLength:"255" doc:"Estate name"`
		Reference string `json:"reference,omitempty" maxLength:"64" doc:"Estate reference"`
	}
}

type ResetInput struct{}

func RegisterEstateRoutes(api huma.API, d Dispatcher) {
	huma.Register(api, huma.Operation{
		OperationID: "list-estates",
		Method:      http.MethodGet,
		Path:        "/estates",
		Summary:     "List estates",
		Tags:        []string{"Estates"},
	}, func(ctx context.Context, _ *ListEstatesInput) (*ListEstatesOutput, error) {
		estates, err := dispatch[[]domain.EstateRecord](ctx, d, router.GetEstates{})
		if err != nil {
			return nil, err
		}
		if estates == nil {
			estates = []domain.EstateRecord{}
		}
		return &ListEstatesOutput{Body: estates}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-estate",
		Method:      http.MethodGet,
		Path:        "/estates/{estateID}",
		Summary:     "Get an estate with its merchants, operators and contracts",
		Description: "Unknown estates return a placeholder rather than 404.",
		Tags:        []string{"Estates"},
	}, func(ctx context.Context, input *EstatePath) (*GetEstateOutput, error) {
		estate, err := dispatch[domain.Estate](ctx, d, router.GetEstate{EstateID: input.EstateID})
		if err != nil {
			return nil, err
		}
		return &GetEstateOutput{Body: estate}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-estate",
		Method:      http.MethodPut,
		Path:        "/estates/{estateID}",
		Summary:     "Create or rename an estate",
		Tags:        []string{"Estates"},
	}, func(ctx context.Context, input *PutEstateInput) (*IDOutput, error) {
		return command(ctx, d, router.UpsertEstate{
			EstateID:  input.EstateID,
			Name:      input.Body.Name,
			Reference: input.Body.Reference,
		})
	})

	huma.Register(api, huma.Operation{
		OperationID:   "reset-store",
		Method:        http.MethodPost,
		Path:          "/admin/reset",
		Summary:       "Discard all data and reload the default estate",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, _ *ResetInput) (*struct{}, error) {
		if _, err := d.Dispatch(ctx, router.ResetStore{}); err != nil {
			return nil, httpError(err)
		}
		return nil, nil
	})
}
