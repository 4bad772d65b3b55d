package v1

import (
	"context"

	"github.com/gosuda/estatehub/internal/router"
)

// Dispatcher abstracts request dispatch for handler testing.
// *router.Router satisfies this interface.
type Dispatcher interface {
	Dispatch(ctx context.Context, req router.Request) (any, error)
}
