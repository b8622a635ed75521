package order

import (
	"context"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/order/dto"
)

type UseCase interface {
	Create(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)

	// Transition moves the order to target. Same-target calls are no-op
	// successes; terminal orders reject everything. The first entry into
	// preparing consumes ingredient stock; stock problems surface as
	// warnings on the result, never as a rollback of the status change.
	Transition(ctx context.Context, orderID string, target model.OrderStatus) (*dto.TransitionResult, error)
}

// StockDecrementer consumes the ingredient stock an order's items call for.
// Returned strings are soft warnings: per-ingredient failures that were
// logged and skipped so the order could keep moving.
type StockDecrementer interface {
	DecrementForOrder(ctx context.Context, ord *model.Order) []string
}
