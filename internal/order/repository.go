package order

import (
	"context"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/order/dto"
)

type Repository interface {
	// Create persists the order and its items in one transaction.
	Create(ctx context.Context, ord *model.Order) error

	GetByID(ctx context.Context, id string) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)

	// UpdateStatus loads the order under a row-level lock, calls decide with
	// the current status, and commits the status decide returns. Returning the
	// current status unchanged commits without writing. A decide error rolls
	// the transaction back and is returned as-is. A missing order yields
	// (nil, nil). Concurrent calls for the same order serialize on the row
	// lock, so decide always sees the latest committed status.
	UpdateStatus(ctx context.Context, orderID string, decide func(current model.OrderStatus) (model.OrderStatus, error)) (*model.Order, error)
}
