package stock

import (
	"context"
	"time"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/stock/dto"
)

type UseCase interface {
	GetIngredient(ctx context.Context, id string) (*model.Ingredient, error)
	ListLowStock(ctx context.Context, page, pageSize int) ([]model.Ingredient, int, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)

	// Decrement lowers on-hand by input.Quantity, floored at zero.
	Decrement(ctx context.Context, input *dto.DecrementInput) (*model.Ingredient, error)
	// Increment raises on-hand; IsPack multiplies by the ingredient pack size.
	Increment(ctx context.Context, input *dto.IncrementInput) (*model.Ingredient, error)
	// SetAbsolute overwrites on-hand with a counted value (manual audit correction).
	SetAbsolute(ctx context.Context, input *dto.AdjustInput) (*model.Ingredient, error)
}

// Locker serializes mutations of a single ingredient across processes.
// Satisfied by cache.RedisClient.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
