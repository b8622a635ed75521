package stock

import (
	"context"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/stock/dto"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*model.Ingredient, error)
	FindAll(ctx context.Context, filters *dto.IngredientFilters) ([]model.Ingredient, int, error)

	// ApplyMovement persists the new on-hand quantity and the movement record
	// in one database transaction.
	ApplyMovement(ctx context.Context, ing *model.Ingredient, movement *model.StockMovement) error

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)

	// MovementSums returns the sum of quantity_change per ingredient, used by
	// the nightly drift audit to replay the movement log against on-hand.
	MovementSums(ctx context.Context) (map[string]float64, error)
}
