package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/notify"
	"github.com/tablier/resto-backoffice/internal/stock"
	"github.com/tablier/resto-backoffice/internal/stock/dto"
	"github.com/tablier/resto-backoffice/pkg/logger"
)

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockRetry    = 100 * time.Millisecond
)

type stockUseCase struct {
	repo     stock.Repository
	locker   stock.Locker
	notifier notify.Notifier
	logger   logger.Logger
}

func NewStockUseCase(repo stock.Repository, locker stock.Locker, notifier notify.Notifier, log logger.Logger) stock.UseCase {
	return &stockUseCase{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		logger:   log,
	}
}

func (uc *stockUseCase) GetIngredient(ctx context.Context, id string) (*model.Ingredient, error) {
	ing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, stock.ErrIngredientNotFound
	}
	return ing, nil
}

func (uc *stockUseCase) ListLowStock(ctx context.Context, page, pageSize int) ([]model.Ingredient, int, error) {
	return uc.repo.FindAll(ctx, &dto.IngredientFilters{
		ActiveOnly: true,
		LowStock:   true,
		Page:       page,
		PageSize:   pageSize,
	})
}

func (uc *stockUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

// Decrement applies max(0, current - qty). The stored movement delta is the
// applied amount, so replaying the movement log reconstructs on-hand exactly;
// when the floor clamps, the requested amount is kept in the notes.
func (uc *stockUseCase) Decrement(ctx context.Context, input *dto.DecrementInput) (*model.Ingredient, error) {
	if input.Quantity <= 0 {
		return nil, stock.ErrInvalidQuantity
	}

	return uc.mutate(ctx, input.IngredientID, func(ing *model.Ingredient) *model.StockMovement {
		before := ing.Quantity
		after := before - input.Quantity
		notes := input.Reason
		if after < 0 {
			after = 0
			notes = fmt.Sprintf("%s (requested %.3f, clamped at zero)", input.Reason, input.Quantity)
		}
		ing.Quantity = after

		return &model.StockMovement{
			MovementType:   model.MovementOut,
			QuantityChange: after - before,
			QuantityBefore: before,
			QuantityAfter:  after,
			OrderID:        input.OrderID,
			CreatedBy:      actorRef(input.ActorID),
			Notes:          notes,
		}
	})
}

func (uc *stockUseCase) Increment(ctx context.Context, input *dto.IncrementInput) (*model.Ingredient, error) {
	if input.Quantity <= 0 {
		return nil, stock.ErrInvalidQuantity
	}

	return uc.mutate(ctx, input.IngredientID, func(ing *model.Ingredient) *model.StockMovement {
		qty := input.Quantity
		if input.IsPack && ing.PackSize > 0 {
			qty *= ing.PackSize
		}

		before := ing.Quantity
		ing.Quantity = before + qty

		return &model.StockMovement{
			MovementType:   model.MovementIn,
			QuantityChange: qty,
			QuantityBefore: before,
			QuantityAfter:  ing.Quantity,
			CreatedBy:      actorRef(input.ActorID),
			Notes:          input.Reason,
		}
	})
}

func (uc *stockUseCase) SetAbsolute(ctx context.Context, input *dto.AdjustInput) (*model.Ingredient, error) {
	if input.NewQuantity < 0 {
		return nil, stock.ErrNegativeQuantity
	}

	return uc.mutate(ctx, input.IngredientID, func(ing *model.Ingredient) *model.StockMovement {
		before := ing.Quantity
		ing.Quantity = input.NewQuantity

		return &model.StockMovement{
			MovementType:   model.MovementAdjust,
			QuantityChange: input.NewQuantity - before,
			QuantityBefore: before,
			QuantityAfter:  input.NewQuantity,
			CreatedBy:      actorRef(input.ActorID),
			Notes:          input.Description,
		}
	})
}

// mutate serializes the read-modify-write of one ingredient behind a
// per-ingredient lock, persists quantity and movement atomically, and emits
// the new level to the event sink.
func (uc *stockUseCase) mutate(ctx context.Context, ingredientID string, build func(*model.Ingredient) *model.StockMovement) (*model.Ingredient, error) {
	lockKey := "lock:stock:" + ingredientID
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.String("ingredient_id", ingredientID), zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(lockRetry)
	}
	if !acquired {
		return nil, stock.ErrStockBusy
	}
	defer uc.locker.ReleaseLock(ctx, lockKey, lockValue)

	ing, err := uc.repo.GetByID(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, stock.ErrIngredientNotFound
	}

	now := time.Now()
	movement := build(ing)
	movement.ID = uuid.New().String()
	movement.IngredientID = ing.ID
	movement.CreatedAt = now
	ing.UpdatedAt = now

	if err := uc.repo.ApplyMovement(ctx, ing, movement); err != nil {
		return nil, err
	}

	if err := uc.notifier.StockChanged(ctx, ing.ID, ing.Quantity); err != nil {
		uc.logger.Warn("failed to publish stock level event",
			zap.String("ingredient_id", ing.ID), zap.Error(err))
	}

	return ing, nil
}

func actorRef(actorID string) *string {
	if actorID == "" || actorID == "system" {
		return nil
	}
	return &actorID
}
