package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/notify"
	"github.com/tablier/resto-backoffice/internal/order"
	"github.com/tablier/resto-backoffice/internal/order/dto"
	"github.com/tablier/resto-backoffice/pkg/logger"
)

type orderUseCase struct {
	repo        order.Repository
	decrementer order.StockDecrementer
	notifier    notify.Notifier
	logger      logger.Logger
}

func NewOrderUseCase(repo order.Repository, decrementer order.StockDecrementer, notifier notify.Notifier, log logger.Logger) order.UseCase {
	return &orderUseCase{
		repo:        repo,
		decrementer: decrementer,
		notifier:    notifier,
		logger:      log,
	}
}

func (uc *orderUseCase) Create(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	orderType := model.OrderType(input.Type)
	if !orderType.Valid() || len(input.Items) == 0 || input.DeliveryFee < 0 {
		return nil, order.ErrInvalidOrder
	}

	now := time.Now()
	ord := &model.Order{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Status:      model.OrderStatusPending,
		Type:        orderType,
		DeliveryFee: input.DeliveryFee,
		TableID:     input.TableID,
	}

	// Total is fixed here and never re-priced afterwards.
	total := input.DeliveryFee
	for _, item := range input.Items {
		if item.Quantity < 1 || item.UnitPrice < 0 || item.Name == "" {
			return nil, order.ErrInvalidOrder
		}
		total += item.UnitPrice * float64(item.Quantity)
		ord.Items = append(ord.Items, model.OrderItem{
			ID:         uuid.New().String(),
			OrderID:    ord.ID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}
	ord.Total = total

	if err := uc.repo.Create(ctx, ord); err != nil {
		return nil, err
	}
	return ord, nil
}

func (uc *orderUseCase) GetByID(ctx context.Context, id string) (*model.Order, error) {
	ord, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, order.ErrOrderNotFound
	}
	return ord, nil
}

func (uc *orderUseCase) List(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *orderUseCase) Transition(ctx context.Context, orderID string, target model.OrderStatus) (*dto.TransitionResult, error) {
	if !target.Valid() {
		return nil, order.ErrInvalidTransition
	}

	var previous model.OrderStatus
	ord, err := uc.repo.UpdateStatus(ctx, orderID, func(current model.OrderStatus) (model.OrderStatus, error) {
		previous = current
		if current == target {
			// Idempotent: asking for the status the order already has succeeds
			// without a write, a movement, or an event.
			return current, nil
		}
		if current.Terminal() {
			return current, order.ErrInvalidTransition
		}
		return target, nil
	})
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, order.ErrOrderNotFound
	}

	result := &dto.TransitionResult{Order: ord}
	if previous == target {
		return result, nil
	}

	// The status write is already committed. Stock consumption happens once,
	// on the first entry into preparing; its failure must not stall the
	// kitchen workflow, so it degrades to warnings on the result.
	if target == model.OrderStatusPreparing && !previous.InPreparationOrLater() {
		result.Warnings = uc.decrementer.DecrementForOrder(ctx, ord)
		for _, w := range result.Warnings {
			uc.logger.Warn("stock decrement incomplete",
				zap.String("order_id", ord.ID), zap.String("warning", w))
		}
	}

	if err := uc.notifier.OrderStatusChanged(ctx, ord.ID, string(ord.Status)); err != nil {
		uc.logger.Warn("failed to publish order status event",
			zap.String("order_id", ord.ID), zap.Error(err))
	}

	return result, nil
}
