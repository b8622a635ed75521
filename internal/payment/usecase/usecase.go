package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/order"
	"github.com/tablier/resto-backoffice/internal/payment"
	"github.com/tablier/resto-backoffice/internal/payment/dto"
	"github.com/tablier/resto-backoffice/pkg/logger"
)

type paymentUseCase struct {
	repo   payment.Repository
	orders order.Repository
	logger logger.Logger
}

func NewPaymentUseCase(repo payment.Repository, orders order.Repository, log logger.Logger) payment.UseCase {
	return &paymentUseCase{
		repo:   repo,
		orders: orders,
		logger: log,
	}
}

func (uc *paymentUseCase) Process(ctx context.Context, input *dto.ProcessPaymentInput) (*dto.PaymentResult, error) {
	ord, err := uc.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, order.ErrOrderNotFound
	}

	existing, err := uc.repo.GetByOrderID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, payment.ErrAlreadyPaid
	}

	if ord.Status != model.OrderStatusServed {
		return nil, payment.ErrNotServedYet
	}
	if ord.Total <= 0 {
		return nil, payment.ErrInvalidOrderTotal
	}
	if input.Amount < ord.Total {
		return nil, payment.ErrInsufficientAmount
	}

	now := time.Now()
	orderID := ord.ID
	p := &model.Payment{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		Amount:    input.Amount,
		Method:    "cash",
		Status:    model.PaymentStatusCompleted,
		CashierID: cashierRef(input.CashierID),
		Reference: input.Reference,
		CreatedAt: now,
	}
	t := &model.Transaction{
		ID:          uuid.New().String(),
		Type:        model.TransactionSale,
		Amount:      input.Amount,
		Method:      "cash",
		OrderID:     &orderID,
		CashierID:   cashierRef(input.CashierID),
		Description: fmt.Sprintf("cash sale for order %s", orderID),
		CreatedAt:   now,
	}

	// The payments.order_id unique constraint is the race guard: two
	// concurrent calls both pass the read check, only one insert survives.
	if err := uc.repo.CreateWithTransaction(ctx, p, t); err != nil {
		return nil, err
	}

	uc.logger.Info("payment accepted",
		zap.String("order_id", orderID),
		zap.Float64("amount", input.Amount),
		zap.Float64("change", input.Amount-ord.Total))

	return &dto.PaymentResult{
		Payment:     p,
		Transaction: t,
		Change:      input.Amount - ord.Total,
	}, nil
}

func cashierRef(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
