package payment

import (
	"context"

	"github.com/tablier/resto-backoffice/internal/payment/dto"
)

type UseCase interface {
	// Process accepts a cash payment against a served order. Preconditions
	// are checked in a fixed order, each with its own error: order exists,
	// not already paid, served, positive total, sufficient amount.
	Process(ctx context.Context, input *dto.ProcessPaymentInput) (*dto.PaymentResult, error)
}
