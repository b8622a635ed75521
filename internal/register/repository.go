package register

import (
	"context"
	"time"

	"github.com/tablier/resto-backoffice/internal/register/dto"
)

type Repository interface {
	// ServedOrderStats counts served orders created inside [from, to] and
	// sums their totals.
	ServedOrderStats(ctx context.Context, from, to time.Time) (count int, total float64, err error)

	// CompletedPayments lists completed payments created inside [from, to],
	// each joined with its order's total.
	CompletedPayments(ctx context.Context, from, to time.Time) ([]dto.PaymentWithOrderTotal, error)
}
