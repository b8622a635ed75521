package payment

import (
	"context"

	"github.com/tablier/resto-backoffice/internal/model"
)

type Repository interface {
	GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error)

	// CreateWithTransaction inserts the payment and its sale ledger entry in
	// one database transaction. A duplicate payment for the same order (the
	// payments.order_id unique constraint) returns ErrAlreadyPaid.
	CreateWithTransaction(ctx context.Context, p *model.Payment, t *model.Transaction) error
}
