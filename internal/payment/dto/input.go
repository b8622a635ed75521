package dto

import "github.com/tablier/resto-backoffice/internal/model"

type ProcessPaymentInput struct {
	OrderID   string
	Amount    float64
	Reference *string
	CashierID string
}

// PaymentResult carries the change due back to the caller; change is computed
// for display and never persisted.
type PaymentResult struct {
	Payment     *model.Payment
	Transaction *model.Transaction
	Change      float64
}
