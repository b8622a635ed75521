package model

import "time"

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusVoided    PaymentStatus = "voided"
)

type Payment struct {
	ID        string        `db:"id" json:"id"`
	OrderID   string        `db:"order_id" json:"order_id"`
	Amount    float64       `db:"amount" json:"amount"`
	Method    string        `db:"method" json:"method"`
	Status    PaymentStatus `db:"status" json:"status"`
	CashierID *string       `db:"cashier_id" json:"cashier_id"`
	Reference *string       `db:"reference" json:"reference"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

type TransactionType string

const (
	TransactionSale       TransactionType = "sale"
	TransactionRefund     TransactionType = "refund"
	TransactionAdjustment TransactionType = "adjustment"
)

// Transaction is a cash ledger entry. Rows are never updated or deleted.
type Transaction struct {
	ID          string          `db:"id" json:"id"`
	Type        TransactionType `db:"transaction_type" json:"transaction_type"`
	Amount      float64         `db:"amount" json:"amount"`
	Method      string          `db:"method" json:"method"`
	OrderID     *string         `db:"order_id" json:"order_id"`
	CashierID   *string         `db:"cashier_id" json:"cashier_id"`
	Description string          `db:"description" json:"description"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
