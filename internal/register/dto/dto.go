package dto

import "time"

type PaymentWithOrderTotal struct {
	PaymentID  string    `db:"payment_id" json:"payment_id"`
	OrderID    string    `db:"order_id" json:"order_id"`
	Amount     float64   `db:"amount" json:"amount"`
	OrderTotal float64   `db:"order_total" json:"order_total"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type DailySummary struct {
	Date              string  `json:"date"`
	ServedOrdersCount int     `json:"served_orders_count"`
	ExpectedAmount    float64 `json:"expected_amount"`
	ReceivedCash      float64 `json:"received_cash"`
	ChangeGiven       float64 `json:"change_given"`
	// Variance = received - change - expected. Zero means every served order
	// of the day was settled in full inside the same window.
	Variance float64 `json:"variance"`
}
