// Package notify is the outbound event sink for external consumers
// (real-time UI refresh, reporting). Delivery is fire-and-forget: callers
// log publish failures and move on, a dropped event never fails the
// operation that produced it.
package notify

import "context"

type Notifier interface {
	OrderStatusChanged(ctx context.Context, orderID, newStatus string) error
	StockChanged(ctx context.Context, ingredientID string, newQuantity float64) error
}

// NopNotifier discards all events. Used in tests and when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) OrderStatusChanged(ctx context.Context, orderID, newStatus string) error {
	return nil
}

func (NopNotifier) StockChanged(ctx context.Context, ingredientID string, newQuantity float64) error {
	return nil
}
