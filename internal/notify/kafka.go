package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tablier/resto-backoffice/pkg/broker"
)

type Event struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type OrderStatusPayload struct {
	OrderID   string `json:"order_id"`
	NewStatus string `json:"new_status"`
}

type StockLevelPayload struct {
	IngredientID string  `json:"ingredient_id"`
	NewQuantity  float64 `json:"new_quantity"`
}

// KafkaNotifier publishes order-status and stock-level events on two topics.
type KafkaNotifier struct {
	orders *broker.KafkaProducer
	stock  *broker.KafkaProducer
}

func NewKafkaNotifier(orders, stock *broker.KafkaProducer) *KafkaNotifier {
	return &KafkaNotifier{orders: orders, stock: stock}
}

func (n *KafkaNotifier) OrderStatusChanged(ctx context.Context, orderID, newStatus string) error {
	return publish(ctx, n.orders, "OrderStatusChanged", orderID, OrderStatusPayload{
		OrderID:   orderID,
		NewStatus: newStatus,
	})
}

func (n *KafkaNotifier) StockChanged(ctx context.Context, ingredientID string, newQuantity float64) error {
	return publish(ctx, n.stock, "StockLevelChanged", ingredientID, StockLevelPayload{
		IngredientID: ingredientID,
		NewQuantity:  newQuantity,
	})
}

func publish(ctx context.Context, p *broker.KafkaProducer, eventType, key string, payload interface{}) error {
	value, err := json.Marshal(Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		return err
	}
	return p.Publish(ctx, []byte(key), value)
}
