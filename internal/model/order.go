package model

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the five known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusServed, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further transition.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusServed || s == OrderStatusCancelled
}

// InPreparationOrLater reports whether an order in status s has already
// entered the kitchen workflow. Used to guard the one-shot stock decrement.
func (s OrderStatus) InPreparationOrLater() bool {
	return s == OrderStatusPreparing || s == OrderStatusReady || s == OrderStatusServed
}

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}

type Order struct {
	BaseModel
	Status      OrderStatus `db:"status" json:"status"`
	Type        OrderType   `db:"order_type" json:"order_type"`
	Total       float64     `db:"total" json:"total"`
	DeliveryFee float64     `db:"delivery_fee" json:"delivery_fee"`
	TableID     *string     `db:"table_id" json:"table_id"`
	Items       []OrderItem `db:"-" json:"items"`
}

// OrderItem lines are written once at order creation and never updated.
type OrderItem struct {
	ID         string  `db:"id" json:"id"`
	OrderID    string  `db:"order_id" json:"order_id"`
	MenuItemID *string `db:"menu_item_id" json:"menu_item_id"`
	Name       string  `db:"name" json:"name"`
	Quantity   int     `db:"quantity" json:"quantity"`
	UnitPrice  float64 `db:"unit_price" json:"unit_price"`
}
