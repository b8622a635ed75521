package dto

type CreateOrderInput struct {
	Type        string
	TableID     *string
	DeliveryFee float64
	Items       []CreateOrderItemInput
}

type CreateOrderItemInput struct {
	MenuItemID *string
	Name       string
	Quantity   int
	UnitPrice  float64
}
