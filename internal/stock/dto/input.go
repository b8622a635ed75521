package dto

type DecrementInput struct {
	IngredientID string
	Quantity     float64
	Reason       string
	OrderID      *string
	ActorID      string
}

type IncrementInput struct {
	IngredientID string
	Quantity     float64
	IsPack       bool
	Reason       string
	ActorID      string
}

type AdjustInput struct {
	IngredientID string
	NewQuantity  float64
	Description  string
	ActorID      string
}
