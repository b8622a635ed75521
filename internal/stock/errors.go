package stock

import "errors"

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrNegativeQuantity   = errors.New("quantity must not be negative")
	ErrStockBusy          = errors.New("stock is busy, please try again later")
)
