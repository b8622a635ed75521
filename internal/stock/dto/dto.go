package dto

import "time"

type IngredientFilters struct {
	ActiveOnly bool
	LowStock   bool // on-hand <= min_stock, min_stock > 0
	Page       int
	PageSize   int
}

type MovementFilters struct {
	IngredientID string
	OrderID      string
	MovementType string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PageSize     int
}
