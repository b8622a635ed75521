package model

import "time"

type Ingredient struct {
	BaseModel
	Name         string  `db:"name" json:"name"`
	Unit         string  `db:"unit" json:"unit"`
	Quantity     float64 `db:"quantity" json:"quantity"`
	MinStock     float64 `db:"min_stock" json:"min_stock"`
	PackSize     float64 `db:"pack_size" json:"pack_size"`
	PricePerUnit float64 `db:"price_per_unit" json:"price_per_unit"`
	IsActive     bool    `db:"is_active" json:"is_active"`
}

type MovementType string

const (
	MovementIn     MovementType = "IN"
	MovementOut    MovementType = "OUT"
	MovementAdjust MovementType = "ADJUST"
)

// StockMovement is an append-only audit record. QuantityChange is the delta
// actually applied to the on-hand figure, so that replaying movements in
// created_at order reconstructs the current quantity.
type StockMovement struct {
	ID             string       `db:"id" json:"id"`
	IngredientID   string       `db:"ingredient_id" json:"ingredient_id"`
	MovementType   MovementType `db:"movement_type" json:"movement_type"`
	QuantityChange float64      `db:"quantity_change" json:"quantity_change"`
	QuantityBefore float64      `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  float64      `db:"quantity_after" json:"quantity_after"`
	OrderID        *string      `db:"order_id" json:"order_id"`
	CreatedBy      *string      `db:"created_by" json:"created_by"`
	Notes          string       `db:"notes" json:"notes"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}

// RecipeLine maps one menu item to one ingredient it consumes per unit sold.
type RecipeLine struct {
	MenuItemID      string  `db:"menu_item_id" json:"menu_item_id"`
	IngredientID    string  `db:"ingredient_id" json:"ingredient_id"`
	QuantityPerUnit float64 `db:"quantity_per_unit" json:"quantity_per_unit"`
}
