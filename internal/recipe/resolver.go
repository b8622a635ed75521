// Package recipe maps sellable menu items to the ingredients they consume.
package recipe

import (
	"context"

	"github.com/tablier/resto-backoffice/internal/model"
)

// Resolver returns the per-unit ingredient consumption of a menu item.
// An empty slice is a valid answer: the item is not inventory-tracked.
type Resolver interface {
	Resolve(ctx context.Context, menuItemID string) ([]model.RecipeLine, error)
}
