package usecase

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/order"
	"github.com/tablier/resto-backoffice/internal/recipe"
	"github.com/tablier/resto-backoffice/internal/stock"
	stockdto "github.com/tablier/resto-backoffice/internal/stock/dto"
	"github.com/tablier/resto-backoffice/pkg/logger"
)

type stockDecrementer struct {
	resolver recipe.Resolver
	stock    stock.UseCase
	logger   logger.Logger
}

func NewStockDecrementer(resolver recipe.Resolver, stockUC stock.UseCase, log logger.Logger) order.StockDecrementer {
	return &stockDecrementer{
		resolver: resolver,
		stock:    stockUC,
		logger:   log,
	}
}

// DecrementForOrder aggregates recipe consumption across all items of the
// order and applies one decrement per ingredient. Items without a recipe are
// skipped; a failing ingredient is reported as a warning and the rest still
// decrement. At-most-once per order is the caller's responsibility (the
// first-entry-into-preparing guard).
func (d *stockDecrementer) DecrementForOrder(ctx context.Context, ord *model.Order) []string {
	var warnings []string
	totals := map[string]float64{}

	for _, item := range ord.Items {
		if item.MenuItemID == nil {
			continue // manually entered item, not inventory-tracked
		}
		lines, err := d.resolver.Resolve(ctx, *item.MenuItemID)
		if err != nil {
			d.logger.Error("recipe lookup failed",
				zap.String("order_id", ord.ID),
				zap.String("menu_item_id", *item.MenuItemID),
				zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("recipe lookup failed for item %q", item.Name))
			continue
		}
		for _, line := range lines {
			totals[line.IngredientID] += line.QuantityPerUnit * float64(item.Quantity)
		}
	}

	ingredientIDs := make([]string, 0, len(totals))
	for id := range totals {
		ingredientIDs = append(ingredientIDs, id)
	}
	sort.Strings(ingredientIDs)

	orderID := ord.ID
	for _, ingredientID := range ingredientIDs {
		_, err := d.stock.Decrement(ctx, &stockdto.DecrementInput{
			IngredientID: ingredientID,
			Quantity:     totals[ingredientID],
			Reason:       "order:" + orderID,
			OrderID:      &orderID,
			ActorID:      "system",
		})
		if err != nil {
			d.logger.Error("stock decrement failed",
				zap.String("order_id", orderID),
				zap.String("ingredient_id", ingredientID),
				zap.Float64("quantity", totals[ingredientID]),
				zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("decrement failed for ingredient %s: %v", ingredientID, err))
		}
	}

	return warnings
}
