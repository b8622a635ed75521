package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/stock"
	stockdto "github.com/tablier/resto-backoffice/internal/stock/dto"
	"github.com/tablier/resto-backoffice/pkg/logger"
)

type fakeResolver struct {
	recipes map[string][]model.RecipeLine
	failFor map[string]error
}

func (f *fakeResolver) Resolve(ctx context.Context, menuItemID string) ([]model.RecipeLine, error) {
	if err, ok := f.failFor[menuItemID]; ok {
		return nil, err
	}
	return f.recipes[menuItemID], nil
}

// fakeStockUseCase records decrements; only Decrement matters here.
type fakeStockUseCase struct {
	decrements []stockdto.DecrementInput
	failFor    map[string]error
}

func (f *fakeStockUseCase) Decrement(ctx context.Context, input *stockdto.DecrementInput) (*model.Ingredient, error) {
	if err, ok := f.failFor[input.IngredientID]; ok {
		return nil, err
	}
	f.decrements = append(f.decrements, *input)
	return &model.Ingredient{BaseModel: model.BaseModel{ID: input.IngredientID}}, nil
}

func (f *fakeStockUseCase) Increment(ctx context.Context, input *stockdto.IncrementInput) (*model.Ingredient, error) {
	return nil, nil
}

func (f *fakeStockUseCase) SetAbsolute(ctx context.Context, input *stockdto.AdjustInput) (*model.Ingredient, error) {
	return nil, nil
}

func (f *fakeStockUseCase) GetIngredient(ctx context.Context, id string) (*model.Ingredient, error) {
	return nil, nil
}

func (f *fakeStockUseCase) ListLowStock(ctx context.Context, page, pageSize int) ([]model.Ingredient, int, error) {
	return nil, 0, nil
}

func (f *fakeStockUseCase) ListMovements(ctx context.Context, filters *stockdto.MovementFilters) ([]model.StockMovement, int, error) {
	return nil, 0, nil
}

func orderWithItems(items ...model.OrderItem) *model.Order {
	return &model.Order{
		BaseModel: model.BaseModel{ID: "ord-1"},
		Status:    model.OrderStatusPreparing,
		Items:     items,
	}
}

func strPtr(s string) *string { return &s }

func TestDecrementForOrderAggregatesAcrossItems(t *testing.T) {
	resolver := &fakeResolver{recipes: map[string][]model.RecipeLine{
		"menu-burger": {
			{IngredientID: "ing-bread", QuantityPerUnit: 2},
			{IngredientID: "ing-beef", QuantityPerUnit: 0.15},
		},
		"menu-sandwich": {
			{IngredientID: "ing-bread", QuantityPerUnit: 1},
		},
	}}
	stockUC := &fakeStockUseCase{}
	d := NewStockDecrementer(resolver, stockUC, logger.NewNop())

	warnings := d.DecrementForOrder(context.Background(), orderWithItems(
		model.OrderItem{MenuItemID: strPtr("menu-burger"), Name: "Burger", Quantity: 2},
		model.OrderItem{MenuItemID: strPtr("menu-sandwich"), Name: "Sandwich", Quantity: 3},
	))

	assert.Empty(t, warnings)
	require.Len(t, stockUC.decrements, 2, "one decrement per ingredient, aggregated across items")

	byIngredient := map[string]stockdto.DecrementInput{}
	for _, in := range stockUC.decrements {
		byIngredient[in.IngredientID] = in
	}
	assert.Equal(t, 0.3, byIngredient["ing-beef"].Quantity)
	assert.Equal(t, 7.0, byIngredient["ing-bread"].Quantity) // 2*2 + 1*3
	assert.Equal(t, "order:ord-1", byIngredient["ing-bread"].Reason)
	require.NotNil(t, byIngredient["ing-bread"].OrderID)
	assert.Equal(t, "ord-1", *byIngredient["ing-bread"].OrderID)
}

func TestDecrementForOrderSkipsUntrackedItems(t *testing.T) {
	resolver := &fakeResolver{recipes: map[string][]model.RecipeLine{
		"menu-water": {}, // known item, no recipe
	}}
	stockUC := &fakeStockUseCase{}
	d := NewStockDecrementer(resolver, stockUC, logger.NewNop())

	warnings := d.DecrementForOrder(context.Background(), orderWithItems(
		model.OrderItem{Name: "Hand-written special", Quantity: 1}, // no menu link
		model.OrderItem{MenuItemID: strPtr("menu-water"), Name: "Water", Quantity: 2},
	))

	assert.Empty(t, warnings)
	assert.Empty(t, stockUC.decrements)
}

func TestDecrementForOrderResolverErrorContinues(t *testing.T) {
	resolver := &fakeResolver{
		recipes: map[string][]model.RecipeLine{
			"menu-ok": {{IngredientID: "ing-1", QuantityPerUnit: 1}},
		},
		failFor: map[string]error{"menu-broken": errors.New("connection reset")},
	}
	stockUC := &fakeStockUseCase{}
	d := NewStockDecrementer(resolver, stockUC, logger.NewNop())

	warnings := d.DecrementForOrder(context.Background(), orderWithItems(
		model.OrderItem{MenuItemID: strPtr("menu-broken"), Name: "Broken", Quantity: 1},
		model.OrderItem{MenuItemID: strPtr("menu-ok"), Name: "Fine", Quantity: 1},
	))

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Broken")
	require.Len(t, stockUC.decrements, 1, "remaining items still decrement")
	assert.Equal(t, "ing-1", stockUC.decrements[0].IngredientID)
}

func TestDecrementForOrderIngredientFailureContinues(t *testing.T) {
	resolver := &fakeResolver{recipes: map[string][]model.RecipeLine{
		"menu-1": {
			{IngredientID: "ing-gone", QuantityPerUnit: 1},
			{IngredientID: "ing-here", QuantityPerUnit: 2},
		},
	}}
	stockUC := &fakeStockUseCase{failFor: map[string]error{"ing-gone": stock.ErrIngredientNotFound}}
	d := NewStockDecrementer(resolver, stockUC, logger.NewNop())

	warnings := d.DecrementForOrder(context.Background(), orderWithItems(
		model.OrderItem{MenuItemID: strPtr("menu-1"), Name: "Dish", Quantity: 1},
	))

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "ing-gone")
	require.Len(t, stockUC.decrements, 1)
	assert.Equal(t, "ing-here", stockUC.decrements[0].IngredientID)
	assert.Equal(t, 2.0, stockUC.decrements[0].Quantity)
}
