package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/tablier/resto-backoffice/internal/model"
)

type PGResolver struct {
	DB *sqlx.DB
}

func NewPGResolver(db *sqlx.DB) *PGResolver {
	return &PGResolver{DB: db}
}

func (r *PGResolver) Resolve(ctx context.Context, menuItemID string) ([]model.RecipeLine, error) {
	var lines []model.RecipeLine
	err := r.DB.SelectContext(ctx, &lines, `
        SELECT menu_item_id, ingredient_id, quantity_per_unit
        FROM menu_item_recipes
        WHERE menu_item_id = $1
    `, menuItemID)
	if err != nil {
		return nil, err
	}
	return lines, nil
}
