package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/stock/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := r.DB.GetContext(ctx, &ing, `SELECT * FROM ingredients WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // caller maps to its own not-found error
		}
		return nil, err
	}
	return &ing, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.IngredientFilters) ([]model.Ingredient, int, error) {
	var items []model.Ingredient
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ActiveOnly {
		conditions = append(conditions, "is_active = true")
	}
	if f.LowStock {
		conditions = append(conditions, "quantity <= min_stock AND min_stock > 0")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM ingredients" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM ingredients" + whereClause + " ORDER BY name"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) ApplyMovement(ctx context.Context, ing *model.Ingredient, movement *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `
        UPDATE ingredients
        SET quantity = :quantity, updated_at = :updated_at
        WHERE id = :id
    `
	res, err := tx.NamedExecContext(ctx, updateQuery, ing)
	if err != nil {
		return fmt.Errorf("failed to update ingredient quantity: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}

	insertQuery := `
        INSERT INTO stock_movements (
            id, ingredient_id, movement_type, quantity_change,
            quantity_before, quantity_after, order_id, created_by, notes, created_at
        )
        VALUES (
            :id, :ingredient_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :order_id, :created_by, :notes, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, insertQuery, movement); err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var items []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.IngredientID != "" {
		conditions = append(conditions, "ingredient_id = :ingredient_id")
		args["ingredient_id"] = f.IngredientID
	}
	if f.OrderID != "" {
		conditions = append(conditions, "order_id = :order_id")
		args["order_id"] = f.OrderID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) MovementSums(ctx context.Context) (map[string]float64, error) {
	rows, err := r.DB.QueryxContext(ctx, `
        SELECT ingredient_id, COALESCE(SUM(quantity_change), 0)
        FROM stock_movements
        GROUP BY ingredient_id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := map[string]float64{}
	for rows.Next() {
		var id string
		var total float64
		if err := rows.Scan(&id, &total); err != nil {
			return nil, err
		}
		sums[id] = total
	}
	return sums, rows.Err()
}
