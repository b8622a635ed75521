package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/order/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, ord *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	orderQuery := `
        INSERT INTO orders (
            id, status, order_type, total, delivery_fee, table_id, created_at, updated_at
        )
        VALUES (
            :id, :status, :order_type, :total, :delivery_fee, :table_id, :created_at, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, orderQuery, ord); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (id, order_id, menu_item_id, name, quantity, unit_price)
        VALUES (:id, :order_id, :menu_item_id, :name, :quantity, :unit_price)
    `
	for i := range ord.Items {
		if _, err := tx.NamedExecContext(ctx, itemQuery, &ord.Items[i]); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var ord model.Order
	err := r.DB.GetContext(ctx, &ord, `SELECT * FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.DB.SelectContext(ctx, &ord.Items,
		`SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`, id); err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	var items []model.Order
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.Type != "" {
		conditions = append(conditions, "order_type = :order_type")
		args["order_type"] = f.Type
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM orders" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC"
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

func (r *PGRepository) UpdateStatus(ctx context.Context, orderID string, decide func(current model.OrderStatus) (model.OrderStatus, error)) (*model.Order, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var ord model.Order
	err = tx.GetContext(ctx, &ord, `SELECT * FROM orders WHERE id = $1 FOR UPDATE`, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	target, err := decide(ord.Status)
	if err != nil {
		return nil, err
	}

	if target != ord.Status {
		ord.Status = target
		ord.UpdatedAt = time.Now()
		_, err = tx.ExecContext(ctx,
			`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
			ord.Status, ord.UpdatedAt, ord.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to update order status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if err := r.DB.SelectContext(ctx, &ord.Items,
		`SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`, orderID); err != nil {
		return nil, err
	}
	return &ord, nil
}
