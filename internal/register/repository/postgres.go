package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tablier/resto-backoffice/internal/register/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ServedOrderStats(ctx context.Context, from, to time.Time) (int, float64, error) {
	var row struct {
		Count int     `db:"count"`
		Total float64 `db:"total"`
	}
	err := r.DB.GetContext(ctx, &row, `
        SELECT count(*) AS count, COALESCE(SUM(total), 0) AS total
        FROM orders
        WHERE status = 'served' AND created_at BETWEEN $1 AND $2
    `, from, to)
	if err != nil {
		return 0, 0, err
	}
	return row.Count, row.Total, nil
}

func (r *PGRepository) CompletedPayments(ctx context.Context, from, to time.Time) ([]dto.PaymentWithOrderTotal, error) {
	var rows []dto.PaymentWithOrderTotal
	err := r.DB.SelectContext(ctx, &rows, `
        SELECT p.id AS payment_id, p.order_id, p.amount, o.total AS order_total, p.created_at
        FROM payments p
        JOIN orders o ON o.id = p.order_id
        WHERE p.status = 'completed' AND p.created_at BETWEEN $1 AND $2
        ORDER BY p.created_at
    `, from, to)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
