package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/payment"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	var p model.Payment
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM payments WHERE order_id = $1`, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) CreateWithTransaction(ctx context.Context, p *model.Payment, t *model.Transaction) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	paymentQuery := `
        INSERT INTO payments (id, order_id, amount, method, status, cashier_id, reference, created_at)
        VALUES (:id, :order_id, :amount, :method, :status, :cashier_id, :reference, :created_at)
    `
	if _, err := tx.NamedExecContext(ctx, paymentQuery, p); err != nil {
		if isUniqueViolation(err) {
			return payment.ErrAlreadyPaid
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	transactionQuery := `
        INSERT INTO transactions (id, transaction_type, amount, method, order_id, cashier_id, description, created_at)
        VALUES (:id, :transaction_type, :amount, :method, :order_id, :cashier_id, :description, :created_at)
    `
	if _, err := tx.NamedExecContext(ctx, transactionQuery, t); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
