package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sweetshop/inventory-service/internal/ledger"
	"github.com/sweetshop/inventory-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ApplyChange(ctx context.Context, entry *model.StockLog, delta int) (int, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Conditional update: the WHERE clause rejects any write that would drive
	// stock negative, even under a concurrent read of the same starting value.
	var resulting int
	err = tx.QueryRowxContext(ctx, `
        UPDATE products
        SET stock = stock + $1, updated_at = $2
        WHERE id = $3 AND stock + $1 >= 0
        RETURNING stock
    `, delta, entry.CreatedAt, entry.ProductID).Scan(&resulting)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, &ledger.StockConflictError{ProductID: entry.ProductID}
		}
		return 0, err
	}

	entry.ResultingStock = resulting

	insertQuery := `
        INSERT INTO stock_logs (
            id, product_id, operation_type, quantity, reason, resulting_stock, created_at
        )
        VALUES (
            :id, :product_id, :operation_type, :quantity, :reason, :resulting_stock, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, insertQuery, entry); err != nil {
		return 0, fmt.Errorf("failed to append stock log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return resulting, nil
}
