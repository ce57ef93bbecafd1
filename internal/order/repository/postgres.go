package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

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

func (r *PGRepository) PlaceOrder(ctx context.Context, o *model.Order, logs []*model.StockLog) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	orderQuery := `
        INSERT INTO orders (id, customer_id, total_amount, status, created_at)
        VALUES (:id, :customer_id, :total_amount, :status, :created_at)
    `
	if _, err := tx.NamedExecContext(ctx, orderQuery, o); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (id, order_id, product_id, quantity, price)
        VALUES (:id, :order_id, :product_id, :quantity, :price)
    `
	for i := range o.Items {
		if _, err := tx.NamedExecContext(ctx, itemQuery, &o.Items[i]); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	// Lines are applied in product-id order so two concurrent orders touching
	// the same products take their row locks in the same sequence.
	idx := make([]int, len(logs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return logs[idx[a]].ProductID < logs[idx[b]].ProductID
	})

	logQuery := `
        INSERT INTO stock_logs (
            id, product_id, operation_type, quantity, reason, resulting_stock, created_at
        )
        VALUES (
            :id, :product_id, :operation_type, :quantity, :reason, :resulting_stock, :created_at
        )
    `
	for _, i := range idx {
		entry := logs[i]

		var resulting int
		err := tx.QueryRowxContext(ctx, `
            UPDATE products
            SET stock = stock - $1, updated_at = $2
            WHERE id = $3 AND stock >= $1
            RETURNING stock
        `, entry.Quantity, entry.CreatedAt, entry.ProductID).Scan(&resulting)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &ledger.StockConflictError{ProductID: entry.ProductID}
			}
			return err
		}
		entry.ResultingStock = resulting

		if _, err := tx.NamedExecContext(ctx, logQuery, entry); err != nil {
			return fmt.Errorf("failed to append stock log: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	orders := []model.Order{}
	err := r.DB.SelectContext(ctx, &orders, `
        SELECT * FROM orders WHERE customer_id = $1 ORDER BY created_at DESC
    `, customerID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	query, args, err := sqlx.In(`SELECT * FROM order_items WHERE order_id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	items := []model.OrderItem{}
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}

	byOrder := make(map[string][]model.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}
