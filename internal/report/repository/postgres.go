package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sweetshop/inventory-service/internal/model"
	"github.com/sweetshop/inventory-service/internal/report/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const logSelectColumns = `
    l.id, l.product_id, l.operation_type, l.quantity, l.reason,
    l.resulting_stock, l.created_at,
    p.name AS product_name, p.category AS product_category, p.stock AS product_stock
`

func (r *PGRepository) ListLogs(ctx context.Context, f *dto.LogFilters) ([]model.StockLogWithProduct, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "l.product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.OperationType != "" {
		conditions = append(conditions, "l.operation_type = :operation_type")
		args["operation_type"] = f.OperationType
	}
	if f.StartDate != nil {
		conditions = append(conditions, "l.created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "l.created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	countQuery := "SELECT count(*) FROM stock_logs l" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT " + logSelectColumns +
		" FROM stock_logs l JOIN products p ON p.id = l.product_id" +
		whereClause +
		" ORDER BY l.created_at DESC, l.id DESC"
	if f.Limit > 0 {
		offset := (f.Page - 1) * f.Limit
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	items := []model.StockLogWithProduct{}
	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) RecentLogs(ctx context.Context, limit int) ([]model.StockLogWithProduct, error) {
	items := []model.StockLogWithProduct{}
	query := "SELECT " + logSelectColumns + `
        FROM stock_logs l JOIN products p ON p.id = l.product_id
        ORDER BY l.created_at DESC, l.id DESC
        LIMIT $1
    `
	err := r.DB.SelectContext(ctx, &items, query, limit)
	return items, err
}
