package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/sweetshop/inventory-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAllActive(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	query := `SELECT * FROM products WHERE is_active = true ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &products, query)
	return products, err
}

func (r *PGRepository) FindActiveBelowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	products := []model.Product{}
	query := `SELECT * FROM products WHERE is_active = true AND stock <= $1 ORDER BY stock ASC, name ASC`
	err := r.DB.SelectContext(ctx, &products, query, threshold)
	return products, err
}
