package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ladelta/bakery-service/internal/models"
)

// ProductRepository handles product catalog data access
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `
		SELECT id, name, category, description, price, image_path, available, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product models.Product
	err := r.db.GetContext(ctx, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// List retrieves products, optionally narrowed to a category. Unavailable
// products are only included when includeUnavailable is set.
func (r *ProductRepository) List(ctx context.Context, category string, includeUnavailable bool) ([]models.Product, error) {
	query := `
		SELECT id, name, category, description, price, image_path, available, created_at, updated_at
		FROM products
	`
	args := []interface{}{}
	where := ""

	if !includeUnavailable {
		where = "WHERE available = true"
	}
	if category != "" {
		args = append(args, category)
		clause := fmt.Sprintf("category = $%d", len(args))
		if where == "" {
			where = "WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	query += where + " ORDER BY category ASC, name ASC"

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	query := `
		INSERT INTO products (name, category, description, price, image_path, available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, category, description, price, image_path, available, created_at, updated_at
	`

	var createdProduct models.Product
	err := r.db.GetContext(
		ctx,
		&createdProduct,
		query,
		product.Name,
		product.Category,
		product.Description,
		product.Price,
		product.ImagePath,
		product.Available,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &createdProduct, nil
}

// Update updates a product
func (r *ProductRepository) Update(ctx context.Context, product models.Product) (*models.Product, error) {
	query := `
		UPDATE products
		SET name = $1, category = $2, description = $3, price = $4, image_path = $5,
		    available = $6, updated_at = $7
		WHERE id = $8
		RETURNING id, name, category, description, price, image_path, available, created_at, updated_at
	`

	var updatedProduct models.Product
	err := r.db.GetContext(
		ctx,
		&updatedProduct,
		query,
		product.Name,
		product.Category,
		product.Description,
		product.Price,
		product.ImagePath,
		product.Available,
		time.Now(),
		product.ID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &updatedProduct, nil
}

// Delete deletes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM products
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
