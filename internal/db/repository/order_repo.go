package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ladelta/bakery-service/internal/models"
)

const orderColumns = `id, order_number, customer_name, customer_email, customer_phone,
	       delivery_date, delivery_time, delivery_address, items, total_amount,
	       status, notes, created_at, updated_at`

// OrderRepository handles order data access
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	var order models.Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// List retrieves a page of orders matching the filter, newest first, along
// with the total number of matches.
func (r *OrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	where := ""
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = fmt.Sprintf("WHERE status = $%d", len(args))
	}

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		clause := fmt.Sprintf("(customer_name ILIKE $%d OR customer_email ILIKE $%d OR order_number ILIKE $%d)",
			len(args), len(args), len(args))
		if where == "" {
			where = "WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM orders " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, (filter.Page-1)*filter.Limit)
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT `+orderColumns+`
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, limitPos, offsetPos)

	orders := []models.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

// Create inserts a new order. The order number is drawn from a database
// sequence, so concurrent creates cannot collide.
func (r *OrderRepository) Create(ctx context.Context, order models.Order) (*models.Order, error) {
	var seq int64
	if err := r.db.GetContext(ctx, &seq, `SELECT nextval('order_number_seq')`); err != nil {
		return nil, fmt.Errorf("failed to allocate order number: %w", err)
	}

	query := `
		INSERT INTO orders (order_number, customer_name, customer_email, customer_phone,
		                    delivery_date, delivery_time, delivery_address, items,
		                    total_amount, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + orderColumns + `
	`

	var createdOrder models.Order
	err := r.db.GetContext(
		ctx,
		&createdOrder,
		query,
		formatOrderNumber(seq),
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.DeliveryDate,
		order.DeliveryTime,
		order.DeliveryAddress,
		order.Items,
		order.TotalAmount,
		order.Status,
		order.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &createdOrder, nil
}

// Update overwrites the mutable fields of an order in a single row write.
// The order number is assigned once at creation and never changes.
func (r *OrderRepository) Update(ctx context.Context, order models.Order) (*models.Order, error) {
	query := `
		UPDATE orders
		SET customer_name = $1, customer_email = $2, customer_phone = $3,
		    delivery_date = $4, delivery_time = $5, delivery_address = $6,
		    items = $7, total_amount = $8, status = $9, notes = $10, updated_at = $11
		WHERE id = $12
		RETURNING ` + orderColumns + `
	`

	var updatedOrder models.Order
	err := r.db.GetContext(
		ctx,
		&updatedOrder,
		query,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.DeliveryDate,
		order.DeliveryTime,
		order.DeliveryAddress,
		order.Items,
		order.TotalAmount,
		order.Status,
		order.Notes,
		time.Now(),
		order.ID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return &updatedOrder, nil
}

// formatOrderNumber renders a sequence value as an order number. Values are
// zero-padded to four digits; larger values keep all their digits.
func formatOrderNumber(n int64) string {
	return fmt.Sprintf("LD%04d", n)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes ILIKE wildcards so search terms match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Delete deletes an order
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM orders
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
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
