package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusNaruceno    OrderStatus = "naruceno"    // ordered
	OrderStatusUIzradi     OrderStatus = "u_izradi"    // in progress
	OrderStatusNapravljeno OrderStatus = "napravljeno" // made
	OrderStatusPlaceno     OrderStatus = "placeno"     // paid
)

// Valid reports whether s is one of the four known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNaruceno, OrderStatusUIzradi, OrderStatusNapravljeno, OrderStatusPlaceno:
		return true
	}
	return false
}

// OrderItem is a line item embedded in an order. Items have no identity of
// their own and are stored as part of the order row.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Notes    string  `json:"notes,omitempty"`
}

// OrderItems is stored as a single jsonb column so that order writes stay
// atomic at the row level.
type OrderItems []OrderItem

// Value implements driver.Valuer.
func (o OrderItems) Value() (driver.Value, error) {
	return json.Marshal(o)
}

// Scan implements sql.Scanner.
func (o *OrderItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	case nil:
		*o = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for order items: %T", src)
	}
}

// Order represents a customer order
type Order struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	OrderNumber     string      `db:"order_number" json:"orderNumber"`
	CustomerName    string      `db:"customer_name" json:"customerName"`
	CustomerEmail   string      `db:"customer_email" json:"customerEmail"`
	CustomerPhone   string      `db:"customer_phone" json:"customerPhone"`
	DeliveryDate    time.Time   `db:"delivery_date" json:"deliveryDate"`
	DeliveryTime    string      `db:"delivery_time" json:"deliveryTime"`
	DeliveryAddress string      `db:"delivery_address" json:"deliveryAddress,omitempty"`
	Items           OrderItems  `db:"items" json:"items"`
	TotalAmount     float64     `db:"total_amount" json:"totalAmount"`
	Status          OrderStatus `db:"status" json:"status"`
	Notes           string      `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updatedAt"`
}

// OrderCreateRequest is the public order-intake payload. TotalAmount is
// accepted but ignored; the server recomputes it from the items.
type OrderCreateRequest struct {
	CustomerName    string     `json:"customerName"`
	CustomerEmail   string     `json:"customerEmail"`
	CustomerPhone   string     `json:"customerPhone"`
	DeliveryDate    string     `json:"deliveryDate"`
	DeliveryTime    string     `json:"deliveryTime"`
	DeliveryAddress string     `json:"deliveryAddress"`
	Items           OrderItems `json:"items"`
	TotalAmount     float64    `json:"totalAmount"`
	Notes           string     `json:"notes"`
}

// OrderUpdateRequest is a partial update; nil fields are left untouched.
type OrderUpdateRequest struct {
	CustomerName    *string      `json:"customerName"`
	CustomerEmail   *string      `json:"customerEmail"`
	CustomerPhone   *string      `json:"customerPhone"`
	DeliveryDate    *string      `json:"deliveryDate"`
	DeliveryTime    *string      `json:"deliveryTime"`
	DeliveryAddress *string      `json:"deliveryAddress"`
	Items           *OrderItems  `json:"items"`
	TotalAmount     *float64     `json:"totalAmount"`
	Status          *OrderStatus `json:"status"`
	Notes           *string      `json:"notes"`
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status OrderStatus
	Search string
	Page   int
	Limit  int
}

// Pagination describes one page of a listing.
type Pagination struct {
	Current     int `json:"current"`
	Total       int `json:"total"`
	Count       int `json:"count"`
	TotalOrders int `json:"totalOrders"`
}

// ParseDeliveryDate accepts the date formats the storefront sends.
func ParseDeliveryDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("invalid date format")
}
