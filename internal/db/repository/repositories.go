package repository

import (
	"errors"

	"github.com/ladelta/bakery-service/internal/db"
)

// ErrNotFound is returned when an identifier does not resolve to a record.
var ErrNotFound = errors.New("record not found")

// Repositories provides access to all repository instances
type Repositories struct {
	User    *UserRepository
	Order   *OrderRepository
	Product *ProductRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(database *db.Postgres) *Repositories {
	return &Repositories{
		User:    NewUserRepository(database.DB),
		Order:   NewOrderRepository(database.DB),
		Product: NewProductRepository(database.DB),
	}
}
