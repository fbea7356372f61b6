package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry shown on the storefront.
type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Category    string    `db:"category" json:"category"`
	Description string    `db:"description" json:"description,omitempty"`
	Price       float64   `db:"price" json:"price"`
	ImagePath   string    `db:"image_path" json:"imagePath,omitempty"`
	Available   bool      `db:"available" json:"available"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ProductRequest is used for product creation and updates.
type ProductRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImagePath   string  `json:"imagePath"`
	Available   bool    `json:"available"`
}
