package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ladelta/bakery-service/internal/models"
)

// ProductStore is the slice of the product repository the service needs.
type ProductStore interface {
	List(ctx context.Context, category string, includeUnavailable bool) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product models.Product) (*models.Product, error)
	Update(ctx context.Context, product models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductService handles the storefront catalog.
type ProductService struct {
	products ProductStore
}

// NewProductService creates a new product service
func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// ListProducts lists catalog entries, optionally narrowed to a category.
func (s *ProductService) ListProducts(ctx context.Context, category string, includeUnavailable bool) ([]models.Product, error) {
	return s.products.List(ctx, category, includeUnavailable)
}

// GetProduct retrieves a product by ID.
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// CreateProduct validates and creates a catalog entry.
func (s *ProductService) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		ImagePath:   req.ImagePath,
		Available:   req.Available,
	}

	return s.products.Create(ctx, product)
}

// UpdateProduct validates and overwrites a catalog entry.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req models.ProductRequest) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Description = req.Description
	existing.Price = req.Price
	existing.ImagePath = req.ImagePath
	existing.Available = req.Available

	return s.products.Update(ctx, *existing)
}

// DeleteProduct removes a catalog entry.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

func validateProduct(req models.ProductRequest) error {
	if req.Name == "" {
		return requiredField("name")
	}
	if req.Category == "" {
		return requiredField("category")
	}
	if req.Price < 0 {
		return &ValidationError{Field: "price", Message: "price must not be negative"}
	}
	return nil
}
