package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ladelta/bakery-service/internal/api"
	"github.com/ladelta/bakery-service/internal/middleware"
	"github.com/ladelta/bakery-service/internal/models"
	"github.com/ladelta/bakery-service/internal/service"
)

// ProductHandler handles catalog requests. Reads are public; writes require
// a session and deletion requires the admin role.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// HandleProducts routes catalog collection and single-product requests.
func (h *ProductHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/products")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.listProducts(w, r)
		case http.MethodPost:
			h.createProduct(w, r)
		default:
			api.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	id, err := uuid.Parse(path)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getProduct(w, r, id)
	case http.MethodPatch:
		h.updateProduct(w, r, id)
	case http.MethodDelete:
		h.deleteProduct(w, r, id)
	default:
		api.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// listProducts lists the catalog. Staff sessions also see unavailable items.
func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	includeUnavailable := middleware.IdentityFrom(r.Context()) != nil
	category := r.URL.Query().Get("category")

	products, err := h.productService.ListProducts(r.Context(), category, includeUnavailable)
	if err != nil {
		writeServiceError(w, err, "Product")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Product")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	if middleware.IdentityFrom(r.Context()) == nil {
		api.NotAuthenticated(w)
		return
	}

	var req models.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Product")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if middleware.IdentityFrom(r.Context()) == nil {
		api.NotAuthenticated(w)
		return
	}

	var req models.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err, "Product")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil || !identity.IsAdmin() {
		api.NotAuthorized(w)
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, err, "Product")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product deleted successfully",
	})
}
