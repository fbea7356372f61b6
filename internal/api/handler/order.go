package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ladelta/bakery-service/internal/api"
	"github.com/ladelta/bakery-service/internal/middleware"
	"github.com/ladelta/bakery-service/internal/models"
	"github.com/ladelta/bakery-service/internal/service"
	"github.com/ladelta/bakery-service/internal/websockets"
)

// OrderHandler handles order-related requests
type OrderHandler struct {
	orderService *service.OrderService
	hub          *websockets.Hub
}

// NewOrderHandler creates a new order handler. The hub may be nil.
func NewOrderHandler(orderService *service.OrderService, hub *websockets.Hub) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		hub:          hub,
	}
}

// HandleOrders handles requests for the order collection and single orders.
// Order intake (POST) is open to the public; everything else needs a valid
// session and deletion needs the admin role.
func (h *OrderHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/orders")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.listOrders(w, r)
		case http.MethodPost:
			h.createOrder(w, r)
		default:
			api.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	id, err := uuid.Parse(path)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getOrder(w, r, id)
	case http.MethodPatch:
		h.updateOrder(w, r, id)
	case http.MethodDelete:
		h.deleteOrder(w, r, id)
	default:
		api.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// listOrders lists orders with status/search filters and pagination.
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	if middleware.IdentityFrom(r.Context()) == nil {
		api.NotAuthenticated(w)
		return
	}

	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	filter := models.OrderFilter{
		Status: models.OrderStatus(query.Get("status")),
		Search: query.Get("search"),
		Page:   page,
		Limit:  limit,
	}

	orders, pagination, err := h.orderService.ListOrders(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "Order")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"orders":     orders,
		"pagination": pagination,
	})
}

// getOrder gets an order by ID
func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if middleware.IdentityFrom(r.Context()) == nil {
		api.NotAuthenticated(w)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Order")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}

// createOrder accepts a public storefront submission.
func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Order")
		return
	}

	h.broadcast(websockets.EventOrderCreated, order)

	api.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"order":   order,
		"message": "Order created successfully",
	})
}

// updateOrder applies a partial update to an order.
func (h *OrderHandler) updateOrder(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if middleware.IdentityFrom(r.Context()) == nil {
		api.NotAuthenticated(w)
		return
	}

	var req models.OrderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrder(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err, "Order")
		return
	}

	h.broadcast(websockets.EventOrderUpdated, order)

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
		"message": "Order updated successfully",
	})
}

// deleteOrder removes an order; admin only.
func (h *OrderHandler) deleteOrder(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil || !identity.IsAdmin() {
		api.NotAuthorized(w)
		return
	}

	if err := h.orderService.DeleteOrder(r.Context(), id); err != nil {
		writeServiceError(w, err, "Order")
		return
	}

	h.broadcast(websockets.EventOrderDeleted, &models.Order{ID: id})

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order deleted successfully",
	})
}

func (h *OrderHandler) broadcast(eventType string, order *models.Order) {
	if h.hub == nil {
		return
	}
	h.hub.BroadcastEvent(eventType, order)
}
