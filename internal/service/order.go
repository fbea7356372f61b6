package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ladelta/bakery-service/internal/cache"
	"github.com/ladelta/bakery-service/internal/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	orderCacheTTL = 5 * time.Minute
)

// ValidationError reports a missing required field or a schema-constraint
// violation. The message always names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func requiredField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " is required"}
}

// OrderStore is the slice of the order repository the service needs.
type OrderStore interface {
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Create(ctx context.Context, order models.Order) (*models.Order, error)
	Update(ctx context.Context, order models.Order) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService handles order intake and the staff-facing order queries.
type OrderService struct {
	orders OrderStore
	cache  cache.Cache
}

// NewOrderService creates a new order service. The cache may be nil.
func NewOrderService(orders OrderStore, c cache.Cache) *OrderService {
	return &OrderService{
		orders: orders,
		cache:  c,
	}
}

// ListOrders returns one page of orders matching the filter, newest first.
// An empty or "all" status matches every order.
func (s *OrderService) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, models.Pagination, error) {
	if filter.Status == "all" {
		filter.Status = ""
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	pagination := models.Pagination{
		Current:     filter.Page,
		Total:       (total + filter.Limit - 1) / filter.Limit,
		Count:       len(orders),
		TotalOrders: total,
	}

	return orders, pagination, nil
}

// GetOrder returns a single order by id.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if s.cache != nil {
		var cached models.Order
		hit, err := s.cache.Get(ctx, orderCacheKey(id), &cached)
		if err != nil {
			logrus.WithError(err).Warn("Order cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheOrder(ctx, order)

	return order, nil
}

// CreateOrder validates an intake payload and persists it. The total amount
// is always recomputed from the items; a client-supplied total is ignored.
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderCreateRequest) (*models.Order, error) {
	if req.CustomerName == "" {
		return nil, requiredField("customerName")
	}
	if req.CustomerEmail == "" {
		return nil, requiredField("customerEmail")
	}
	if req.CustomerPhone == "" {
		return nil, requiredField("customerPhone")
	}
	if req.DeliveryDate == "" {
		return nil, requiredField("deliveryDate")
	}
	if req.DeliveryTime == "" {
		return nil, requiredField("deliveryTime")
	}
	if len(req.Items) == 0 {
		return nil, requiredField("items")
	}

	deliveryDate, err := models.ParseDeliveryDate(req.DeliveryDate)
	if err != nil {
		return nil, &ValidationError{Field: "deliveryDate", Message: "deliveryDate must be a valid date"}
	}

	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	order := models.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		DeliveryDate:    deliveryDate,
		DeliveryTime:    req.DeliveryTime,
		DeliveryAddress: req.DeliveryAddress,
		Items:           req.Items,
		TotalAmount:     computeTotal(req.Items),
		Status:          models.OrderStatusNaruceno,
		Notes:           req.Notes,
	}

	return s.orders.Create(ctx, order)
}

// UpdateOrder applies a partial update and re-validates the merged order.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, req models.OrderUpdateRequest) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		order.CustomerEmail = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		order.CustomerPhone = *req.CustomerPhone
	}
	if req.DeliveryDate != nil {
		deliveryDate, err := models.ParseDeliveryDate(*req.DeliveryDate)
		if err != nil {
			return nil, &ValidationError{Field: "deliveryDate", Message: "deliveryDate must be a valid date"}
		}
		order.DeliveryDate = deliveryDate
	}
	if req.DeliveryTime != nil {
		order.DeliveryTime = *req.DeliveryTime
	}
	if req.DeliveryAddress != nil {
		order.DeliveryAddress = *req.DeliveryAddress
	}
	if req.Items != nil {
		order.Items = *req.Items
	}
	if req.TotalAmount != nil {
		order.TotalAmount = *req.TotalAmount
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	if err := validateOrder(order); err != nil {
		return nil, err
	}

	updated, err := s.orders.Update(ctx, *order)
	if err != nil {
		return nil, err
	}

	s.invalidateOrder(ctx, id)
	s.cacheOrder(ctx, updated)

	return updated, nil
}

// DeleteOrder removes an order. Role checks happen at the handler boundary.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateOrder(ctx, id)

	return nil
}

func (s *OrderService) cacheOrder(ctx context.Context, order *models.Order) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, orderCacheKey(order.ID), order, orderCacheTTL); err != nil {
		logrus.WithError(err).Warn("Order cache write failed")
	}
}

func (s *OrderService) invalidateOrder(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, orderCacheKey(id)); err != nil {
		logrus.WithError(err).Warn("Order cache invalidation failed")
	}
}

func orderCacheKey(id uuid.UUID) string {
	return "order:" + id.String()
}

func computeTotal(items models.OrderItems) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func validateItems(items models.OrderItems) error {
	for i, item := range items {
		if item.Name == "" {
			return &ValidationError{
				Field:   "items",
				Message: fmt.Sprintf("items[%d].name is required", i),
			}
		}
		if item.Quantity < 1 {
			return &ValidationError{
				Field:   "items",
				Message: fmt.Sprintf("items[%d].quantity must be at least 1", i),
			}
		}
		if item.Price < 0 {
			return &ValidationError{
				Field:   "items",
				Message: fmt.Sprintf("items[%d].price must not be negative", i),
			}
		}
	}
	return nil
}

// validateOrder checks the schema invariants on a merged order document.
// There is no status-transition graph: any valid status may follow any other.
func validateOrder(order *models.Order) error {
	if order.CustomerName == "" {
		return requiredField("customerName")
	}
	if order.CustomerEmail == "" {
		return requiredField("customerEmail")
	}
	if order.CustomerPhone == "" {
		return requiredField("customerPhone")
	}
	if order.DeliveryTime == "" {
		return requiredField("deliveryTime")
	}
	if len(order.Items) == 0 {
		return requiredField("items")
	}
	if err := validateItems(order.Items); err != nil {
		return err
	}
	if order.TotalAmount < 0 {
		return &ValidationError{Field: "totalAmount", Message: "totalAmount must not be negative"}
	}
	if !order.Status.Valid() {
		return &ValidationError{
			Field:   "status",
			Message: "status must be one of naruceno, u_izradi, napravljeno, placeno",
		}
	}
	return nil
}
