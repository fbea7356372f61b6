package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ladelta/bakery-service/internal/config"
	"github.com/ladelta/bakery-service/internal/db/repository"
	"github.com/ladelta/bakery-service/internal/middleware"
	"github.com/ladelta/bakery-service/internal/models"
	"github.com/ladelta/bakery-service/internal/service"
)

const testCookieName = "auth-token"

type fakeUserStore struct {
	users map[string]*models.User
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.users[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

type fakeOrderStore struct {
	orders  map[uuid.UUID]*models.Order
	seq     int
	created []uuid.UUID
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[uuid.UUID]*models.Order)}
}

func (s *fakeOrderStore) List(_ context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	matched := []models.Order{}
	for i := len(s.created) - 1; i >= 0; i-- {
		order := s.orders[s.created[i]]
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(order.CustomerName), needle) &&
				!strings.Contains(strings.ToLower(order.CustomerEmail), needle) &&
				!strings.Contains(strings.ToLower(order.OrderNumber), needle) {
				continue
			}
		}
		matched = append(matched, *order)
	}

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *fakeOrderStore) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := s.orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (s *fakeOrderStore) Create(_ context.Context, order models.Order) (*models.Order, error) {
	s.seq++
	order.ID = uuid.New()
	order.OrderNumber = fmt.Sprintf("LD%04d", s.seq)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	s.orders[order.ID] = &order
	s.created = append(s.created, order.ID)
	copied := order
	return &copied, nil
}

func (s *fakeOrderStore) Update(_ context.Context, order models.Order) (*models.Order, error) {
	if _, ok := s.orders[order.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	order.UpdatedAt = time.Now()
	s.orders[order.ID] = &order
	copied := order
	return &copied, nil
}

func (s *fakeOrderStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

// testEnv wires handlers the way the router does, with fakes behind the
// services and the identity middleware in front.
type testEnv struct {
	auth       *service.AuthService
	userStore  *fakeUserStore
	orderStore *fakeOrderStore

	adminToken    string
	employeeToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	adminHash, err := service.HashPassword("admin-pass")
	require.NoError(t, err)
	employeeHash, err := service.HashPassword("employee-pass")
	require.NoError(t, err)

	users := &fakeUserStore{users: map[string]*models.User{
		"admin@ladelta.com": {
			ID:           uuid.New(),
			Email:        "admin@ladelta.com",
			PasswordHash: adminHash,
			Role:         models.RoleAdmin,
		},
		"ana@ladelta.com": {
			ID:           uuid.New(),
			Email:        "ana@ladelta.com",
			PasswordHash: employeeHash,
			Role:         models.RoleEmployee,
		},
	}}

	env := &testEnv{
		auth:       service.NewAuthService(users, service.JWTConfig{Secret: "test-secret", ExpiresIn: 24}),
		userStore:  users,
		orderStore: newFakeOrderStore(),
	}

	env.adminToken, _, err = env.auth.Login(context.Background(), "admin@ladelta.com", "admin-pass")
	require.NoError(t, err)
	env.employeeToken, _, err = env.auth.Login(context.Background(), "ana@ladelta.com", "employee-pass")
	require.NoError(t, err)

	return env
}

func (e *testEnv) orderHandler() http.Handler {
	h := NewOrderHandler(service.NewOrderService(e.orderStore, nil), nil)
	return middleware.Identity(e.auth, testCookieName)(http.HandlerFunc(h.HandleOrders))
}

func (e *testEnv) authHandler() *AuthHandler {
	cfg := config.Auth{CookieName: testCookieName, LoginPath: "/login", DashboardPath: "/dashboard"}
	return NewAuthHandler(e.auth, cfg, 24*time.Hour)
}

func (e *testEnv) verifyHandler() http.Handler {
	return middleware.Identity(e.auth, testCookieName)(http.HandlerFunc(e.authHandler().Verify))
}
