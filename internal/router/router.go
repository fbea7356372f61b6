package router

import (
	"net/http"
	"time"

	"github.com/ladelta/bakery-service/internal/api/handler"
	"github.com/ladelta/bakery-service/internal/config"
	"github.com/ladelta/bakery-service/internal/middleware"
	"github.com/ladelta/bakery-service/internal/service"
	"github.com/ladelta/bakery-service/internal/websockets"
)

// Router handles HTTP routing
type Router struct {
	mux   *http.ServeMux
	chain http.Handler
}

// Services bundles the service layer instances the router wires up.
type Services struct {
	Auth    *service.AuthService
	Order   *service.OrderService
	Product *service.ProductService
}

// New creates a new router
func New(services Services, hub *websockets.Hub, cfg *config.Config) *Router {
	r := &Router{
		mux: http.NewServeMux(),
	}

	r.setupRoutes(services, hub, cfg)

	// Every request flows through logging, identity resolution and the page
	// guard, in that order.
	r.chain = middleware.Logger(
		middleware.Identity(services.Auth, cfg.Auth.CookieName)(
			middleware.PageGuard(cfg.Auth)(
				r.mux,
			),
		),
	)

	return r
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.chain.ServeHTTP(w, req)
}

// setupRoutes sets up the routes for the router
func (r *Router) setupRoutes(services Services, hub *websockets.Hub, cfg *config.Config) {
	tokenTTL := time.Duration(cfg.JWT.ExpiresIn) * time.Hour

	authHandler := handler.NewAuthHandler(services.Auth, cfg.Auth, tokenTTL)
	orderHandler := handler.NewOrderHandler(services.Order, hub)
	productHandler := handler.NewProductHandler(services.Product)
	wsHandler := handler.NewWebSocketHandler(hub)
	pageHandler := handler.NewPageHandler()

	// API routes. Handlers enforce authentication themselves, since several
	// paths mix public and protected methods.
	r.mux.HandleFunc("/api/auth/login", authHandler.Login)
	r.mux.HandleFunc("/api/auth/logout", authHandler.Logout)
	r.mux.HandleFunc("/api/auth/verify", authHandler.Verify)
	r.mux.HandleFunc("/api/orders", orderHandler.HandleOrders)
	r.mux.HandleFunc("/api/orders/", orderHandler.HandleOrders)
	r.mux.HandleFunc("/api/products", productHandler.HandleProducts)
	r.mux.HandleFunc("/api/products/", productHandler.HandleProducts)

	// Dashboard order feed
	r.mux.Handle("/ws", wsHandler)

	// Page shells behind the guard
	r.mux.HandleFunc(cfg.Auth.LoginPath, pageHandler.Login)
	r.mux.HandleFunc(cfg.Auth.DashboardPath, pageHandler.Dashboard)
	r.mux.HandleFunc("/", pageHandler.Index)
}
