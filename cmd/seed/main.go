// Command seed provisions the initial admin account and, on an empty
// database, a handful of sample products and orders for the dashboard.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ladelta/bakery-service/internal/config"
	"github.com/ladelta/bakery-service/internal/db"
	"github.com/ladelta/bakery-service/internal/db/repository"
	"github.com/ladelta/bakery-service/internal/models"
	"github.com/ladelta/bakery-service/internal/service"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	database, err := db.NewPostgres(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(cfg.Database); err != nil {
		logrus.Fatalf("Failed to run database migrations: %v", err)
	}

	repos := repository.NewRepositories(database)
	ctx := context.Background()

	seedAdmin(ctx, repos)
	seedProducts(ctx, repos)
	seedOrders(ctx, repos)

	logrus.Info("Seeding completed")
}

func seedAdmin(ctx context.Context, repos *repository.Repositories) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@ladelta.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logrus.Warn("ADMIN_PASSWORD not set, skipping admin user")
		return
	}

	if _, err := repos.User.GetByEmail(ctx, email); err == nil {
		logrus.Infof("Admin user %s already exists", email)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		logrus.Fatalf("Failed to check for existing admin: %v", err)
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		logrus.Fatalf("Failed to hash admin password: %v", err)
	}

	if _, err := repos.User.Create(ctx, models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}); err != nil {
		logrus.Fatalf("Failed to create admin user: %v", err)
	}

	logrus.Infof("Admin user %s created", email)
}

func seedProducts(ctx context.Context, repos *repository.Repositories) {
	existing, err := repos.Product.List(ctx, "", true)
	if err != nil {
		logrus.Fatalf("Failed to list products: %v", err)
	}
	if len(existing) > 0 {
		logrus.Info("Products already exist, skipping")
		return
	}

	products := []models.Product{
		{Name: "Čokoladna torta", Category: "torte", Description: "Bogata čokoladna torta", Price: 25.0, Available: true},
		{Name: "Voćna torta", Category: "torte", Description: "Torta sa svježim voćem", Price: 30.0, Available: true},
		{Name: "Cheesecake", Category: "kolaci", Description: "New York style", Price: 20.0, Available: true},
		{Name: "Mini kolačići", Category: "kolaci", Description: "Mješavina okusa", Price: 2.5, Available: true},
		{Name: "Cupcakes", Category: "kolaci", Description: "Vanilija i čokolada", Price: 3.0, Available: true},
	}

	for _, p := range products {
		if _, err := repos.Product.Create(ctx, p); err != nil {
			logrus.Fatalf("Failed to create product %q: %v", p.Name, err)
		}
	}

	logrus.Infof("Created %d sample products", len(products))
}

func seedOrders(ctx context.Context, repos *repository.Repositories) {
	_, total, err := repos.Order.List(ctx, models.OrderFilter{Page: 1, Limit: 1})
	if err != nil {
		logrus.Fatalf("Failed to list orders: %v", err)
	}
	if total > 0 {
		logrus.Info("Orders already exist, skipping")
		return
	}

	orders := []models.Order{
		{
			CustomerName:    "Ana Marić",
			CustomerEmail:   "ana.maric@email.com",
			CustomerPhone:   "+385 91 123 4567",
			DeliveryDate:    time.Now().AddDate(0, 0, 3),
			DeliveryTime:    "14:00",
			DeliveryAddress: "Ilica 15, Zagreb",
			Items: models.OrderItems{
				{Name: "Čokoladna torta", Quantity: 1, Price: 25.0, Notes: "Sa sretnim rođendanom"},
				{Name: "Mini kolačići", Quantity: 12, Price: 2.5, Notes: "Mješavina okusa"},
			},
			TotalAmount: 55.0,
			Status:      models.OrderStatusNaruceno,
			Notes:       "Molim pozovite dan prije dostave",
		},
		{
			CustomerName:  "Marko Petrović",
			CustomerEmail: "marko.petrovic@email.com",
			CustomerPhone: "+385 92 987 6543",
			DeliveryDate:  time.Now().AddDate(0, 0, 4),
			DeliveryTime:  "16:30",
			Items: models.OrderItems{
				{Name: "Voćna torta", Quantity: 1, Price: 30.0, Notes: "Sa jagodama i kivijem"},
			},
			TotalAmount: 30.0,
			Status:      models.OrderStatusUIzradi,
			Notes:       "Preuzimanje u poslovnici",
		},
		{
			CustomerName:  "Ivan Kovač",
			CustomerEmail: "ivan.kovac@email.com",
			CustomerPhone: "+385 98 777 8888",
			DeliveryDate:  time.Now().AddDate(0, 0, 1),
			DeliveryTime:  "12:00",
			Items: models.OrderItems{
				{Name: "Cheesecake", Quantity: 1, Price: 20.0, Notes: "New York style"},
			},
			TotalAmount: 20.0,
			Status:      models.OrderStatusPlaceno,
			Notes:       "Uspješno dostavljeno",
		},
	}

	for _, o := range orders {
		if _, err := repos.Order.Create(ctx, o); err != nil {
			logrus.Fatalf("Failed to create sample order for %q: %v", o.CustomerName, err)
		}
	}

	logrus.Infof("Created %d sample orders", len(orders))
}
