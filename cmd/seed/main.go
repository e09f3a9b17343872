package main

import (
	"context"
	"log"

	"github.com/superdevstar50/empowerfresh-challenge/internal/config"
	"github.com/superdevstar50/empowerfresh-challenge/internal/database"
	"github.com/superdevstar50/empowerfresh-challenge/internal/logging"
	"github.com/superdevstar50/empowerfresh-challenge/internal/models"
	"github.com/superdevstar50/empowerfresh-challenge/internal/storage"
	"go.uber.org/zap"
)

// Seeds the demo customers. Safe to run repeatedly: customers are upserted
// by name.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.AppEnv)
	defer logger.Sync()

	db, err := database.Connect(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.Customer{}, &models.Store{}); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	store := storage.NewGormStore(db.DB)
	customers := []string{"J&A Grocers", "Colin's Market", "Steven's Produce"}

	for _, name := range customers {
		customer, err := store.UpsertCustomerByName(context.Background(), name)
		if err != nil {
			logger.Fatal("Seed failed", zap.String("customer", name), zap.Error(err))
		}
		logger.Info("✅ Seeded customer", zap.Uint("id", customer.ID), zap.String("name", customer.Name))
	}
}
