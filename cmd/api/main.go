package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/superdevstar50/empowerfresh-challenge/internal/config"
	"github.com/superdevstar50/empowerfresh-challenge/internal/database"
	"github.com/superdevstar50/empowerfresh-challenge/internal/etl"
	"github.com/superdevstar50/empowerfresh-challenge/internal/handlers"
	"github.com/superdevstar50/empowerfresh-challenge/internal/logging"
	"github.com/superdevstar50/empowerfresh-challenge/internal/models"
	"github.com/superdevstar50/empowerfresh-challenge/internal/storage"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.AppEnv)
	defer logger.Sync()

	// 2. Initialize database (detects embedded vs external automatically)
	db, err := database.Connect(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// 3. Synchronize schema
	logger.Info("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.Customer{},
		&models.Store{},
		&models.Product{},
		&models.Price{},
		&models.Sale{},
		&models.ImportJob{},
	)
	if err != nil {
		logger.Warn("Migration warning", zap.Error(err))
	} else {
		logger.Info("✅ Schema synchronized successfully")
	}

	// 4. Wire the import pipeline and its executor
	store := storage.NewGormStore(db.DB)
	jobs := storage.NewGormJobStore(db.DB)
	pipeline := etl.NewPipeline(store, logger)
	processor := etl.NewProcessor(jobs, pipeline, cfg.ETL.FileDelay, logger)
	runner := etl.NewRunner(processor, cfg.ETL.Workers, cfg.ETL.QueueSize, logger)
	if err := runner.Start(); err != nil {
		logger.Fatal("Failed to start job runner", zap.Error(err))
	}

	// 5. Set up HTTP router
	router := handlers.NewRouter(db, store, jobs, runner, cfg, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// 6. Start server with graceful shutdown
	go func() {
		logger.Info("🌐 HTTP server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown error", zap.Error(err))
	}

	runner.Stop()

	if err := db.Close(); err != nil {
		logger.Warn("Database close error", zap.Error(err))
	}
	logger.Info("✅ Shutdown complete")
}
