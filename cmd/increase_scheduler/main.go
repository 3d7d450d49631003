package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/propstack/lease-rate-api/internal/config"
	"github.com/propstack/lease-rate-api/internal/repository/postgres"
	"github.com/propstack/lease-rate-api/internal/service"
	"github.com/propstack/lease-rate-api/internal/service/queue"
	"github.com/propstack/lease-rate-api/internal/worker"
	"github.com/propstack/lease-rate-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	// Initialize PostgreSQL with database connections
	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", err)
	}
	defer dbConnections.Close()

	pgRepo := postgres.NewPostgresRepository(dbConnections)

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	rateChangeService := service.NewRateChangeService(pgRepo)

	// Create increase scheduler
	scheduler := worker.NewIncreaseScheduler(
		sqsService,
		rateChangeService,
		appLogger,
		1*time.Hour, // scan interval
	)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start scheduler
	scheduler.Start()

	// Wait for shutdown signal
	<-sigChan
	appLogger.Info("Shutting down increase scheduler...")

	// Stop scheduler
	scheduler.Stop()
	appLogger.Info("Increase scheduler stopped")
}
