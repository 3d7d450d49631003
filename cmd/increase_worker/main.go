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
	"github.com/propstack/lease-rate-api/internal/service/pubsub"
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

	// Initialize Redis so applied increases reach lease watchers
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	redisPubSub := pubsub.NewRedisPubSub(redisClient, appLogger)

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	rateChangeService := service.NewRateChangeService(pgRepo)
	rateChangeService.SetBroadcaster(pubsub.NewBroadcaster(redisPubSub, appLogger))

	// Create increase worker
	increaseWorker := worker.NewIncreaseWorker(
		sqsService,
		rateChangeService,
		appLogger,
		1,             // worker count
		5*time.Second, // poll interval
	)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start worker
	go func() {
		appLogger.Info("Starting increase worker...")
		increaseWorker.Start()
	}()

	// Wait for shutdown signal
	<-sigChan
	appLogger.Info("Shutting down increase worker...")

	// Stop worker
	increaseWorker.Stop()
	appLogger.Info("Increase worker stopped")
}
