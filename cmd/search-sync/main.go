package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ncsdigital/contact-details-service/internal/config"
	"github.com/ncsdigital/contact-details-service/internal/kafka"
	"github.com/ncsdigital/contact-details-service/internal/repository/postgres"
	"github.com/ncsdigital/contact-details-service/internal/search"
	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

// search-sync consumes contact change events and mirrors the stored records
// into the Redis search index.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := initLogger()

	log.Infow("Contact details search-sync starting up...")

	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalw("Failed to load configuration", "error", err)
	}

	pool, err := postgres.NewConnection(ctx, cfg.Database.DSN, log)
	if err != nil {
		log.Fatalw("Failed to connect to database", "error", err)
	}
	defer pool.Close()

	index, err := search.NewRedisIndex(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	if err != nil {
		log.Fatalw("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := index.Close(); err != nil {
			log.Errorw("Error closing Redis connection", "error", err)
		}
	}()

	contactRepo := postgres.NewContactRepository(pool, log)
	syncer := search.NewSyncer(contactRepo, index, log)

	kafkaCfg := &kafka.Config{
		Brokers:      cfg.Kafka.Brokers,
		GroupID:      cfg.Kafka.GroupID,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	}

	consumer, err := kafka.NewConsumer(kafkaCfg, syncer, log)
	if err != nil {
		log.Fatalw("Failed to initialize Kafka consumer", "error", err)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			log.Errorw("Error closing Kafka consumer", "error", err)
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Infow("Shutdown signal received")
		cancel()
	}()

	if err := consumer.Run(ctx); err != nil && err != context.Canceled {
		log.Errorw("Consumer stopped with error", "error", err)
	}

	log.Infow("Search-sync stopped. Goodbye!")
}

// initLogger initializes the logger from the environment
func initLogger() *logger.Logger {
	logLevel := logger.INFO
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = logger.DEBUG
	}
	return logger.New(logLevel)
}
