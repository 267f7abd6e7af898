package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ncsdigital/contact-details-service/internal/api/rest"
	"github.com/ncsdigital/contact-details-service/internal/config"
	"github.com/ncsdigital/contact-details-service/internal/kafka"
	"github.com/ncsdigital/contact-details-service/internal/metrics"
	"github.com/ncsdigital/contact-details-service/internal/repository/postgres"
	"github.com/ncsdigital/contact-details-service/internal/service"
	"github.com/ncsdigital/contact-details-service/internal/validation"
	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := initLogger()

	log.Infow("Contact details service starting up...")

	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalw("Failed to load configuration", "error", err)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	pool, err := postgres.NewConnection(ctx, cfg.Database.DSN, log)
	if err != nil {
		log.Fatalw("Failed to connect to database", "error", err)
	}
	defer pool.Close()

	contactRepo := postgres.NewContactRepository(pool, log)
	customerReader := postgres.NewCustomerReader(pool, log)

	kafkaCfg := &kafka.Config{
		Brokers:      cfg.Kafka.Brokers,
		GroupID:      cfg.Kafka.GroupID,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	}

	var producer kafka.Producer
	if err := kafka.EnsureTopics(kafkaCfg, log); err != nil {
		log.Errorw("Failed to ensure Kafka topics, continuing without event publishing", "error", err)
	} else {
		producer, err = kafka.NewProducer(kafkaCfg, log)
		if err != nil {
			// Notifications are best-effort; the service still takes writes.
			log.Errorw("Failed to initialize Kafka producer, continuing without event publishing", "error", err)
		} else {
			defer func() {
				if err := producer.Close(); err != nil {
					log.Errorw("Error closing Kafka producer", "error", err)
				}
			}()
		}
	}

	registry := prometheus.NewRegistry()
	contactMetrics := metrics.NewContactMetrics(registry)

	contactService := service.NewContactService(
		contactRepo,
		customerReader,
		validation.New(),
		producer,
		contactMetrics,
		log,
		cfg.API.BaseURL,
		cfg.Database.QueryTimeout,
	)

	router := rest.SetupRouter(contactService, contactMetrics, registry, log)

	httpServer := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Starting HTTP server", "port", cfg.App.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("Failed to start HTTP server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	log.Infow("Shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Infow("HTTP server gracefully stopped")
	}

	log.Infow("Cleanup finished. Goodbye!")
}

// initLogger initializes the logger from the environment
func initLogger() *logger.Logger {
	logLevel := logger.INFO
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = logger.DEBUG
	}
	return logger.New(logLevel)
}
