package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/valuai/valuai/config"
	"github.com/valuai/valuai/internal/estimator"
	"github.com/valuai/valuai/internal/handler"
	"github.com/valuai/valuai/internal/metrics"
	"github.com/valuai/valuai/internal/repository"
	"github.com/valuai/valuai/internal/router"
	"github.com/valuai/valuai/internal/service"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// connectDB opens the valuation store with exponential backoff so a restart
// race against the database container doesn't kill the process.
func connectDB(ctx context.Context, dsn string, logger *logrus.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	backoff := retry.WithMaxRetries(5, retry.NewExponential(1*time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if openErr != nil {
			logger.WithError(openErr).Warn("Database connection failed, retrying")
			return retry.RetryableError(openErr)
		}
		return nil
	})
	return db, err
}

func main() {
	cfg := config.Load()
	logger := newLogger()

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations and exit")
	flag.Parse()

	db, err := connectDB(context.Background(), cfg.PostgresDSN, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatalf("Failed to get sql.DB: %v", err)
	}
	defer sqlDB.Close()

	if *migrateFlag {
		if err := goose.SetDialect("postgres"); err != nil {
			logger.Fatalf("Goose: failed to set dialect: %v", err)
		}
		logger.Info("Running database migrations...")
		if err := goose.Up(sqlDB, "migrations"); err != nil {
			logger.Fatalf("Goose migration failed: %v", err)
		}
		return
	}

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Fatalf("Failed to register metrics: %v", err)
	}

	estimatorConfig := estimator.DefaultConfig(cfg.MLServiceURL, cfg.MLRequestsPerSecond)
	estimatorConfig.RequestTimeout = cfg.MLRequestTimeout

	valuationRepo := repository.NewGormValuationRepository(db)
	valuationEstimator := estimator.New(estimatorConfig, logger)
	valuationService := service.NewValuationService(valuationRepo, valuationEstimator, logger)
	valuationHandler := handler.NewValuationHandler(valuationService, cfg.DebugMode)

	routerConfig := &router.Config{
		ValuationHandler: valuationHandler,
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router.NewRouter(routerConfig),
	}

	go func() {
		logger.Infof("ValuAI API listening on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Received shutdown signal, gracefully shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}
	logger.Info("Server stopped")
}
