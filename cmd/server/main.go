package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/api"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/cart"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/checkout"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/config"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/payment"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/pricing"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/repository/postgres"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/woocommerce"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting storefront API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Initialize database (order ledger)
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	ledger := postgres.NewRepositories(db, logger)

	// Initialize Redis (session carts)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cancelPing()
	defer redisClient.Close()

	// Wire services
	carts := cart.NewService(cart.NewRedisRepository(redisClient), logger)
	gateway := woocommerce.NewClient(cfg.WooCommerce, logger)
	bridge := payment.NewBridge(logger)

	pricingCfg := pricing.Config{
		FreeDeliveryThreshold: decimal.NewFromInt(cfg.Checkout.FreeDeliveryThreshold),
		DeliveryFee:           decimal.NewFromInt(cfg.Checkout.DeliveryFee),
		CODSurcharge:          decimal.NewFromInt(cfg.Checkout.CODSurcharge),
		Currency:              cfg.Checkout.Currency,
	}

	orchestrator := checkout.NewOrchestrator(
		carts, gateway, bridge, ledger, pricingCfg, cfg.Checkout.PaymentWaitTimeout, logger,
	)

	// Initialize router
	router := api.NewRouter(cfg, carts, orchestrator, bridge, pricingCfg, logger)

	// Create HTTP server. No write timeout: checkout submissions wait on the
	// payment widget outcome, bounded by PaymentWaitTimeout instead.
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
