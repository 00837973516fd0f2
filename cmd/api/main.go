package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/retailcore/pos-register-backend/api/routes"
	"github.com/retailcore/pos-register-backend/internal/cart"
	"github.com/retailcore/pos-register-backend/internal/catalog"
	"github.com/retailcore/pos-register-backend/internal/checkout"
	"github.com/retailcore/pos-register-backend/internal/customers"
	"github.com/retailcore/pos-register-backend/internal/ledger"
	"github.com/retailcore/pos-register-backend/pkg/config"
	"github.com/retailcore/pos-register-backend/pkg/kvstore"
	"github.com/retailcore/pos-register-backend/pkg/logger"
	"github.com/retailcore/pos-register-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := newStore(context.Background(), cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to open store", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error(context.Background(), "error closing store", err)
		}
	}()

	catalogService, err := catalog.NewService(catalog.NewRepository(store))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	customerService, err := customers.NewService(customers.NewRepository(store))
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(catalogService, customerService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	ledgerService, err := ledger.NewService(ledger.NewRepository(store))
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}
	checkoutService, err := checkout.NewService(
		cartService,
		catalogService,
		ledgerService,
		cfg.Pricing.TaxRate,
		logg,
		metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"backend":  cfg.Store.Backend,
		"currency": cfg.Pricing.Currency,
		"tax_rate": cfg.Pricing.TaxRate.String(),
	})
	logg.Info(ctx, "starting register api")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(logg, store, catalogService, cartService, checkoutService, ledgerService, customerService),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithFields(ctx, map[string]any{"signal": sig.String()}), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func newStore(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return kvstore.NewMemory(), nil
	case config.StoreBackendRedis:
		return kvstore.NewRedis(ctx, cfg.Redis)
	case config.StoreBackendFile:
		return kvstore.NewFile(cfg.Store.DataDir)
	}
	return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
}
