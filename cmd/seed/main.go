package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/retailcore/pos-register-backend/internal/catalog"
	"github.com/retailcore/pos-register-backend/internal/customers"
	"github.com/retailcore/pos-register-backend/pkg/config"
	"github.com/retailcore/pos-register-backend/pkg/enums"
	"github.com/retailcore/pos-register-backend/pkg/kvstore"
	"github.com/retailcore/pos-register-backend/pkg/logger"
)

// Seeds the store with a demo catalog and a couple of customers so the
// register can be exercised immediately after a fresh install.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	store, err := kvstore.NewFile(cfg.Store.DataDir)
	if err != nil {
		logg.Error(ctx, "failed to open store", err)
		os.Exit(1)
	}
	defer store.Close()

	catalogService, err := catalog.NewService(catalog.NewRepository(store))
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	customerService, err := customers.NewService(customers.NewRepository(store))
	if err != nil {
		logg.Error(ctx, "failed to create customer service", err)
		os.Exit(1)
	}

	items := []catalog.UpsertItemInput{
		{Code: "CAFE-AM", Name: "Americano", Category: "drinks", UnitPrice: "8.50", Stock: 100, IsActive: true},
		{Code: "CAFE-LT", Name: "Latte", Category: "drinks", UnitPrice: "12.00", Stock: 80, IsActive: true},
		{Code: "PAN-CRO", Name: "Croissant", Category: "bakery", UnitPrice: "6.00", Stock: 40, IsActive: true},
		{Code: "PAN-EMP", Name: "Empanada de pollo", Category: "bakery", UnitPrice: "7.50", Stock: 35, IsActive: true},
		{Code: "MERCH-TZ", Name: "Taza retailcore", Category: "merch", UnitPrice: "25.00", Stock: 15, IsActive: true},
		{Code: "DESC-OLD", Name: "Blend temporada pasada", Category: "drinks", UnitPrice: "5.00", Stock: 0, IsActive: false},
	}
	for _, input := range items {
		if existing, err := catalogService.LookupByCode(ctx, input.Code); err == nil && existing != nil {
			logg.Info(logg.WithItemID(ctx, existing.ID.String()), "item already seeded")
			continue
		}
		item, err := catalogService.Upsert(ctx, input)
		if err != nil {
			logg.Error(logg.WithFields(ctx, map[string]any{"code": input.Code}), "failed to seed item", err)
			os.Exit(1)
		}
		logg.Info(logg.WithItemID(ctx, item.ID.String()), "seeded catalog item")
	}

	people := []customers.CreateCustomerInput{
		{Name: "Lucia Paredes", Email: "lucia@example.com", Phone: "+51 987 654 321", Tier: enums.CustomerTierVIP},
		{Name: "Marco Quispe", Email: "marco@example.com", Tier: enums.CustomerTierRegular},
	}
	for _, input := range people {
		record, err := customerService.Create(ctx, input)
		if err != nil {
			logg.Error(logg.WithFields(ctx, map[string]any{"name": input.Name}), "failed to seed customer", err)
			os.Exit(1)
		}
		logg.Info(logg.WithFields(ctx, map[string]any{"customer_id": record.ID.String()}), "seeded customer")
	}

	logg.Info(ctx, "seed complete")
}
