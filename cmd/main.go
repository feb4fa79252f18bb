package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bundleworks/commerce-backend/internal/config"
	"github.com/bundleworks/commerce-backend/internal/db"
	"github.com/bundleworks/commerce-backend/internal/handlers"
	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/middleware"
	"github.com/bundleworks/commerce-backend/internal/observability"
	"github.com/bundleworks/commerce-backend/internal/repos"
	"github.com/bundleworks/commerce-backend/internal/server"
	"github.com/bundleworks/commerce-backend/internal/services"
	"github.com/bundleworks/commerce-backend/internal/types"
	"github.com/bundleworks/commerce-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing
	shutdownTracing := observability.Init(ctx, log, observability.Config{
		ServiceName: "commerce-backend",
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
	})
	if shutdownTracing != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(shutdownCtx)
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "", log)
	adminPasswordHash := utils.GetEnv("ADMIN_PASSWORD_HASH", "", log)
	tokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	storeConfigPath := utils.GetEnv("STORE_CONFIG_PATH", "config/store.yaml", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	storeRepo := repos.NewStoreRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	variationRepo := repos.NewProductVariationRepo(thePG, log)
	bundleRepo := repos.NewProductBundleRepo(thePG, log)
	bundleItemRepo := repos.NewProductBundleItemRepo(thePG, log)
	locationRepo := repos.NewStockLocationRepo(thePG, log)
	txnRepo := repos.NewStockTransactionRepo(thePG, log)

	// Store bootstrap
	storeCfg, err := config.LoadStoreConfig(storeConfigPath)
	if err != nil {
		log.Error("Could not load store config", "path", storeConfigPath, "error", err)
		os.Exit(1)
	}
	store, err := bootstrapStore(ctx, storeRepo, locationRepo, storeCfg)
	if err != nil {
		log.Error("Store bootstrap failed", "error", err)
		os.Exit(1)
	}
	log.Info("Store ready", "store_id", store.ID, "currency", store.DefaultCurrencyCode)

	// Services
	log.Info("Setting up services from main...")
	currencyProvider := services.NewStoreCurrencyProvider(log, storeRepo, store.ID)
	ledgerStock := services.NewLedgerStockService(thePG, log, variationRepo, locationRepo, txnRepo)
	stockResolver := services.NewStockServiceResolver(log)
	stockResolver.Register(types.PurchasableTypeVariation, ledgerStock)
	stockProxy := services.NewBundleStockProxy(log, stockResolver)
	priceChain := services.NewChainPriceResolver(
		log,
		services.NewBundlePriceResolver(log),
		services.NewVariationPriceResolver(log),
	)
	bundleService := services.NewBundleService(thePG, log, bundleRepo, bundleItemRepo, variationRepo, priceChain, stockProxy, currencyProvider)
	productService := services.NewProductService(thePG, log, productRepo, variationRepo)
	reportService := services.NewAvailabilityReportService(thePG, log, bundleRepo, stockProxy)
	authService, err := services.NewAuthService(log, jwtSecretKey, adminPasswordHash, time.Duration(tokenTTL)*time.Second)
	if err != nil {
		log.Error("Could not init AuthService", "error", err)
		os.Exit(1)
	}
	coverService, err := services.NewCoverService(log)
	if err != nil {
		log.Warn("Could not init CoverService, covers disabled", "error", err)
		coverService = nil
	}
	availabilityCache, err := services.NewAvailabilityCache(log)
	if err != nil {
		log.Warn("Could not init AvailabilityCache, caching disabled", "error", err)
		availabilityCache = services.NoopAvailabilityCache{}
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(log, productService)
	bundleHandler := handlers.NewBundleHandler(log, bundleService, coverService, availabilityCache)
	pricingHandler := handlers.NewPricingHandler(log, bundleService)
	stockHandler := handlers.NewStockHandler(log, bundleService, ledgerStock, reportService, availabilityCache)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:    "commerce-backend",
		AllowedOrigins: server.SplitOrigins(utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log)),
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		ProductHandler: productHandler,
		BundleHandler:  bundleHandler,
		PricingHandler: pricingHandler,
		StockHandler:   stockHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}

// bootstrapStore makes sure the configured store and its stock locations
// exist, creating them on first boot.
func bootstrapStore(ctx context.Context, storeRepo repos.StoreRepo, locationRepo repos.StockLocationRepo, cfg *config.StoreConfig) (*types.Store, error) {
	store, err := storeRepo.GetByName(ctx, nil, cfg.Store.Name)
	if err != nil {
		return nil, err
	}
	if store == nil {
		created, err := storeRepo.Create(ctx, nil, []*types.Store{{
			Name:                cfg.Store.Name,
			DefaultCurrencyCode: cfg.Store.DefaultCurrencyCode,
		}})
		if err != nil {
			return nil, err
		}
		store = created[0]
	}
	for _, loc := range cfg.Locations {
		existing, err := locationRepo.GetByName(ctx, nil, loc.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		if _, err := locationRepo.Create(ctx, nil, []*types.StockLocation{{
			Name:   loc.Name,
			Active: loc.Active,
		}}); err != nil {
			return nil, err
		}
	}
	return store, nil
}
