package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/bundleworks/commerce-backend/internal/handlers"
	"github.com/bundleworks/commerce-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string

	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	ProductHandler *handlers.ProductHandler
	BundleHandler  *handlers.BundleHandler
	PricingHandler *handlers.PricingHandler
	StockHandler   *handlers.StockHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")

	// Public reads
	api.POST("/login", cfg.AuthHandler.Login)
	api.GET("/products/:id", cfg.ProductHandler.Get)
	api.GET("/bundles", cfg.BundleHandler.List)
	api.GET("/bundles/:id", cfg.BundleHandler.Get)
	api.GET("/bundles/:id/cover", cfg.BundleHandler.Cover)
	api.GET("/bundles/:id/price", cfg.PricingHandler.Price)
	api.GET("/bundles/:id/availability", cfg.StockHandler.BundleAvailability)
	api.GET("/stock/locations", cfg.StockHandler.Locations)
	api.GET("/stock/report", cfg.StockHandler.Report)

	// Mutations require the admin token
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/products", cfg.ProductHandler.Create)
	protected.POST("/products/:id/variations", cfg.ProductHandler.AddVariation)
	protected.POST("/bundles", cfg.BundleHandler.Create)
	protected.PUT("/bundles/:id", cfg.BundleHandler.Update)
	protected.DELETE("/bundles/:id", cfg.BundleHandler.Delete)
	protected.POST("/bundles/:id/items", cfg.BundleHandler.AddItem)
	protected.DELETE("/bundle-items/:id", cfg.BundleHandler.RemoveItem)
	protected.PUT("/bundle-items/:id/current-variation", cfg.BundleHandler.SetItemCurrentVariation)
	protected.POST("/bundles/:id/stock-transactions", cfg.StockHandler.CreateBundleTransaction)
	protected.POST("/variations/:id/stock-transactions", cfg.StockHandler.CreateVariationTransaction)

	return router
}

// SplitOrigins parses the comma-separated CORS_ALLOWED_ORIGINS value.
func SplitOrigins(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
