package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/services"
)

type PricingHandler struct {
	log           *logger.Logger
	bundleService services.BundleService
}

func NewPricingHandler(log *logger.Logger, bundleService services.BundleService) *PricingHandler {
	return &PricingHandler{
		log:           log.With("handler", "PricingHandler"),
		bundleService: bundleService,
	}
}

// Price resolves the bundle's effective unit price through the resolver
// chain. 404 when no resolver has an opinion.
func (ph *PricingHandler) Price(c *gin.Context) {
	bundleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	price, err := ph.bundleService.ResolvePrice(c.Request.Context(), bundleID)
	if err != nil {
		respondError(c, err)
		return
	}
	if price == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no price resolved"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}
