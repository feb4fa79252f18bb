package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/services"
	"github.com/bundleworks/commerce-backend/internal/types"
)

type BundleHandler struct {
	log           *logger.Logger
	bundleService services.BundleService
	coverService  services.CoverService
	cache         services.AvailabilityCache
}

func NewBundleHandler(log *logger.Logger, bundleService services.BundleService, coverService services.CoverService, cache services.AvailabilityCache) *BundleHandler {
	return &BundleHandler{
		log:           log.With("handler", "BundleHandler"),
		bundleService: bundleService,
		coverService:  coverService,
		cache:         cache,
	}
}

type bundleRequest struct {
	StoreID           uuid.UUID `json:"store_id" binding:"required"`
	Title             string    `json:"title" binding:"required"`
	Body              string    `json:"body"`
	PriceAmount       *string   `json:"price_amount"`
	PriceCurrencyCode string    `json:"price_currency_code"`
}

type bundleItemRequest struct {
	Title                 string      `json:"title"`
	Quantity              string      `json:"quantity"`
	Position              int         `json:"position"`
	VariationIDs          []uuid.UUID `json:"variation_ids" binding:"required"`
	CurrentVariationID    *uuid.UUID  `json:"current_variation_id"`
	UnitPriceAmount       *string     `json:"unit_price_amount"`
	UnitPriceCurrencyCode string      `json:"unit_price_currency_code"`
}

func (bh *BundleHandler) Create(c *gin.Context) {
	var body bundleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bundle := &types.ProductBundle{
		StoreID: body.StoreID,
		Title:   body.Title,
		Body:    body.Body,
	}
	if body.PriceAmount != nil {
		amount, err := decimal.NewFromString(*body.PriceAmount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price_amount"})
			return
		}
		bundle.PriceAmount = &amount
		bundle.PriceCurrencyCode = body.PriceCurrencyCode
	}
	created, err := bh.bundleService.Create(c.Request.Context(), bundle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bundle": created})
}

func (bh *BundleHandler) List(c *gin.Context) {
	bundles, err := bh.bundleService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bundles": bundles})
}

func (bh *BundleHandler) Get(c *gin.Context) {
	bundleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bundle, err := bh.bundleService.Get(c.Request.Context(), bundleID)
	if err != nil {
		respondError(c, err)
		return
	}
	if bundle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bundle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bundle": bundle})
}

func (bh *BundleHandler) Update(c *gin.Context) {
	bundleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	existing, err := bh.bundleService.Get(c.Request.Context(), bundleID)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bundle not found"})
		return
	}
	var body bundleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.Title = body.Title
	existing.Body = body.Body
	existing.PriceAmount = nil
	existing.PriceCurrencyCode = ""
	if body.PriceAmount != nil {
		amount, err := decimal.NewFromString(*body.PriceAmount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price_amount"})
			return
		}
		existing.PriceAmount = &amount
		existing.PriceCurrencyCode = body.PriceCurrencyCode
	}
	updated, err := bh.bundleService.Update(c.Request.Context(), existing)
	if err != nil {
		respondError(c, err)
		return
	}
	bh.cache.Invalidate(c.Request.Context(), bundleID.String())
	c.JSON(http.StatusOK, gin.H{"bundle": updated})
}

func (bh *BundleHandler) Delete(c *gin.Context) {
	bundleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := bh.bundleService.Delete(c.Request.Context(), bundleID); err != nil {
		respondError(c, err)
		return
	}
	bh.cache.Invalidate(c.Request.Context(), bundleID.String())
	c.Status(http.StatusNoContent)
}

func (bh *BundleHandler) AddItem(c *gin.Context) {
	bundleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body bundleItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := &types.ProductBundleItem{
		Title:              body.Title,
		Position:           body.Position,
		Quantity:           decimal.NewFromInt(1),
		CurrentVariationID: body.CurrentVariationID,
	}
	if body.Quantity != "" {
		quantity, err := decimal.NewFromString(body.Quantity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
			return
		}
		item.Quantity = quantity
	}
	if body.UnitPriceAmount != nil {
		amount, err := decimal.NewFromString(*body.UnitPriceAmount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit_price_amount"})
			return
		}
		item.UnitPriceAmount = &amount
		item.UnitPriceCurrencyCode = body.UnitPriceCurrencyCode
	}
	created, err := bh.bundleService.AddItem(c.Request.Context(), bundleID, item, body.VariationIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	bh.cache.Invalidate(c.Request.Context(), bundleID.String())
	c.JSON(http.StatusCreated, gin.H{"item": created})
}

func (bh *BundleHandler) RemoveItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := bh.bundleService.RemoveItem(c.Request.Context(), itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (bh *BundleHandler) SetItemCurrentVariation(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		VariationID uuid.UUID `json:"variation_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := bh.bundleService.SetItemCurrentVariation(c.Request.Context(), itemID, body.VariationID)
	if err != nil {
		respondError(c, err)
		return
	}
	bh.cache.Invalidate(c.Request.Context(), item.BundleID.String())
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (bh *BundleHandler) Cover(c *gin.Context) {
	if bh.coverService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cover rendering not configured"})
		return
	}
	bundleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bundle, err := bh.bundleService.Get(c.Request.Context(), bundleID)
	if err != nil {
		respondError(c, err)
		return
	}
	if bundle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bundle not found"})
		return
	}
	buf, err := bh.coverService.RenderBundleCover(bundle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
