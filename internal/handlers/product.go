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

type ProductHandler struct {
	log            *logger.Logger
	productService services.ProductService
}

func NewProductHandler(log *logger.Logger, productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		log:            log.With("handler", "ProductHandler"),
		productService: productService,
	}
}

func (ph *ProductHandler) Create(c *gin.Context) {
	var body struct {
		StoreID uuid.UUID `json:"store_id" binding:"required"`
		Title   string    `json:"title" binding:"required"`
		Body    string    `json:"body"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := ph.productService.Create(c.Request.Context(), &types.Product{
		StoreID: body.StoreID,
		Title:   body.Title,
		Body:    body.Body,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (ph *ProductHandler) Get(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := ph.productService.Get(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (ph *ProductHandler) AddVariation(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		SKU               string  `json:"sku" binding:"required"`
		Title             string  `json:"title" binding:"required"`
		PriceAmount       *string `json:"price_amount"`
		PriceCurrencyCode string  `json:"price_currency_code"`
		AlwaysInStock     bool    `json:"always_in_stock"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	variation := &types.ProductVariation{
		SKU:           body.SKU,
		Title:         body.Title,
		AlwaysInStock: body.AlwaysInStock,
	}
	if body.PriceAmount != nil {
		amount, err := decimal.NewFromString(*body.PriceAmount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price_amount"})
			return
		}
		variation.PriceAmount = &amount
		variation.PriceCurrencyCode = body.PriceCurrencyCode
	}
	created, err := ph.productService.AddVariation(c.Request.Context(), productID, variation)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"variation": created})
}
