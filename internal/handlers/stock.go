package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/services"
)

type StockHandler struct {
	log           *logger.Logger
	bundleService services.BundleService
	stockService  *services.LedgerStockService
	reportService services.AvailabilityReportService
	cache         services.AvailabilityCache
}

func NewStockHandler(log *logger.Logger, bundleService services.BundleService, stockService *services.LedgerStockService, reportService services.AvailabilityReportService, cache services.AvailabilityCache) *StockHandler {
	return &StockHandler{
		log:           log.With("handler", "StockHandler"),
		bundleService: bundleService,
		stockService:  stockService,
		reportService: reportService,
		cache:         cache,
	}
}

type stockTransactionRequest struct {
	LocationID        uuid.UUID              `json:"location_id" binding:"required"`
	Zone              string                 `json:"zone"`
	Quantity          string                 `json:"quantity" binding:"required"`
	UnitCost          *string                `json:"unit_cost"`
	TransactionTypeID int                    `json:"transaction_type_id" binding:"required"`
	Metadata          map[string]interface{} `json:"metadata"`
}

// BundleAvailability answers in-stock / level for one bundle, with a
// short-TTL cache keyed by bundle and location set.
func (sh *StockHandler) BundleAvailability(c *gin.Context) {
	bundleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	locationIDs, err := parseLocationIDs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid locations"})
		return
	}
	key := availabilityCacheKey(bundleID, locationIDs)
	if cached, hit := sh.cache.Get(c.Request.Context(), key); hit {
		c.JSON(http.StatusOK, gin.H{"availability": cached, "cached": true})
		return
	}
	availability, err := sh.bundleService.Availability(c.Request.Context(), bundleID, locationIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	sh.cache.Set(c.Request.Context(), key, availability)
	c.JSON(http.StatusOK, gin.H{"availability": availability})
}

func (sh *StockHandler) CreateBundleTransaction(c *gin.Context) {
	bundleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	body, ok := sh.bindTransaction(c)
	if !ok {
		return
	}
	quantity, unitCost, ok := sh.parseAmounts(c, body)
	if !ok {
		return
	}
	err := sh.bundleService.CreateStockTransaction(c.Request.Context(), bundleID, body.LocationID, body.Zone, quantity, unitCost, body.TransactionTypeID, body.Metadata)
	if err != nil {
		respondError(c, err)
		return
	}
	sh.cache.Invalidate(c.Request.Context(), bundleID.String())
	c.Status(http.StatusCreated)
}

func (sh *StockHandler) CreateVariationTransaction(c *gin.Context) {
	variationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	body, ok := sh.bindTransaction(c)
	if !ok {
		return
	}
	quantity, unitCost, ok := sh.parseAmounts(c, body)
	if !ok {
		return
	}
	err := sh.stockService.CreateTransaction(c.Request.Context(), variationID, body.LocationID, body.Zone, quantity, unitCost, body.TransactionTypeID, body.Metadata)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (sh *StockHandler) Locations(c *gin.Context) {
	activeOnly := !strings.EqualFold(c.Query("active"), "false")
	locations, err := sh.bundleService.LocationList(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]interface{}, 0, len(locations))
	ids := make([]uuid.UUID, 0, len(locations))
	for id := range locations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	for _, id := range ids {
		out = append(out, locations[id])
	}
	c.JSON(http.StatusOK, gin.H{"locations": out})
}

func (sh *StockHandler) Report(c *gin.Context) {
	locationIDs, err := parseLocationIDs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid locations"})
		return
	}
	rows, err := sh.reportService.Report(c.Request.Context(), locationIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": rows})
}

func (sh *StockHandler) bindTransaction(c *gin.Context) (*stockTransactionRequest, bool) {
	var body stockTransactionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &body, true
}

func (sh *StockHandler) parseAmounts(c *gin.Context, body *stockTransactionRequest) (decimal.Decimal, *decimal.Decimal, bool) {
	quantity, err := decimal.NewFromString(body.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
		return decimal.Zero, nil, false
	}
	var unitCost *decimal.Decimal
	if body.UnitCost != nil {
		cost, err := decimal.NewFromString(*body.UnitCost)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit_cost"})
			return decimal.Zero, nil, false
		}
		unitCost = &cost
	}
	return quantity, unitCost, true
}

func availabilityCacheKey(bundleID uuid.UUID, locationIDs []uuid.UUID) string {
	parts := make([]string, 0, len(locationIDs))
	for _, id := range locationIDs {
		parts = append(parts, id.String())
	}
	sort.Strings(parts)
	return bundleID.String() + ":" + strings.Join(parts, ",")
}
