package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bundleworks/commerce-backend/internal/apierr"
	"github.com/bundleworks/commerce-backend/internal/types"
)

// respondError maps service errors onto HTTP statuses. Domain violations in
// the pricing/stock aggregators surface as 422s with a stable code, so
// callers can distinguish them from plain bad requests.
func respondError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Error(), "code": apiErr.Code})
		return
	}
	var missingPrice *types.MissingPriceError
	if errors.As(err, &missingPrice) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": missingPrice.Error(), "code": "missing_price"})
		return
	}
	var currencyMismatch *types.CurrencyMismatchError
	if errors.As(err, &currencyMismatch) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": currencyMismatch.Error(), "code": "currency_mismatch"})
		return
	}
	var emptyBundle *types.EmptyBundleError
	if errors.As(err, &emptyBundle) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": emptyBundle.Error(), "code": "empty_bundle"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// parseLocationIDs reads the optional comma-separated "locations" query
// parameter.
func parseLocationIDs(c *gin.Context) ([]uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query("locations"))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
