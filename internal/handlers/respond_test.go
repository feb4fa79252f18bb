package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bundleworks/commerce-backend/internal/apierr"
	"github.com/bundleworks/commerce-backend/internal/types"
)

func respondTo(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	respondError(c, err)
	return recorder
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apierr.NotFound(fmt.Errorf("bundle %s not found", uuid.New())), http.StatusNotFound},
		{"conflict", apierr.Conflict("sku_in_use", fmt.Errorf("sku taken")), http.StatusConflict},
		{"wrapped api error", fmt.Errorf("resolving: %w", apierr.NotFound(fmt.Errorf("gone"))), http.StatusNotFound},
		{"missing price", &types.MissingPriceError{BundleID: uuid.New(), ItemID: uuid.New()}, http.StatusUnprocessableEntity},
		{"currency mismatch", &types.CurrencyMismatchError{Left: "USD", Right: "EUR"}, http.StatusUnprocessableEntity},
		{"empty bundle", &types.EmptyBundleError{BundleID: uuid.New(), Op: "total stock level"}, http.StatusUnprocessableEntity},
		{"plain error", fmt.Errorf("something else"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		if got := respondTo(tc.err).Code; got != tc.want {
			t.Fatalf("%s: got status %d, want %d", tc.name, got, tc.want)
		}
	}
}
