package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
)

// BundleStockProxy answers stock queries for a bundle by delegating to the
// stock service of every item's current variation and reducing the results.
// It takes already-resolved bundles; looking one up by id is the caller's
// job. All per-item passes run sequentially in item order.
type BundleStockProxy struct {
	log      *logger.Logger
	resolver StockServiceResolver
}

func NewBundleStockProxy(baseLog *logger.Logger, resolver StockServiceResolver) *BundleStockProxy {
	return &BundleStockProxy{
		log:      baseLog.With("service", "BundleStockProxy"),
		resolver: resolver,
	}
}

// CreateTransaction fans the requested movement out to every item, scaling
// the quantity by the item's own multiplier and forwarding everything else
// unchanged. The fan-out is best-effort, not atomic: a failing item aborts
// the loop and transactions already written for earlier items stay applied.
func (p *BundleStockProxy) CreateTransaction(ctx context.Context, bundle *types.ProductBundle, locationID uuid.UUID, zone string, quantity decimal.Decimal, unitCost *decimal.Decimal, transactionTypeID int, metadata map[string]interface{}) error {
	for _, item := range bundle.Items {
		variation, service, err := p.itemStock(bundle, item)
		if err != nil {
			return err
		}
		childQuantity := quantity.Mul(item.Quantity)
		if err := service.CreateTransaction(ctx, variation.ID, locationID, zone, childQuantity, unitCost, transactionTypeID, metadata); err != nil {
			return fmt.Errorf("bundle %s: transaction for item %s failed: %w", bundle.ID, item.ID, err)
		}
	}
	return nil
}

// TotalStockLevel is the minimum stock level across the bundle's items: the
// scarcest component bounds how many bundles can be assembled.
func (p *BundleStockProxy) TotalStockLevel(ctx context.Context, bundle *types.ProductBundle, locationIDs []uuid.UUID) (decimal.Decimal, error) {
	if len(bundle.Items) == 0 {
		return decimal.Zero, &types.EmptyBundleError{BundleID: bundle.ID, Op: "total stock level"}
	}
	var minLevel decimal.Decimal
	for i, item := range bundle.Items {
		variation, service, err := p.itemStock(bundle, item)
		if err != nil {
			return decimal.Zero, err
		}
		level, err := service.CheckStockLevel(ctx, variation.ID, locationIDs)
		if err != nil {
			return decimal.Zero, fmt.Errorf("bundle %s: stock level for item %s failed: %w", bundle.ID, item.ID, err)
		}
		if i == 0 || level.LessThan(minLevel) {
			minLevel = level
		}
	}
	return minLevel, nil
}

// IsInStock is true iff every item's current variation is in stock at the
// given locations. It short-circuits on the first out-of-stock item; a bundle
// with no items is vacuously in stock.
func (p *BundleStockProxy) IsInStock(ctx context.Context, bundle *types.ProductBundle, locationIDs []uuid.UUID) (bool, error) {
	for _, item := range bundle.Items {
		variation, service, err := p.itemStock(bundle, item)
		if err != nil {
			return false, err
		}
		inStock, err := service.CheckIsInStock(ctx, variation.ID, locationIDs)
		if err != nil {
			return false, fmt.Errorf("bundle %s: in-stock check for item %s failed: %w", bundle.ID, item.ID, err)
		}
		if !inStock {
			return false, nil
		}
	}
	return true, nil
}

// IsAlwaysInStock is true iff every item's current variation skips depletion
// tracking. Same reduction and vacuous-truth policy as IsInStock.
func (p *BundleStockProxy) IsAlwaysInStock(ctx context.Context, bundle *types.ProductBundle) (bool, error) {
	for _, item := range bundle.Items {
		variation, service, err := p.itemStock(bundle, item)
		if err != nil {
			return false, err
		}
		always, err := service.CheckIsAlwaysInStock(ctx, variation.ID)
		if err != nil {
			return false, fmt.Errorf("bundle %s: always-in-stock check for item %s failed: %w", bundle.ID, item.ID, err)
		}
		if !always {
			return false, nil
		}
	}
	return true, nil
}

// IsStockManaged currently holds for every bundle.
// TODO: derive this from the items once variations can opt out of stock
// management individually.
func (p *BundleStockProxy) IsStockManaged(ctx context.Context, bundle *types.ProductBundle) (bool, error) {
	return true, nil
}

// LocationList unions the location lists of every registered stock service.
// On id collision the later service wins.
func (p *BundleStockProxy) LocationList(ctx context.Context, activeOnly bool) (map[uuid.UUID]*types.StockLocation, error) {
	merged := map[uuid.UUID]*types.StockLocation{}
	for _, service := range p.resolver.Services() {
		locations, err := service.ListLocations(ctx, activeOnly)
		if err != nil {
			return nil, err
		}
		for id, loc := range locations {
			merged[id] = loc
		}
	}
	return merged, nil
}

func (p *BundleStockProxy) itemStock(bundle *types.ProductBundle, item *types.ProductBundleItem) (*types.ProductVariation, StockService, error) {
	variation := item.CurrentVariation
	if variation == nil {
		return nil, nil, fmt.Errorf("bundle %s: item %s has no current variation", bundle.ID, item.ID)
	}
	service, err := p.resolver.ResolveService(variation)
	if err != nil {
		return nil, nil, fmt.Errorf("bundle %s: item %s: %w", bundle.ID, item.ID, err)
	}
	return variation, service, nil
}
