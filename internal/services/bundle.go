package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/apierr"
	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/repos"
	"github.com/bundleworks/commerce-backend/internal/types"
)

// BundleAvailability is the aggregated stock answer for one bundle. Level is
// nil when the bundle has no items and a minimum is undefined.
type BundleAvailability struct {
	BundleID      uuid.UUID        `json:"bundle_id"`
	InStock       bool             `json:"in_stock"`
	AlwaysInStock bool             `json:"always_in_stock"`
	StockManaged  bool             `json:"stock_managed"`
	Level         *decimal.Decimal `json:"level,omitempty"`
}

type BundleService interface {
	Create(ctx context.Context, bundle *types.ProductBundle) (*types.ProductBundle, error)
	Update(ctx context.Context, bundle *types.ProductBundle) (*types.ProductBundle, error)
	Delete(ctx context.Context, bundleID uuid.UUID) error
	Get(ctx context.Context, bundleID uuid.UUID) (*types.ProductBundle, error)
	List(ctx context.Context) ([]*types.ProductBundle, error)

	AddItem(ctx context.Context, bundleID uuid.UUID, item *types.ProductBundleItem, variationIDs []uuid.UUID) (*types.ProductBundleItem, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	SetItemCurrentVariation(ctx context.Context, itemID uuid.UUID, variationID uuid.UUID) (*types.ProductBundleItem, error)

	ResolvePrice(ctx context.Context, bundleID uuid.UUID) (*types.Price, error)
	Availability(ctx context.Context, bundleID uuid.UUID, locationIDs []uuid.UUID) (*BundleAvailability, error)
	CreateStockTransaction(ctx context.Context, bundleID uuid.UUID, locationID uuid.UUID, zone string, quantity decimal.Decimal, unitCost *decimal.Decimal, transactionTypeID int, metadata map[string]interface{}) error
	LocationList(ctx context.Context, activeOnly bool) (map[uuid.UUID]*types.StockLocation, error)
}

type bundleService struct {
	db            *gorm.DB
	log           *logger.Logger
	bundleRepo    repos.ProductBundleRepo
	itemRepo      repos.ProductBundleItemRepo
	variationRepo repos.ProductVariationRepo
	priceResolver *ChainPriceResolver
	stockProxy    *BundleStockProxy
	currency      CurrencyProvider
}

func NewBundleService(db *gorm.DB, baseLog *logger.Logger, bundleRepo repos.ProductBundleRepo, itemRepo repos.ProductBundleItemRepo, variationRepo repos.ProductVariationRepo, priceResolver *ChainPriceResolver, stockProxy *BundleStockProxy, currency CurrencyProvider) BundleService {
	return &bundleService{
		db:            db,
		log:           baseLog.With("service", "BundleService"),
		bundleRepo:    bundleRepo,
		itemRepo:      itemRepo,
		variationRepo: variationRepo,
		priceResolver: priceResolver,
		stockProxy:    stockProxy,
		currency:      currency,
	}
}

func (bs *bundleService) Create(ctx context.Context, bundle *types.ProductBundle) (*types.ProductBundle, error) {
	if bundle == nil {
		return nil, fmt.Errorf("no bundle given")
	}
	if bundle.Title == "" {
		return nil, fmt.Errorf("a title is required to create a bundle")
	}
	for _, item := range bundle.Items {
		if item.Quantity.IsNegative() {
			return nil, fmt.Errorf("bundle item quantity must not be negative")
		}
	}
	created, err := bs.bundleRepo.Create(ctx, nil, []*types.ProductBundle{bundle})
	if err != nil {
		return nil, fmt.Errorf("error creating bundle: %w", err)
	}
	bs.log.Info("Bundle created", "bundle_id", created[0].ID, "title", created[0].Title)
	return created[0], nil
}

func (bs *bundleService) Update(ctx context.Context, bundle *types.ProductBundle) (*types.ProductBundle, error) {
	if bundle == nil || bundle.ID == uuid.Nil {
		return nil, fmt.Errorf("no bundle given")
	}
	updated, err := bs.bundleRepo.Update(ctx, nil, bundle)
	if err != nil {
		return nil, fmt.Errorf("error updating bundle %s: %w", bundle.ID, err)
	}
	return updated, nil
}

func (bs *bundleService) Delete(ctx context.Context, bundleID uuid.UUID) error {
	if err := bs.bundleRepo.Delete(ctx, nil, bundleID); err != nil {
		return fmt.Errorf("error deleting bundle %s: %w", bundleID, err)
	}
	bs.log.Info("Bundle deleted", "bundle_id", bundleID)
	return nil
}

func (bs *bundleService) Get(ctx context.Context, bundleID uuid.UUID) (*types.ProductBundle, error) {
	bundles, err := bs.bundleRepo.GetByIDs(ctx, nil, []uuid.UUID{bundleID})
	if err != nil {
		return nil, fmt.Errorf("error fetching bundle %s: %w", bundleID, err)
	}
	if len(bundles) == 0 {
		return nil, nil
	}
	return bundles[0], nil
}

func (bs *bundleService) List(ctx context.Context) ([]*types.ProductBundle, error) {
	return bs.bundleRepo.ListAll(ctx, nil)
}

func (bs *bundleService) AddItem(ctx context.Context, bundleID uuid.UUID, item *types.ProductBundleItem, variationIDs []uuid.UUID) (*types.ProductBundleItem, error) {
	if item == nil {
		return nil, fmt.Errorf("no bundle item given")
	}
	if item.Quantity.IsNegative() {
		return nil, fmt.Errorf("bundle item quantity must not be negative")
	}
	if len(variationIDs) == 0 {
		return nil, fmt.Errorf("a bundle item needs at least one variation")
	}
	bundle, err := bs.Get(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, apierr.NotFound(fmt.Errorf("bundle %s not found", bundleID))
	}
	variations, err := bs.variationRepo.GetByIDs(ctx, nil, variationIDs)
	if err != nil {
		return nil, fmt.Errorf("error fetching variations: %w", err)
	}
	if len(variations) != len(variationIDs) {
		return nil, fmt.Errorf("one or more variations not found")
	}
	item.BundleID = bundleID
	item.Variations = variations
	if item.Position == 0 {
		item.Position = len(bundle.Items)
	}
	if item.CurrentVariationID == nil {
		item.CurrentVariationID = &variations[0].ID
	} else {
		found := false
		for _, v := range variations {
			if v.ID == *item.CurrentVariationID {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("current variation %s is not among the item's variations", *item.CurrentVariationID)
		}
	}
	created, err := bs.itemRepo.Create(ctx, nil, []*types.ProductBundleItem{item})
	if err != nil {
		return nil, fmt.Errorf("error adding item to bundle %s: %w", bundleID, err)
	}
	return created[0], nil
}

func (bs *bundleService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	if err := bs.itemRepo.Delete(ctx, nil, itemID); err != nil {
		return fmt.Errorf("error removing bundle item %s: %w", itemID, err)
	}
	return nil
}

func (bs *bundleService) SetItemCurrentVariation(ctx context.Context, itemID uuid.UUID, variationID uuid.UUID) (*types.ProductBundleItem, error) {
	items, err := bs.itemRepo.GetByIDs(ctx, nil, []uuid.UUID{itemID})
	if err != nil {
		return nil, fmt.Errorf("error fetching bundle item %s: %w", itemID, err)
	}
	if len(items) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("bundle item %s not found", itemID))
	}
	item := items[0]
	allowed := false
	for _, candidate := range item.Variations {
		if candidate.ID == variationID {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("variation %s is not referenced by bundle item %s", variationID, itemID)
	}
	item.CurrentVariationID = &variationID
	updated, err := bs.itemRepo.Update(ctx, nil, item)
	if err != nil {
		return nil, fmt.Errorf("error updating bundle item %s: %w", itemID, err)
	}
	return updated, nil
}

// ResolvePrice loads the bundle and runs the resolver chain against it in the
// store's default currency. A nil price with nil error means no resolver had
// an opinion.
func (bs *bundleService) ResolvePrice(ctx context.Context, bundleID uuid.UUID) (*types.Price, error) {
	bundle, err := bs.Get(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, apierr.NotFound(fmt.Errorf("bundle %s not found", bundleID))
	}
	currency, err := bs.currency.DefaultCurrency(ctx)
	if err != nil {
		return nil, err
	}
	return bs.priceResolver.Resolve(ctx, bundle, PriceContext{CurrencyCode: currency})
}

func (bs *bundleService) Availability(ctx context.Context, bundleID uuid.UUID, locationIDs []uuid.UUID) (*BundleAvailability, error) {
	bundle, err := bs.Get(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, apierr.NotFound(fmt.Errorf("bundle %s not found", bundleID))
	}
	return bs.availabilityOf(ctx, bundle, locationIDs)
}

func (bs *bundleService) availabilityOf(ctx context.Context, bundle *types.ProductBundle, locationIDs []uuid.UUID) (*BundleAvailability, error) {
	inStock, err := bs.stockProxy.IsInStock(ctx, bundle, locationIDs)
	if err != nil {
		return nil, err
	}
	always, err := bs.stockProxy.IsAlwaysInStock(ctx, bundle)
	if err != nil {
		return nil, err
	}
	managed, err := bs.stockProxy.IsStockManaged(ctx, bundle)
	if err != nil {
		return nil, err
	}
	availability := &BundleAvailability{
		BundleID:      bundle.ID,
		InStock:       inStock,
		AlwaysInStock: always,
		StockManaged:  managed,
	}
	level, err := bs.stockProxy.TotalStockLevel(ctx, bundle, locationIDs)
	if err != nil {
		var emptyErr *types.EmptyBundleError
		if !errors.As(err, &emptyErr) {
			return nil, err
		}
		// Level stays nil: a minimum over zero items has no value.
		return availability, nil
	}
	availability.Level = &level
	return availability, nil
}

func (bs *bundleService) CreateStockTransaction(ctx context.Context, bundleID uuid.UUID, locationID uuid.UUID, zone string, quantity decimal.Decimal, unitCost *decimal.Decimal, transactionTypeID int, metadata map[string]interface{}) error {
	bundle, err := bs.Get(ctx, bundleID)
	if err != nil {
		return err
	}
	if bundle == nil {
		return apierr.NotFound(fmt.Errorf("bundle %s not found", bundleID))
	}
	return bs.stockProxy.CreateTransaction(ctx, bundle, locationID, zone, quantity, unitCost, transactionTypeID, metadata)
}

func (bs *bundleService) LocationList(ctx context.Context, activeOnly bool) (map[uuid.UUID]*types.StockLocation, error) {
	return bs.stockProxy.LocationList(ctx, activeOnly)
}
