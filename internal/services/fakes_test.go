package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
)

func testLogger(t interface{ Fatalf(string, ...interface{}) }) *logger.Logger {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func mustDecimal(t interface{ Fatalf(string, ...interface{}) }, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal.NewFromString(%q): %v", s, err)
	}
	return d
}

func pricePtr(amount, currency string) (*decimal.Decimal, string) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	return &d, currency
}

func variationWithPrice(amount, currency string) *types.ProductVariation {
	v := &types.ProductVariation{ID: uuid.New(), SKU: uuid.NewString()}
	if amount != "" {
		v.PriceAmount, v.PriceCurrencyCode = pricePtr(amount, currency)
	}
	return v
}

func itemFor(variation *types.ProductVariation, quantity string) *types.ProductBundleItem {
	q, err := decimal.NewFromString(quantity)
	if err != nil {
		panic(err)
	}
	item := &types.ProductBundleItem{ID: uuid.New(), Quantity: q}
	if variation != nil {
		item.CurrentVariationID = &variation.ID
		item.CurrentVariation = variation
	}
	return item
}

func bundleWithItems(items ...*types.ProductBundleItem) *types.ProductBundle {
	bundle := &types.ProductBundle{ID: uuid.New(), Title: "Test Bundle", Items: items}
	for _, item := range items {
		item.BundleID = bundle.ID
	}
	return bundle
}

// fakePurchasable is an entity outside every resolver's domain.
type fakePurchasable struct {
	id    uuid.UUID
	kind  string
	price *types.Price
}

func (f *fakePurchasable) PurchasableID() uuid.UUID       { return f.id }
func (f *fakePurchasable) PurchasableType() string        { return f.kind }
func (f *fakePurchasable) PurchasablePrice() *types.Price { return f.price }

// fixedPriceResolver always resolves the same price; nil makes it decline.
type fixedPriceResolver struct {
	price *types.Price
	calls int
}

func (r *fixedPriceResolver) Resolve(ctx context.Context, entity types.Purchasable, pctx PriceContext) (*types.Price, error) {
	r.calls++
	return r.price, nil
}

type recordedTxn struct {
	EntityID          uuid.UUID
	LocationID        uuid.UUID
	Zone              string
	Quantity          decimal.Decimal
	UnitCost          *decimal.Decimal
	TransactionTypeID int
	Metadata          map[string]interface{}
}

// fakeStockService is an in-memory StockService with per-entity knobs.
type fakeStockService struct {
	levels      map[uuid.UUID]decimal.Decimal
	always      map[uuid.UUID]bool
	locations   map[uuid.UUID]*types.StockLocation
	txns        []recordedTxn
	txnErrFor   map[uuid.UUID]error
	checkErrFor map[uuid.UUID]error
}

func newFakeStockService() *fakeStockService {
	return &fakeStockService{
		levels:      map[uuid.UUID]decimal.Decimal{},
		always:      map[uuid.UUID]bool{},
		locations:   map[uuid.UUID]*types.StockLocation{},
		txnErrFor:   map[uuid.UUID]error{},
		checkErrFor: map[uuid.UUID]error{},
	}
}

func (s *fakeStockService) CheckStockLevel(ctx context.Context, entityID uuid.UUID, locationIDs []uuid.UUID) (decimal.Decimal, error) {
	if err, ok := s.checkErrFor[entityID]; ok {
		return decimal.Zero, err
	}
	return s.levels[entityID], nil
}

func (s *fakeStockService) CheckIsInStock(ctx context.Context, entityID uuid.UUID, locationIDs []uuid.UUID) (bool, error) {
	if err, ok := s.checkErrFor[entityID]; ok {
		return false, err
	}
	if s.always[entityID] {
		return true, nil
	}
	return s.levels[entityID].IsPositive(), nil
}

func (s *fakeStockService) CheckIsAlwaysInStock(ctx context.Context, entityID uuid.UUID) (bool, error) {
	if err, ok := s.checkErrFor[entityID]; ok {
		return false, err
	}
	return s.always[entityID], nil
}

func (s *fakeStockService) ListLocations(ctx context.Context, activeOnly bool) (map[uuid.UUID]*types.StockLocation, error) {
	out := make(map[uuid.UUID]*types.StockLocation, len(s.locations))
	for id, loc := range s.locations {
		if activeOnly && !loc.Active {
			continue
		}
		out[id] = loc
	}
	return out, nil
}

func (s *fakeStockService) CreateTransaction(ctx context.Context, entityID uuid.UUID, locationID uuid.UUID, zone string, quantity decimal.Decimal, unitCost *decimal.Decimal, transactionTypeID int, metadata map[string]interface{}) error {
	if err, ok := s.txnErrFor[entityID]; ok {
		return err
	}
	s.txns = append(s.txns, recordedTxn{
		EntityID:          entityID,
		LocationID:        locationID,
		Zone:              zone,
		Quantity:          quantity,
		UnitCost:          unitCost,
		TransactionTypeID: transactionTypeID,
		Metadata:          metadata,
	})
	return nil
}

// fakeBundleRepo serves bundles from memory.
type fakeBundleRepo struct {
	bundles map[uuid.UUID]*types.ProductBundle
}

func newFakeBundleRepo(bundles ...*types.ProductBundle) *fakeBundleRepo {
	repo := &fakeBundleRepo{bundles: map[uuid.UUID]*types.ProductBundle{}}
	for _, bundle := range bundles {
		repo.bundles[bundle.ID] = bundle
	}
	return repo
}

func (r *fakeBundleRepo) Create(ctx context.Context, tx *gorm.DB, bundles []*types.ProductBundle) ([]*types.ProductBundle, error) {
	for _, bundle := range bundles {
		if bundle.ID == uuid.Nil {
			bundle.ID = uuid.New()
		}
		r.bundles[bundle.ID] = bundle
	}
	return bundles, nil
}

func (r *fakeBundleRepo) Update(ctx context.Context, tx *gorm.DB, bundle *types.ProductBundle) (*types.ProductBundle, error) {
	r.bundles[bundle.ID] = bundle
	return bundle, nil
}

func (r *fakeBundleRepo) Delete(ctx context.Context, tx *gorm.DB, bundleID uuid.UUID) error {
	delete(r.bundles, bundleID)
	return nil
}

func (r *fakeBundleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, bundleIDs []uuid.UUID) ([]*types.ProductBundle, error) {
	var out []*types.ProductBundle
	for _, id := range bundleIDs {
		if bundle, ok := r.bundles[id]; ok {
			out = append(out, bundle)
		}
	}
	return out, nil
}

func (r *fakeBundleRepo) ListByStore(ctx context.Context, tx *gorm.DB, storeID uuid.UUID) ([]*types.ProductBundle, error) {
	return r.ListAll(ctx, tx)
}

func (r *fakeBundleRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.ProductBundle, error) {
	var out []*types.ProductBundle
	for _, bundle := range r.bundles {
		out = append(out, bundle)
	}
	return out, nil
}

// fakeVariationRepo serves variations from memory.
type fakeVariationRepo struct {
	variations map[uuid.UUID]*types.ProductVariation
}

func newFakeVariationRepo(variations ...*types.ProductVariation) *fakeVariationRepo {
	repo := &fakeVariationRepo{variations: map[uuid.UUID]*types.ProductVariation{}}
	for _, v := range variations {
		repo.variations[v.ID] = v
	}
	return repo
}

func (r *fakeVariationRepo) Create(ctx context.Context, tx *gorm.DB, variations []*types.ProductVariation) ([]*types.ProductVariation, error) {
	for _, v := range variations {
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		r.variations[v.ID] = v
	}
	return variations, nil
}

func (r *fakeVariationRepo) Update(ctx context.Context, tx *gorm.DB, variation *types.ProductVariation) (*types.ProductVariation, error) {
	r.variations[variation.ID] = variation
	return variation, nil
}

func (r *fakeVariationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, variationIDs []uuid.UUID) ([]*types.ProductVariation, error) {
	var out []*types.ProductVariation
	for _, id := range variationIDs {
		if v, ok := r.variations[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVariationRepo) GetBySKU(ctx context.Context, tx *gorm.DB, sku string) (*types.ProductVariation, error) {
	for _, v := range r.variations {
		if v.SKU == sku {
			return v, nil
		}
	}
	return nil, nil
}

// fakeItemRepo serves bundle items from memory.
type fakeItemRepo struct {
	items map[uuid.UUID]*types.ProductBundleItem
}

func newFakeItemRepo(items ...*types.ProductBundleItem) *fakeItemRepo {
	repo := &fakeItemRepo{items: map[uuid.UUID]*types.ProductBundleItem{}}
	for _, item := range items {
		repo.items[item.ID] = item
	}
	return repo
}

func (r *fakeItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.ProductBundleItem) ([]*types.ProductBundleItem, error) {
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.items[item.ID] = item
	}
	return items, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, tx *gorm.DB, item *types.ProductBundleItem) (*types.ProductBundleItem, error) {
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	delete(r.items, itemID)
	return nil
}

func (r *fakeItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.ProductBundleItem, error) {
	var out []*types.ProductBundleItem
	for _, id := range itemIDs {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListByBundle(ctx context.Context, tx *gorm.DB, bundleID uuid.UUID) ([]*types.ProductBundleItem, error) {
	var out []*types.ProductBundleItem
	for _, item := range r.items {
		if item.BundleID == bundleID {
			out = append(out, item)
		}
	}
	return out, nil
}

// fakeCurrencyProvider returns a fixed currency.
type fakeCurrencyProvider struct {
	currency string
	err      error
}

func (p *fakeCurrencyProvider) DefaultCurrency(ctx context.Context) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.currency, nil
}

var errLedgerDown = fmt.Errorf("ledger unavailable")
