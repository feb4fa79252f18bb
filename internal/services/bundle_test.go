package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bundleworks/commerce-backend/internal/apierr"
	"github.com/bundleworks/commerce-backend/internal/types"
)

type bundleFixture struct {
	service    BundleService
	bundleRepo *fakeBundleRepo
	itemRepo   *fakeItemRepo
	stock      *fakeStockService
}

func newBundleFixture(t *testing.T, bundles ...*types.ProductBundle) *bundleFixture {
	log := testLogger(t)
	bundleRepo := newFakeBundleRepo(bundles...)
	itemRepo := newFakeItemRepo()
	for _, bundle := range bundles {
		for _, item := range bundle.Items {
			itemRepo.items[item.ID] = item
		}
	}
	var variations []*types.ProductVariation
	for _, bundle := range bundles {
		for _, item := range bundle.Items {
			if item.CurrentVariation != nil {
				variations = append(variations, item.CurrentVariation)
			}
		}
	}
	variationRepo := newFakeVariationRepo(variations...)

	stock := newFakeStockService()
	stockResolver := NewStockServiceResolver(log)
	stockResolver.Register(types.PurchasableTypeVariation, stock)
	proxy := NewBundleStockProxy(log, stockResolver)
	chain := NewChainPriceResolver(log, NewBundlePriceResolver(log), NewVariationPriceResolver(log))
	currency := &fakeCurrencyProvider{currency: "USD"}

	return &bundleFixture{
		service:    NewBundleService(nil, log, bundleRepo, itemRepo, variationRepo, chain, proxy, currency),
		bundleRepo: bundleRepo,
		itemRepo:   itemRepo,
		stock:      stock,
	}
}

func TestBundleServiceCreateRequiresTitle(t *testing.T) {
	fx := newBundleFixture(t)
	if _, err := fx.service.Create(context.Background(), &types.ProductBundle{}); err == nil {
		t.Fatal("expected error for untitled bundle")
	}
	if _, err := fx.service.Create(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil bundle")
	}
}

func TestBundleServiceCreateRejectsNegativeItemQuantity(t *testing.T) {
	fx := newBundleFixture(t)
	bundle := &types.ProductBundle{
		Title: "Starter Kit",
		Items: []*types.ProductBundleItem{{Quantity: decimal.NewFromInt(-1)}},
	}
	if _, err := fx.service.Create(context.Background(), bundle); err == nil {
		t.Fatal("expected error for negative item quantity")
	}
}

func TestBundleServiceResolvePriceUsesStoreCurrency(t *testing.T) {
	bundle := bundleWithItems(
		itemFor(variationWithPrice("11.11", "USD"), "1"),
		itemFor(variationWithPrice("8.89", "USD"), "1"),
	)
	fx := newBundleFixture(t, bundle)

	price, err := fx.service.ResolvePrice(context.Background(), bundle.ID)
	if err != nil {
		t.Fatalf("ResolvePrice returned error: %v", err)
	}
	if price == nil {
		t.Fatal("ResolvePrice returned nil price")
	}
	if got, want := price.String(), "20 USD"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestBundleServiceResolvePriceUnknownBundle(t *testing.T) {
	fx := newBundleFixture(t)
	_, err := fx.service.ResolvePrice(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for unknown bundle")
	}
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("got %v, want a 404 api error", err)
	}
}

func TestBundleServiceAvailability(t *testing.T) {
	v1 := variationWithPrice("5.00", "USD")
	v2 := variationWithPrice("5.00", "USD")
	bundle := bundleWithItems(itemFor(v1, "1"), itemFor(v2, "1"))
	fx := newBundleFixture(t, bundle)
	fx.stock.levels[v1.ID] = decimal.NewFromInt(12)
	fx.stock.levels[v2.ID] = decimal.NewFromInt(4)

	availability, err := fx.service.Availability(context.Background(), bundle.ID, nil)
	if err != nil {
		t.Fatalf("Availability returned error: %v", err)
	}
	if !availability.InStock {
		t.Fatal("stocked bundle reported out of stock")
	}
	if availability.AlwaysInStock {
		t.Fatal("tracked bundle reported always in stock")
	}
	if !availability.StockManaged {
		t.Fatal("bundle should be stock managed")
	}
	if availability.Level == nil || availability.Level.String() != "4" {
		t.Fatalf("got level %v, want 4", availability.Level)
	}
}

func TestBundleServiceAvailabilityEmptyBundleHasNoLevel(t *testing.T) {
	bundle := bundleWithItems()
	fx := newBundleFixture(t, bundle)

	availability, err := fx.service.Availability(context.Background(), bundle.ID, nil)
	if err != nil {
		t.Fatalf("Availability returned error: %v", err)
	}
	if !availability.InStock || !availability.AlwaysInStock {
		t.Fatal("empty bundle should be vacuously in stock and always in stock")
	}
	if availability.Level != nil {
		t.Fatalf("got level %s, want none for an empty bundle", availability.Level)
	}
}

func TestBundleServiceCreateStockTransaction(t *testing.T) {
	v := variationWithPrice("5.00", "USD")
	bundle := bundleWithItems(itemFor(v, "3"))
	fx := newBundleFixture(t, bundle)

	err := fx.service.CreateStockTransaction(context.Background(), bundle.ID, uuid.New(), "",
		decimal.NewFromInt(2), nil, types.StockTxnTypeSale, nil)
	if err != nil {
		t.Fatalf("CreateStockTransaction returned error: %v", err)
	}
	if len(fx.stock.txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(fx.stock.txns))
	}
	if got, want := fx.stock.txns[0].Quantity.String(), "6"; got != want {
		t.Fatalf("got quantity %s, want %s", got, want)
	}
}

func TestBundleServiceAddItemDefaultsCurrentVariation(t *testing.T) {
	bundle := bundleWithItems()
	fx := newBundleFixture(t, bundle)
	v1 := variationWithPrice("5.00", "USD")
	v2 := variationWithPrice("6.00", "USD")
	variationRepo := newFakeVariationRepo(v1, v2)
	log := testLogger(t)
	stockResolver := NewStockServiceResolver(log)
	stockResolver.Register(types.PurchasableTypeVariation, newFakeStockService())
	proxy := NewBundleStockProxy(log, stockResolver)
	chain := NewChainPriceResolver(log, NewBundlePriceResolver(log))
	service := NewBundleService(nil, log, fx.bundleRepo, fx.itemRepo, variationRepo, chain, proxy, &fakeCurrencyProvider{currency: "USD"})

	item := &types.ProductBundleItem{Quantity: decimal.NewFromInt(1)}
	created, err := service.AddItem(context.Background(), bundle.ID, item, []uuid.UUID{v1.ID, v2.ID})
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if created.CurrentVariationID == nil || *created.CurrentVariationID != v1.ID {
		t.Fatalf("got current variation %v, want the first referenced variation %s", created.CurrentVariationID, v1.ID)
	}
	if created.BundleID != bundle.ID {
		t.Fatalf("item bound to bundle %s, want %s", created.BundleID, bundle.ID)
	}

	foreign := &types.ProductBundleItem{Quantity: decimal.NewFromInt(1)}
	outside := uuid.New()
	foreign.CurrentVariationID = &outside
	if _, err := service.AddItem(context.Background(), bundle.ID, foreign, []uuid.UUID{v1.ID}); err == nil {
		t.Fatal("expected error for current variation outside the item's variations")
	}
}

func TestBundleServiceSetItemCurrentVariation(t *testing.T) {
	v1 := variationWithPrice("5.00", "USD")
	v2 := variationWithPrice("6.00", "USD")
	item := itemFor(v1, "1")
	item.Variations = []*types.ProductVariation{v1, v2}
	bundle := bundleWithItems(item)
	fx := newBundleFixture(t, bundle)

	updated, err := fx.service.SetItemCurrentVariation(context.Background(), item.ID, v2.ID)
	if err != nil {
		t.Fatalf("SetItemCurrentVariation returned error: %v", err)
	}
	if updated.CurrentVariationID == nil || *updated.CurrentVariationID != v2.ID {
		t.Fatalf("got current variation %v, want %s", updated.CurrentVariationID, v2.ID)
	}

	if _, err := fx.service.SetItemCurrentVariation(context.Background(), item.ID, uuid.New()); err == nil {
		t.Fatal("expected error for variation the item does not reference")
	}
}

func TestBundleServiceGetReturnsNilForUnknownBundle(t *testing.T) {
	fx := newBundleFixture(t)
	bundle, err := fx.service.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if bundle != nil {
		t.Fatalf("got %v, want nil", bundle)
	}
}
