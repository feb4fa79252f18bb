package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bundleworks/commerce-backend/internal/types"
)

func TestBundlePriceResolverStaticPriceWins(t *testing.T) {
	log := testLogger(t)
	resolver := NewBundlePriceResolver(log)

	item := itemFor(variationWithPrice("99.99", "USD"), "1")
	bundle := bundleWithItems(item)
	bundle.PriceAmount, bundle.PriceCurrencyCode = pricePtr("49.50", "USD")

	price, err := resolver.Resolve(context.Background(), bundle, PriceContext{CurrencyCode: "USD"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if price == nil {
		t.Fatal("Resolve returned nil price")
	}
	if got, want := price.Amount.String(), "49.5"; got != want {
		t.Fatalf("got amount %s, want %s", got, want)
	}
	if price.CurrencyCode != "USD" {
		t.Fatalf("got currency %s, want USD", price.CurrencyCode)
	}
}

func TestBundlePriceResolverSumsItemUnitPrices(t *testing.T) {
	log := testLogger(t)
	resolver := NewBundlePriceResolver(log)

	items := make([]*types.ProductBundleItem, 0, 5)
	for i := 0; i < 5; i++ {
		items = append(items, itemFor(variationWithPrice("11.11", "EUR"), "1"))
	}
	bundle := bundleWithItems(items...)

	price, err := resolver.Resolve(context.Background(), bundle, PriceContext{CurrencyCode: "EUR"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if price == nil {
		t.Fatal("Resolve returned nil price")
	}
	if got, want := price.Amount.String(), "55.55"; got != want {
		t.Fatalf("got amount %s, want %s", got, want)
	}
}

func TestBundlePriceResolverItemOverrideBeatsVariationPrice(t *testing.T) {
	log := testLogger(t)
	resolver := NewBundlePriceResolver(log)

	item := itemFor(variationWithPrice("100.00", "USD"), "1")
	item.UnitPriceAmount, item.UnitPriceCurrencyCode = pricePtr("60.00", "USD")
	bundle := bundleWithItems(item, itemFor(variationWithPrice("10.00", "USD"), "1"))

	price, err := resolver.Resolve(context.Background(), bundle, PriceContext{CurrencyCode: "USD"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got, want := price.Amount.String(), "70"; got != want {
		t.Fatalf("got amount %s, want %s", got, want)
	}
}

func TestBundlePriceResolverEmptyBundleIsZero(t *testing.T) {
	log := testLogger(t)
	resolver := NewBundlePriceResolver(log)

	bundle := bundleWithItems()

	price, err := resolver.Resolve(context.Background(), bundle, PriceContext{CurrencyCode: "GBP"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if price == nil {
		t.Fatal("Resolve returned nil price")
	}
	if !price.IsZero() {
		t.Fatalf("got amount %s, want zero", price.Amount.String())
	}
	if price.CurrencyCode != "GBP" {
		t.Fatalf("got currency %s, want GBP", price.CurrencyCode)
	}
}

func TestBundlePriceResolverDeclinesOtherEntities(t *testing.T) {
	log := testLogger(t)
	resolver := NewBundlePriceResolver(log)

	entity := &fakePurchasable{id: uuid.New(), kind: types.PurchasableTypeVariation}

	price, err := resolver.Resolve(context.Background(), entity, PriceContext{CurrencyCode: "USD"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if price != nil {
		t.Fatalf("expected no opinion, got %s", price)
	}
}

func TestBundlePriceResolverMissingUnitPrice(t *testing.T) {
	log := testLogger(t)
	resolver := NewBundlePriceResolver(log)

	unpriced := itemFor(variationWithPrice("", ""), "1")
	bundle := bundleWithItems(itemFor(variationWithPrice("5.00", "USD"), "1"), unpriced)

	price, err := resolver.Resolve(context.Background(), bundle, PriceContext{CurrencyCode: "USD"})
	if price != nil {
		t.Fatalf("expected nil price, got %s", price)
	}
	var missing *types.MissingPriceError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingPriceError", err)
	}
	if missing.BundleID != bundle.ID || missing.ItemID != unpriced.ID {
		t.Fatalf("error names bundle %s item %s, want bundle %s item %s",
			missing.BundleID, missing.ItemID, bundle.ID, unpriced.ID)
	}
}

func TestBundlePriceResolverCurrencyMismatch(t *testing.T) {
	log := testLogger(t)
	resolver := NewBundlePriceResolver(log)

	bundle := bundleWithItems(
		itemFor(variationWithPrice("5.00", "USD"), "1"),
		itemFor(variationWithPrice("5.00", "EUR"), "1"),
	)

	_, err := resolver.Resolve(context.Background(), bundle, PriceContext{CurrencyCode: "USD"})
	var mismatch *types.CurrencyMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want CurrencyMismatchError", err)
	}
	if mismatch.Left != "USD" || mismatch.Right != "EUR" {
		t.Fatalf("got mismatch %s vs %s, want USD vs EUR", mismatch.Left, mismatch.Right)
	}
}

func TestBundlePriceResolverContextCurrencyMismatch(t *testing.T) {
	log := testLogger(t)
	resolver := NewBundlePriceResolver(log)

	// The accumulator starts at zero in the context currency, so an item
	// priced in another currency cannot be added to it.
	bundle := bundleWithItems(itemFor(variationWithPrice("5.00", "EUR"), "1"))

	_, err := resolver.Resolve(context.Background(), bundle, PriceContext{CurrencyCode: "USD"})
	var mismatch *types.CurrencyMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want CurrencyMismatchError", err)
	}
}

func TestChainPriceResolverFirstResolvedWins(t *testing.T) {
	log := testLogger(t)

	first, err := types.NewPrice("10.00", "USD")
	if err != nil {
		t.Fatalf("NewPrice: %v", err)
	}
	second, err := types.NewPrice("20.00", "USD")
	if err != nil {
		t.Fatalf("NewPrice: %v", err)
	}
	declining := &fixedPriceResolver{price: nil}
	winner := &fixedPriceResolver{price: &first}
	shadowed := &fixedPriceResolver{price: &second}
	chain := NewChainPriceResolver(log, declining, winner, shadowed)

	entity := &fakePurchasable{id: uuid.New(), kind: types.PurchasableTypeVariation}
	price, err := chain.Resolve(context.Background(), entity, PriceContext{CurrencyCode: "USD"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if price == nil || !price.Equal(first) {
		t.Fatalf("got %v, want %s", price, first)
	}
	if declining.calls != 1 || winner.calls != 1 {
		t.Fatalf("earlier resolvers called %d/%d times, want 1/1", declining.calls, winner.calls)
	}
	if shadowed.calls != 0 {
		t.Fatalf("resolver after the winner was called %d times", shadowed.calls)
	}
}

func TestChainPriceResolverAllDecline(t *testing.T) {
	log := testLogger(t)
	chain := NewChainPriceResolver(log, &fixedPriceResolver{}, &fixedPriceResolver{})

	entity := &fakePurchasable{id: uuid.New(), kind: "gift_card"}
	price, err := chain.Resolve(context.Background(), entity, PriceContext{CurrencyCode: "USD"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if price != nil {
		t.Fatalf("expected no opinion, got %s", price)
	}
}

func TestVariationPriceResolver(t *testing.T) {
	log := testLogger(t)
	resolver := NewVariationPriceResolver(log)

	priced := variationWithPrice("12.34", "USD")
	price, err := resolver.Resolve(context.Background(), priced, PriceContext{CurrencyCode: "USD"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if price == nil || price.Amount.String() != "12.34" {
		t.Fatalf("got %v, want 12.34 USD", price)
	}

	unpriced := variationWithPrice("", "")
	price, err = resolver.Resolve(context.Background(), unpriced, PriceContext{CurrencyCode: "USD"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if price != nil {
		t.Fatalf("expected no opinion for unpriced variation, got %s", price)
	}

	price, err = resolver.Resolve(context.Background(), bundleWithItems(), PriceContext{CurrencyCode: "USD"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if price != nil {
		t.Fatalf("expected no opinion for non-variation entity, got %s", price)
	}
}
