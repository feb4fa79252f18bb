package types

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func mustPrice(t *testing.T, amount, currency string) Price {
	t.Helper()
	p, err := NewPrice(amount, currency)
	if err != nil {
		t.Fatalf("NewPrice(%q, %q): %v", amount, currency, err)
	}
	return p
}

func TestPriceAdd(t *testing.T) {
	a := mustPrice(t, "10.50", "USD")
	b := mustPrice(t, "4.25", "USD")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if got, want := sum.String(), "14.75 USD"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestPriceAddCurrencyMismatch(t *testing.T) {
	a := mustPrice(t, "10.00", "USD")
	b := mustPrice(t, "10.00", "EUR")

	_, err := a.Add(b)
	var mismatch *CurrencyMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want CurrencyMismatchError", err)
	}
	if mismatch.Left != "USD" || mismatch.Right != "EUR" {
		t.Fatalf("got mismatch %s vs %s, want USD vs EUR", mismatch.Left, mismatch.Right)
	}
}

func TestPriceMultiply(t *testing.T) {
	p := mustPrice(t, "11.11", "EUR")
	scaled := p.Multiply(decimal.NewFromInt(5))
	if got, want := scaled.String(), "55.55 EUR"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestNewPriceRejectsBadAmount(t *testing.T) {
	if _, err := NewPrice("not-a-number", "USD"); err == nil {
		t.Fatal("expected error for unparseable amount")
	}
}

func TestZeroPrice(t *testing.T) {
	p := ZeroPrice("GBP")
	if !p.IsZero() {
		t.Fatal("zero price not zero")
	}
	if p.CurrencyCode != "GBP" {
		t.Fatalf("got currency %s, want GBP", p.CurrencyCode)
	}
}

func TestBundleItemEffectiveUnitPrice(t *testing.T) {
	variationAmount := decimal.NewFromFloat(20.00)
	variation := &ProductVariation{
		PriceAmount:       &variationAmount,
		PriceCurrencyCode: "USD",
	}
	item := &ProductBundleItem{CurrentVariation: variation}

	price := item.EffectiveUnitPrice()
	if price == nil || !price.Amount.Equal(variationAmount) {
		t.Fatalf("got %v, want the current variation's price", price)
	}

	override := decimal.NewFromFloat(15.00)
	item.UnitPriceAmount = &override
	item.UnitPriceCurrencyCode = "USD"
	price = item.EffectiveUnitPrice()
	if price == nil || !price.Amount.Equal(override) {
		t.Fatalf("got %v, want the item's own override", price)
	}

	bare := &ProductBundleItem{}
	if bare.EffectiveUnitPrice() != nil {
		t.Fatal("item with no override and no current variation should have no unit price")
	}
}
