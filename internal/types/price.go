package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is a currency-tagged decimal amount. It is a value type shared by the
// catalog models and the price resolvers; arithmetic never crosses currencies.
type Price struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
}

func NewPrice(amount string, currencyCode string) (Price, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price amount %q: %w", amount, err)
	}
	return Price{Amount: d, CurrencyCode: currencyCode}, nil
}

func ZeroPrice(currencyCode string) Price {
	return Price{Amount: decimal.Zero, CurrencyCode: currencyCode}
}

func (p Price) Add(other Price) (Price, error) {
	if p.CurrencyCode != other.CurrencyCode {
		return Price{}, &CurrencyMismatchError{Left: p.CurrencyCode, Right: other.CurrencyCode}
	}
	return Price{Amount: p.Amount.Add(other.Amount), CurrencyCode: p.CurrencyCode}, nil
}

func (p Price) Multiply(factor decimal.Decimal) Price {
	return Price{Amount: p.Amount.Mul(factor), CurrencyCode: p.CurrencyCode}
}

func (p Price) IsZero() bool {
	return p.Amount.IsZero()
}

func (p Price) Equal(other Price) bool {
	return p.CurrencyCode == other.CurrencyCode && p.Amount.Equal(other.Amount)
}

func (p Price) String() string {
	return p.Amount.String() + " " + p.CurrencyCode
}
