package types

import (
	"fmt"

	"github.com/google/uuid"
)

// MissingPriceError reports a bundle item whose effective unit price could not
// be determined while summing an item-priced bundle.
type MissingPriceError struct {
	BundleID uuid.UUID
	ItemID   uuid.UUID
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("bundle %s: item %s has no unit price", e.BundleID, e.ItemID)
}

// CurrencyMismatchError reports an attempt to combine amounts in two
// different currencies. Amounts are never coerced.
type CurrencyMismatchError struct {
	Left  string
	Right string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: %s vs %s", e.Left, e.Right)
}

// EmptyBundleError reports an aggregation that has no defined result over a
// bundle with zero items, such as a minimum stock level.
type EmptyBundleError struct {
	BundleID uuid.UUID
	Op       string
}

func (e *EmptyBundleError) Error() string {
	return fmt.Sprintf("bundle %s has no items, %s is undefined", e.BundleID, e.Op)
}
