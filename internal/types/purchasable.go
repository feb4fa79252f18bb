package types

import "github.com/google/uuid"

const (
	PurchasableTypeVariation = "product_variation"
	PurchasableTypeBundle    = "product_bundle"
)

// Purchasable is anything that can be put in a cart: it has an identity, a
// kind (used to locate its stock service) and possibly a price of its own.
// A nil price means the entity carries no price itself and something else has
// to resolve one for it.
type Purchasable interface {
	PurchasableID() uuid.UUID
	PurchasableType() string
	PurchasablePrice() *Price
}
