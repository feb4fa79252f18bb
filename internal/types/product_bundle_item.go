package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductBundleItem wraps one purchasable slot of a bundle. It can reference
// several candidate variations but exposes exactly one current selection at a
// time. Position keeps items addressable by their order in the bundle.
type ProductBundleItem struct {
	ID       uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BundleID uuid.UUID      `gorm:"type:uuid;not null;index" json:"bundle_id"`
	Bundle   *ProductBundle `gorm:"foreignKey:BundleID;references:ID" json:"bundle,omitempty"`
	Title    string         `json:"title,omitempty"`
	Position int            `gorm:"not null;default:0;index" json:"position"`

	// Quantity multiplies every stock transaction fanned out to this item.
	Quantity decimal.Decimal `gorm:"type:numeric(10,2);not null;default:1" json:"quantity"`

	Variations []*ProductVariation `gorm:"many2many:product_bundle_item_variation" json:"variations,omitempty"`

	CurrentVariationID *uuid.UUID        `gorm:"type:uuid;index" json:"current_variation_id,omitempty"`
	CurrentVariation   *ProductVariation `gorm:"foreignKey:CurrentVariationID;references:ID" json:"current_variation,omitempty"`

	UnitPriceAmount       *decimal.Decimal `gorm:"type:numeric(12,2)" json:"unit_price_amount,omitempty"`
	UnitPriceCurrencyCode string           `gorm:"size:3" json:"unit_price_currency_code,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProductBundleItem) TableName() string { return "product_bundle_item" }

// UnitPrice is the item's own price override, when one is set.
func (bi *ProductBundleItem) UnitPrice() *Price {
	if bi.UnitPriceAmount == nil || bi.UnitPriceCurrencyCode == "" {
		return nil
	}
	return &Price{Amount: *bi.UnitPriceAmount, CurrencyCode: bi.UnitPriceCurrencyCode}
}

// EffectiveUnitPrice resolves the price one unit of this item contributes to
// the bundle sum: the override when present, otherwise the current
// variation's own price. Nil when neither is available.
func (bi *ProductBundleItem) EffectiveUnitPrice() *Price {
	if p := bi.UnitPrice(); p != nil {
		return p
	}
	if bi.CurrentVariation != nil {
		return bi.CurrentVariation.PurchasablePrice()
	}
	return nil
}
