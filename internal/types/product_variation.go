package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductVariation struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
	SKU       string    `gorm:"uniqueIndex;not null" json:"sku"`
	Title     string    `gorm:"not null" json:"title"`

	PriceAmount       *decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_amount,omitempty"`
	PriceCurrencyCode string           `gorm:"size:3" json:"price_currency_code,omitempty"`

	// AlwaysInStock marks variations whose stock is not depletion-tracked.
	AlwaysInStock bool `gorm:"not null;default:false" json:"always_in_stock"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProductVariation) TableName() string { return "product_variation" }

func (pv *ProductVariation) PurchasableID() uuid.UUID { return pv.ID }
func (pv *ProductVariation) PurchasableType() string  { return PurchasableTypeVariation }
func (pv *ProductVariation) PurchasablePrice() *Price {
	if pv.PriceAmount == nil || pv.PriceCurrencyCode == "" {
		return nil
	}
	return &Price{Amount: *pv.PriceAmount, CurrencyCode: pv.PriceCurrencyCode}
}
