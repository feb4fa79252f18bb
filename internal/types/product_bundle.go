package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductBundle is a sellable composite of bundle items. A bundle may carry a
// static price; when it does, that price wins over anything computed from the
// items.
type ProductBundle struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoreID uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	Store   *Store    `gorm:"foreignKey:StoreID;references:ID" json:"store,omitempty"`
	Title   string    `gorm:"not null" json:"title"`
	Body    string    `json:"body,omitempty"`

	PriceAmount       *decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_amount,omitempty"`
	PriceCurrencyCode string           `gorm:"size:3" json:"price_currency_code,omitempty"`

	// Items are exclusively owned; deleting the bundle cascades to them.
	Items []*ProductBundleItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:BundleID;references:ID" json:"items,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProductBundle) TableName() string { return "product_bundle" }

func (pb *ProductBundle) PurchasableID() uuid.UUID { return pb.ID }
func (pb *ProductBundle) PurchasableType() string  { return PurchasableTypeBundle }
func (pb *ProductBundle) PurchasablePrice() *Price {
	if pb.PriceAmount == nil || pb.PriceCurrencyCode == "" {
		return nil
	}
	return &Price{Amount: *pb.PriceAmount, CurrencyCode: pb.PriceCurrencyCode}
}
