package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StockTxnTypeStockIn  = 1
	StockTxnTypeStockOut = 2
	StockTxnTypeSale     = 4
	StockTxnTypeReturn   = 5
)

// StockTransaction is one signed movement in the variation stock ledger. The
// current level of a variation at a location is the sum of its transaction
// quantities there.
type StockTransaction struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VariationID uuid.UUID         `gorm:"type:uuid;not null;index:idx_stock_txn_variation_location,priority:1" json:"variation_id"`
	Variation   *ProductVariation `gorm:"foreignKey:VariationID;references:ID" json:"variation,omitempty"`
	LocationID  uuid.UUID         `gorm:"type:uuid;not null;index:idx_stock_txn_variation_location,priority:2" json:"location_id"`
	Location    *StockLocation    `gorm:"foreignKey:LocationID;references:ID" json:"location,omitempty"`
	Zone        string            `json:"zone,omitempty"`

	Quantity decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"quantity"`
	UnitCost *decimal.Decimal `gorm:"type:numeric(12,2)" json:"unit_cost,omitempty"`

	TransactionTypeID int            `gorm:"not null" json:"transaction_type_id"`
	Data              datatypes.JSON `json:"data,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (StockTransaction) TableName() string { return "stock_transaction" }
