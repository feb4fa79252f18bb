package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoreID uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	Store   *Store    `gorm:"foreignKey:StoreID;references:ID" json:"store,omitempty"`
	Title   string    `gorm:"not null" json:"title"`
	Body    string    `json:"body,omitempty"`

	Variations []*ProductVariation `gorm:"foreignKey:ProductID;references:ID" json:"variations,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string { return "product" }
