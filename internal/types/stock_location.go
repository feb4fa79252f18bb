package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockLocation struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name   string    `gorm:"not null" json:"name"`
	Active bool      `gorm:"not null;default:true;index" json:"active"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StockLocation) TableName() string { return "stock_location" }
