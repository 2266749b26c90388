// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

// Product prices are stored in minor currency units (cents) to keep all money
// arithmetic integral. Inventory of -1 means unlimited stock.
type Product struct {
	BaseModel
	Name           string          `json:"name" gorm:"size:255;not null"`
	Description    string          `json:"description" gorm:"type:text"`
	PriceCents     int64           `json:"price_cents" gorm:"not null;check:price_cents >= 0"`
	Category       ProductCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Inventory      int             `json:"inventory" gorm:"not null;default:0"`
	IsActive       bool            `json:"is_active" gorm:"default:true;index"`
	Images         pq.StringArray  `json:"images" gorm:"type:text[]"`
	DigitalFileKey string          `json:"digital_file_key,omitempty" gorm:"size:512"`
}

const InventoryUnlimited = -1

func (p *Product) Unlimited() bool {
	return p.Inventory == InventoryUnlimited
}
