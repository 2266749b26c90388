// internal/models/cart.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a single persisted record per shopper, keyed by an opaque token the
// client holds. Items live in one JSON payload that is read-modify-written
// whole on every mutation so rapid interactions never interleave partial state.
type Cart struct {
	Token     string    `json:"token" gorm:"primaryKey;size:64"`
	Payload   []byte    `json:"-" gorm:"type:jsonb"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem snapshots the product at the time it was added. Snapshots may drift
// from catalog truth; checkout re-validates against the catalog.
type CartItem struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	PriceCents int64           `json:"price_cents"`
	Quantity   int             `json:"quantity"`
	Category   ProductCategory `json:"category"`
}
