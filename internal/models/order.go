// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
)

// OrderItem is a snapshot of a product at the time of payment. Prices are the
// server-validated values embedded into the payment session, never client input.
type OrderItem struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	PriceCents int64           `json:"price_cents"`
	Quantity   int             `json:"quantity"`
	Category   ProductCategory `json:"category"`
}

type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) {
	if i == nil {
		return nil, nil
	}
	return json.Marshal(i)
}

func (i *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*i = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, i)
}

type Address struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

func (a *Address) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Address) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Order is created exactly once per completed payment session; the unique index
// on PaymentSessionID is the deduplication key for webhook redelivery.
type Order struct {
	BaseModel
	PaymentSessionID string      `json:"payment_session_id" gorm:"size:255;not null;uniqueIndex"`
	PaymentIntentID  string      `json:"payment_intent_id" gorm:"size:255;index"`
	CustomerEmail    string      `json:"customer_email" gorm:"size:255;index"`
	CustomerName     string      `json:"customer_name" gorm:"size:255"`
	Items            OrderItems  `json:"items" gorm:"type:jsonb;not null"`
	SubtotalCents    int64       `json:"subtotal_cents" gorm:"not null"`
	ShippingCents    int64       `json:"shipping_cents" gorm:"not null;default:0"`
	TotalCents       int64       `json:"total_cents" gorm:"not null"`
	Status           OrderStatus `json:"status" gorm:"type:varchar(20);default:'paid';index"`
	ShippingAddress  *Address    `json:"shipping_address,omitempty" gorm:"type:jsonb"`
	TrackingNumber   string      `json:"tracking_number,omitempty" gorm:"size:100"`
	TrackingCarrier  string      `json:"tracking_carrier,omitempty" gorm:"size:100"`
	DigitalDelivered bool        `json:"digital_delivered" gorm:"default:false"`
	Notes            string      `json:"notes,omitempty" gorm:"type:text"`
}

func (o *Order) HasPhysicalItems() bool {
	for _, item := range o.Items {
		if item.Category == ProductCategoryPhysical {
			return true
		}
	}
	return false
}

func (o *Order) DigitalItems() []OrderItem {
	var items []OrderItem
	for _, item := range o.Items {
		if item.Category == ProductCategoryDigital {
			items = append(items, item)
		}
	}
	return items
}
