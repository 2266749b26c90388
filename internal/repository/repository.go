// internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/meridianmade/storefront/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ProductRepository provides access to the product catalog.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListActive(ctx context.Context) ([]models.Product, error)

	// DecrementInventory atomically decrements a product's inventory by quantity.
	// Unlimited inventory (-1) matches but is left untouched. Returns false when
	// the product is missing or finite inventory is insufficient.
	DecrementInventory(ctx context.Context, id uuid.UUID, quantity int) (bool, error)
}

// OrderRepository persists durable orders.
type OrderRepository interface {
	// CreateIfAbsent inserts the order unless one already exists for its payment
	// session id. Returns false without error on a duplicate, which is how
	// webhook redelivery is deduplicated.
	CreateIfAbsent(ctx context.Context, order *models.Order) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByPaymentSessionID(ctx context.Context, sessionID string) (*models.Order, error)
	List(ctx context.Context, status *models.OrderStatus, limit, offset int) ([]models.Order, int64, error)
	Save(ctx context.Context, order *models.Order) error
	MarkDigitalDelivered(ctx context.Context, id uuid.UUID) error
}

// CartRepository stores one whole cart record per token.
type CartRepository interface {
	Get(ctx context.Context, token string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, token string) error
}

// SubscriberRepository lists blast recipients.
type SubscriberRepository interface {
	ListActive(ctx context.Context) ([]models.Subscriber, error)
}
