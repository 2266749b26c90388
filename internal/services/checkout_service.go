// internal/services/checkout_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/meridianmade/storefront/internal/models"
	"github.com/meridianmade/storefront/internal/repository"
)

// MetadataOrderItemsKey is the payment-session metadata field carrying the
// serialized snapshot of validated order items. The webhook reconciler reads
// it back instead of re-querying the catalog after payment.
const MetadataOrderItemsKey = "order_items"

type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// CheckoutRequest carries product ids and quantities only. Client-supplied
// prices are never part of the contract.
type CheckoutRequest struct {
	Items      []CheckoutItemRequest `json:"items"`
	SuccessURL string                `json:"successUrl"`
	CancelURL  string                `json:"cancelUrl"`
}

type SessionLineItem struct {
	Name       string
	PriceCents int64
	Quantity   int
}

type SessionParams struct {
	LineItems       []SessionLineItem
	SuccessURL      string
	CancelURL       string
	CollectShipping bool
	Metadata        map[string]string
}

type SessionResult struct {
	ID  string
	URL string
}

// PaymentSessionCreator creates a provider-hosted payment session and returns
// its opaque redirect URL.
type PaymentSessionCreator interface {
	CreateSession(ctx context.Context, params *SessionParams) (*SessionResult, error)
}

// CheckoutService is the single point where price and availability are
// authoritative. It performs no writes; validation is pure reads plus the
// remote session creation.
type CheckoutService struct {
	products repository.ProductRepository
	sessions PaymentSessionCreator
}

func NewCheckoutService(products repository.ProductRepository, sessions PaymentSessionCreator) *CheckoutService {
	return &CheckoutService{
		products: products,
		sessions: sessions,
	}
}

// CreateCheckoutSession validates the request against the catalog and returns
// the payment-session URL to redirect the shopper to.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (string, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return "", err
	}

	lineItems := make([]SessionLineItem, 0, len(req.Items))
	snapshot := make(models.OrderItems, 0, len(req.Items))
	collectShipping := false

	for _, item := range req.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", NewValidationError("product %s not found", item.ProductID)
			}
			return "", fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
		}

		if !product.IsActive {
			return "", NewValidationError("%s is no longer available", product.Name)
		}

		if product.Category == models.ProductCategoryPhysical && !product.Unlimited() {
			if product.Inventory < item.Quantity {
				return "", NewValidationError("Only %d left of %s", product.Inventory, product.Name)
			}
		}

		if product.Category == models.ProductCategoryPhysical {
			collectShipping = true
		}

		// Prices and names come from the catalog, never the client.
		lineItems = append(lineItems, SessionLineItem{
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   item.Quantity,
		})
		snapshot = append(snapshot, models.OrderItem{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   item.Quantity,
			Category:   product.Category,
		})
	}

	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to serialize order snapshot: %w", err)
	}

	result, err := s.sessions.CreateSession(ctx, &SessionParams{
		LineItems:       lineItems,
		SuccessURL:      req.SuccessURL,
		CancelURL:       req.CancelURL,
		CollectShipping: collectShipping,
		Metadata: map[string]string{
			MetadataOrderItemsKey: string(snapshotJSON),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create payment session: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"session_id": result.ID,
		"items":      len(lineItems),
	}).Info("Checkout session created")

	return result.URL, nil
}

func validateCheckoutRequest(req *CheckoutRequest) error {
	if req == nil || len(req.Items) == 0 {
		return NewValidationError("cart is empty")
	}
	if req.SuccessURL == "" || req.CancelURL == "" {
		return NewValidationError("success and cancel URLs are required")
	}
	for _, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return NewValidationError("item is missing a product id")
		}
		if item.Quantity < 1 {
			return NewValidationError("item quantity must be at least 1")
		}
	}
	return nil
}
