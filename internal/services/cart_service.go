// internal/services/cart_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/meridianmade/storefront/internal/models"
	"github.com/meridianmade/storefront/internal/repository"
)

// CartView is what handlers return to the shopper.
type CartView struct {
	Token      string            `json:"token"`
	Items      []models.CartItem `json:"items"`
	TotalCents int64             `json:"total_cents"`
	Count      int               `json:"count"`
}

// CartService maintains the shopper's pending selection independent of
// checkout. The whole cart record is read and rewritten on every mutation; a
// missing or corrupt record reads as an empty cart, never an error.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

func (s *CartService) Get(ctx context.Context, token string) *CartView {
	return s.view(token, s.loadItems(ctx, token))
}

func (s *CartService) AddItem(ctx context.Context, token string, productID uuid.UUID, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, NewValidationError("quantity must be at least 1")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewValidationError("product %s not found", productID)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if !product.IsActive {
		return nil, NewValidationError("%s is no longer available", product.Name)
	}

	items := s.loadItems(ctx, token)
	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   quantity,
			Category:   product.Category,
		})
	}

	if err := s.persist(ctx, token, items); err != nil {
		return nil, err
	}
	return s.view(token, items), nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, quantity int) (*CartView, error) {
	items := s.loadItems(ctx, token)

	updated := items[:0]
	for _, item := range items {
		if item.ProductID == productID {
			// Zero or negative quantity removes the line.
			if quantity <= 0 {
				continue
			}
			item.Quantity = quantity
		}
		updated = append(updated, item)
	}

	if err := s.persist(ctx, token, updated); err != nil {
		return nil, err
	}
	return s.view(token, updated), nil
}

func (s *CartService) RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*CartView, error) {
	return s.UpdateQuantity(ctx, token, productID, 0)
}

// Clear empties the cart, used after a confirmed checkout return.
func (s *CartService) Clear(ctx context.Context, token string) error {
	if err := s.carts.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *CartService) loadItems(ctx context.Context, token string) []models.CartItem {
	cart, err := s.carts.Get(ctx, token)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logrus.WithError(err).WithField("cart_token", token).
				Warn("Cart read failed, starting over with an empty cart")
		}
		return nil
	}

	var items []models.CartItem
	if err := json.Unmarshal(cart.Payload, &items); err != nil {
		// Corruption means start over, not a fatal error.
		logrus.WithError(err).WithField("cart_token", token).
			Warn("Cart payload corrupt, starting over with an empty cart")
		return nil
	}
	return items
}

func (s *CartService) persist(ctx context.Context, token string, items []models.CartItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	cart := &models.Cart{
		Token:     token,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func (s *CartService) view(token string, items []models.CartItem) *CartView {
	view := &CartView{
		Token: token,
		Items: items,
	}
	if view.Items == nil {
		view.Items = []models.CartItem{}
	}
	for _, item := range items {
		view.TotalCents += item.PriceCents * int64(item.Quantity)
		view.Count += item.Quantity
	}
	return view
}
