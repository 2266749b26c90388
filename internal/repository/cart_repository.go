// internal/repository/cart_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meridianmade/storefront/internal/models"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Get(ctx context.Context, token string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).First(&cart, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return &cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *models.Cart) error {
	// Upsert the whole record; the cart payload is always written in full.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(cart).Error
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Cart{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
