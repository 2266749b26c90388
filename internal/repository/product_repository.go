// internal/repository/product_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridianmade/storefront/internal/models"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) DecrementInventory(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	// Single conditional UPDATE so two concurrent orders for the same product
	// can never drive finite inventory below zero. The -1 sentinel row matches
	// the WHERE clause but keeps its value.
	res := r.db.WithContext(ctx).Exec(
		`UPDATE products
		 SET inventory = CASE WHEN inventory = -1 THEN inventory ELSE inventory - ? END,
		     updated_at = NOW()
		 WHERE id = ? AND deleted_at IS NULL AND (inventory = -1 OR inventory >= ?)`,
		quantity, id, quantity,
	)
	if res.Error != nil {
		return false, fmt.Errorf("failed to decrement inventory: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
