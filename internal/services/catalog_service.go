// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridianmade/storefront/internal/models"
	"github.com/meridianmade/storefront/internal/repository"
	"github.com/meridianmade/storefront/internal/utils"
)

type CreateProductRequest struct {
	Name           string                 `json:"name" validate:"required,min=2,max=255"`
	Description    string                 `json:"description"`
	PriceCents     int64                  `json:"price_cents" validate:"min=0"`
	Category       models.ProductCategory `json:"category" validate:"required,oneof=physical digital service"`
	Inventory      int                    `json:"inventory" validate:"min=-1"`
	IsActive       *bool                  `json:"is_active,omitempty"`
	Images         []string               `json:"images,omitempty"`
	DigitalFileKey string                 `json:"digital_file_key,omitempty"`
}

type UpdateProductRequest struct {
	Name           *string                 `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description    *string                 `json:"description,omitempty"`
	PriceCents     *int64                  `json:"price_cents,omitempty" validate:"omitempty,min=0"`
	Category       *models.ProductCategory `json:"category,omitempty" validate:"omitempty,oneof=physical digital service"`
	Inventory      *int                    `json:"inventory,omitempty" validate:"omitempty,min=-1"`
	IsActive       *bool                   `json:"is_active,omitempty"`
	Images         []string                `json:"images,omitempty"`
	DigitalFileKey *string                 `json:"digital_file_key,omitempty"`
}

// CatalogService owns product reads for the shop and product CRUD for the
// admin surface.
type CatalogService struct {
	db       *gorm.DB
	products repository.ProductRepository
}

func NewCatalogService(db *gorm.DB, products repository.ProductRepository) *CatalogService {
	return &CatalogService{
		db:       db,
		products: products,
	}
}

// ListActive returns the public storefront catalog.
func (s *CatalogService) ListActive(ctx context.Context) ([]models.Product, error) {
	return s.products.ListActive(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "price_cents", "inventory"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *CatalogService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid product: %v", err)
	}

	product := &models.Product{
		Name:           req.Name,
		Description:    req.Description,
		PriceCents:     req.PriceCents,
		Category:       req.Category,
		Inventory:      req.Inventory,
		IsActive:       true,
		Images:         req.Images,
		DigitalFileKey: req.DigitalFileKey,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid product: %v", err)
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.PriceCents != nil {
		product.PriceCents = *req.PriceCents
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Inventory != nil {
		product.Inventory = *req.Inventory
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.DigitalFileKey != nil {
		product.DigitalFileKey = *req.DigitalFileKey
	}

	if err := s.db.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
