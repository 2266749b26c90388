// internal/repository/subscriber_repository.go
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/meridianmade/storefront/internal/models"
)

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) ListActive(ctx context.Context) ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := r.db.WithContext(ctx).
		Where("unsubscribed = ?", false).
		Order("created_at ASC").
		Find(&subscribers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subscribers, nil
}
