// internal/services/content_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridianmade/storefront/internal/models"
	"github.com/meridianmade/storefront/internal/repository"
	"github.com/meridianmade/storefront/internal/utils"
)

type EventRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    *time.Time `json:"starts_at"`
	ImageURL    string     `json:"image_url"`
	IsPublished *bool      `json:"is_published,omitempty"`
}

type GalleryImageRequest struct {
	URL      string `json:"url" validate:"required,url"`
	Caption  string `json:"caption"`
	Position int    `json:"position"`
}

type PartnerRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	LogoURL string `json:"logo_url"`
	Website string `json:"website"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

type SettingRequest struct {
	Key   string       `json:"key" validate:"required,max=100"`
	Value models.JSONB `json:"value"`
}

// ContentService is the routine data-entry plumbing behind the admin
// dashboard: events, gallery, partners, subscribers and settings.
type ContentService struct {
	db *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

// Events

func (s *ContentService) ListEvents(ctx context.Context, publishedOnly bool) ([]models.Event, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var events []models.Event
	if err := query.Order("starts_at ASC NULLS LAST").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *ContentService) CreateEvent(ctx context.Context, req *EventRequest) (*models.Event, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid event: %v", err)
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		ImageURL:    req.ImageURL,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		event.IsPublished = *req.IsPublished
	}

	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *ContentService) UpdateEvent(ctx context.Context, id uuid.UUID, req *EventRequest) (*models.Event, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid event: %v", err)
	}

	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartsAt = req.StartsAt
	event.ImageURL = req.ImageURL
	if req.IsPublished != nil {
		event.IsPublished = *req.IsPublished
	}

	if err := s.db.WithContext(ctx).Save(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return &event, nil
}

func (s *ContentService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, &models.Event{}, id)
}

// Gallery

func (s *ContentService) ListGallery(ctx context.Context) ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	err := s.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery: %w", err)
	}
	return images, nil
}

func (s *ContentService) CreateGalleryImage(ctx context.Context, req *GalleryImageRequest) (*models.GalleryImage, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid gallery image: %v", err)
	}

	image := &models.GalleryImage{
		URL:      req.URL,
		Caption:  req.Caption,
		Position: req.Position,
	}
	if err := s.db.WithContext(ctx).Create(image).Error; err != nil {
		return nil, fmt.Errorf("failed to create gallery image: %w", err)
	}
	return image, nil
}

func (s *ContentService) DeleteGalleryImage(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, &models.GalleryImage{}, id)
}

// Partners

func (s *ContentService) ListPartners(ctx context.Context) ([]models.Partner, error) {
	var partners []models.Partner
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&partners).Error; err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	return partners, nil
}

func (s *ContentService) CreatePartner(ctx context.Context, req *PartnerRequest) (*models.Partner, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid partner: %v", err)
	}

	partner := &models.Partner{
		Name:    req.Name,
		LogoURL: req.LogoURL,
		Website: req.Website,
	}
	if err := s.db.WithContext(ctx).Create(partner).Error; err != nil {
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}
	return partner, nil
}

func (s *ContentService) DeletePartner(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, &models.Partner{}, id)
}

// Subscribers

func (s *ContentService) ListSubscribers(ctx context.Context, params utils.PaginationParams) ([]models.Subscriber, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Subscriber{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	var subscribers []models.Subscriber
	err := query.Order("created_at DESC").
		Limit(params.Limit).Offset(params.Offset()).
		Find(&subscribers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subscribers, total, nil
}

// Subscribe upserts by email; re-subscribing clears a previous unsubscribe.
func (s *ContentService) Subscribe(ctx context.Context, req *SubscribeRequest) (*models.Subscriber, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("a valid email is required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var subscriber models.Subscriber
	err := s.db.WithContext(ctx).First(&subscriber, "email = ?", email).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up subscriber: %w", err)
		}
		subscriber = models.Subscriber{Email: email, Phone: req.Phone}
		if err := s.db.WithContext(ctx).Create(&subscriber).Error; err != nil {
			return nil, fmt.Errorf("failed to create subscriber: %w", err)
		}
		return &subscriber, nil
	}

	subscriber.Unsubscribed = false
	if req.Phone != "" {
		subscriber.Phone = req.Phone
	}
	if err := s.db.WithContext(ctx).Save(&subscriber).Error; err != nil {
		return nil, fmt.Errorf("failed to update subscriber: %w", err)
	}
	return &subscriber, nil
}

func (s *ContentService) Unsubscribe(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Model(&models.Subscriber{}).
		Where("id = ?", id).
		Update("unsubscribed", true)
	if res.Error != nil {
		return fmt.Errorf("failed to unsubscribe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Settings

func (s *ContentService) ListSettings(ctx context.Context) ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

func (s *ContentService) UpsertSetting(ctx context.Context, req *SettingRequest) (*models.Setting, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid setting: %v", err)
	}

	var setting models.Setting
	err := s.db.WithContext(ctx).First(&setting, "key = ?", req.Key).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up setting: %w", err)
		}
		setting = models.Setting{Key: req.Key, Value: req.Value}
		if err := s.db.WithContext(ctx).Create(&setting).Error; err != nil {
			return nil, fmt.Errorf("failed to create setting: %w", err)
		}
		return &setting, nil
	}

	setting.Value = req.Value
	if err := s.db.WithContext(ctx).Save(&setting).Error; err != nil {
		return nil, fmt.Errorf("failed to update setting: %w", err)
	}
	return &setting, nil
}

func (s *ContentService) deleteByID(ctx context.Context, model interface{}, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(model, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
