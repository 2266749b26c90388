// internal/services/order_admin_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/meridianmade/storefront/internal/models"
	"github.com/meridianmade/storefront/internal/repository"
	"github.com/meridianmade/storefront/internal/utils"
)

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

type AttachTrackingRequest struct {
	TrackingNumber  string `json:"tracking_number" validate:"required"`
	TrackingCarrier string `json:"tracking_carrier"`
}

type AppendNoteRequest struct {
	Note string `json:"note" validate:"required"`
}

// OrderAdminService exposes the thin admin mutations over orders. Status
// transitions are unrestricted; the dashboard is trusted to move orders in
// any direction.
type OrderAdminService struct {
	orders repository.OrderRepository
}

func NewOrderAdminService(orders repository.OrderRepository) *OrderAdminService {
	return &OrderAdminService{orders: orders}
}

func (s *OrderAdminService) List(ctx context.Context, status *models.OrderStatus, params utils.PaginationParams) ([]models.Order, int64, error) {
	if status != nil && !status.Valid() {
		return nil, 0, NewValidationError("unknown order status %q", *status)
	}
	return s.orders.List(ctx, status, params.Limit, params.Offset())
}

func (s *OrderAdminService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *OrderAdminService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, NewValidationError("unknown order status %q", status)
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	order.Status = status
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     previous,
		"to":       status,
	}).Info("Order status updated")

	return order, nil
}

// AttachTracking records the shipment and implicitly moves the order to
// shipped.
func (s *OrderAdminService) AttachTracking(ctx context.Context, id uuid.UUID, req *AttachTrackingRequest) (*models.Order, error) {
	if req.TrackingNumber == "" {
		return nil, NewValidationError("tracking number is required")
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.TrackingNumber = req.TrackingNumber
	order.TrackingCarrier = req.TrackingCarrier
	order.Status = models.OrderStatusShipped

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderAdminService) AppendNote(ctx context.Context, id uuid.UUID, note string) (*models.Order, error) {
	if strings.TrimSpace(note) == "" {
		return nil, NewValidationError("note is required")
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	line := fmt.Sprintf("[%s] %s", time.Now().Format("2006-01-02 15:04"), note)
	if order.Notes == "" {
		order.Notes = line
	} else {
		order.Notes = order.Notes + "\n" + line
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
