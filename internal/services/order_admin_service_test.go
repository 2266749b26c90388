// internal/services/order_admin_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianmade/storefront/internal/models"
	"github.com/meridianmade/storefront/internal/utils"
)

func seedOrder(t *testing.T, orders *fakeOrderRepo, sessionID string) *models.Order {
	t.Helper()
	order := &models.Order{
		PaymentSessionID: sessionID,
		CustomerEmail:    "buyer@example.com",
		Items: models.OrderItems{
			{Name: "Mug", PriceCents: 1500, Quantity: 1, Category: models.ProductCategoryPhysical},
		},
		TotalCents: 1500,
		Status:     models.OrderStatusPaid,
	}
	created, err := orders.CreateIfAbsent(context.Background(), order)
	require.NoError(t, err)
	require.True(t, created)
	return order
}

func TestUpdateOrderStatus(t *testing.T) {
	orders := newFakeOrderRepo()
	order := seedOrder(t, orders, "cs_1")
	svc := NewOrderAdminService(orders)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusFulfilled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFulfilled, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), order.ID, models.OrderStatus("teleported"))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestListOrdersRejectsUnknownStatusFilter(t *testing.T) {
	svc := NewOrderAdminService(newFakeOrderRepo())

	bogus := models.OrderStatus("bogus")
	_, _, err := svc.List(context.Background(), &bogus, utils.PaginationParams{Page: 1, Limit: 20})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestAttachTrackingImpliesShipped(t *testing.T) {
	orders := newFakeOrderRepo()
	order := seedOrder(t, orders, "cs_1")
	svc := NewOrderAdminService(orders)

	updated, err := svc.AttachTracking(context.Background(), order.ID, &AttachTrackingRequest{
		TrackingNumber:  "1Z999",
		TrackingCarrier: "UPS",
	})
	require.NoError(t, err)

	assert.Equal(t, "1Z999", updated.TrackingNumber)
	assert.Equal(t, "UPS", updated.TrackingCarrier)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	_, err = svc.AttachTracking(context.Background(), order.ID, &AttachTrackingRequest{})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestAppendNoteAccumulates(t *testing.T) {
	orders := newFakeOrderRepo()
	order := seedOrder(t, orders, "cs_1")
	svc := NewOrderAdminService(orders)

	first, err := svc.AppendNote(context.Background(), order.ID, "called customer")
	require.NoError(t, err)
	assert.Contains(t, first.Notes, "called customer")

	second, err := svc.AppendNote(context.Background(), order.ID, "reshipped")
	require.NoError(t, err)
	assert.Contains(t, second.Notes, "called customer")
	assert.Contains(t, second.Notes, "reshipped")

	_, err = svc.AppendNote(context.Background(), order.ID, "   ")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
