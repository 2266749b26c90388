// internal/services/webhook_service_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"

	"github.com/meridianmade/storefront/internal/config"
	"github.com/meridianmade/storefront/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Stripe: config.StripeConfig{WebhookSecret: "whsec_test"},
		AWS:    config.AWSConfig{DownloadTTL: 24},
	}
}

func snapshotJSON(t *testing.T, items models.OrderItems) string {
	t.Helper()
	data, err := json.Marshal(items)
	require.NoError(t, err)
	return string(data)
}

func completedSession(sessionID, itemsJSON string) *CompletedSession {
	return &CompletedSession{
		SessionID:       sessionID,
		PaymentIntentID: "pi_" + sessionID,
		CustomerEmail:   "buyer@example.com",
		CustomerName:    "Buyer",
		SubtotalCents:   3000,
		TotalCents:      3500,
		ShippingCents:   500,
		ItemsJSON:       itemsJSON,
	}
}

func TestReconcileCreatesOrderAndDecrementsInventory(t *testing.T) {
	mug := physicalProduct("Mug", 1500, 10)
	products := newFakeProductRepo(mug)
	orders := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := NewWebhookService(orders, products, notifier, &fakePresigner{}, testConfig())

	items := snapshotJSON(t, models.OrderItems{
		{ProductID: mug.ID, Name: "Mug", PriceCents: 1500, Quantity: 2, Category: models.ProductCategoryPhysical},
	})

	require.NoError(t, svc.Reconcile(context.Background(), completedSession("cs_1", items)))

	assert.Equal(t, 1, orders.count())
	order := orders.bySession("cs_1")
	require.NotNil(t, order)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, int64(3500), order.TotalCents)
	assert.Equal(t, 8, products.inventory(mug.ID))
	assert.Len(t, notifier.confirmations, 1)
}

func TestReconcileIsIdempotentAcrossRedelivery(t *testing.T) {
	mug := physicalProduct("Mug", 1500, 10)
	products := newFakeProductRepo(mug)
	orders := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := NewWebhookService(orders, products, notifier, &fakePresigner{}, testConfig())

	items := snapshotJSON(t, models.OrderItems{
		{ProductID: mug.ID, Name: "Mug", PriceCents: 1500, Quantity: 2, Category: models.ProductCategoryPhysical},
	})

	require.NoError(t, svc.Reconcile(context.Background(), completedSession("cs_1", items)))
	require.NoError(t, svc.Reconcile(context.Background(), completedSession("cs_1", items)))

	assert.Equal(t, 1, orders.count(), "redelivery must not create a second order")
	assert.Equal(t, 8, products.inventory(mug.ID), "redelivery must not decrement twice")
	assert.Len(t, notifier.confirmations, 1, "redelivery must not re-notify")
}

func TestReconcileConcurrentSessionsRespectInventoryFloor(t *testing.T) {
	const sessions = 8
	mug := physicalProduct("Mug", 1500, sessions-1)
	products := newFakeProductRepo(mug)
	orders := newFakeOrderRepo()
	svc := NewWebhookService(orders, products, &fakeNotifier{}, &fakePresigner{}, testConfig())

	items := snapshotJSON(t, models.OrderItems{
		{ProductID: mug.ID, Name: "Mug", PriceCents: 1500, Quantity: 1, Category: models.ProductCategoryPhysical},
	})

	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sess := completedSession(fmt.Sprintf("cs_%d", n), items)
			assert.NoError(t, svc.Reconcile(context.Background(), sess))
		}(i)
	}
	wg.Wait()

	// Every session gets an order; stock never goes below zero.
	assert.Equal(t, sessions, orders.count())
	assert.Equal(t, 0, products.inventory(mug.ID))
}

func TestReconcileUnlimitedInventoryUntouched(t *testing.T) {
	print := physicalProduct("Open Edition Print", 4500, models.InventoryUnlimited)
	products := newFakeProductRepo(print)
	orders := newFakeOrderRepo()
	svc := NewWebhookService(orders, products, &fakeNotifier{}, &fakePresigner{}, testConfig())

	items := snapshotJSON(t, models.OrderItems{
		{ProductID: print.ID, Name: "Open Edition Print", PriceCents: 4500, Quantity: 3, Category: models.ProductCategoryPhysical},
	})

	require.NoError(t, svc.Reconcile(context.Background(), completedSession("cs_1", items)))
	assert.Equal(t, models.InventoryUnlimited, products.inventory(print.ID))
}

func TestReconcileSurvivesFailedDecrement(t *testing.T) {
	mug := physicalProduct("Mug", 1500, 1)
	products := newFakeProductRepo(mug)
	orders := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := NewWebhookService(orders, products, notifier, &fakePresigner{}, testConfig())

	// Payment already settled, so the order stands even though stock ran out
	// between checkout and reconciliation.
	items := snapshotJSON(t, models.OrderItems{
		{ProductID: mug.ID, Name: "Mug", PriceCents: 1500, Quantity: 5, Category: models.ProductCategoryPhysical},
	})

	require.NoError(t, svc.Reconcile(context.Background(), completedSession("cs_1", items)))
	assert.Equal(t, 1, orders.count())
	assert.Equal(t, 1, products.inventory(mug.ID))
	assert.Len(t, notifier.confirmations, 1)
}

func TestReconcileRejectsMissingSnapshot(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := NewWebhookService(orders, newFakeProductRepo(), &fakeNotifier{}, &fakePresigner{}, testConfig())

	err := svc.Reconcile(context.Background(), completedSession("cs_1", ""))
	require.Error(t, err)
	assert.Equal(t, 0, orders.count())

	err = svc.Reconcile(context.Background(), completedSession("cs_2", "[]"))
	require.Error(t, err)
	assert.Equal(t, 0, orders.count())
}

func TestReconcileDigitalDelivery(t *testing.T) {
	album := digitalProduct("Album", 900)
	products := newFakeProductRepo(album)
	orders := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := NewWebhookService(orders, products, notifier, &fakePresigner{}, testConfig())

	items := snapshotJSON(t, models.OrderItems{
		{ProductID: album.ID, Name: "Album", PriceCents: 900, Quantity: 1, Category: models.ProductCategoryDigital},
	})

	require.NoError(t, svc.Reconcile(context.Background(), completedSession("cs_1", items)))

	require.Len(t, notifier.deliveries, 1)
	require.Len(t, notifier.deliveryLinks[0], 1)
	assert.Contains(t, notifier.deliveryLinks[0][0].URL, album.DigitalFileKey)

	order := orders.bySession("cs_1")
	assert.True(t, order.DigitalDelivered)
}

func TestReconcileDigitalDeliveredOnlyAfterSuccessfulSend(t *testing.T) {
	album := digitalProduct("Album", 900)
	products := newFakeProductRepo(album)
	orders := newFakeOrderRepo()
	notifier := &fakeNotifier{deliveryErr: errors.New("smtp down")}
	svc := NewWebhookService(orders, products, notifier, &fakePresigner{}, testConfig())

	items := snapshotJSON(t, models.OrderItems{
		{ProductID: album.ID, Name: "Album", PriceCents: 900, Quantity: 1, Category: models.ProductCategoryDigital},
	})

	require.NoError(t, svc.Reconcile(context.Background(), completedSession("cs_1", items)))

	order := orders.bySession("cs_1")
	assert.False(t, order.DigitalDelivered, "flag must only be set after the email goes out")
}

func TestReconcilePresignFailureSkipsDelivery(t *testing.T) {
	album := digitalProduct("Album", 900)
	products := newFakeProductRepo(album)
	orders := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := NewWebhookService(orders, products, notifier, &fakePresigner{err: errors.New("s3 down")}, testConfig())

	items := snapshotJSON(t, models.OrderItems{
		{ProductID: album.ID, Name: "Album", PriceCents: 900, Quantity: 1, Category: models.ProductCategoryDigital},
	})

	require.NoError(t, svc.Reconcile(context.Background(), completedSession("cs_1", items)))
	assert.Empty(t, notifier.deliveries)
	assert.False(t, orders.bySession("cs_1").DigitalDelivered)
}

func TestHandleEventRejectsInvalidSignature(t *testing.T) {
	svc := NewWebhookService(newFakeOrderRepo(), newFakeProductRepo(), &fakeNotifier{}, &fakePresigner{}, testConfig())
	svc.verify = func(payload []byte, header, secret string) (stripe.Event, error) {
		return stripe.Event{}, errors.New("signature mismatch")
	}

	err := svc.HandleEvent(context.Background(), []byte(`{}`), "t=1,v1=bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleEventAcknowledgesUnhandledTypes(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := NewWebhookService(orders, newFakeProductRepo(), &fakeNotifier{}, &fakePresigner{}, testConfig())
	svc.verify = func(payload []byte, header, secret string) (stripe.Event, error) {
		return stripe.Event{Type: "invoice.paid"}, nil
	}

	require.NoError(t, svc.HandleEvent(context.Background(), []byte(`{}`), "sig"))
	assert.Equal(t, 0, orders.count())
}

func TestHandleEventProcessesCompletedSession(t *testing.T) {
	mug := physicalProduct("Mug", 1500, 10)
	products := newFakeProductRepo(mug)
	orders := newFakeOrderRepo()
	svc := NewWebhookService(orders, products, &fakeNotifier{}, &fakePresigner{}, testConfig())

	items := snapshotJSON(t, models.OrderItems{
		{ProductID: mug.ID, Name: "Mug", PriceCents: 1500, Quantity: 1, Category: models.ProductCategoryPhysical},
	})
	sessJSON, err := json.Marshal(map[string]interface{}{
		"id":              "cs_1",
		"amount_subtotal": 1500,
		"amount_total":    1500,
		"metadata":        map[string]string{MetadataOrderItemsKey: items},
	})
	require.NoError(t, err)

	svc.verify = func(payload []byte, header, secret string) (stripe.Event, error) {
		return stripe.Event{
			Type: "checkout.session.completed",
			Data: &stripe.EventData{Raw: sessJSON},
		}, nil
	}

	require.NoError(t, svc.HandleEvent(context.Background(), []byte(`{}`), "sig"))
	require.Equal(t, 1, orders.count())
	assert.Equal(t, 9, products.inventory(mug.ID))
}
