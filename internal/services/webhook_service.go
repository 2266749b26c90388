// internal/services/webhook_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/meridianmade/storefront/internal/config"
	"github.com/meridianmade/storefront/internal/models"
	"github.com/meridianmade/storefront/internal/repository"
)

// Notifier dispatches customer-facing messages after reconciliation. Failures
// are isolated: they never undo order creation or inventory changes.
type Notifier interface {
	SendOrderConfirmation(order *models.Order) error
	SendDigitalDelivery(order *models.Order, links []DownloadLink) error
}

type DownloadLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Presigner produces time-limited download URLs for digital goods.
type Presigner interface {
	PresignDownload(key string, expiry time.Duration) (string, error)
}

// CompletedSession is the provider-independent view of a completed payment
// session handed to the reconciler.
type CompletedSession struct {
	SessionID       string
	PaymentIntentID string
	CustomerEmail   string
	CustomerName    string
	SubtotalCents   int64
	ShippingCents   int64
	TotalCents      int64
	ItemsJSON       string
	ShippingAddress *models.Address
}

type signatureVerifier func(payload []byte, header, secret string) (stripe.Event, error)

// WebhookService converts provider-confirmed payment events into durable,
// side-effect-complete orders. It may run concurrently for different sessions
// and, on redelivery, for the same session; the unique payment-session id
// keeps reconciliation idempotent.
type WebhookService struct {
	orders      repository.OrderRepository
	products    repository.ProductRepository
	notifier    Notifier
	storage     Presigner
	secret      string
	downloadTTL time.Duration
	verify      signatureVerifier
}

func NewWebhookService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	notifier Notifier,
	storage Presigner,
	cfg *config.Config,
) *WebhookService {
	return &WebhookService{
		orders:      orders,
		products:    products,
		notifier:    notifier,
		storage:     storage,
		secret:      cfg.Stripe.WebhookSecret,
		downloadTTL: time.Duration(cfg.AWS.DownloadTTL) * time.Hour,
		verify:      webhook.ConstructEvent,
	}
}

// HandleEvent verifies the payload signature and processes the event.
// Signature failures return ErrInvalidSignature (terminal, 4xx); any other
// error is a processing failure the provider should retry.
func (s *WebhookService) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := s.verify(payload, signature, s.secret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to decode checkout session: %w", err)
		}
		return s.Reconcile(ctx, completedSessionFromStripe(&sess))
	default:
		// Unhandled event types are acknowledged, not errors.
		logrus.WithField("event_type", event.Type).Debug("Ignoring unhandled webhook event")
		return nil
	}
}

// Reconcile creates the order exactly once per payment session, applies
// inventory decrements, and dispatches notifications.
func (s *WebhookService) Reconcile(ctx context.Context, sess *CompletedSession) error {
	if sess.SessionID == "" {
		return fmt.Errorf("completed session is missing a session id")
	}

	var items models.OrderItems
	if err := json.Unmarshal([]byte(sess.ItemsJSON), &items); err != nil || len(items) == 0 {
		return fmt.Errorf("payment session %s has no usable order snapshot: %v", sess.SessionID, err)
	}

	order := &models.Order{
		PaymentSessionID: sess.SessionID,
		PaymentIntentID:  sess.PaymentIntentID,
		CustomerEmail:    sess.CustomerEmail,
		CustomerName:     sess.CustomerName,
		Items:            items,
		SubtotalCents:    sess.SubtotalCents,
		ShippingCents:    sess.ShippingCents,
		TotalCents:       sess.TotalCents,
		Status:           models.OrderStatusPaid,
		ShippingAddress:  sess.ShippingAddress,
	}

	created, err := s.orders.CreateIfAbsent(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to persist order for session %s: %w", sess.SessionID, err)
	}
	if !created {
		logrus.WithField("session_id", sess.SessionID).
			Info("Order already reconciled for session, acknowledging redelivery")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"session_id":  sess.SessionID,
		"total_cents": order.TotalCents,
	}).Info("Order created")

	s.applyInventory(ctx, order)
	s.dispatchNotifications(ctx, order)

	return nil
}

// applyInventory decrements stock for each physical item in its own
// transaction. A failed decrement is logged for manual reconciliation and
// does not roll back the order or the other items.
func (s *WebhookService) applyInventory(ctx context.Context, order *models.Order) {
	for _, item := range order.Items {
		if item.Category != models.ProductCategoryPhysical {
			continue
		}

		applied, err := s.products.DecrementInventory(ctx, item.ProductID, item.Quantity)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"order_id":   order.ID,
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			}).Error("Inventory decrement failed, needs manual reconciliation")
			continue
		}
		if !applied {
			logrus.WithFields(logrus.Fields{
				"order_id":   order.ID,
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			}).Error("Inventory decrement not applied, needs manual reconciliation")
		}
	}
}

func (s *WebhookService) dispatchNotifications(ctx context.Context, order *models.Order) {
	if err := s.notifier.SendOrderConfirmation(order); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).
			Error("Failed to send order confirmation")
	}

	digital := order.DigitalItems()
	if len(digital) == 0 {
		return
	}

	links := make([]DownloadLink, 0, len(digital))
	for _, item := range digital {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil || product.DigitalFileKey == "" {
			logrus.WithError(err).WithFields(logrus.Fields{
				"order_id":   order.ID,
				"product_id": item.ProductID,
			}).Error("No downloadable file for digital item")
			continue
		}

		url, err := s.storage.PresignDownload(product.DigitalFileKey, s.downloadTTL)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"order_id":   order.ID,
				"product_id": item.ProductID,
			}).Error("Failed to presign download link")
			continue
		}
		links = append(links, DownloadLink{Name: item.Name, URL: url})
	}

	if len(links) == 0 {
		return
	}

	if err := s.notifier.SendDigitalDelivery(order, links); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).
			Error("Failed to send digital delivery email")
		return
	}

	// Marked only after the dispatch actually succeeded.
	if err := s.orders.MarkDigitalDelivered(ctx, order.ID); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).
			Error("Failed to mark order digitally delivered")
	}
}

func completedSessionFromStripe(sess *stripe.CheckoutSession) *CompletedSession {
	cs := &CompletedSession{
		SessionID:     sess.ID,
		SubtotalCents: sess.AmountSubtotal,
		TotalCents:    sess.AmountTotal,
		ItemsJSON:     sess.Metadata[MetadataOrderItemsKey],
	}

	if sess.PaymentIntent != nil {
		cs.PaymentIntentID = sess.PaymentIntent.ID
	}
	if sess.CustomerDetails != nil {
		cs.CustomerEmail = sess.CustomerDetails.Email
		cs.CustomerName = sess.CustomerDetails.Name
	}
	if sess.TotalDetails != nil {
		cs.ShippingCents = sess.TotalDetails.AmountShipping
	}
	if sess.ShippingDetails != nil && sess.ShippingDetails.Address != nil {
		cs.ShippingAddress = &models.Address{
			Name:       sess.ShippingDetails.Name,
			Line1:      sess.ShippingDetails.Address.Line1,
			Line2:      sess.ShippingDetails.Address.Line2,
			City:       sess.ShippingDetails.Address.City,
			State:      sess.ShippingDetails.Address.State,
			PostalCode: sess.ShippingDetails.Address.PostalCode,
			Country:    sess.ShippingDetails.Address.Country,
		}
	}

	return cs
}
