// internal/handlers/webhook.go
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/meridianmade/storefront/internal/services"
)

// WebhookProcessor verifies and reconciles a raw provider event.
type WebhookProcessor interface {
	HandleEvent(ctx context.Context, payload []byte, signature string) error
}

type WebhookHandler struct {
	webhooks WebhookProcessor
}

func NewWebhookHandler(webhooks WebhookProcessor) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

// POST /v1/webhooks/stripe
//
// Signature failures are terminal 400s; processing failures return 5xx so the
// provider redelivers.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read request body"})
		return
	}

	err = h.webhooks.HandleEvent(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidSignature) {
			logrus.WithError(err).Warn("Rejected webhook with invalid signature")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		logrus.WithError(err).Error("Webhook processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "event processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
