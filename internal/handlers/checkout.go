// internal/handlers/checkout.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meridianmade/storefront/internal/services"
)

// CheckoutSessionCreator validates a checkout request and returns the payment
// session URL to redirect to.
type CheckoutSessionCreator interface {
	CreateCheckoutSession(ctx context.Context, req *services.CheckoutRequest) (string, error)
}

type CheckoutHandler struct {
	checkout CheckoutSessionCreator
}

func NewCheckoutHandler(checkout CheckoutSessionCreator) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// POST /v1/checkout/session
//
// The response body is part of the storefront's wire contract:
// {"sessionUrl": ...} on success, {"error": ...} on failure.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	url, err := h.checkout.CreateCheckoutSession(c.Request.Context(), &req)
	if err != nil {
		if services.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout is temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionUrl": url})
}
