// internal/handlers/webhook_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianmade/storefront/internal/services"
)

type stubProcessor struct {
	err          error
	gotPayload   []byte
	gotSignature string
}

func (s *stubProcessor) HandleEvent(_ context.Context, payload []byte, signature string) error {
	s.gotPayload = payload
	s.gotSignature = signature
	return s.err
}

func webhookRouter(processor *stubProcessor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/webhooks/stripe", NewWebhookHandler(processor).HandleStripeWebhook)
	return r
}

func postWebhook(r *gin.Engine, body, signature string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/v1/webhooks/stripe", bytes.NewBufferString(body))
	req.Header.Set("Stripe-Signature", signature)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookAcknowledgesProcessedEvent(t *testing.T) {
	processor := &stubProcessor{}
	w := postWebhook(webhookRouter(processor), `{"type":"checkout.session.completed"}`, "t=1,v1=sig")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["received"])

	assert.Equal(t, `{"type":"checkout.session.completed"}`, string(processor.gotPayload))
	assert.Equal(t, "t=1,v1=sig", processor.gotSignature)
}

func TestWebhookInvalidSignatureIsTerminal(t *testing.T) {
	processor := &stubProcessor{
		err: fmt.Errorf("%w: signature mismatch", services.ErrInvalidSignature),
	}
	w := postWebhook(webhookRouter(processor), `{}`, "t=1,v1=bad")

	// 4xx means the provider must not redeliver.
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookProcessingFailureAsksForRedelivery(t *testing.T) {
	processor := &stubProcessor{err: errors.New("database unavailable")}
	w := postWebhook(webhookRouter(processor), `{}`, "t=1,v1=sig")

	// 5xx means the provider should retry later.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
