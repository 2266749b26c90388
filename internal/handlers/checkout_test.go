// internal/handlers/checkout_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianmade/storefront/internal/services"
)

type stubCheckout struct {
	url string
	err error
}

func (s *stubCheckout) CreateCheckoutSession(context.Context, *services.CheckoutRequest) (string, error) {
	return s.url, s.err
}

func postCheckout(checkout *stubCheckout, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/checkout/session", NewCheckoutHandler(checkout).CreateSession)

	req, _ := http.NewRequest("POST", "/v1/checkout/session", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutSessionReturnsRedirectURL(t *testing.T) {
	w := postCheckout(&stubCheckout{url: "https://pay.example.com/cs_1"},
		`{"items":[{"productId":"11111111-1111-1111-1111-111111111111","quantity":1}],"successUrl":"https://s","cancelUrl":"https://c"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "https://pay.example.com/cs_1", response["sessionUrl"])
}

func TestCheckoutSessionValidationFailure(t *testing.T) {
	w := postCheckout(&stubCheckout{err: services.NewValidationError("cart is empty")}, `{"items":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "cart is empty", response["error"])
}

func TestCheckoutSessionProviderFailure(t *testing.T) {
	w := postCheckout(&stubCheckout{err: errors.New("stripe timed out")}, `{"items":[]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotContains(t, response["error"], "stripe", "provider details must not leak to the client")
}
