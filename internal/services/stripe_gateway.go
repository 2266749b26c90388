// internal/services/stripe_gateway.go
package services

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"

	"github.com/meridianmade/storefront/internal/config"
)

// StripeGateway implements PaymentSessionCreator on Stripe Checkout.
type StripeGateway struct {
	currency         string
	allowedCountries []string
}

func NewStripeGateway(cfg *config.Config) *StripeGateway {
	// Initialize Stripe
	stripe.Key = cfg.Stripe.SecretKey

	return &StripeGateway{
		currency:         cfg.Stripe.Currency,
		allowedCountries: cfg.Stripe.AllowedCountries,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, params *SessionParams) (*SessionResult, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sessionParams.Context = ctx

	for _, item := range params.LineItems {
		sessionParams.LineItems = append(sessionParams.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(g.currency),
				UnitAmount: stripe.Int64(item.PriceCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	if params.CollectShipping {
		sessionParams.ShippingAddressCollection = &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(g.allowedCountries),
		}
	}

	for k, v := range params.Metadata {
		sessionParams.AddMetadata(k, v)
	}

	sess, err := session.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("stripe session creation failed: %w", err)
	}

	return &SessionResult{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}
