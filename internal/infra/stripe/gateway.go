package stripe

import (
	"context"
	"errors"
	"fmt"

	"clubero-server/internal/service/checkout"

	stripeapi "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

// Gateway implements checkout.Gateway on Stripe Checkout in payment mode.
type Gateway struct {
	api        *client.API
	currency   string
	successURL string
	cancelURL  string
}

// NewGateway builds a gateway with its own API client; no package-level
// stripe.Key is set.
func NewGateway(secretKey, currency, siteDomain string) *Gateway {
	return NewGatewayWithBackends(secretKey, currency, siteDomain, nil)
}

// NewGatewayWithBackends lets tests point the client at a fake API.
func NewGatewayWithBackends(secretKey, currency, siteDomain string, backends *stripeapi.Backends) *Gateway {
	return &Gateway{
		api:        client.New(secretKey, backends),
		currency:   currency,
		successURL: siteDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  siteDomain + "/payment-cancelled",
	}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, req checkout.SessionRequest) (*checkout.Session, error) {
	params := g.sessionParams(req)
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, describe(err)
	}
	return toSession(s), nil
}

func (g *Gateway) GetCheckoutSession(ctx context.Context, sessionID string) (*checkout.Session, error) {
	params := &stripeapi.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, describe(err)
	}
	return toSession(s), nil
}

func (g *Gateway) sessionParams(req checkout.SessionRequest) *stripeapi.CheckoutSessionParams {
	params := &stripeapi.CheckoutSessionParams{
		Mode:       stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL: stripeapi.String(g.successURL),
		CancelURL:  stripeapi.String(g.cancelURL),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripeapi.String(g.currency),
					UnitAmount: stripeapi.Int64(req.AmountMinor),
					ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripeapi.String(req.ProductName),
					},
				},
				Quantity: stripeapi.Int64(1),
			},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripeapi.String(req.CustomerEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	return params
}

func toSession(s *stripeapi.CheckoutSession) *checkout.Session {
	out := &checkout.Session{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: NormalizePaymentStatus(string(s.PaymentStatus)),
		AmountTotal:   s.AmountTotal,
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	if out.CustomerEmail == "" && s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out
}

func describe(err error) error {
	var se *stripeapi.Error
	if errors.As(err, &se) {
		return fmt.Errorf("stripe %s (%s): %w", se.Type, se.Code, se)
	}
	return err
}
