package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"walegrills/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// LinkRequest describes the amount a customer should be asked to pay.
type LinkRequest struct {
	Reference   string
	Description string
	Email       string
	Amount      float64
}

// LinkIssuer creates a hosted payment page for an order.
type LinkIssuer interface {
	IssueLink(ctx context.Context, req LinkRequest) (string, error)
}

// StripeLinkIssuer issues Stripe Checkout sessions.
type StripeLinkIssuer struct {
	SuccessURL string
	CancelURL  string
	newSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// NewStripeLinkIssuer returns nil when no key is configured.
func NewStripeLinkIssuer(key, successURL, cancelURL string) *StripeLinkIssuer {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	stripe.Key = key
	return &StripeLinkIssuer{SuccessURL: successURL, CancelURL: cancelURL, newSession: session.New}
}

func (s *StripeLinkIssuer) IssueLink(ctx context.Context, req LinkRequest) (string, error) {
	if req.Amount <= 0 {
		return "", errors.New("payment amount must be positive")
	}
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.SuccessURL),
		CancelURL:         stripe.String(s.CancelURL),
		ClientReferenceID: stripe.String(req.Reference),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(utils.CurrencyCode)),
					UnitAmount: stripe.Int64(utils.ToPence(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
			},
		},
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx
	params.AddMetadata("reference", req.Reference)

	cs, err := s.newSession(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return cs.URL, nil
}
