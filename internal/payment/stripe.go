// AngelaMos | 2026
// stripe.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type StripeProvider struct {
	api *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}
}

func (p *StripeProvider) CreateCheckoutSession(
	ctx context.Context,
	params CheckoutParams,
) (*Session, error) {
	sp := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(params.SuccessURL),
		CancelURL:     stripe.String(params.CancelURL),
		CustomerEmail: stripe.String(params.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(params.Currency),
					UnitAmount: stripe.Int64(params.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	sp.Context = ctx
	for k, v := range params.Metadata {
		sp.AddMetadata(k, v)
	}

	cs, err := p.api.CheckoutSessions.New(sp)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", checkoutError(err))
	}

	return toSession(cs), nil
}

func (p *StripeProvider) RetrieveSession(
	ctx context.Context,
	sessionID string,
) (*Session, error) {
	sp := &stripe.CheckoutSessionParams{}
	sp.Context = ctx

	cs, err := p.api.CheckoutSessions.Get(sessionID, sp)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", retrieveError(err))
	}

	return toSession(cs), nil
}

func toSession(cs *stripe.CheckoutSession) *Session {
	s := &Session{
		ID:            cs.ID,
		URL:           cs.URL,
		Status:        string(cs.Status),
		PaymentStatus: string(cs.PaymentStatus),
		Metadata:      cs.Metadata,
		AmountTotal:   cs.AmountTotal,
		Currency:      string(cs.Currency),
		CustomerEmail: cs.CustomerEmail,
	}

	if cs.PaymentIntent != nil {
		s.TransactionID = cs.PaymentIntent.ID
	}

	if s.CustomerEmail == "" && cs.CustomerDetails != nil {
		s.CustomerEmail = cs.CustomerDetails.Email
	}

	return s
}

// checkoutError surfaces the provider's message for rejected checkout
// parameters so the caller can correct them.
func checkoutError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeInvalidRequest {
		appErr := core.BadRequestError(stripeErr.Msg)
		appErr.Err = core.ErrInvalidInput
		return appErr
	}
	return upstreamError(err)
}

// retrieveError treats any rejected lookup as a bad session reference.
func retrieveError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) &&
		(stripeErr.Type == stripe.ErrorTypeInvalidRequest ||
			stripeErr.Code == stripe.ErrorCodeResourceMissing ||
			stripeErr.HTTPStatusCode == http.StatusNotFound) {
		return fmt.Errorf("%w: %s", ErrInvalidSession, stripeErr.Msg)
	}
	return upstreamError(err)
}

func upstreamError(err error) error {
	return fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
}
