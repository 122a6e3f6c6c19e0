// AngelaMos | 2026
// provider.go

package payment

import (
	"context"
)

const (
	sessionStatusComplete = "complete"
	paymentStatusPaid     = "paid"
)

// Session is the provider's authoritative view of a checkout, reduced to
// the fields the workflow reads.
type Session struct {
	ID            string
	URL           string
	Status        string
	PaymentStatus string
	TransactionID string
	Metadata      map[string]string
	AmountTotal   int64
	Currency      string
	CustomerEmail string
}

func (s *Session) Paid() bool {
	return s.Status == sessionStatusComplete && s.PaymentStatus == paymentStatusPaid
}

type CheckoutParams struct {
	ProductName   string
	AmountCents   int64
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// Provider is the payment provider boundary. RetrieveSession fails with
// ErrInvalidSession for unknown references and core.ErrUpstreamUnavailable
// when the provider cannot be reached.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}
