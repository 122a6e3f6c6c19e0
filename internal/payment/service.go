// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/lessons-backend/internal/config"
	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/lesson"
)

// LessonFinder loads a lesson without actor gating. lesson.Service
// satisfies it.
type LessonFinder interface {
	Find(ctx context.Context, id string) (*lesson.Lesson, error)
}

// EntitlementStore flips the premium flag on a principal. The user
// repository satisfies it.
type EntitlementStore interface {
	SetPremium(ctx context.Context, email string, premium bool) error
}

type Settings struct {
	SiteDomain     string
	Currency       string
	PlanName       string
	PlanPriceCents int64
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		SiteDomain:     cfg.Site.Domain,
		Currency:       cfg.Payment.Currency,
		PlanName:       cfg.Payment.PremiumPlanName,
		PlanPriceCents: cfg.Payment.PremiumPlanPriceCents,
	}
}

// Deps wires the workflow. NewRepository and NewEntitlements are bound to
// the transaction handle for the plan purchase unit.
type Deps struct {
	Provider        Provider
	Repository      Repository
	Lessons         LessonFinder
	Tx              core.TxRunner
	NewRepository   func(db core.DBTX) Repository
	NewEntitlements func(db core.DBTX) EntitlementStore
	Settings        Settings
}

type Service struct {
	provider        Provider
	repo            Repository
	lessons         LessonFinder
	tx              core.TxRunner
	newRepository   func(db core.DBTX) Repository
	newEntitlements func(db core.DBTX) EntitlementStore
	settings        Settings
}

func NewService(deps Deps) *Service {
	return &Service{
		provider:        deps.Provider,
		repo:            deps.Repository,
		lessons:         deps.Lessons,
		tx:              deps.Tx,
		newRepository:   deps.NewRepository,
		newEntitlements: deps.NewEntitlements,
		settings:        deps.Settings,
	}
}

type CheckoutRequest struct {
	Kind          string `json:"kind"          validate:"omitempty,oneof=lesson plan"`
	LessonID      string `json:"lessonId"      validate:"required_unless=Kind plan"`
	CustomerEmail string `json:"customerEmail" validate:"required,email,max=255"`
}

type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// StartCheckout opens a provider checkout session. The amount always comes
// from the stored lesson price or the configured plan price.
func (s *Service) StartCheckout(
	ctx context.Context,
	req CheckoutRequest,
) (*CheckoutResponse, error) {
	kind, err := ParseKind(req.Kind)
	if err != nil {
		return nil, fmt.Errorf("start checkout: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	params := CheckoutParams{
		Currency:      s.settings.Currency,
		CustomerEmail: email,
		CancelURL:     s.settings.SiteDomain + "/dashboard/payment-cancelled",
		Metadata: map[string]string{
			metaKind:          string(kind),
			metaCustomerEmail: email,
		},
	}

	successURL := s.settings.SiteDomain +
		"/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}"

	switch kind {
	case KindPlan:
		params.ProductName = "Please pay for: " + s.settings.PlanName
		params.AmountCents = s.settings.PlanPriceCents
		params.Metadata[metaPlan] = s.settings.PlanName

	case KindLesson:
		l, err := s.lessons.Find(ctx, req.LessonID)
		if err != nil {
			return nil, fmt.Errorf("start checkout: %w", err)
		}
		if !l.IsPremium() || l.PriceCents <= 0 {
			return nil, fmt.Errorf(
				"start checkout: %w: %w",
				ErrNotForSale,
				core.ErrInvalidInput,
			)
		}
		params.ProductName = "Please pay for: " + l.Title
		params.AmountCents = l.PriceCents
		params.Metadata[metaLessonID] = l.ID
		successURL += "&lessonId=" + url.QueryEscape(l.ID)
	}

	params.SuccessURL = successURL

	session, err := s.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, err
	}

	return &CheckoutResponse{URL: session.URL, SessionID: session.ID}, nil
}

type ConfirmResult struct {
	TransactionID    string
	Kind             Kind
	LessonID         string
	AlreadyProcessed bool
}

// Confirm reconciles a completed checkout with local state. A transaction
// id is applied at most once: the lookup runs before any write and the
// unique index on payments.transaction_id settles concurrent deliveries.
func (s *Service) Confirm(
	ctx context.Context,
	sessionID string,
) (*ConfirmResult, error) {
	ctx, span := core.StartSpan(ctx, "payment.confirm",
		attribute.String("payment.session_id", sessionID),
	)
	defer span.End()

	result, err := s.confirm(ctx, sessionID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("payment.transaction_id", result.TransactionID),
		attribute.Bool("payment.already_processed", result.AlreadyProcessed),
	)
	return result, nil
}

func (s *Service) confirm(
	ctx context.Context,
	sessionID string,
) (*ConfirmResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("confirm payment: empty session: %w", ErrInvalidSession)
	}

	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	core.AddSpanEvent(ctx, "session.retrieved",
		attribute.String("status", session.Status),
		attribute.String("payment_status", session.PaymentStatus),
	)

	if !session.Paid() {
		return nil, fmt.Errorf(
			"confirm payment: status %q, payment %q: %w",
			session.Status,
			session.PaymentStatus,
			ErrPaymentNotVerified,
		)
	}

	if session.TransactionID == "" {
		return nil, fmt.Errorf("confirm payment: no transaction: %w", ErrInvalidSession)
	}

	existing, err := s.repo.GetByTransactionID(ctx, session.TransactionID)
	switch {
	case err == nil:
		core.AddSpanEvent(ctx, "payment.duplicate")
		return duplicateResult(existing), nil
	case !errors.Is(err, core.ErrNotFound):
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	kind, err := ParseKind(session.Metadata[metaKind])
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", ErrInvalidSession)
	}

	payer := strings.ToLower(strings.TrimSpace(session.Metadata[metaCustomerEmail]))
	if payer == "" {
		payer = strings.ToLower(strings.TrimSpace(session.CustomerEmail))
	}
	if payer == "" {
		return nil, fmt.Errorf("confirm payment: no payer: %w", ErrInvalidSession)
	}

	record := &Payment{
		ID:            uuid.New().String(),
		TransactionID: session.TransactionID,
		SessionID:     session.ID,
		Kind:          kind,
		PayerEmail:    payer,
		AmountCents:   session.AmountTotal,
		Currency:      session.Currency,
	}

	switch kind {
	case KindLesson:
		err = s.recordLessonPurchase(ctx, record, session.Metadata[metaLessonID])
	case KindPlan:
		err = s.recordPlanPurchase(ctx, record, session.Metadata[metaPlan])
	}

	if errors.Is(err, core.ErrDuplicateKey) {
		core.AddSpanEvent(ctx, "payment.duplicate_race")
		return &ConfirmResult{
			TransactionID:    record.TransactionID,
			Kind:             record.Kind,
			LessonID:         deref(record.LessonID),
			AlreadyProcessed: true,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	core.AddSpanEvent(ctx, "payment.recorded",
		attribute.String("kind", string(kind)),
	)

	return &ConfirmResult{
		TransactionID: record.TransactionID,
		Kind:          record.Kind,
		LessonID:      deref(record.LessonID),
	}, nil
}

func (s *Service) recordLessonPurchase(
	ctx context.Context,
	record *Payment,
	lessonID string,
) error {
	l, err := s.lessons.Find(ctx, lessonID)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("confirm payment: lesson %q gone: %w", lessonID, ErrInvalidSession)
	}
	if err != nil {
		return fmt.Errorf("confirm payment: %w", err)
	}

	record.LessonID = &l.ID
	record.Status = StatusPending

	return s.repo.Create(ctx, record)
}

// recordPlanPurchase writes the payment record and the entitlement flag in
// one transaction. Any failure other than a duplicate rolls both back.
func (s *Service) recordPlanPurchase(
	ctx context.Context,
	record *Payment,
	plan string,
) error {
	if plan == "" {
		plan = s.settings.PlanName
	}
	record.Plan = &plan
	record.Status = StatusCompleted

	err := s.tx.InTx(ctx, func(tx core.DBTX) error {
		if err := s.newRepository(tx).Create(ctx, record); err != nil {
			return err
		}
		return s.newEntitlements(tx).SetPremium(ctx, record.PayerEmail, true)
	})
	if err == nil || errors.Is(err, core.ErrDuplicateKey) {
		return err
	}

	return fmt.Errorf("confirm payment: %w: %w", ErrEntitlementInconsistent, err)
}

func duplicateResult(p *Payment) *ConfirmResult {
	return &ConfirmResult{
		TransactionID:    p.TransactionID,
		Kind:             p.Kind,
		LessonID:         deref(p.LessonID),
		AlreadyProcessed: true,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
