// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type Repository interface {
	GetByTransactionID(ctx context.Context, transactionID string) (*Payment, error)
	Create(ctx context.Context, payment *Payment) error
	HasPurchased(ctx context.Context, email, lessonID string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByTransactionID(
	ctx context.Context,
	transactionID string,
) (*Payment, error) {
	query := `
		SELECT id, transaction_id, session_id, kind, lesson_id, plan,
		       payer_email, amount_cents, currency, status, created_at
		FROM payments
		WHERE transaction_id = $1`

	var payment Payment
	err := r.db.GetContext(ctx, &payment, query, transactionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &payment, nil
}

// Create inserts a payment record. A second record for the same
// transaction id fails with core.ErrDuplicateKey.
func (r *repository) Create(ctx context.Context, payment *Payment) error {
	query := `
		INSERT INTO payments (
			id, transaction_id, session_id, kind, lesson_id, plan,
			payer_email, amount_cents, currency, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		payment.ID,
		payment.TransactionID,
		payment.SessionID,
		payment.Kind,
		payment.LessonID,
		payment.Plan,
		payment.PayerEmail,
		payment.AmountCents,
		payment.Currency,
		payment.Status,
	).Scan(&payment.CreatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create payment: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

func (r *repository) HasPurchased(
	ctx context.Context,
	email, lessonID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments
			WHERE payer_email = $1 AND lesson_id = $2 AND kind = 'lesson'
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, lessonID); err != nil {
		return false, fmt.Errorf("check purchase: %w", err)
	}

	return exists, nil
}
