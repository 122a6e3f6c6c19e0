// AngelaMos | 2026
// entity.go

package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

var (
	// ErrInvalidSession covers unknown session references and sessions whose
	// metadata no longer resolves to something purchasable.
	ErrInvalidSession = errors.New("invalid checkout session")
	// ErrPaymentNotVerified is the pending or failed outcome. Nothing was
	// written.
	ErrPaymentNotVerified = errors.New("payment not verified")
	ErrNotForSale         = errors.New("lesson is not for sale")
	// ErrEntitlementInconsistent means the plan purchase unit was rolled back
	// and must be retried.
	ErrEntitlementInconsistent = errors.New("entitlement update failed")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

type Kind string

const (
	KindLesson Kind = "lesson"
	KindPlan   Kind = "plan"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindLesson, KindPlan:
		return k, nil
	case "":
		return KindLesson, nil
	default:
		return "", fmt.Errorf("invalid purchase kind %q: %w", s, core.ErrInvalidInput)
	}
}

type Payment struct {
	ID            string    `db:"id"`
	TransactionID string    `db:"transaction_id"`
	SessionID     string    `db:"session_id"`
	Kind          Kind      `db:"kind"`
	LessonID      *string   `db:"lesson_id"`
	Plan          *string   `db:"plan"`
	PayerEmail    string    `db:"payer_email"`
	AmountCents   int64     `db:"amount_cents"`
	Currency      string    `db:"currency"`
	Status        Status    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}

const (
	metaKind          = "kind"
	metaLessonID      = "lessonId"
	metaPlan          = "plan"
	metaCustomerEmail = "customerEmail"
)
