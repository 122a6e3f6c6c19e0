// AngelaMos | 2026
// entity.go

package lesson

import (
	"time"

	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

type (
	Visibility  = policy.Visibility
	AccessLevel = policy.AccessLevel
)

const (
	VisibilityPublic  = policy.VisibilityPublic
	VisibilityPrivate = policy.VisibilityPrivate
	AccessFree        = policy.AccessFree
	AccessPremium     = policy.AccessPremium
)

type Lesson struct {
	ID            string      `db:"id"`
	CreatorEmail  string      `db:"creator_email"`
	CreatorName   string      `db:"creator_name"`
	Title         string      `db:"title"`
	Description   string      `db:"description"`
	Category      string      `db:"category"`
	EmotionalTone string      `db:"emotional_tone"`
	ImageURL      string      `db:"image_url"`
	Visibility    Visibility  `db:"visibility"`
	AccessLevel   AccessLevel `db:"access_level"`
	PriceCents    int64       `db:"price_cents"`
	SaveCount     int         `db:"save_count"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

func (l *Lesson) IsPremium() bool {
	return l.AccessLevel == AccessPremium
}

func (l *Lesson) IsPrivate() bool {
	return l.Visibility == VisibilityPrivate
}

func (l *Lesson) Resource() policy.Resource {
	return policy.Resource{OwnerEmail: l.CreatorEmail}
}

// View is a lesson as served to one actor. Locked views have the
// description withheld.
type View struct {
	Lesson
	Locked bool
}
