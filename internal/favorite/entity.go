// AngelaMos | 2026
// entity.go

package favorite

import (
	"time"

	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

// Favorite is unique per (UserEmail, LessonID).
type Favorite struct {
	ID        string    `db:"id"`
	UserEmail string    `db:"user_email"`
	LessonID  string    `db:"lesson_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (f *Favorite) Resource() policy.Resource {
	return policy.Resource{OwnerEmail: f.UserEmail}
}

// Saved is a favorite joined with the lesson summary shown in the
// dashboard list.
type Saved struct {
	Favorite
	LessonTitle    string             `db:"lesson_title"`
	LessonCategory string             `db:"lesson_category"`
	LessonTone     string             `db:"lesson_tone"`
	LessonImage    string             `db:"lesson_image"`
	LessonAccess   policy.AccessLevel `db:"lesson_access"`
}
