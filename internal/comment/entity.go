// AngelaMos | 2026
// entity.go

package comment

import (
	"time"
)

// Comment is append-only. There is no update or delete path.
type Comment struct {
	ID          string    `db:"id"`
	LessonID    string    `db:"lesson_id"`
	AuthorEmail string    `db:"author_email"`
	AuthorName  string    `db:"author_name"`
	Body        string    `db:"body"`
	CreatedAt   time.Time `db:"created_at"`
}
