// AngelaMos | 2026
// entity.go

package report

import (
	"time"
)

type Report struct {
	ID            string    `db:"id"`
	LessonID      string    `db:"lesson_id"`
	ReporterEmail string    `db:"reporter_email"`
	Reason        string    `db:"reason"`
	CreatedAt     time.Time `db:"created_at"`
}

type WithLesson struct {
	Report
	LessonTitle string `db:"lesson_title"`
}
