// AngelaMos | 2026
// repository.go

package comment

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	ListByLesson(ctx context.Context, lessonID string, limit int) ([]Comment, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (id, lesson_id, author_email, author_name, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &comment.CreatedAt, query,
		comment.ID,
		comment.LessonID,
		comment.AuthorEmail,
		comment.AuthorName,
		comment.Body,
	)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create comment: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *repository) ListByLesson(
	ctx context.Context,
	lessonID string,
	limit int,
) ([]Comment, error) {
	query := `
		SELECT id, lesson_id, author_email, author_name, body, created_at
		FROM comments
		WHERE lesson_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	var comments []Comment
	if err := r.db.SelectContext(ctx, &comments, query, lessonID, limit); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}
