// AngelaMos | 2026
// repository.go

package favorite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type Repository interface {
	// Create inserts the pair or, when it already exists, loads the stored
	// row into favorite. Reports whether a row was created.
	Create(ctx context.Context, favorite *Favorite) (bool, error)
	GetByID(ctx context.Context, id string) (*Favorite, error)
	ListByUser(ctx context.Context, email string) ([]Saved, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const favoriteColumns = `id, user_email, lesson_id, created_at`

func (r *repository) Create(ctx context.Context, favorite *Favorite) (bool, error) {
	query := `
		INSERT INTO favorites (id, user_email, lesson_id)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT ux_favorites_user_lesson DO NOTHING
		RETURNING ` + favoriteColumns

	err := r.db.GetContext(ctx, favorite, query,
		favorite.ID,
		favorite.UserEmail,
		favorite.LessonID,
	)
	if err == nil {
		return true, nil
	}
	if core.IsForeignKeyError(err) {
		return false, fmt.Errorf("create favorite: %w", core.ErrNotFound)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("create favorite: %w", err)
	}

	existing := `
		SELECT ` + favoriteColumns + `
		FROM favorites
		WHERE user_email = $1 AND lesson_id = $2`

	if err := r.db.GetContext(ctx, favorite, existing,
		favorite.UserEmail,
		favorite.LessonID,
	); err != nil {
		return false, fmt.Errorf("load existing favorite: %w", err)
	}

	return false, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorites WHERE id = $1`

	var favorite Favorite
	err := r.db.GetContext(ctx, &favorite, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get favorite: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get favorite: %w", err)
	}

	return &favorite, nil
}

func (r *repository) ListByUser(ctx context.Context, email string) ([]Saved, error) {
	query := `
		SELECT f.id, f.user_email, f.lesson_id, f.created_at,
		       l.title AS lesson_title,
		       l.category AS lesson_category,
		       l.emotional_tone AS lesson_tone,
		       l.image_url AS lesson_image,
		       l.access_level AS lesson_access
		FROM favorites f
		JOIN lessons l ON l.id = f.lesson_id
		WHERE f.user_email = $1
		ORDER BY f.created_at DESC`

	var rows []Saved
	if err := r.db.SelectContext(ctx, &rows, query, email); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return rows, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete favorite: %w", core.ErrNotFound)
	}

	return nil
}
