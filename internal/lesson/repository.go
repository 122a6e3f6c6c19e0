// AngelaMos | 2026
// repository.go

package lesson

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, lesson *Lesson) error
	GetByID(ctx context.Context, id string) (*Lesson, error)
	Update(ctx context.Context, lesson *Lesson) error
	Delete(ctx context.Context, id string) error
	ListPublic(ctx context.Context, params ListLessonsParams) ([]Lesson, int, error)
	ListByCreator(ctx context.Context, email string) ([]Lesson, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const lessonColumns = `
	l.id, l.creator_email, l.creator_name, l.title, l.description,
	l.category, l.emotional_tone, l.image_url, l.visibility,
	l.access_level, l.price_cents, l.created_at, l.updated_at,
	COALESCE(s.save_count, 0) AS save_count`

const lessonFrom = `
	FROM lessons l
	LEFT JOIN (
		SELECT lesson_id, COUNT(*) AS save_count
		FROM favorites
		GROUP BY lesson_id
	) s ON s.lesson_id = l.id`

var lessonOrder = map[string]string{
	SortNewest:    "l.created_at DESC, l.id",
	SortOldest:    "l.created_at ASC, l.id",
	SortMostSaved: "save_count DESC, l.created_at DESC, l.id",
}

func (r *repository) Create(ctx context.Context, lesson *Lesson) error {
	query := `
		INSERT INTO lessons (
			id, creator_email, creator_name, title, description, category,
			emotional_tone, image_url, visibility, access_level, price_cents
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		lesson.ID,
		lesson.CreatorEmail,
		lesson.CreatorName,
		lesson.Title,
		lesson.Description,
		lesson.Category,
		lesson.EmotionalTone,
		lesson.ImageURL,
		lesson.Visibility,
		lesson.AccessLevel,
		lesson.PriceCents,
	).Scan(&lesson.CreatedAt, &lesson.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Lesson, error) {
	query := `SELECT ` + lessonColumns + lessonFrom + ` WHERE l.id = $1`

	var lesson Lesson
	err := r.db.GetContext(ctx, &lesson, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get lesson: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	return &lesson, nil
}

func (r *repository) Update(ctx context.Context, lesson *Lesson) error {
	query := `
		UPDATE lessons
		SET title = $2, description = $3, category = $4, emotional_tone = $5,
		    image_url = $6, visibility = $7, access_level = $8,
		    price_cents = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		lesson.ID,
		lesson.Title,
		lesson.Description,
		lesson.Category,
		lesson.EmotionalTone,
		lesson.ImageURL,
		lesson.Visibility,
		lesson.AccessLevel,
		lesson.PriceCents,
	).Scan(&lesson.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update lesson: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete lesson: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListPublic(
	ctx context.Context,
	params ListLessonsParams,
) ([]Lesson, int, error) {
	params.Normalize()

	conditions := []string{"l.visibility = 'public'"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("l.title ILIKE $%d", argIdx))
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("l.category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	if params.EmotionalTone != "" {
		conditions = append(conditions, fmt.Sprintf("l.emotional_tone = $%d", argIdx))
		args = append(args, params.EmotionalTone)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM lessons l WHERE " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count lessons: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		lessonColumns, lessonFrom, where, lessonOrder[params.Sort], argIdx, argIdx+1)

	args = append(args, params.Size, params.Offset())

	var lessons []Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list lessons: %w", err)
	}

	return lessons, total, nil
}

func (r *repository) ListByCreator(
	ctx context.Context,
	email string,
) ([]Lesson, error) {
	query := `SELECT ` + lessonColumns + lessonFrom + `
		WHERE l.creator_email = $1
		ORDER BY l.created_at DESC`

	var lessons []Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, email); err != nil {
		return nil, fmt.Errorf("list lessons by creator: %w", err)
	}

	return lessons, nil
}
