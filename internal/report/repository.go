// AngelaMos | 2026
// repository.go

package report

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, report *Report) error
	List(ctx context.Context, params ListReportsParams) ([]WithLesson, int, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO reports (id, lesson_id, reporter_email, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &report.CreatedAt, query,
		report.ID,
		report.LessonID,
		report.ReporterEmail,
		report.Reason,
	)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create report: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create report: %w", err)
	}

	return nil
}

// List joins each report with the title of the reported lesson.
func (r *repository) List(
	ctx context.Context,
	params ListReportsParams,
) ([]WithLesson, int, error) {
	params.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reports`); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	query := `
		SELECT r.id, r.lesson_id, r.reporter_email, r.reason, r.created_at,
		       l.title AS lesson_title
		FROM reports r
		JOIN lessons l ON l.id = r.lesson_id
		ORDER BY r.created_at DESC
		LIMIT $1 OFFSET $2`

	var rows []WithLesson
	if err := r.db.SelectContext(ctx, &rows, query, params.PageSize, params.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}

	return rows, total, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete report: %w", core.ErrNotFound)
	}

	return nil
}
