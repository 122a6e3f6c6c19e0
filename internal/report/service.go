// AngelaMos | 2026
// service.go

package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/lesson"
)

type LessonFinder interface {
	Find(ctx context.Context, id string) (*lesson.Lesson, error)
}

type Service struct {
	repo    Repository
	lessons LessonFinder
}

func NewService(repo Repository, lessons LessonFinder) *Service {
	return &Service{repo: repo, lessons: lessons}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateReportRequest,
) (*Report, error) {
	if _, err := s.lessons.Find(ctx, req.LessonID); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	report := &Report{
		ID:            uuid.New().String(),
		LessonID:      req.LessonID,
		ReporterEmail: strings.ToLower(strings.TrimSpace(req.ReporterEmail)),
		Reason:        strings.TrimSpace(req.Reason),
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// List and Delete are admin-only; the route group enforces it.
func (s *Service) List(
	ctx context.Context,
	params ListReportsParams,
) ([]WithLesson, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("delete report: %w", core.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}
