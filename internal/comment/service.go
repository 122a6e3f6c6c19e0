// AngelaMos | 2026
// service.go

package comment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/lesson"
)

// LessonFinder reads a lesson without access gating. lesson.Service
// satisfies it.
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
	req CreateCommentRequest,
) (*Comment, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, fmt.Errorf("create comment: blank comment: %w", core.ErrInvalidInput)
	}

	if _, err := s.lessons.Find(ctx, req.LessonID); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	comment := &Comment{
		ID:          uuid.New().String(),
		LessonID:    req.LessonID,
		AuthorEmail: strings.ToLower(strings.TrimSpace(req.AuthorEmail)),
		AuthorName:  strings.TrimSpace(req.AuthorName),
		Body:        body,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListByLesson returns the newest comments first.
func (s *Service) ListByLesson(
	ctx context.Context,
	lessonID string,
) ([]Comment, error) {
	if _, err := s.lessons.Find(ctx, lessonID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return s.repo.ListByLesson(ctx, lessonID, maxListSize)
}
