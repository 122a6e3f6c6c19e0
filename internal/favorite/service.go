// AngelaMos | 2026
// service.go

package favorite

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/lesson"
	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
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

// Create saves a lesson for a principal. A repeated pair returns the
// stored favorite with created=false.
func (s *Service) Create(
	ctx context.Context,
	req CreateFavoriteRequest,
) (*Favorite, bool, error) {
	if _, err := s.lessons.Find(ctx, req.LessonID); err != nil {
		return nil, false, fmt.Errorf("create favorite: %w", err)
	}

	favorite := &Favorite{
		ID:        uuid.New().String(),
		UserEmail: strings.ToLower(strings.TrimSpace(req.UserEmail)),
		LessonID:  req.LessonID,
	}

	created, err := s.repo.Create(ctx, favorite)
	if err != nil {
		return nil, false, err
	}

	return favorite, created, nil
}

func (s *Service) ListForUser(
	ctx context.Context,
	actor policy.Actor,
	email string,
) ([]Saved, error) {
	owner := policy.Resource{OwnerEmail: email}
	if err := policy.Decide(policy.FavoriteRead, actor, owner).Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return s.repo.ListByUser(ctx, strings.ToLower(email))
}

func (s *Service) Delete(
	ctx context.Context,
	actor policy.Actor,
	id string,
) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("delete favorite: %w", core.ErrNotFound)
	}

	favorite, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	decision := policy.Decide(policy.FavoriteDelete, actor, favorite.Resource())
	if err := decision.Err(); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	return s.repo.Delete(ctx, id)
}
