// AngelaMos | 2026
// service.go

package lesson

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

// PrincipalLookup resolves a creator's stored role. user.Service satisfies it.
type PrincipalLookup interface {
	Lookup(ctx context.Context, email string) (policy.Actor, error)
}

// PurchaseChecker reports whether a principal bought a premium lesson.
// The payment repository satisfies it.
type PurchaseChecker interface {
	HasPurchased(ctx context.Context, email, lessonID string) (bool, error)
}

type Service struct {
	repo       Repository
	principals PrincipalLookup
	purchases  PurchaseChecker
}

func NewService(
	repo Repository,
	principals PrincipalLookup,
	purchases PurchaseChecker,
) *Service {
	return &Service{
		repo:       repo,
		principals: principals,
		purchases:  purchases,
	}
}

// Create stores a new lesson for the creator named in the request. A
// premium lesson is only accepted when the creator's stored role allows it.
func (s *Service) Create(
	ctx context.Context,
	req CreateLessonRequest,
) (*Lesson, error) {
	lesson := &Lesson{
		ID:            uuid.New().String(),
		CreatorEmail:  strings.ToLower(strings.TrimSpace(req.CreatorEmail)),
		CreatorName:   strings.TrimSpace(req.CreatorName),
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Category:      strings.TrimSpace(req.Category),
		EmotionalTone: strings.TrimSpace(req.EmotionalTone),
		ImageURL:      req.ImageURL,
		Visibility:    VisibilityPublic,
		AccessLevel:   AccessFree,
		PriceCents:    req.PriceCents,
	}

	if req.Visibility != "" {
		v, err := policy.ParseVisibility(req.Visibility)
		if err != nil {
			return nil, fmt.Errorf("create lesson: %w", err)
		}
		lesson.Visibility = v
	}

	if req.AccessLevel != "" {
		a, err := policy.ParseAccessLevel(req.AccessLevel)
		if err != nil {
			return nil, fmt.Errorf("create lesson: %w", err)
		}
		lesson.AccessLevel = a
	}

	if lesson.IsPremium() {
		creator, err := s.principals.Lookup(ctx, lesson.CreatorEmail)
		if err != nil {
			return nil, fmt.Errorf("create lesson: %w", err)
		}
		if err := policy.Decide(policy.LessonSetPremium, creator, lesson.Resource()).Err(); err != nil {
			return nil, fmt.Errorf("create lesson: %w", err)
		}
	}

	if err := validatePrice(lesson); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	if err := s.repo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

// Get serves one lesson to actor. Private lessons are hidden from anyone
// but the creator and admins. Premium lessons are returned locked unless
// the actor is entitled, owns the lesson or purchased it.
func (s *Service) Get(
	ctx context.Context,
	actor policy.Actor,
	id string,
) (*View, error) {
	lesson, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if lesson.IsPrivate() &&
		!policy.Decide(policy.LessonViewPrivate, actor, lesson.Resource()).Allowed {
		return nil, fmt.Errorf("get lesson: %w", core.ErrNotFound)
	}

	view := &View{Lesson: *lesson}
	if !lesson.IsPremium() {
		return view, nil
	}

	res := lesson.Resource()
	if policy.Decide(policy.LessonReadPremium, actor, res).Allowed {
		return view, nil
	}

	if actor.Authenticated() {
		res.Purchased, err = s.purchases.HasPurchased(ctx, actor.Email, lesson.ID)
		if err != nil {
			return nil, fmt.Errorf("get lesson: %w", err)
		}
	}

	view.Locked = !policy.Decide(policy.LessonReadPremium, actor, res).Allowed
	return view, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor policy.Actor,
	id string,
	req UpdateLessonRequest,
) (*Lesson, error) {
	lesson, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.Decide(policy.LessonUpdate, actor, lesson.Resource()).Err(); err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}

	if req.AccessLevel != nil {
		a, err := policy.ParseAccessLevel(*req.AccessLevel)
		if err != nil {
			return nil, fmt.Errorf("update lesson: %w", err)
		}
		if a == AccessPremium {
			if err := policy.Decide(policy.LessonSetPremium, actor, lesson.Resource()).Err(); err != nil {
				return nil, fmt.Errorf("update lesson: %w", err)
			}
		}
		lesson.AccessLevel = a
	}

	if req.Visibility != nil {
		v, err := policy.ParseVisibility(*req.Visibility)
		if err != nil {
			return nil, fmt.Errorf("update lesson: %w", err)
		}
		lesson.Visibility = v
	}

	if req.Title != nil {
		lesson.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.Category != nil {
		lesson.Category = strings.TrimSpace(*req.Category)
	}
	if req.EmotionalTone != nil {
		lesson.EmotionalTone = strings.TrimSpace(*req.EmotionalTone)
	}
	if req.ImageURL != nil {
		lesson.ImageURL = *req.ImageURL
	}
	if req.PriceCents != nil {
		lesson.PriceCents = *req.PriceCents
	}

	if err := validatePrice(lesson); err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}

	if err := s.repo.Update(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

func (s *Service) Delete(
	ctx context.Context,
	actor policy.Actor,
	id string,
) error {
	lesson, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := policy.Decide(policy.LessonDelete, actor, lesson.Resource()).Err(); err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}

	return s.repo.Delete(ctx, lesson.ID)
}

// List returns a page of public lessons. Premium lessons are locked for
// actors who are neither entitled nor the creator; purchases only unlock
// the single lesson view.
func (s *Service) List(
	ctx context.Context,
	actor policy.Actor,
	params ListLessonsParams,
) ([]View, int, error) {
	lessons, total, err := s.repo.ListPublic(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	views := make([]View, 0, len(lessons))
	for _, l := range lessons {
		locked := l.IsPremium() &&
			!policy.Decide(policy.LessonReadPremium, actor, l.Resource()).Allowed
		views = append(views, View{Lesson: l, Locked: locked})
	}

	return views, total, nil
}

func (s *Service) ListMine(ctx context.Context, email string) ([]View, error) {
	lessons, err := s.repo.ListByCreator(ctx, email)
	if err != nil {
		return nil, err
	}
	return ownedViews(lessons), nil
}

// Find is used by collaborators that need the stored record without
// actor-specific gating, such as checkout pricing.
func (s *Service) Find(ctx context.Context, id string) (*Lesson, error) {
	return s.find(ctx, id)
}

func (s *Service) find(ctx context.Context, id string) (*Lesson, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get lesson: %w", core.ErrNotFound)
	}
	return s.repo.GetByID(ctx, id)
}

func validatePrice(lesson *Lesson) error {
	if lesson.IsPremium() && lesson.PriceCents <= 0 {
		return fmt.Errorf("premium lessons need a positive price: %w", core.ErrInvalidInput)
	}
	return nil
}
