// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert records a login. The boolean reports whether the principal was
// seen for the first time.
func (s *Service) Upsert(
	ctx context.Context,
	req UpsertUserRequest,
) (*User, bool, error) {
	user := &User{
		ID:       uuid.New().String(),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Name:     strings.TrimSpace(req.Name),
		PhotoURL: req.PhotoURL,
		Role:     RoleUser,
	}

	created, err := s.repo.Upsert(ctx, user)
	if err != nil {
		return nil, false, err
	}

	return user, created, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

// Lookup resolves the stored role and entitlement of a verified principal.
// A principal that has not been upserted yet acts with the default role.
func (s *Service) Lookup(
	ctx context.Context,
	email string,
) (policy.Actor, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, core.ErrNotFound) {
		return policy.Actor{Email: strings.ToLower(email), Role: RoleUser}, nil
	}
	if err != nil {
		return policy.Actor{}, fmt.Errorf("lookup principal: %w", err)
	}

	return user.Actor(), nil
}

func (s *Service) GetRole(ctx context.Context, email string) (RoleResponse, error) {
	actor, err := s.Lookup(ctx, email)
	if err != nil {
		return RoleResponse{}, err
	}

	return RoleResponse{Role: actor.Role, IsPremium: actor.IsPremium}, nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]UserWithLessonCount, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) UpdateUserRole(
	ctx context.Context,
	id, role string,
) (*User, error) {
	parsed, err := policy.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	return s.repo.UpdateRole(ctx, id, parsed)
}

// SetRoleByEmail is the operator path used by lessonsctl.
func (s *Service) SetRoleByEmail(
	ctx context.Context,
	email, role string,
) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return s.UpdateUserRole(ctx, user.ID, role)
}

func (s *Service) GrantPremium(ctx context.Context, email string) error {
	return s.repo.SetPremium(ctx, strings.ToLower(email), true)
}
