// AngelaMos | 2026
// service_test.go

package favorite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/lesson"
	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

const (
	lessonA   = "66666666-6666-4666-8666-666666666666"
	lessonB   = "77777777-7777-4777-8777-777777777777"
	missingID = "88888888-8888-4888-8888-888888888888"
)

var (
	owner    = policy.Actor{Email: "owner@example.com", Role: policy.RoleUser}
	stranger = policy.Actor{Email: "stranger@example.com", Role: policy.RoleUser}
	admin    = policy.Actor{Email: "admin@example.com", Role: policy.RoleAdmin}
)

func newTestService() (*Service, *fakeRepo) {
	lessons := fakeLessons{
		lessonA: {ID: lessonA, Title: "Forgiveness", AccessLevel: lesson.AccessFree},
		lessonB: {ID: lessonB, Title: "Discipline", AccessLevel: lesson.AccessPremium},
	}
	repo := newFakeRepo(lessons)
	return NewService(repo, lessons), repo
}

func TestService_CreateDedupsPair(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	first, created, err := svc.Create(ctx, CreateFavoriteRequest{
		UserEmail: "Owner@Example.com", LessonID: lessonA,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, owner.Email, first.UserEmail)

	again, created, err := svc.Create(ctx, CreateFavoriteRequest{
		UserEmail: owner.Email, LessonID: lessonA,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	_, created, err = svc.Create(ctx, CreateFavoriteRequest{
		UserEmail: owner.Email, LessonID: lessonB,
	})
	require.NoError(t, err)
	assert.True(t, created)

	assert.Len(t, repo.favorites, 2)
}

func TestService_CreateMissingLesson(t *testing.T) {
	svc, repo := newTestService()

	_, _, err := svc.Create(context.Background(), CreateFavoriteRequest{
		UserEmail: owner.Email, LessonID: missingID,
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, repo.favorites)
}

func TestService_ListIsSelfOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Create(ctx, CreateFavoriteRequest{UserEmail: owner.Email, LessonID: lessonB})
	require.NoError(t, err)

	rows, err := svc.ListForUser(ctx, owner, "OWNER@example.com")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Discipline", rows[0].LessonTitle)

	_, err = svc.ListForUser(ctx, stranger, owner.Email)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.ListForUser(ctx, admin, owner.Email)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.ListForUser(ctx, policy.Actor{}, owner.Email)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestService_DeleteIsOwnerOnly(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	fav, _, err := svc.Create(ctx, CreateFavoriteRequest{UserEmail: owner.Email, LessonID: lessonA})
	require.NoError(t, err)

	err = svc.Delete(ctx, stranger, fav.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Len(t, repo.favorites, 1)

	require.NoError(t, svc.Delete(ctx, owner, fav.ID))
	assert.Empty(t, repo.favorites)

	err = svc.Delete(ctx, owner, fav.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = svc.Delete(ctx, owner, "not-a-uuid")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
