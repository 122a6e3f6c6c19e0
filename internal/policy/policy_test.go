// AngelaMos | 2026
// policy_test.go

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

var allRoles = []Role{RoleUser, RolePremium, RoleAdmin}

func TestDecide_LessonMutationsRequireCreatorOrAdmin(t *testing.T) {
	lesson := Resource{OwnerEmail: "creator@example.com"}

	for _, op := range []Operation{LessonUpdate, LessonDelete} {
		for _, role := range allRoles {
			stranger := Actor{Email: "stranger@example.com", Role: role, IsPremium: true}
			got := Decide(op, stranger, lesson)
			assert.Equal(t, role == RoleAdmin, got.Allowed, "%s by %s", op, role)

			creator := Actor{Email: "Creator@Example.com", Role: role}
			assert.True(t, Decide(op, creator, lesson).Allowed, "%s by creator with %s", op, role)
		}

		assert.False(t, Decide(op, Actor{}, lesson).Allowed)
	}
}

func TestDecide_SetPremiumRequiresPremiumOrAdminRole(t *testing.T) {
	cases := map[Role]bool{
		RoleUser:    false,
		RolePremium: true,
		RoleAdmin:   true,
	}

	for role, want := range cases {
		actor := Actor{Email: "a@example.com", Role: role}
		assert.Equal(t, want, Decide(LessonSetPremium, actor, Resource{}).Allowed, role)
	}

	entitledUser := Actor{Email: "a@example.com", Role: RoleUser, IsPremium: true}
	assert.False(t, Decide(LessonSetPremium, entitledUser, Resource{}).Allowed)
}

func TestDecide_ReadPremium(t *testing.T) {
	lesson := Resource{OwnerEmail: "creator@example.com"}

	assert.False(t, Decide(LessonReadPremium, Actor{}, lesson).Allowed)
	assert.False(t, Decide(LessonReadPremium, Actor{Email: "u@example.com", Role: RoleUser}, lesson).Allowed)
	assert.True(t, Decide(LessonReadPremium, Actor{Email: "u@example.com", Role: RoleUser, IsPremium: true}, lesson).Allowed)
	assert.True(t, Decide(LessonReadPremium, Actor{Email: "creator@example.com", Role: RoleUser}, lesson).Allowed)

	purchased := Resource{OwnerEmail: "creator@example.com", Purchased: true}
	assert.True(t, Decide(LessonReadPremium, Actor{Email: "u@example.com", Role: RoleUser}, purchased).Allowed)
	assert.False(t, Decide(LessonReadPremium, Actor{}, purchased).Allowed)
}

func TestDecide_FavoritesAreOwnerOnly(t *testing.T) {
	fav := Resource{OwnerEmail: "owner@example.com"}

	for _, op := range []Operation{FavoriteRead, FavoriteDelete} {
		assert.True(t, Decide(op, Actor{Email: "owner@example.com", Role: RoleUser}, fav).Allowed)
		assert.False(t, Decide(op, Actor{Email: "admin@example.com", Role: RoleAdmin}, fav).Allowed)
		assert.False(t, Decide(op, Actor{}, fav).Allowed)
	}
}

func TestDecide_ModerationIsAdminOnly(t *testing.T) {
	for _, op := range []Operation{ReportList, ReportDelete, UserList, UserSetRole, AdminStats} {
		for _, role := range allRoles {
			actor := Actor{Email: "x@example.com", Role: role}
			assert.Equal(t, role == RoleAdmin, Decide(op, actor, Resource{}).Allowed, "%s by %s", op, role)
		}
	}
}

func TestDecide_UnknownOperationDenied(t *testing.T) {
	got := Decide(Operation(999), Actor{Email: "x@example.com", Role: RoleAdmin}, Resource{})
	assert.False(t, got.Allowed)
	assert.Contains(t, got.Reason, "operation(999)")
}

func TestDecision_Err(t *testing.T) {
	assert.NoError(t, allow().Err())
	assert.ErrorIs(t, deny("nope").Err(), core.ErrForbidden)
}

func TestParseEnums(t *testing.T) {
	_, err := ParseRole("superuser")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	r, err := ParseRole("premium")
	assert.NoError(t, err)
	assert.Equal(t, RolePremium, r)

	_, err = ParseAccessLevel("gold")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = ParseVisibility("hidden")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
