// AngelaMos | 2026
// types.go

package policy

import (
	"fmt"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type Role string

const (
	RoleUser    Role = "user"
	RolePremium Role = "premium"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RolePremium, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("invalid role %q: %w", s, core.ErrInvalidInput)
	}
}

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(s); v {
	case VisibilityPublic, VisibilityPrivate:
		return v, nil
	default:
		return "", fmt.Errorf("invalid visibility %q: %w", s, core.ErrInvalidInput)
	}
}

type AccessLevel string

const (
	AccessFree    AccessLevel = "free"
	AccessPremium AccessLevel = "premium"
)

func ParseAccessLevel(s string) (AccessLevel, error) {
	switch a := AccessLevel(s); a {
	case AccessFree, AccessPremium:
		return a, nil
	default:
		return "", fmt.Errorf("invalid access level %q: %w", s, core.ErrInvalidInput)
	}
}

// Actor is the acting principal as stored, not as claimed by the client.
// The zero value is an anonymous caller.
type Actor struct {
	Email     string
	Role      Role
	IsPremium bool
}

func (a Actor) Authenticated() bool {
	return a.Email != ""
}

func (a Actor) IsAdmin() bool {
	return a.Authenticated() && a.Role == RoleAdmin
}

// Entitled reports whether the actor may read every premium lesson.
func (a Actor) Entitled() bool {
	return a.Authenticated() &&
		(a.IsPremium || a.Role == RolePremium || a.Role == RoleAdmin)
}

// Resource carries the facts about the target record the rules need.
type Resource struct {
	OwnerEmail string
	Purchased  bool
}
