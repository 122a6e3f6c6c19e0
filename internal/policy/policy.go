// AngelaMos | 2026
// policy.go

// Package policy decides whether a principal may perform an operation.
// Decide has no side effects and never touches the network or the store.
package policy

import (
	"fmt"
	"strings"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type Operation int

const (
	LessonUpdate Operation = iota + 1
	LessonDelete
	LessonSetPremium
	LessonViewPrivate
	LessonReadPremium
	FavoriteRead
	FavoriteDelete
	ReportList
	ReportDelete
	UserList
	UserSetRole
	AdminStats
)

var operationNames = map[Operation]string{
	LessonUpdate:      "lesson.update",
	LessonDelete:      "lesson.delete",
	LessonSetPremium:  "lesson.set_premium",
	LessonViewPrivate: "lesson.view_private",
	LessonReadPremium: "lesson.read_premium",
	FavoriteRead:      "favorite.read",
	FavoriteDelete:    "favorite.delete",
	ReportList:        "report.list",
	ReportDelete:      "report.delete",
	UserList:          "user.list",
	UserSetRole:       "user.set_role",
	AdminStats:        "admin.stats",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Err converts a denial into an error wrapping core.ErrForbidden.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%s: %w", d.Reason, core.ErrForbidden)
}

func Decide(op Operation, actor Actor, res Resource) Decision {
	switch op {
	case LessonUpdate, LessonDelete, LessonViewPrivate:
		if !actor.Authenticated() {
			return deny("authentication required")
		}
		if actor.IsAdmin() || isOwner(actor, res) {
			return allow()
		}
		return deny("only the creator or an admin may do this")

	case LessonSetPremium:
		if actor.Authenticated() &&
			(actor.Role == RolePremium || actor.Role == RoleAdmin) {
			return allow()
		}
		return deny("premium access level requires a premium or admin role")

	case LessonReadPremium:
		if actor.Entitled() || isOwner(actor, res) || (actor.Authenticated() && res.Purchased) {
			return allow()
		}
		return deny("premium lesson requires an upgrade or a purchase")

	case FavoriteRead, FavoriteDelete:
		if isOwner(actor, res) {
			return allow()
		}
		return deny("favorites are private to their owner")

	case ReportList, ReportDelete, UserList, UserSetRole, AdminStats:
		if actor.IsAdmin() {
			return allow()
		}
		return deny("admin role required")

	default:
		return deny("unknown operation " + op.String())
	}
}

func isOwner(actor Actor, res Resource) bool {
	return actor.Authenticated() &&
		res.OwnerEmail != "" &&
		strings.EqualFold(actor.Email, res.OwnerEmail)
}
