// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

type Role = policy.Role

const (
	RoleUser    = policy.RoleUser
	RolePremium = policy.RolePremium
	RoleAdmin   = policy.RoleAdmin
)

type User struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	Name        string    `db:"name"`
	PhotoURL    string    `db:"photo_url"`
	Role        Role      `db:"role"`
	IsPremium   bool      `db:"is_premium"`
	CreatedAt   time.Time `db:"created_at"`
	LastLoginAt time.Time `db:"last_login_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Actor() policy.Actor {
	return policy.Actor{
		Email:     u.Email,
		Role:      u.Role,
		IsPremium: u.IsPremium,
	}
}

// UserWithLessonCount is a row of the admin principal listing.
type UserWithLessonCount struct {
	User
	LessonCount int `db:"lesson_count"`
}
