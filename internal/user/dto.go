// AngelaMos | 2026
// dto.go

package user

import (
	"math"
	"time"
)

type UpsertUserRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Name     string `json:"name"     validate:"max=100"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url,max=2048"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user premium admin"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	PhotoURL    string    `json:"photoURL,omitempty"`
	Role        Role      `json:"role"`
	IsPremium   bool      `json:"isPremium"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

type UserListItem struct {
	UserResponse
	LessonCount int `json:"lessonCount"`
}

type RoleResponse struct {
	Role      Role `json:"role"`
	IsPremium bool `json:"isPremium"`
}

type ListUsersParams struct {
	Page     int
	PageSize int
	Search   string
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxPage         = math.MaxInt32 / maxPageSize
)

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > maxPage {
		p.Page = maxPage
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhotoURL:    u.PhotoURL,
		Role:        u.Role,
		IsPremium:   u.IsPremium,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func ToUserList(rows []UserWithLessonCount) []UserListItem {
	items := make([]UserListItem, 0, len(rows))
	for i := range rows {
		items = append(items, UserListItem{
			UserResponse: ToUserResponse(&rows[i].User),
			LessonCount:  rows[i].LessonCount,
		})
	}
	return items
}
