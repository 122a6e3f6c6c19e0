// AngelaMos | 2026
// fake_test.go

package user

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type fakeRepo struct {
	mu      sync.Mutex
	byEmail map[string]*User
	lessons map[string]int
}

func newFakeRepo(users ...User) *fakeRepo {
	f := &fakeRepo{
		byEmail: make(map[string]*User),
		lessons: make(map[string]int),
	}
	for i := range users {
		u := users[i]
		f.byEmail[u.Email] = &u
	}
	return f
}

func (f *fakeRepo) Upsert(_ context.Context, user *User) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.byEmail[user.Email]; ok {
		existing.LastLoginAt = time.Now()
		if user.Name != "" {
			existing.Name = user.Name
		}
		*user = *existing
		return false, nil
	}

	now := time.Now()
	stored := *user
	stored.CreatedAt = now
	stored.LastLoginAt = now
	f.byEmail[user.Email] = &stored
	*user = stored
	return true, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) UpdateRole(_ context.Context, id string, role Role) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byEmail {
		if u.ID == id {
			u.Role = role
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("update role: %w", core.ErrNotFound)
}

func (f *fakeRepo) SetPremium(_ context.Context, email string, premium bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byEmail[email]
	if !ok {
		return fmt.Errorf("set premium: %w", core.ErrNotFound)
	}
	u.IsPremium = premium
	return nil
}

func (f *fakeRepo) List(_ context.Context, params ListUsersParams) ([]UserWithLessonCount, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	params.Normalize()
	search := strings.ToLower(params.Search)

	var rows []UserWithLessonCount
	for _, u := range f.byEmail {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.Name), search) {
			continue
		}
		rows = append(rows, UserWithLessonCount{User: *u, LessonCount: f.lessons[u.Email]})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Email < rows[j].Email })

	total := len(rows)
	start := min(params.Offset(), total)
	end := min(start+params.PageSize, total)
	return rows[start:end], total, nil
}
