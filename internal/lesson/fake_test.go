// AngelaMos | 2026
// fake_test.go

package lesson

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

type fakeRepo struct {
	mu      sync.Mutex
	lessons map[string]*Lesson
}

func newFakeRepo(lessons ...Lesson) *fakeRepo {
	f := &fakeRepo{lessons: make(map[string]*Lesson)}
	for i := range lessons {
		l := lessons[i]
		f.lessons[l.ID] = &l
	}
	return f
}

func (f *fakeRepo) get(id string) Lesson {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.lessons[id]
}

func (f *fakeRepo) Create(_ context.Context, lesson *Lesson) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = lesson.CreatedAt
	stored := *lesson
	f.lessons[lesson.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Lesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.lessons[id]
	if !ok {
		return nil, fmt.Errorf("get lesson: %w", core.ErrNotFound)
	}
	cp := *l
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, lesson *Lesson) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.lessons[lesson.ID]; !ok {
		return fmt.Errorf("update lesson: %w", core.ErrNotFound)
	}
	lesson.UpdatedAt = time.Now()
	stored := *lesson
	f.lessons[lesson.ID] = &stored
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.lessons[id]; !ok {
		return fmt.Errorf("delete lesson: %w", core.ErrNotFound)
	}
	delete(f.lessons, id)
	return nil
}

func (f *fakeRepo) ListPublic(_ context.Context, params ListLessonsParams) ([]Lesson, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	params.Normalize()
	search := strings.ToLower(params.Search)

	var matched []Lesson
	for _, l := range f.lessons {
		if l.Visibility != VisibilityPublic {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(l.Title), search) {
			continue
		}
		if params.Category != "" && l.Category != params.Category {
			continue
		}
		if params.EmotionalTone != "" && l.EmotionalTone != params.EmotionalTone {
			continue
		}
		matched = append(matched, *l)
	}

	sort.Slice(matched, func(i, j int) bool {
		switch params.Sort {
		case SortOldest:
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		case SortMostSaved:
			return matched[i].SaveCount > matched[j].SaveCount
		default:
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
	})

	total := len(matched)
	start := min(params.Offset(), total)
	end := min(start+params.Size, total)
	return matched[start:end], total, nil
}

func (f *fakeRepo) ListByCreator(_ context.Context, email string) ([]Lesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Lesson
	for _, l := range f.lessons {
		if l.CreatorEmail == email {
			out = append(out, *l)
		}
	}
	return out, nil
}

type fakePrincipals map[string]policy.Actor

func (f fakePrincipals) Lookup(_ context.Context, email string) (policy.Actor, error) {
	if a, ok := f[email]; ok {
		return a, nil
	}
	return policy.Actor{Email: email, Role: policy.RoleUser}, nil
}

type fakePurchases map[string]bool

func (f fakePurchases) HasPurchased(_ context.Context, email, lessonID string) (bool, error) {
	return f[email+"|"+lessonID], nil
}
