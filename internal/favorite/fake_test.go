// AngelaMos | 2026
// fake_test.go

package favorite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/lesson"
)

type fakeRepo struct {
	mu        sync.Mutex
	favorites map[string]Favorite
	lessons   fakeLessons
}

func newFakeRepo(lessons fakeLessons) *fakeRepo {
	return &fakeRepo{favorites: make(map[string]Favorite), lessons: lessons}
}

func (f *fakeRepo) Create(_ context.Context, favorite *Favorite) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.favorites {
		if existing.UserEmail == favorite.UserEmail && existing.LessonID == favorite.LessonID {
			*favorite = existing
			return false, nil
		}
	}

	favorite.CreatedAt = time.Now()
	f.favorites[favorite.ID] = *favorite
	return true, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fav, ok := f.favorites[id]
	if !ok {
		return nil, fmt.Errorf("get favorite: %w", core.ErrNotFound)
	}
	return &fav, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, email string) ([]Saved, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Saved
	for _, fav := range f.favorites {
		if fav.UserEmail != email {
			continue
		}
		l := f.lessons[fav.LessonID]
		out = append(out, Saved{
			Favorite:     fav,
			LessonTitle:  l.Title,
			LessonAccess: l.AccessLevel,
		})
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.favorites[id]; !ok {
		return fmt.Errorf("delete favorite: %w", core.ErrNotFound)
	}
	delete(f.favorites, id)
	return nil
}

type fakeLessons map[string]lesson.Lesson

func (f fakeLessons) Find(_ context.Context, id string) (*lesson.Lesson, error) {
	l, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("get lesson: %w", core.ErrNotFound)
	}
	return &l, nil
}
