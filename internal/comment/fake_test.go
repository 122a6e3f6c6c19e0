// AngelaMos | 2026
// fake_test.go

package comment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/lesson"
)

type fakeRepo struct {
	mu       sync.Mutex
	comments []Comment
	clock    time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{clock: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeRepo) Create(_ context.Context, comment *Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clock = f.clock.Add(time.Minute)
	comment.CreatedAt = f.clock
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeRepo) ListByLesson(_ context.Context, lessonID string, limit int) ([]Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Comment
	for _, c := range f.comments {
		if c.LessonID == lessonID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeLessons map[string]lesson.Lesson

func (f fakeLessons) Find(_ context.Context, id string) (*lesson.Lesson, error) {
	l, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("get lesson: %w", core.ErrNotFound)
	}
	return &l, nil
}
