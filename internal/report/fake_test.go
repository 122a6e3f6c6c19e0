// AngelaMos | 2026
// fake_test.go

package report

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
	mu      sync.Mutex
	reports map[string]Report
	lessons fakeLessons
	clock   time.Time
}

func newFakeRepo(lessons fakeLessons) *fakeRepo {
	return &fakeRepo{
		reports: make(map[string]Report),
		lessons: lessons,
		clock:   time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepo) Create(_ context.Context, report *Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clock = f.clock.Add(time.Second)
	report.CreatedAt = f.clock
	f.reports[report.ID] = *report
	return nil
}

func (f *fakeRepo) List(_ context.Context, params ListReportsParams) ([]WithLesson, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	params.Normalize()
	rows := make([]WithLesson, 0, len(f.reports))
	for _, r := range f.reports {
		rows = append(rows, WithLesson{Report: r, LessonTitle: f.lessons[r.LessonID].Title})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})

	total := len(rows)
	start := min(params.Offset(), total)
	end := min(start+params.PageSize, total)
	return rows[start:end], total, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.reports[id]; !ok {
		return fmt.Errorf("delete report: %w", core.ErrNotFound)
	}
	delete(f.reports, id)
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
