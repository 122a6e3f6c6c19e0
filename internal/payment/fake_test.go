// AngelaMos | 2026
// fake_test.go

package payment

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/lesson"
)

type fakeProvider struct {
	mu       sync.Mutex
	sessions map[string]*Session
	err      error
	created  []CheckoutParams
}

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, params CheckoutParams) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, params)
	id := fmt.Sprintf("cs_test_%d", len(f.created))
	return &Session{ID: id, URL: "https://checkout.example.com/" + id}, nil
}

func (f *fakeProvider) RetrieveSession(_ context.Context, id string) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("retrieve: %w", ErrInvalidSession)
	}
	cp := *s
	return &cp, nil
}

// fakeRepo enforces the transaction id uniqueness the real index provides.
type fakeRepo struct {
	mu      sync.Mutex
	records map[string]Payment
	hideGet bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]Payment)}
}

func (f *fakeRepo) GetByTransactionID(_ context.Context, txID string) (*Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.records[txID]
	if !ok || f.hideGet {
		return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
	}
	return &p, nil
}

func (f *fakeRepo) Create(_ context.Context, p *Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.records[p.TransactionID]; ok {
		return fmt.Errorf("create payment: %w", core.ErrDuplicateKey)
	}
	f.records[p.TransactionID] = *p
	return nil
}

func (f *fakeRepo) HasPurchased(_ context.Context, email, lessonID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.records {
		if p.PayerEmail == email && p.LessonID != nil && *p.LessonID == lessonID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeEntitlements struct {
	mu      sync.Mutex
	users   map[string]bool
	upgrade int
	err     error
}

func (f *fakeEntitlements) SetPremium(_ context.Context, email string, premium bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[email]; !ok {
		return fmt.Errorf("set premium: %w", core.ErrNotFound)
	}
	f.users[email] = premium
	f.upgrade++
	return nil
}

// fakeTx serialises transactions and restores both stores when fn fails.
type fakeTx struct {
	mu    sync.Mutex
	repo  *fakeRepo
	users *fakeEntitlements
}

func (f *fakeTx) InTx(_ context.Context, fn func(tx core.DBTX) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.repo.mu.Lock()
	records := maps.Clone(f.repo.records)
	f.repo.mu.Unlock()

	f.users.mu.Lock()
	users := maps.Clone(f.users.users)
	upgrades := f.users.upgrade
	f.users.mu.Unlock()

	if err := fn(nil); err != nil {
		f.repo.mu.Lock()
		f.repo.records = records
		f.repo.mu.Unlock()

		f.users.mu.Lock()
		f.users.users = users
		f.users.upgrade = upgrades
		f.users.mu.Unlock()
		return err
	}
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
