package service

import (
	"context"
	"sync"
	"time"

	"feedbackd/internal/adapters/inference"
	"feedbackd/internal/services/api/feedback/domain"
	"feedbackd/internal/services/api/feedback/repo"
)

type fakeEngine struct {
	out   string
	err   error
	calls int
	last  inference.Request
}

func (f *fakeEngine) Classify(_ context.Context, req inference.Request) (string, error) {
	f.calls++
	f.last = req
	return f.out, f.err
}
func (f *fakeEngine) Provider() string { return "fake" }
func (f *fakeEngine) Model() string    { return "fake-1" }

type fakeRepo struct {
	mu      sync.Mutex
	records []domain.Record
	nextID  int64
	err     error
}

func (f *fakeRepo) Insert(_ context.Context, rec domain.Record) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	rec.ID = f.nextID
	f.records = append(f.records, rec)
	return rec.ID, nil
}

func (f *fakeRepo) Bootstrap(context.Context) error { return nil }

type fakeEvents struct {
	got []repo.Event
	err error
}

func (f *fakeEvents) Record(_ context.Context, ev repo.Event) error {
	f.got = append(f.got, ev)
	return f.err
}

func (f *fakeEvents) Bootstrap(context.Context) error { return nil }

var fixed = time.Date(2025, 1, 2, 3, 4, 5, 678_000_000, time.UTC)

func fixedClock() time.Time { return fixed }
