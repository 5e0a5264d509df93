package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookvault/book-api/internal/core/domain"
	"github.com/bookvault/book-api/internal/core/ports"
)

type stubActivityRepo struct {
	entries []*domain.Activity
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	clone := *a
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubActivityRepo) ListRecent(_ context.Context, limit int) ([]*domain.Activity, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]*domain.Activity, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

type stubDedup struct {
	seen map[string]bool
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(username, action, subject string, ts time.Time) string {
	return username + "|" + action + "|" + subject + "|" + ts.UTC().String()
}

func (d *stubDedup) IsDuplicate(_ context.Context, username, action, subject string, ts time.Time) (bool, error) {
	return d.seen[d.key(username, action, subject, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, username, action, subject string, ts time.Time) error {
	d.seen[d.key(username, action, subject, ts)] = true
	return nil
}

func TestActivityService_Record(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, newStubDedup(), zerolog.Nop())

	in := ports.ActivityInput{
		Username:  "alice",
		Action:    domain.ActionLogin,
		Timestamp: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	if repo.entries[0].Username != "alice" || repo.entries[0].Action != domain.ActionLogin {
		t.Fatalf("unexpected entry: %+v", repo.entries[0])
	}
}

func TestActivityService_Record_SkipsExactReplay(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, newStubDedup(), zerolog.Nop())

	in := ports.ActivityInput{
		Username:  "bob",
		Action:    domain.ActionBookCreated,
		Subject:   "book-1",
		Timestamp: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("first Record: %v", err)
	}
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("replayed Record: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("replay was persisted, expected 1 entry, got %d", len(repo.entries))
	}
}

func TestActivityService_Recent_NewestFirstAndCapped(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, newStubDedup(), zerolog.Nop())

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		in := ports.ActivityInput{
			Username:  "carol",
			Action:    domain.ActionLogin,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := svc.Record(context.Background(), in); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	recent, err := svc.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if !recent[0].Timestamp.After(recent[1].Timestamp) {
		t.Fatalf("entries not newest-first: %v then %v", recent[0].Timestamp, recent[1].Timestamp)
	}
}
