package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookvault/book-api/internal/core/domain"
	"github.com/bookvault/book-api/internal/core/ports"
)

type captureService struct {
	mu      sync.Mutex
	entries []ports.ActivityInput
}

func (s *captureService) Record(_ context.Context, in ports.ActivityInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, in)
	return nil
}

func (s *captureService) Recent(_ context.Context, _ int) ([]*domain.Activity, error) {
	return nil, nil
}

func (s *captureService) recorded() []ports.ActivityInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.ActivityInput, len(s.entries))
	copy(out, s.entries)
	return out
}

func TestDispatcher_StopDrainsQueuedEntries(t *testing.T) {
	svc := &captureService{}
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	// The shutdown signal fires while requests are still in flight; entries
	// they enqueue afterwards must still reach the store.
	cancel()

	const n = 10
	for i := 0; i < n; i++ {
		d.Enqueue(ports.ActivityInput{
			Username:  "alice",
			Action:    domain.ActionLogin,
			Subject:   fmt.Sprintf("s-%d", i),
			Timestamp: time.Now().UTC(),
		})
	}
	d.Stop()

	got := svc.recorded()
	if len(got) != n {
		t.Fatalf("recorded %d of %d entries after shutdown signal", len(got), n)
	}
}

func TestDispatcher_PerUsernameOrdering(t *testing.T) {
	svc := &captureService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())

	const n = 20
	for i := 0; i < n; i++ {
		d.Enqueue(ports.ActivityInput{
			Username:  "bob",
			Action:    domain.ActionBookCreated,
			Subject:   fmt.Sprintf("book-%d", i),
			Timestamp: time.Now().UTC(),
		})
	}
	d.Stop()

	got := svc.recorded()
	if len(got) != n {
		t.Fatalf("recorded %d of %d entries", len(got), n)
	}
	// Same username always lands on the same worker, so order is preserved.
	for i, in := range got {
		if want := fmt.Sprintf("book-%d", i); in.Subject != want {
			t.Fatalf("position %d: got %s, want %s", i, in.Subject, want)
		}
	}
}
