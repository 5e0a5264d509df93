package ports

import (
	"context"
	"time"

	"github.com/bookvault/book-api/internal/core/domain"
)

// ActivityInput is the DTO handed from the transport layer to the audit
// pipeline.
type ActivityInput struct {
	Username  string
	Action    string
	Subject   string
	Timestamp time.Time
}

// ActivityService processes and reads audit-trail entries.
type ActivityService interface {
	// Record deduplicates and persists a single entry. Exact replays are
	// silently skipped.
	Record(ctx context.Context, in ActivityInput) error
	Recent(ctx context.Context, limit int) ([]*domain.Activity, error)
}

// ActivityRepository defines persistence for audit-trail entries.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.Activity, error)
}
