package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookvault/book-api/internal/api/metrics"
	"github.com/bookvault/book-api/internal/core/domain"
	"github.com/bookvault/book-api/internal/core/ports"
)

// DedupChecker abstracts the replay-suppression store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, username, action, subject string, ts time.Time) (bool, error)
	Mark(ctx context.Context, username, action, subject string, ts time.Time) error
}

type activityService struct {
	repo  ports.ActivityRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, dedup DedupChecker, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, dedup: dedup, log: log}
}

// Record deduplicates and persists a single audit entry.
func (s *activityService) Record(ctx context.Context, in ports.ActivityInput) error {
	start := time.Now()

	isDup, err := s.dedup.IsDuplicate(ctx, in.Username, in.Action, in.Subject, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("username", in.Username).Msg("dedup check failed, recording anyway")
	} else if isDup {
		metrics.ActivityDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("username", in.Username).Str("action", in.Action).Msg("duplicate activity skipped")
		return nil
	}
	metrics.ActivityDedupTotal.WithLabelValues("miss").Inc()

	// Mark before writing so a retried delivery is suppressed.
	if markErr := s.dedup.Mark(ctx, in.Username, in.Action, in.Subject, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("username", in.Username).Msg("failed to set dedup key")
	}

	entry := &domain.Activity{
		Username:  in.Username,
		Action:    in.Action,
		Subject:   in.Subject,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.ActivityErrorsTotal.Inc()
		return err
	}

	metrics.ActivityProcessedTotal.WithLabelValues(in.Action).Inc()
	metrics.ActivityProcessingDuration.Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("username", in.Username).
		Str("action", in.Action).
		Str("subject", in.Subject).
		Msg("activity recorded")

	return nil
}

// Recent returns the newest entries, capped at 100.
func (s *activityService) Recent(ctx context.Context, limit int) ([]*domain.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.repo.ListRecent(ctx, limit)
}
