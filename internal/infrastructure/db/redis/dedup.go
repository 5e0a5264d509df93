package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker suppresses replayed activity entries using Redis.
// Key format: activity:<username>:<action>:<subject>:<unix_timestamp>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact activity entry has already been recorded.
func (d *DedupChecker) IsDuplicate(ctx context.Context, username, action, subject string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(username, action, subject, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this entry has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, username, action, subject string, ts time.Time) error {
	return d.client.Set(ctx, d.key(username, action, subject, ts), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(username, action, subject string, ts time.Time) string {
	return fmt.Sprintf("activity:%s:%s:%s:%d", username, action, subject, ts.Unix())
}
