package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const lastLoginTTL = 30 * 24 * time.Hour

// LastLoginTracker records per-user last-login recency in Redis.
// Key format: last_login:<user_id>, value is a unix timestamp.
type LastLoginTracker struct {
	client *redis.Client
}

// NewLastLoginTracker creates a LastLoginTracker wrapping the given Redis client.
func NewLastLoginTracker(client *redis.Client) *LastLoginTracker {
	return &LastLoginTracker{client: client}
}

// Touch records a successful login at the given time (expires after lastLoginTTL).
func (t *LastLoginTracker) Touch(ctx context.Context, userID string, at time.Time) error {
	return t.client.Set(ctx, t.key(userID), at.Unix(), lastLoginTTL).Err()
}

// Get returns the recorded last-login time, and false when none is known.
func (t *LastLoginTracker) Get(ctx context.Context, userID string) (time.Time, bool, error) {
	val, err := t.client.Get(ctx, t.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last-login get: %w", err)
	}

	ts, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last-login parse %q: %w", val, err)
	}
	return time.Unix(ts, 0).UTC(), true, nil
}

func (t *LastLoginTracker) key(userID string) string {
	return "last_login:" + userID
}
