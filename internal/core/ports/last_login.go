package ports

import (
	"context"
	"time"
)

// LastLoginStore records when a user last authenticated successfully.
// Writes are best-effort; a failed touch must not fail the login.
type LastLoginStore interface {
	Touch(ctx context.Context, userID string, at time.Time) error
	// Get returns the recorded time and whether one is known.
	Get(ctx context.Context, userID string) (time.Time, bool, error)
}
