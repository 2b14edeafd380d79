// Package retry provides a single bounded retry policy for transient
// failures. Storage writes and collaborator calls share this policy
// instead of carrying their own ad hoc loops.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/verity-labs/claimlens-cli/internal/logger"
)

// Policy bounds the retry loop.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// BaseDelay is the wait before the first retry; it doubles on each
	// subsequent retry.
	BaseDelay time.Duration

	// MaxDelay caps the backoff wait.
	MaxDelay time.Duration
}

// DefaultPolicy retries three times with exponential backoff from 200ms.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    5 * time.Second,
	}
}

// Permanent wraps an error to stop the retry loop immediately.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string { return p.Err.Error() }

func (p *Permanent) Unwrap() error { return p.Err }

// Abort marks err as non-retryable.
func Abort(err error) error {
	return &Permanent{Err: err}
}

// Do runs op until it succeeds, returns a permanent error, the attempt
// budget is exhausted, or the context is cancelled. The wait between
// attempts is exponential with full jitter.
func Do(ctx context.Context, p Policy, name string, op func(ctx context.Context) error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}

	var lastErr error
	delay := p.BaseDelay

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		var perm *Permanent
		if errors.As(lastErr, &perm) {
			return perm.Err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt == p.MaxAttempts {
			break
		}

		wait := jitter(delay)
		logger.Warn("%s failed (attempt %d/%d): %v, retrying in %s", name, attempt, p.MaxAttempts, lastErr, wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}

	return lastErr
}

// jitter returns a random duration in (0, d]. Full jitter avoids
// synchronised retry bursts against a shared collaborator.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(d))) + 1
}
