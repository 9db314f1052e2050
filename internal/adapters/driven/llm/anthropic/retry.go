package anthropic

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// RetryPolicy is a bounded retry schedule for transient API failures.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// Backoff returns the wait before the given retry attempt
	// (attempt counts from 1 for the first retry).
	Backoff func(attempt int) time.Duration
}

// DefaultRetryPolicy waits 30s, then 60s, before the final attempt.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(attempt) * 30 * time.Second
		},
	}
}

// Do runs fn under the policy. Only rate-limit failures are retried;
// everything else is terminal on the first occurrence. The final
// rate-limit error is returned unwrapped so callers still observe
// domain.ErrRateLimited.
func (p RetryPolicy) Do(ctx context.Context, fn func(attempt int) error) error {
	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = fn(attempt)
		if err == nil || !errors.Is(err, domain.ErrRateLimited) {
			return err
		}
		if attempt == p.MaxAttempts {
			break
		}
		timer := time.NewTimer(p.Backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
