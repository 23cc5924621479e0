package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds how a unit of work is retried on transient storage contention.
// The wait before retry n (0-based) is BaseDelay * 2^n, capped at MaxDelay.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	}
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Delay returns the wait after the given failed attempt.
func (p Policy) Delay(attempt int) time.Duration {
	d := p.BaseDelay << attempt
	if p.MaxDelay > 0 && (d > p.MaxDelay || d < p.BaseDelay) {
		return p.MaxDelay
	}
	return d
}

// BackOff renders the policy as a deterministic backoff schedule bound to ctx.
func (p Policy) BackOff(ctx context.Context) backoff.BackOffContext {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.BaseDelay
	eb.Multiplier = 2
	eb.RandomizationFactor = 0
	eb.MaxElapsedTime = 0
	if p.MaxDelay > 0 {
		eb.MaxInterval = p.MaxDelay
	}
	eb.Reset()

	// #nosec G115 -- attempts() is always >= 1
	retries := uint64(p.attempts() - 1)
	return backoff.WithContext(backoff.WithMaxRetries(eb, retries), ctx)
}

// Notify is called before each wait with the failed attempt number (1-based).
type Notify func(err error, attempt int, wait time.Duration)

// Do runs op until it succeeds, fails with an error isTransient rejects, or the
// policy runs out of attempts. The last error is returned unchanged.
func Do(ctx context.Context, p Policy, isTransient func(error) bool, op func(ctx context.Context, attempt int) error, notify Notify) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := op(ctx, attempt)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, wait time.Duration) {
			notify(err, attempt, wait)
		}
	}

	return backoff.RetryNotify(operation, p.BackOff(ctx), onRetry)
}
