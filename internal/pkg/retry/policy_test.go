//go:build unit

package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomledger/internal/pkg/retry"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("serialization failure")

func isTransient(err error) bool { return errors.Is(err, errTransient) }

func fastPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond}
}

func TestPolicy_Delay(t *testing.T) {
	p := retry.Policy{MaxAttempts: 3, BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, p.Delay(0))
	assert.Equal(t, 200*time.Millisecond, p.Delay(1))
	assert.Equal(t, 300*time.Millisecond, p.Delay(2), "capped at MaxDelay")
}

func TestPolicy_BackOffMatchesDelay(t *testing.T) {
	p := retry.DefaultPolicy()
	b := p.BackOff(context.Background())

	assert.Equal(t, p.Delay(0), b.NextBackOff())
	assert.Equal(t, p.Delay(1), b.NextBackOff())
	assert.Equal(t, backoff.Stop, b.NextBackOff(), "three attempts means two waits")
}

func TestDo(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		var waits []int
		err := retry.Do(context.Background(), fastPolicy(), isTransient,
			func(_ context.Context, _ int) error {
				calls++
				if calls < 3 {
					return errTransient
				}
				return nil
			},
			func(_ error, attempt int, _ time.Duration) { waits = append(waits, attempt) },
		)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{1, 2}, waits)
	})

	t.Run("stops after max attempts with last error", func(t *testing.T) {
		calls := 0
		err := retry.Do(context.Background(), fastPolicy(), isTransient,
			func(_ context.Context, _ int) error {
				calls++
				return errTransient
			}, nil)
		require.ErrorIs(t, err, errTransient)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		permanent := errors.New("room booked")
		calls := 0
		err := retry.Do(context.Background(), fastPolicy(), isTransient,
			func(_ context.Context, _ int) error {
				calls++
				return permanent
			}, nil)
		require.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero attempts still runs once", func(t *testing.T) {
		calls := 0
		err := retry.Do(context.Background(), retry.Policy{}, isTransient,
			func(_ context.Context, _ int) error {
				calls++
				return errTransient
			}, nil)
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
