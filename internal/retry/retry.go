// Package retry runs an operation with a bounded number of attempts and a linear backoff
// between them: the delay before attempt k+1 is BaseDelay*k.
package retry

import (
	"context"
	"errors"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

const (
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the configured default. A zero Options does not wait.
	DefaultBaseDelay = time.Second
)

// Options configures a single Do call. The zero value makes DefaultMaxAttempts
// attempts back to back.
type Options struct {
	// MaxAttempts is the total number of attempts. Values below 1 mean DefaultMaxAttempts.
	MaxAttempts int
	// BaseDelay is multiplied by the attempt number to get the next delay.
	// Zero or negative retries immediately.
	BaseDelay time.Duration
	// OnRetry is called before each backoff sleep. It never affects control flow,
	// a panic inside it is recovered.
	OnRetry func(attempt int, err error)
	// ShouldRetry returning false stops the loop and returns the error as is.
	// Nil retries every error.
	ShouldRetry func(err error) bool
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts < 1 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.BaseDelay < 0 {
		o.BaseDelay = 0
	}
	return o
}

// Do calls op until it succeeds, ShouldRetry rejects its error or MaxAttempts is reached.
// The returned error is always the one returned by the last attempt. If ctx is done while
// waiting between attempts, that error is joined with ctx.Err().
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts Options) (T, error) {
	opts = opts.withDefaults()

	var (
		result  T
		attempt int
		lastErr error
	)

	backoff := goretry.WithMaxRetries(uint64(opts.MaxAttempts-1), linearBackoff(opts.BaseDelay))

	err := goretry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		v, err := op(ctx)
		if err == nil {
			result = v
			return nil
		}
		lastErr = err

		if opts.ShouldRetry != nil && !opts.ShouldRetry(err) {
			return err
		}
		if attempt >= opts.MaxAttempts {
			return err
		}

		notify(opts.OnRetry, attempt, err)
		return goretry.RetryableError(err)
	})
	if err != nil {
		var zero T
		if lastErr != nil && !errors.Is(err, lastErr) {
			return zero, errors.Join(lastErr, err)
		}
		return zero, err
	}

	return result, nil
}

// Run is Do for operations without a result.
func Run(ctx context.Context, op func(ctx context.Context) error, opts Options) error {
	_, err := Do(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, opts)
	return err
}

// linearBackoff yields base, 2*base, 3*base...
func linearBackoff(base time.Duration) goretry.Backoff {
	var n int64
	return goretry.BackoffFunc(func() (time.Duration, bool) {
		n++
		return base * time.Duration(n), false
	})
}

func notify(fn func(int, error), attempt int, err error) {
	if fn == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(attempt, err)
}
