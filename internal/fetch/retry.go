package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

// Policy bounds how often and how slowly an operation is retried.
type Policy struct {
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Backoff returns the wait before retry number attempt (1-based).
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 || p.InitialBackoff <= 0 {
		return 0
	}
	shift := min(attempt-1, 30)
	backoff := p.InitialBackoff * time.Duration(1<<uint(shift))
	if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
		backoff = p.MaxBackoff
	}
	return backoff
}

// RetryFunc is notified before each retry sleep.
type RetryFunc func(attempt int, backoff time.Duration, err error)

// Retry runs op until it succeeds, fails with a non-retriable error, or the
// policy's attempts are used up. Attempts below one still run op once.
func Retry(ctx context.Context, policy Policy, op func(context.Context) error, onRetry RetryFunc) error {
	if op == nil {
		return errors.New("retry: operation is nil")
	}
	attempts := max(policy.Attempts, 1)
	var err error
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err != nil {
				return err
			}
			return ctxErr
		}
		err = op(ctx)
		if err == nil {
			return nil
		}
		if attempt >= attempts || !IsRetriable(err) {
			return err
		}
		backoff := policy.Backoff(attempt)
		if onRetry != nil {
			onRetry(attempt, backoff, err)
		}
		if sleepErr := SleepWithContext(ctx, backoff); sleepErr != nil {
			return err
		}
	}
}

// SleepWithContext blocks for the given duration, returning early if the
// context is cancelled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsRetriable reports whether err represents a transient condition that
// warrants an automatic retry (rate limits, server errors, timeouts).
func IsRetriable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusRequestTimeout:
			return true
		}
		return statusErr.StatusCode >= 500
	}
	if errors.Is(err, ErrTooLarge) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	message := strings.ToLower(err.Error())
	for _, token := range []string{
		"connection reset",
		"connection refused",
		"temporary failure",
		"unexpected eof",
	} {
		if strings.Contains(message, token) {
			return true
		}
	}
	return false
}
