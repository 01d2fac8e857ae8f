package predict

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/abhisek/kidscreen/internal/questionnaire"
)

// RetryConfig configures retries of transient failures. MaxAttempts of 1
// or less means a single attempt.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns backoff settings for n attempts.
func DefaultRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// RetryPredictor is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryPredictor struct {
	inner  Predictor
	config RetryConfig
}

// WithRetry wraps a Predictor with retry logic.
func WithRetry(p Predictor, cfg RetryConfig) Predictor {
	return &RetryPredictor{inner: p, config: cfg}
}

func (r *RetryPredictor) Predict(ctx context.Context, answers questionnaire.AnswerSet) (string, error) {
	attempts := max(r.config.MaxAttempts, 1)

	var lastErr error
	for attempt := range attempts {
		label, err := r.inner.Predict(ctx, answers)
		if err == nil {
			return label, nil
		}
		lastErr = err

		if !retryable(err) || attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}
	return "", lastErr
}

// retryable reports whether err is worth another attempt: the service was
// unreachable, overloaded or failing on its side. A malformed body or a
// client error will not change on retry.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var status *ErrStatus
	if errors.As(err, &status) {
		return status.StatusCode == http.StatusTooManyRequests || status.StatusCode >= 500
	}

	var unavail *ErrUnavailable
	return errors.As(err, &unavail)
}

// backoff computes the wait duration for the given attempt.
func (r *RetryPredictor) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
