package speech

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryRecognizer is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryRecognizer struct {
	inner  Recognizer
	config RetryConfig
}

// WithRetry wraps a Recognizer with retry logic.
func WithRetry(r Recognizer, cfg RetryConfig) Recognizer {
	return &RetryRecognizer{inner: r, config: cfg}
}

func (r *RetryRecognizer) Transcribe(ctx context.Context, wav []byte, language string) (string, error) {
	return retry(ctx, r.config, func() (string, error) {
		return r.inner.Transcribe(ctx, wav, language)
	})
}

func (r *RetryRecognizer) Name() string { return r.inner.Name() }

// RetrySynthesizer is the Synthesizer counterpart of RetryRecognizer.
type RetrySynthesizer struct {
	inner  Synthesizer
	config RetryConfig
}

// WithSynthesisRetry wraps a Synthesizer with retry logic.
func WithSynthesisRetry(s Synthesizer, cfg RetryConfig) Synthesizer {
	return &RetrySynthesizer{inner: s, config: cfg}
}

func (r *RetrySynthesizer) Synthesize(ctx context.Context, u Utterance) (PCM, error) {
	return retry(ctx, r.config, func() (PCM, error) {
		return r.inner.Synthesize(ctx, u)
	})
}

func (r *RetrySynthesizer) Name() string { return r.inner.Name() }

func retry[T any](ctx context.Context, cfg RetryConfig, call func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := max(cfg.MaxAttempts, 1)
	for attempt := range attempts {
		v, err := call()
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return zero, err
		}

		// Last attempt: don't sleep, just return the error.
		if attempt == attempts-1 {
			break
		}

		wait := backoff(cfg, attempt, err)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
	}

	return zero, lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Silence stays silent on a second try.
	if errors.Is(err, ErrNoSpeech) {
		return false
	}

	// Other errors (rate limits, outages, network) are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func backoff(cfg RetryConfig, attempt int, err error) time.Duration {
	// Respect RetryAfter for rate limits.
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
	if wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
