package speech

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoSpeech is returned when a recording contains no detectable speech.
var ErrNoSpeech = errors.New("no speech detected")

// Recognition error codes, reported to the learner after "음성 인식 오류: ".
const (
	CodeNetwork      = "network"
	CodeRateLimited  = "rate-limited"
	CodeAudioCapture = "audio-capture"
	CodeTimeout      = "timeout"
	CodeAborted      = "aborted"
	CodeUnknown      = "unknown"
)

// RecognitionError is a recognition failure other than ErrNoSpeech.
type RecognitionError struct {
	Code string
	Err  error
}

func (e *RecognitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recognition failed (%s): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("recognition failed (%s)", e.Code)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech provider unavailable: %v", e.Err)
	}
	return "speech provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// Classify wraps err as a RecognitionError with a code. ErrNoSpeech, nil and
// errors that already carry a code are returned unchanged.
func Classify(err error) error {
	if err == nil || errors.Is(err, ErrNoSpeech) {
		return err
	}
	var re *RecognitionError
	if errors.As(err, &re) {
		return err
	}

	code := CodeUnknown
	var rl *ErrRateLimit
	var unavail *ErrProviderUnavailable
	switch {
	case errors.Is(err, context.Canceled):
		code = CodeAborted
	case errors.Is(err, context.DeadlineExceeded):
		code = CodeTimeout
	case errors.As(err, &rl):
		code = CodeRateLimited
	case errors.As(err, &unavail):
		code = CodeNetwork
	}
	return &RecognitionError{Code: code, Err: err}
}
