package speech

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Services is the set of speech capabilities available at runtime. A nil
// field means the capability is missing.
type Services struct {
	Recognizer  Recognizer
	Synthesizer Synthesizer
}

// New builds the configured services, wrapped with retry and logging
// middleware. OpenAI provides both recognition and synthesis; Gemini
// provides recognition and borrows OpenAI synthesis when an OpenAI key is
// configured.
func New(ctx context.Context, cfg Config, log *logrus.Entry) (Services, error) {
	if err := cfg.Validate(); err != nil {
		return Services{}, err
	}

	var svc Services
	switch cfg.Provider {
	case ProviderOpenAI:
		p, err := NewOpenAIProvider(cfg.OpenAI)
		if err != nil {
			return Services{}, fmt.Errorf("initializing openai provider: %w", err)
		}
		svc.Recognizer, svc.Synthesizer = p, p
	case ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.Gemini)
		if err != nil {
			return Services{}, fmt.Errorf("initializing gemini provider: %w", err)
		}
		svc.Recognizer = p
		if cfg.OpenAI.APIKey != "" {
			tts, err := NewOpenAIProvider(cfg.OpenAI)
			if err != nil {
				return Services{}, fmt.Errorf("initializing openai speech: %w", err)
			}
			svc.Synthesizer = tts
		}
	case ProviderMock:
		return Services{
			Recognizer:  &MockRecognizer{Fallback: MockResult{Transcript: cfg.Mock.Transcript}},
			Synthesizer: &MockSynthesizer{},
		}, nil
	case ProviderNone:
		return Services{}, nil
	}

	// Wrap with middleware: caller → retry → logging → base
	log = log.WithField("component", "speech")
	if svc.Recognizer != nil {
		svc.Recognizer = WithRetry(WithLogging(svc.Recognizer, log), cfg.Retry)
	}
	if svc.Synthesizer != nil {
		svc.Synthesizer = WithSynthesisRetry(WithSynthesisLogging(svc.Synthesizer, log), cfg.Retry)
	}
	return svc, nil
}
