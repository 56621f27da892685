package speech

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// LoggingRecognizer is a decorator that logs every recognition request.
type LoggingRecognizer struct {
	inner Recognizer
	log   *logrus.Entry
}

// WithLogging wraps a Recognizer with request logging.
func WithLogging(r Recognizer, log *logrus.Entry) Recognizer {
	return &LoggingRecognizer{inner: r, log: log}
}

func (l *LoggingRecognizer) Transcribe(ctx context.Context, wav []byte, language string) (string, error) {
	start := time.Now()
	text, err := l.inner.Transcribe(ctx, wav, language)

	entry := l.log.WithFields(logrus.Fields{
		"provider":   l.inner.Name(),
		"language":   language,
		"bytes":      len(wav),
		"latency_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("transcription failed")
	} else {
		entry.WithField("transcript", text).Debug("transcription complete")
	}
	return text, err
}

func (l *LoggingRecognizer) Name() string { return l.inner.Name() }

// LoggingSynthesizer is the Synthesizer counterpart of LoggingRecognizer.
type LoggingSynthesizer struct {
	inner Synthesizer
	log   *logrus.Entry
}

// WithSynthesisLogging wraps a Synthesizer with request logging.
func WithSynthesisLogging(s Synthesizer, log *logrus.Entry) Synthesizer {
	return &LoggingSynthesizer{inner: s, log: log}
}

func (l *LoggingSynthesizer) Synthesize(ctx context.Context, u Utterance) (PCM, error) {
	start := time.Now()
	pcm, err := l.inner.Synthesize(ctx, u)

	entry := l.log.WithFields(logrus.Fields{
		"provider":   l.inner.Name(),
		"text":       u.Text,
		"latency_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("speech synthesis failed")
	} else {
		entry.WithField("samples", len(pcm.Samples)).Debug("speech synthesis complete")
	}
	return pcm, err
}

func (l *LoggingSynthesizer) Name() string { return l.inner.Name() }
