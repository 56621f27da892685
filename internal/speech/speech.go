// Package speech provides speech recognition and synthesis services.
// Consumers depend on the Recognizer and Synthesizer interfaces; providers
// for OpenAI, Gemini and a deterministic mock live alongside them.
package speech

import (
	"context"
	"strings"
)

// DefaultLanguage is the BCP 47 tag used for recognition and synthesis.
const DefaultLanguage = "en-US"

// DefaultRate is the synthesis speed; slightly slow for young learners.
const DefaultRate = 0.9

// Recognizer turns a mono 16-bit PCM WAV recording into a final transcript.
// Recognition is single-shot: one utterance in, one final result out.
type Recognizer interface {
	Transcribe(ctx context.Context, wav []byte, language string) (string, error)

	// Name identifies the provider and model in logs.
	Name() string
}

// Synthesizer renders text as speech.
type Synthesizer interface {
	Synthesize(ctx context.Context, u Utterance) (PCM, error)
	Name() string
}

// Utterance is one piece of text to speak.
type Utterance struct {
	Text     string
	Language string
	Rate     float64
}

// PCM is mono 16-bit audio.
type PCM struct {
	Samples    []int16
	SampleRate int
}

// isoLanguage reduces a BCP 47 tag such as "en-US" to its ISO 639-1 part.
func isoLanguage(tag string) string {
	lang, _, _ := strings.Cut(tag, "-")
	if lang == "" {
		return "en"
	}
	return strings.ToLower(lang)
}
