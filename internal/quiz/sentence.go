package quiz

import (
	"github.com/speakup-edu/speakup/internal/content"
	"github.com/speakup-edu/speakup/internal/textnorm"
)

// SentenceSession runs the sentence unscramble quiz.
type SentenceSession struct {
	cursor[content.SentenceQuestion]
}

// NewSentenceSession creates and starts a sentence quiz.
func NewSentenceSession(store *content.Store, opts Options) *SentenceSession {
	s := &SentenceSession{
		cursor: newCursor(store.Sentences, opts),
	}
	s.Start()
	return s
}

// Start shuffles the questions and resets every piece of session state.
func (s *SentenceSession) Start() { s.begin() }

// Restart is Start under the name the finished screen uses.
func (s *SentenceSession) Restart() { s.begin() }

// Advance moves to the next question or finishes after the last one.
func (s *SentenceSession) Advance() { s.next() }

// Answer returns the canonical sentence for the current question.
func (s *SentenceSession) Answer() string { return s.Current().Answer }

// SubmitAnswer compares normalized input with the normalized answer. Word
// order must match exactly. Blank input is ignored and reports false.
func (s *SentenceSession) SubmitAnswer(input string) bool {
	return s.record(input, func(in string) bool {
		return textnorm.Normalize(in) == textnorm.Normalize(s.Answer())
	})
}

// Hint reveals the first word of the answer.
func (s *SentenceSession) Hint() string {
	return `Sentence starts with "` + s.Current().FirstWord() + `".`
}
