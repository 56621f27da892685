package quiz

import (
	"strings"

	"github.com/samber/lo"

	"github.com/speakup-edu/speakup/internal/content"
	"github.com/speakup-edu/speakup/internal/textnorm"
)

// Direction selects which verb form the word quiz asks for.
type Direction int

const (
	PresentToPast Direction = iota // Show present, ask for past
	PastToPresent                  // Show past, ask for present
)

// WordSession runs the present/past verb form quiz.
type WordSession struct {
	cursor[content.VocabWord]
	direction Direction
}

// NewWordSession creates and starts a word quiz over the store's vocabulary.
func NewWordSession(store *content.Store, opts Options) *WordSession {
	s := &WordSession{
		cursor: newCursor(store.Vocabulary, opts),
	}
	s.Start()
	return s
}

// Start shuffles the vocabulary and resets every piece of session state.
func (s *WordSession) Start() {
	s.begin()
	s.pickDirection()
}

// Restart is Start under the name the finished screen uses.
func (s *WordSession) Restart() {
	s.Start()
}

// Advance moves to the next word, choosing a new direction, or finishes
// the session after the last word.
func (s *WordSession) Advance() {
	s.next()
	s.pickDirection()
}

func (s *WordSession) pickDirection() {
	if s.rng.IntN(2) == 0 {
		s.direction = PresentToPast
	} else {
		s.direction = PastToPresent
	}
}

// Direction returns which form the current word asks for.
func (s *WordSession) Direction() Direction { return s.direction }

// Question returns the form shown to the learner.
func (s *WordSession) Question() string {
	w := s.Current()
	if s.direction == PresentToPast {
		return w.Present
	}
	return w.Past
}

// Answer returns the form the learner must type. It may hold variants.
func (s *WordSession) Answer() string {
	w := s.Current()
	if s.direction == PresentToPast {
		return w.Past
	}
	return w.Present
}

// SubmitAnswer evaluates input against every variant of the expected form.
// Blank input is ignored and reports false.
func (s *WordSession) SubmitAnswer(input string) bool {
	return s.record(input, func(in string) bool {
		return MatchesVariant(s.Answer(), in)
	})
}

// Hint masks the expected form. A variant target masks its first variant
// only ("am / is" gives "a _"), not the whole "/"-separated string.
func (s *WordSession) Hint() string {
	variants := content.Variants(s.Answer())
	if len(variants) == 0 {
		return ""
	}
	return MaskWord(variants[0])
}

// MatchesVariant reports whether input equals one of the "/"-separated
// variants of answer after normalization.
func MatchesVariant(answer, input string) bool {
	got := textnorm.Normalize(input)
	return lo.ContainsBy(content.Variants(answer), func(v string) bool {
		return textnorm.Normalize(v) == got
	})
}

// MaskWord keeps the first and last letters and replaces the rest with
// underscores: "painted" becomes "p _ _ _ _ _ d". Words of two letters or
// fewer keep only the first: "am" becomes "a _".
func MaskWord(word string) string {
	r := []rune(word)
	switch {
	case len(r) == 0:
		return ""
	case len(r) <= 2:
		return string(r[0]) + " _"
	}
	return string(r[0]) + " " + strings.Repeat("_ ", len(r)-2) + string(r[len(r)-1])
}
