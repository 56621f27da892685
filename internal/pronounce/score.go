// Package pronounce scores a speech transcript against the sentence the
// learner was asked to read.
package pronounce

import (
	"math"

	"github.com/samber/lo"

	"github.com/speakup-edu/speakup/internal/textnorm"
)

// WordMatch is one transcript word and whether it matched the reference
// word at the same position.
type WordMatch struct {
	Word  string
	Match bool
}

// Result is the outcome of scoring a single transcript.
type Result struct {
	// Score is round(100 * matches / reference words).
	Score int

	// Words annotates every transcript word in order. Empty when
	// NothingDetected is set.
	Words []WordMatch

	// Transcript is the raw recognizer output.
	Transcript string

	// NothingDetected is set when the transcript normalizes to nothing.
	NothingDetected bool
}

// Matched returns how many transcript words matched.
func (r Result) Matched() int {
	return lo.CountBy(r.Words, func(w WordMatch) bool { return w.Match })
}

// Score compares transcript to reference word by word, by position. A
// skipped or inserted word shifts every later word out of alignment.
func Score(reference, transcript string) Result {
	res := Result{Transcript: transcript}

	heard := textnorm.Words(transcript)
	if len(heard) == 0 {
		res.NothingDetected = true
		return res
	}
	want := textnorm.Words(reference)

	res.Words = lo.Map(heard, func(w string, i int) WordMatch {
		return WordMatch{Word: w, Match: i < len(want) && w == want[i]}
	})

	if len(want) > 0 {
		res.Score = int(math.Round(100 * float64(res.Matched()) / float64(len(want))))
	}
	return res
}
