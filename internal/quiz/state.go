// Package quiz implements the word and sentence quiz session controllers.
package quiz

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// Result is the evaluation state of the current item.
type Result int

const (
	ResultIdle      Result = iota // Not yet answered
	ResultCorrect                 // Last submission matched
	ResultIncorrect               // Last submission did not match
)

func (r Result) String() string {
	switch r {
	case ResultCorrect:
		return "correct"
	case ResultIncorrect:
		return "incorrect"
	default:
		return "idle"
	}
}

// Resetter clears pronunciation practice state. Sessions call it whenever
// the current item changes or the session restarts.
type Resetter interface {
	Reset()
}

// Options configures a quiz session.
type Options struct {
	// Rand drives shuffling and direction choice. Nil means a randomly
	// seeded source.
	Rand *rand.Rand

	// Practice is reset on every item transition and restart. Optional.
	Practice Resetter
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (o Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Shuffle returns a uniformly shuffled copy of items.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// cursor is the item bookkeeping shared by both quiz kinds.
type cursor[T any] struct {
	source    func() []T
	rng       *rand.Rand
	practice  Resetter
	id        string
	items     []T
	index     int
	input     string
	result    Result
	hintShown bool
	finished  bool
}

func newCursor[T any](source func() []T, opts Options) cursor[T] {
	return cursor[T]{
		source:   source,
		rng:      opts.rng(),
		practice: opts.Practice,
	}
}

// begin reshuffles from the source and clears all state.
func (c *cursor[T]) begin() {
	c.items = Shuffle(c.rng, c.source())
	c.index = 0
	c.finished = false
	c.id = uuid.NewString()
	c.clearItem()
}

func (c *cursor[T]) clearItem() {
	c.input = ""
	c.result = ResultIdle
	c.hintShown = false
	if c.practice != nil {
		c.practice.Reset()
	}
}

// next moves to the following item, or finishes on the last one.
func (c *cursor[T]) next() {
	if c.finished {
		return
	}
	if c.index < len(c.items)-1 {
		c.index++
	} else {
		c.finished = true
	}
	c.clearItem()
}

// record stores an evaluated submission. Blank input leaves state alone.
func (c *cursor[T]) record(input string, correct func(string) bool) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	c.input = input
	if correct(input) {
		c.result = ResultCorrect
	} else {
		c.result = ResultIncorrect
	}
	c.hintShown = false
	return true
}

// SessionID identifies the current run; it changes on every restart.
func (c *cursor[T]) SessionID() string { return c.id }

// Index returns the zero-based position of the current item.
func (c *cursor[T]) Index() int { return c.index }

// Len returns the number of items in the session.
func (c *cursor[T]) Len() int { return len(c.items) }

// Progress returns the fraction of items reached, counting the current one.
func (c *cursor[T]) Progress() float64 {
	if len(c.items) == 0 {
		return 0
	}
	return float64(c.index+1) / float64(len(c.items))
}

// Result returns the evaluation state of the current item.
func (c *cursor[T]) Result() Result { return c.result }

// Input returns the learner's current answer text.
func (c *cursor[T]) Input() string { return c.input }

// SetInput records answer text as it is edited. The result is unchanged
// until the next submission.
func (c *cursor[T]) SetInput(s string) {
	if c.finished {
		return
	}
	c.input = s
}

// HintShown reports whether the hint is visible.
func (c *cursor[T]) HintShown() bool { return c.hintShown }

// Finished reports whether every item has been completed.
func (c *cursor[T]) Finished() bool { return c.finished }

// ShowHint reveals the hint. Hints are only offered after a wrong answer.
func (c *cursor[T]) ShowHint() bool {
	if c.result != ResultIncorrect {
		return false
	}
	c.hintShown = true
	return true
}

// Items returns a copy of the session's item order.
func (c *cursor[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Current returns the item being asked.
func (c *cursor[T]) Current() T {
	return c.items[c.index]
}
