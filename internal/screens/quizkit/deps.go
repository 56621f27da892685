// Package quizkit holds what the word and sentence quiz screens share: their
// dependencies, the pronunciation practice panel, and common rendering.
package quizkit

import (
	"github.com/sirupsen/logrus"

	"github.com/speakup-edu/speakup/internal/content"
	"github.com/speakup-edu/speakup/internal/logging"
	"github.com/speakup-edu/speakup/internal/practice"
	"github.com/speakup-edu/speakup/internal/quiz"
	"github.com/speakup-edu/speakup/internal/speech"
)

// Deps is everything a quiz screen needs from the application.
type Deps struct {
	Store    *content.Store
	Practice practice.Options
	Speaker  *speech.Speaker

	// Seed fixes the question order when non-zero.
	Seed uint64

	Logger *logrus.Entry
}

// QuizOptions returns session options that reset p on item changes.
func (d Deps) QuizOptions(p quiz.Resetter) quiz.Options {
	opts := quiz.Options{Practice: p}
	if d.Seed != 0 {
		opts.Rand = quiz.NewRand(d.Seed)
	}
	return opts
}

// PracticeReady reports whether pronunciation practice can run.
func (d Deps) PracticeReady() bool {
	return d.Practice.Supported()
}

func (d Deps) log() *logrus.Entry {
	if d.Logger != nil {
		return d.Logger
	}
	if d.Practice.Logger != nil {
		return d.Practice.Logger
	}
	return logging.Discard()
}
