package speech

import (
	"context"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/speakup-edu/speakup/internal/audio"
)

// Speaker reads text aloud. Saying something new cancels whatever is still
// queued or playing.
type Speaker struct {
	synth    Synthesizer
	player   audio.Player
	log      *logrus.Entry
	language string
	rate     float64

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSpeaker returns a Speaker, or nil when either synthesis or playback is
// unavailable.
func NewSpeaker(synth Synthesizer, player audio.Player, log *logrus.Entry) *Speaker {
	if synth == nil || player == nil {
		return nil
	}
	return &Speaker{
		synth:    synth,
		player:   player,
		log:      log,
		language: DefaultLanguage,
		rate:     DefaultRate,
	}
}

// Segments splits variant text such as "am / is" into the pieces spoken one
// after another.
func Segments(text string) []string {
	return lo.Compact(lo.Map(strings.Split(text, "/"), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}

// Say cancels current speech and speaks each segment of text in order. The
// returned channel is closed when speaking finishes or is cancelled. A nil
// Speaker does nothing.
func (s *Speaker) Say(text string) <-chan struct{} {
	done := make(chan struct{})
	if s == nil {
		close(done)
		return done
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	segments := Segments(text)
	go func() {
		defer close(done)
		defer cancel()
		for _, seg := range segments {
			pcm, err := s.synth.Synthesize(ctx, Utterance{Text: seg, Language: s.language, Rate: s.rate})
			if err != nil {
				if ctx.Err() == nil {
					s.log.WithError(err).WithField("text", seg).Warn("speak failed")
				}
				return
			}
			if err := s.player.Play(ctx, pcm.Samples, pcm.SampleRate); err != nil {
				if ctx.Err() == nil {
					s.log.WithError(err).Warn("playback failed")
				}
				return
			}
		}
	}()
	return done
}

// Cancel stops any speech in progress.
func (s *Speaker) Cancel() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
