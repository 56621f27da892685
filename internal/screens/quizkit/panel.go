package quizkit

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/speakup-edu/speakup/internal/practice"
	"github.com/speakup-edu/speakup/internal/speech"
)

// MsgPlaybackFailed is shown when a recording cannot be played back.
const MsgPlaybackFailed = "녹음을 재생할 수 없습니다."

// eventMsg carries a practice event back to the UI goroutine, tagged with
// the controller it belongs to.
type eventMsg struct {
	ctrl *practice.Controller
	ev   practice.Event
}

// closedMsg is delivered once a controller's event queue shuts down.
type closedMsg struct{}

// spinnerTickMsg animates the analysing indicator of one panel.
type spinnerTickMsg struct {
	panel *Panel
}

// playbackDoneMsg reports the end of one recording playback.
type playbackDoneMsg struct {
	ctrl *practice.Controller
	gen  int
	err  error
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Panel drives one practice.Controller from a screen: it feeds controller
// events back in, animates the busy states, plays recordings, and speaks
// reference text.
type Panel struct {
	ctrl    *practice.Controller
	speaker *speech.Speaker
	log     *logrus.Entry

	frame   int
	ticking bool

	playing     bool
	playGen     int
	stopPlay    context.CancelFunc
	playbackErr string
}

// NewPanel creates a panel with its own controller.
func NewPanel(d Deps) *Panel {
	opts := d.Practice
	if opts.Logger == nil {
		opts.Logger = d.log()
	}
	return &Panel{
		ctrl:    practice.New(opts),
		speaker: d.Speaker,
		log:     d.log().WithField("component", "panel"),
	}
}

// Controller exposes the underlying state machine.
func (p *Panel) Controller() *practice.Controller { return p.ctrl }

// Init starts listening for controller events.
func (p *Panel) Init() tea.Cmd {
	return p.wait()
}

func (p *Panel) wait() tea.Cmd {
	ctrl := p.ctrl
	return func() tea.Msg {
		select {
		case ev := <-ctrl.Events():
			return eventMsg{ctrl: ctrl, ev: ev}
		case <-ctrl.Done():
			return closedMsg{}
		}
	}
}

// ReleaseOrphaned frees the resources of a practice event whose controller
// was closed after the event left its queue, for instance when the screen
// that owned it has been popped. It reports whether msg was such an event.
func ReleaseOrphaned(msg tea.Msg) bool {
	em, ok := msg.(eventMsg)
	if !ok {
		return false
	}
	select {
	case <-em.ctrl.Done():
		em.ctrl.Discard(em.ev)
		return true
	default:
		return false
	}
}

// Update consumes panel messages. It reports whether msg belonged to the
// panel.
func (p *Panel) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		// Events of another controller are stale there and get released.
		msg.ctrl.Handle(msg.ev)
		if msg.ctrl != p.ctrl {
			return true, nil
		}
		return true, tea.Batch(p.wait(), p.startSpinner())

	case closedMsg:
		return true, nil

	case spinnerTickMsg:
		if msg.panel != p {
			return true, nil
		}
		if !p.Busy() {
			p.ticking = false
			return true, nil
		}
		p.frame = (p.frame + 1) % len(spinnerFrames)
		return true, p.spinnerTick()

	case playbackDoneMsg:
		// A reset or newer playback since Play makes the result stale.
		if msg.ctrl != p.ctrl || msg.gen != p.playGen {
			return true, nil
		}
		p.playing = false
		p.stopPlay = nil
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			p.log.WithError(msg.err).Warn("playback failed")
			p.playbackErr = MsgPlaybackFailed
		}
		return true, nil
	}
	return false, nil
}

// Toggle starts practice for reference, or stops the running attempt. It
// does nothing while a stopped attempt is being analysed.
func (p *Panel) Toggle(reference string) tea.Cmd {
	switch p.ctrl.State() {
	case practice.StateRecording:
		p.ctrl.StopPractice()
		return p.startSpinner()
	case practice.StateFinalizing, practice.StateAcquiring:
		return nil
	}
	p.stopPlayback()
	p.playbackErr = ""
	if err := p.ctrl.StartPractice(reference); err != nil {
		return nil
	}
	return p.startSpinner()
}

// Play plays the last recording in the background.
func (p *Panel) Play() tea.Cmd {
	if p.playing {
		return nil
	}
	play, err := p.ctrl.Playback()
	if err != nil {
		if errors.Is(err, practice.ErrPlaybackUnsupported) {
			p.playbackErr = MsgPlaybackFailed
		}
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.playGen++
	p.playing = true
	p.stopPlay = cancel
	p.playbackErr = ""
	ctrl, gen := p.ctrl, p.playGen
	return func() tea.Msg {
		return playbackDoneMsg{ctrl: ctrl, gen: gen, err: play(ctx)}
	}
}

// Speak reads text aloud; "/"-separated variants are spoken one by one.
func (p *Panel) Speak(text string) {
	p.speaker.Say(text)
}

// CanSpeak reports whether text-to-speech is available.
func (p *Panel) CanSpeak() bool { return p.speaker != nil }

// Busy reports whether the microphone is opening or a result is pending.
func (p *Panel) Busy() bool {
	s := p.ctrl.State()
	return s == practice.StateAcquiring || s == practice.StateFinalizing
}

// Playing reports whether a recording is being played back.
func (p *Panel) Playing() bool { return p.playing }

// Reset discards the attempt and stops playback and speech. Quiz sessions
// call it on every item change.
func (p *Panel) Reset() {
	p.stopPlayback()
	p.playbackErr = ""
	p.speaker.Cancel()
	p.ctrl.Reset()
}

// Close releases the controller for good.
func (p *Panel) Close() {
	p.stopPlayback()
	p.speaker.Cancel()
	p.ctrl.Close()
}

func (p *Panel) stopPlayback() {
	if p.stopPlay != nil {
		p.stopPlay()
		p.stopPlay = nil
	}
	p.playGen++
	p.playing = false
}

func (p *Panel) startSpinner() tea.Cmd {
	if p.ticking || !p.Busy() {
		return nil
	}
	p.ticking = true
	return p.spinnerTick()
}

func (p *Panel) spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{panel: p}
	})
}
