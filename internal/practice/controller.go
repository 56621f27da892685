// Package practice runs pronunciation practice attempts: it opens the
// microphone, records the attempt for playback, recognizes what was said and
// scores it against the reference text.
//
// The Controller is owned by a single goroutine (the UI loop). Background
// work only posts Events; the owner feeds them back through Handle. Every
// attempt has a sequence number and events from superseded attempts are
// dropped after their resources are released.
package practice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/speakup-edu/speakup/internal/audio"
	"github.com/speakup-edu/speakup/internal/pronounce"
	"github.com/speakup-edu/speakup/internal/speech"
)

// postRetry is how often a background result retries a full event queue.
const postRetry = 10 * time.Millisecond

// State is the phase of the current attempt.
type State int

const (
	StateIdle       State = iota // No attempt running
	StateAcquiring               // Waiting for the microphone
	StateRecording               // Capturing and listening
	StateFinalizing              // Stopped by the learner, awaiting the final result
)

func (s State) String() string {
	switch s {
	case StateAcquiring:
		return "acquiring"
	case StateRecording:
		return "recording"
	case StateFinalizing:
		return "finalizing"
	default:
		return "idle"
	}
}

// Options configures a Controller. Source and Recognizer may be nil, which
// makes StartPractice report the missing capability.
type Options struct {
	Source     audio.Source
	Recognizer speech.Recognizer
	Player     audio.Player
	Logger     *logrus.Entry
	Listen     speech.ListenConfig

	// ClipDir holds recordings; "" means the system temp directory.
	ClipDir string
}

// Supported reports whether both recognition and recording are available.
func (o Options) Supported() bool {
	return o.Recognizer != nil && o.Source != nil
}

// Controller is the pronunciation practice state machine.
type Controller struct {
	opts Options
	log  *logrus.Entry

	events    chan Event
	closed    chan struct{}
	closeOnce sync.Once

	// mu orders sends on events against shut so Close can drain the queue.
	mu   sync.Mutex
	shut bool

	attempt   int
	attemptID string
	state     State
	reference string
	ctx       context.Context
	cancel    context.CancelFunc
	recorder  *audio.Recorder
	listener  *speech.Listener
	clip      *audio.Clip
	result    *pronounce.Result
	err       error
}

// New creates an idle Controller.
func New(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		log = logrus.NewEntry(l)
	}
	if opts.Listen == (speech.ListenConfig{}) {
		opts.Listen = speech.DefaultListenConfig()
	}
	return &Controller{
		opts:   opts,
		log:    log.WithField("component", "practice"),
		events: make(chan Event, 16),
		closed: make(chan struct{}),
	}
}

// Events delivers background results to the owner, which must pass each one
// to Handle.
func (c *Controller) Events() <-chan Event { return c.events }

// Done is closed by Close.
func (c *Controller) Done() <-chan struct{} { return c.closed }


// CanPlay reports whether a recording is available and can be played.
func (c *Controller) CanPlay() bool {
	return c.clip != nil && c.opts.Player != nil
}

func (c *Controller) State() State { return c.state }

// Practicing reports whether the learner is being recorded.
func (c *Controller) Practicing() bool { return c.state == StateRecording }

// Processing reports whether a stopped attempt awaits its result.
func (c *Controller) Processing() bool { return c.state == StateFinalizing }

// Result returns the score of the last attempt, or nil.
func (c *Controller) Result() *pronounce.Result { return c.result }

// Err returns the error of the last attempt, or nil.
func (c *Controller) Err() error { return c.err }

// ErrorMessage returns the learner-facing text for Err.
func (c *Controller) ErrorMessage() string { return Message(c.err) }

// Clip returns the recording of the last attempt, or nil.
func (c *Controller) Clip() *audio.Clip { return c.clip }

// Reference returns the text the current attempt is scored against.
func (c *Controller) Reference() string { return c.reference }

// StartPractice tears down any previous attempt and begins a new one for
// reference. Missing capabilities are reported both as the returned error
// and through Err. Microphone acquisition completes asynchronously.
func (c *Controller) StartPractice(reference string) error {
	c.Reset()
	c.reference = reference

	if c.opts.Recognizer == nil {
		c.err = ErrRecognitionUnsupported
		return c.err
	}
	if c.opts.Source == nil {
		c.err = ErrRecordingUnsupported
		return c.err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.ctx, c.cancel = ctx, cancel
	c.attemptID = uuid.NewString()
	c.state = StateAcquiring
	c.log.WithFields(logrus.Fields{"attempt": c.attemptID, "reference": reference}).Debug("practice started")

	attempt := c.attempt
	src := c.opts.Source
	go func() {
		stream, err := src.Open(ctx)
		c.post(Event{attempt: attempt, kind: kindAcquired, stream: stream, err: err})
	}()
	return nil
}

// StopPractice ends capture. The recording is finalized and recognition
// completes on what was heard; the result arrives as events.
func (c *Controller) StopPractice() {
	if c.state != StateRecording {
		return
	}
	c.stopRecorder()
	c.listener.Stop()
	c.state = StateFinalizing
}

// Reset tears the attempt down: pending events become stale, recognition is
// cancelled without a result, recording is aborted, the microphone is
// released and the clip is revoked. Safe to call at any time.
func (c *Controller) Reset() {
	c.attempt++
	if c.cancel != nil {
		c.cancel()
		c.ctx, c.cancel = nil, nil
	}
	if c.listener != nil {
		c.listener.Abort()
		c.listener = nil
	}
	if c.recorder != nil {
		c.recorder.Abort()
		c.recorder = nil
	}
	if c.clip != nil {
		c.revoke(c.clip)
		c.clip = nil
	}
	c.state = StateIdle
	c.attemptID = ""
	c.reference = ""
	c.result = nil
	c.err = nil
}

// Close resets the controller and stops event delivery. Queued events and
// events still in flight release their resources.
func (c *Controller) Close() {
	c.Reset()
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.shut = true
		close(c.closed)
		c.mu.Unlock()

		for {
			select {
			case ev := <-c.events:
				c.release(ev)
			default:
				return
			}
		}
	})
}

// Discard releases the resources of an event that will never be handled.
// It may be called from any goroutine.
func (c *Controller) Discard(ev Event) {
	c.release(ev)
}

// PlayRecording plays the last recording through the configured player.
func (c *Controller) PlayRecording(ctx context.Context) error {
	play, err := c.Playback()
	if err != nil {
		return err
	}
	return play(ctx)
}

// Playback captures the last recording and returns a function that plays
// it. The function may run on any goroutine.
func (c *Controller) Playback() (func(context.Context) error, error) {
	if c.opts.Player == nil {
		return nil, ErrPlaybackUnsupported
	}
	if c.clip == nil {
		return nil, ErrNoRecording
	}
	clip, player := c.clip, c.opts.Player
	return func(ctx context.Context) error {
		samples, rate, err := clip.Samples()
		if err != nil {
			return fmt.Errorf("load recording: %w", err)
		}
		return player.Play(ctx, samples, rate)
	}, nil
}

// Handle applies an event. It reports whether visible state changed; stale
// events report false.
func (c *Controller) Handle(ev Event) bool {
	if ev.attempt != c.attempt {
		c.release(ev)
		return false
	}

	switch ev.kind {
	case kindAcquired:
		c.acquired(ev)
	case kindRecognized:
		r := pronounce.Score(c.reference, ev.transcript)
		c.result = &r
		c.log.WithFields(logrus.Fields{
			"attempt":    c.attemptID,
			"transcript": ev.transcript,
			"score":      r.Score,
		}).Info("pronunciation scored")
	case kindFailed:
		c.err = ev.err
		c.log.WithField("attempt", c.attemptID).WithError(ev.err).Info("recognition failed")
	case kindEnded:
		c.stopRecorder()
		if c.cancel != nil {
			c.cancel()
			c.ctx, c.cancel = nil, nil
		}
		c.listener = nil
		c.state = StateIdle
	case kindRecorded:
		if ev.err != nil {
			c.log.WithField("attempt", c.attemptID).WithError(ev.err).Warn("saving recording failed")
			break
		}
		if ev.clip == nil {
			return false
		}
		if c.clip != nil {
			c.revoke(c.clip)
		}
		c.clip = ev.clip
	}
	return true
}

func (c *Controller) acquired(ev Event) {
	if ev.err != nil {
		c.log.WithField("attempt", c.attemptID).WithError(ev.err).Error("mic access error")
		c.err = fmt.Errorf("%w: %w", ErrMicrophone, ev.err)
		c.state = StateIdle
		return
	}

	branches := audio.Tee(ev.stream, 2)
	c.recorder = audio.Record(branches[0], c.opts.ClipDir)

	c.listener = speech.Listen(c.ctx, branches[1], c.opts.Recognizer, c.opts.Listen)
	c.state = StateRecording

	go c.await(ev.attempt, c.listener)
}

// await turns the listener outcome into result/error events followed by an
// end event. An aborted listener posts nothing.
func (c *Controller) await(attempt int, l *speech.Listener) {
	text, err := l.Wait()
	switch {
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		c.post(Event{attempt: attempt, kind: kindFailed, err: err})
	default:
		c.post(Event{attempt: attempt, kind: kindRecognized, transcript: text})
	}
	c.post(Event{attempt: attempt, kind: kindEnded})
}

// stopRecorder finalizes the recording in the background if it is still
// running.
func (c *Controller) stopRecorder() {
	rec := c.recorder
	if rec == nil {
		return
	}
	c.recorder = nil
	attempt := c.attempt
	go func() {
		clip, err := rec.Stop()
		c.post(Event{attempt: attempt, kind: kindRecorded, clip: clip, err: err})
	}()
}

// post delivers ev unless the controller is closed, in which case the event's
// resources are released instead. Nothing is queued once Close has drained.
func (c *Controller) post(ev Event) {
	for {
		c.mu.Lock()
		if c.shut {
			c.mu.Unlock()
			c.release(ev)
			return
		}
		select {
		case c.events <- ev:
			c.mu.Unlock()
			return
		default:
		}
		c.mu.Unlock()

		// Queue full: wait for the owner to catch up or for Close.
		select {
		case <-c.closed:
		case <-time.After(postRetry):
		}
	}
}

// release frees resources carried by an event that will not be applied.
func (c *Controller) release(ev Event) {
	if ev.stream != nil {
		ev.stream.Close()
	}
	if ev.clip != nil {
		c.revoke(ev.clip)
	}
}

func (c *Controller) revoke(clip *audio.Clip) {
	if err := clip.Revoke(); err != nil {
		c.log.WithError(err).Warn("revoking recording failed")
	}
}
