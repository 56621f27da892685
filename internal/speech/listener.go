package speech

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/speakup-edu/speakup/internal/audio"
)

// ListenConfig controls end-of-utterance detection. Durations are measured
// in captured audio, not wall time, except MaxListen.
type ListenConfig struct {
	Language string

	// Threshold is the RMS level (0..1) above which a chunk counts as speech.
	Threshold float64

	// SilenceTimeout ends listening after this much quiet following speech.
	SilenceTimeout time.Duration

	// NoSpeechTimeout gives up when nothing is said for this long.
	NoSpeechTimeout time.Duration

	// MaxListen caps the whole attempt in wall time.
	MaxListen time.Duration

	// Timeout bounds the recognizer call.
	Timeout time.Duration
}

// DefaultListenConfig returns the settings used for practice attempts.
func DefaultListenConfig() ListenConfig {
	return ListenConfig{
		Language:        DefaultLanguage,
		Threshold:       0.02,
		SilenceTimeout:  1200 * time.Millisecond,
		NoSpeechTimeout: 5 * time.Second,
		MaxListen:       15 * time.Second,
		Timeout:         30 * time.Second,
	}
}

// Listener captures one utterance from a stream and recognizes it. It ends
// on its own after trailing silence, or when Stop is called; Abort cancels
// it without a result.
type Listener struct {
	stream audio.Stream
	rec    Recognizer
	cfg    ListenConfig

	ctx    context.Context
	cancel context.CancelFunc

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	transcript string
	err        error
}

// Listen starts listening on stream in the background. The listener owns
// stream and closes it once capture ends.
func Listen(ctx context.Context, stream audio.Stream, rec Recognizer, cfg ListenConfig) *Listener {
	ctx, cancel := context.WithCancel(ctx)
	l := &Listener{
		stream: stream,
		rec:    rec,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

// Stop ends capture and recognizes what was heard so far.
func (l *Listener) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Abort cancels capture and recognition. Wait then reports context.Canceled.
func (l *Listener) Abort() {
	l.cancel()
}

// Done is closed once the listener has a final outcome.
func (l *Listener) Done() <-chan struct{} { return l.done }

// Wait blocks until the listener finishes and returns the final transcript,
// ErrNoSpeech, or a RecognitionError.
func (l *Listener) Wait() (string, error) {
	<-l.done
	return l.transcript, l.err
}

func (l *Listener) run() {
	defer close(l.done)
	defer l.cancel()

	samples, heard, err := l.capture()
	l.stream.Close()
	if err != nil {
		l.err = err
		return
	}
	if !heard {
		l.err = ErrNoSpeech
		return
	}

	ctx := l.ctx
	if l.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.cfg.Timeout)
		defer cancel()
	}
	wav := audio.EncodeWAV(audio.Pad(samples, audio.MinSamples), l.stream.SampleRate())
	text, err := l.rec.Transcribe(ctx, wav, l.cfg.Language)
	if l.ctx.Err() != nil {
		l.err = context.Canceled
		return
	}
	if err != nil {
		l.err = Classify(err)
		return
	}
	l.transcript = text
}

// capture reads chunks until an end condition and reports whether any
// speech was heard.
func (l *Listener) capture() ([]int16, bool, error) {
	rate := l.stream.SampleRate()
	silenceLimit := samplesFor(l.cfg.SilenceTimeout, rate)
	noSpeechLimit := samplesFor(l.cfg.NoSpeechTimeout, rate)

	var maxListen <-chan time.Time
	if l.cfg.MaxListen > 0 {
		t := time.NewTimer(l.cfg.MaxListen)
		defer t.Stop()
		maxListen = t.C
	}

	var (
		samples []int16
		heard   bool
		quiet   int
	)
	chunks := l.stream.Chunks()
	for {
		select {
		case <-l.ctx.Done():
			return nil, false, context.Canceled
		case <-l.stop:
			// Keep audio that was already delivered.
			for {
				select {
				case chunk, ok := <-chunks:
					if !ok {
						return samples, heard, nil
					}
					samples = append(samples, chunk...)
					heard = heard || audio.RMS(chunk) >= l.cfg.Threshold
					continue
				default:
				}
				return samples, heard, nil
			}
		case <-maxListen:
			return samples, heard, nil
		case chunk, ok := <-chunks:
			if !ok {
				if !heard && len(samples) == 0 {
					return nil, false, &RecognitionError{Code: CodeAudioCapture, Err: errors.New("audio stream ended")}
				}
				return samples, heard, nil
			}
			samples = append(samples, chunk...)
			if audio.RMS(chunk) >= l.cfg.Threshold {
				heard = true
				quiet = 0
				continue
			}
			quiet += len(chunk)
			if heard && silenceLimit > 0 && quiet >= silenceLimit {
				return samples, true, nil
			}
			if !heard && noSpeechLimit > 0 && len(samples) >= noSpeechLimit {
				return nil, false, nil
			}
		}
	}
}

func samplesFor(d time.Duration, rate int) int {
	return int(d * time.Duration(rate) / time.Second)
}
