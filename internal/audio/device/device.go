// Package device connects the audio interfaces to the system microphone and
// speakers through PortAudio.
package device

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/speakup-edu/speakup/internal/audio"
)

// System owns the PortAudio library for the life of the process.
type System struct {
	hasInput  bool
	hasOutput bool
}

// Open initializes PortAudio and probes the default devices.
func Open() (*System, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	s := &System{}
	if in, err := portaudio.DefaultInputDevice(); err == nil && in != nil && in.MaxInputChannels > 0 {
		s.hasInput = true
	}
	if out, err := portaudio.DefaultOutputDevice(); err == nil && out != nil && out.MaxOutputChannels > 0 {
		s.hasOutput = true
	}
	return s, nil
}

// Microphone returns the default input device, or nil when there is none.
func (s *System) Microphone() audio.Source {
	if s == nil || !s.hasInput {
		return nil
	}
	return microphone{}
}

// Speaker returns the default output device, or nil when there is none.
func (s *System) Speaker() audio.Player {
	if s == nil || !s.hasOutput {
		return nil
	}
	return speaker{}
}

// Close releases PortAudio.
func (s *System) Close() error {
	return portaudio.Terminate()
}

type microphone struct{}

func (microphone) Open(ctx context.Context) (audio.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf := make([]int16, audio.FramesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(audio.Channels, 0, audio.SampleRate, audio.FramesPerBuffer, buf)
	if err != nil {
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("start input stream: %w", err)
	}
	return newMicStream(stream, buf), nil
}

// inputStream is the part of *portaudio.Stream the capture loop uses.
type inputStream interface {
	AvailableToRead() (int, error)
	Read() error
	Stop() error
	Close() error
}

func newMicStream(stream inputStream, buf []int16) *micStream {
	m := &micStream{
		stream: stream,
		buf:    buf,
		ch:     make(chan []int16, 16),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go m.loop()
	return m
}

type micStream struct {
	stream inputStream
	buf    []int16
	ch     chan []int16

	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// loop polls for available frames so that Close never waits on a blocking
// Read.
func (m *micStream) loop() {
	defer close(m.done)
	defer close(m.ch)
	for {
		select {
		case <-m.quit:
			return
		default:
		}

		available, err := m.stream.AvailableToRead()
		if err != nil || available < len(m.buf) {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if err := m.stream.Read(); err != nil {
			if errors.Is(err, portaudio.InputOverflowed) {
				continue
			}
			return
		}
		chunk := make([]int16, len(m.buf))
		copy(chunk, m.buf)
		select {
		case m.ch <- chunk:
		case <-m.quit:
			return
		}
	}
}

func (m *micStream) Chunks() <-chan []int16 { return m.ch }

func (m *micStream) SampleRate() int { return audio.SampleRate }

func (m *micStream) Close() error {
	var err error
	m.once.Do(func() {
		close(m.quit)
		// loop only reads once a full buffer is available, so it observes
		// quit promptly; the stream must not be stopped under a Read.
		<-m.done
		if stopErr := m.stream.Stop(); stopErr != nil {
			err = stopErr
		}
		if closeErr := m.stream.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	})
	return err
}

type speaker struct{}

// Play writes samples to the default output device, returning early when
// ctx is cancelled.
func (speaker) Play(ctx context.Context, samples []int16, sampleRate int) error {
	out := make([]int16, audio.FramesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, audio.Channels, float64(sampleRate), len(out), out)
	if err != nil {
		return fmt.Errorf("open output stream: %w", err)
	}
	defer stream.Close()
	if err := stream.Start(); err != nil {
		return fmt.Errorf("start output stream: %w", err)
	}
	defer stream.Stop()

	for off := 0; off < len(samples); off += len(out) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := copy(out, samples[off:])
		clear(out[n:])
		if err := stream.Write(); err != nil && !errors.Is(err, portaudio.OutputUnderflowed) {
			return fmt.Errorf("write output stream: %w", err)
		}
	}
	return nil
}
