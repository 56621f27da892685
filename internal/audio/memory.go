package audio

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemorySource replays fixed chunks as a stream. The stream stays open after
// the last chunk until it is closed, like a microphone would. It backs the
// mock speech mode and tests.
type MemorySource struct {
	Chunks [][]int16
	Rate   int
	Err    error

	opened atomic.Int32
	mu     sync.Mutex
	last   *MemoryStream
}

// Open returns a new stream over the configured chunks, or Err if set.
func (m *MemorySource) Open(ctx context.Context) (Stream, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rate := m.Rate
	if rate == 0 {
		rate = SampleRate
	}
	s := NewMemoryStream(rate)
	go func() {
		for _, c := range m.Chunks {
			if !s.Push(c) {
				return
			}
		}
	}()
	m.opened.Add(1)
	m.mu.Lock()
	m.last = s
	m.mu.Unlock()
	return s, nil
}

// Opened returns how many streams have been opened.
func (m *MemorySource) Opened() int { return int(m.opened.Load()) }

// Last returns the most recently opened stream.
func (m *MemorySource) Last() *MemoryStream {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// MemoryStream is a Stream fed by Push.
type MemoryStream struct {
	rate   int
	ch     chan []int16
	closed chan struct{}
	once   sync.Once

	// mu keeps ch open while a Push is in flight.
	mu sync.RWMutex
}

// NewMemoryStream returns an open stream at the given rate.
func NewMemoryStream(rate int) *MemoryStream {
	return &MemoryStream{
		rate:   rate,
		ch:     make(chan []int16),
		closed: make(chan struct{}),
	}
}

// Push delivers a chunk, blocking until the consumer receives it. It reports
// false once the stream is closed.
func (s *MemoryStream) Push(chunk []int16) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Closed() {
		return false
	}
	select {
	case s.ch <- chunk:
		return true
	case <-s.closed:
		return false
	}
}

func (s *MemoryStream) Chunks() <-chan []int16 { return s.ch }

func (s *MemoryStream) SampleRate() int { return s.rate }

// Close stops the stream and closes Chunks. Pending and future Push calls
// fail.
func (s *MemoryStream) Close() error {
	s.once.Do(func() {
		close(s.closed)
		s.mu.Lock()
		close(s.ch)
		s.mu.Unlock()
	})
	return nil
}

// Closed reports whether Close has been called.
func (s *MemoryStream) Closed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}
