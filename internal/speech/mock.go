package speech

import (
	"context"
	"sync"
)

// MockResult is a canned recognition outcome for the MockRecognizer.
type MockResult struct {
	Transcript string
	Err        error
}

// MockRecognizer is a deterministic Recognizer for tests and offline use.
// It returns canned results in FIFO order, then Fallback forever, and
// records the size of every request.
type MockRecognizer struct {
	mu       sync.Mutex
	results  []MockResult
	Fallback MockResult
	Calls    []int

	// Block, when set, makes Transcribe wait for it to be closed or for the
	// context to end.
	Block chan struct{}
}

// NewMockRecognizer creates a MockRecognizer with the given canned results.
func NewMockRecognizer(results ...MockResult) *MockRecognizer {
	return &MockRecognizer{results: results}
}

func (m *MockRecognizer) Transcribe(ctx context.Context, wav []byte, _ string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, len(wav))
	block := m.Block
	res := m.Fallback
	if len(m.results) > 0 {
		res = m.results[0]
		m.results = m.results[1:]
	}
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return res.Transcript, res.Err
}

// Name returns "mock".
func (m *MockRecognizer) Name() string { return "mock" }

// AddResult appends a canned result to the queue.
func (m *MockRecognizer) AddResult(r MockResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
}

// CallCount returns the number of Transcribe calls made.
func (m *MockRecognizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockSynthesizer renders every utterance as a short burst of silence and
// records the text it was asked to speak.
type MockSynthesizer struct {
	mu    sync.Mutex
	Texts []string
	Err   error
}

func (m *MockSynthesizer) Synthesize(_ context.Context, u Utterance) (PCM, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Texts = append(m.Texts, u.Text)
	if m.Err != nil {
		return PCM{}, m.Err
	}
	return PCM{Samples: make([]int16, 160), SampleRate: 16000}, nil
}

// Name returns "mock".
func (m *MockSynthesizer) Name() string { return "mock" }

// Spoken returns a copy of the recorded texts.
func (m *MockSynthesizer) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Texts...)
}
