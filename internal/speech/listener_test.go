package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speakup-edu/speakup/internal/audio"
)

const testRate = 1000

func loud(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = 10000
		} else {
			out[i] = -10000
		}
	}
	return out
}

func quiet(n int) []int16 { return make([]int16, n) }

func testListenConfig() ListenConfig {
	return ListenConfig{
		Language:        DefaultLanguage,
		Threshold:       0.02,
		SilenceTimeout:  300 * time.Millisecond,
		NoSpeechTimeout: time.Second,
		MaxListen:       5 * time.Second,
		Timeout:         time.Second,
	}
}

func waitListener(t *testing.T, l *Listener) (string, error) {
	t.Helper()
	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not finish")
	}
	return l.Wait()
}

func TestListener_EndsAfterTrailingSilence(t *testing.T) {
	stream := audio.NewMemoryStream(testRate)
	rec := NewMockRecognizer(MockResult{Transcript: "I go to school"})
	l := Listen(context.Background(), stream, rec, testListenConfig())

	require.True(t, stream.Push(loud(200)))
	require.True(t, stream.Push(quiet(200)))
	require.True(t, stream.Push(quiet(200)))

	text, err := waitListener(t, l)
	require.NoError(t, err)
	assert.Equal(t, "I go to school", text)
	assert.Equal(t, 1, rec.CallCount())
	assert.True(t, stream.Closed(), "listener releases its stream")
}

func TestListener_StopRecognizesWhatWasHeard(t *testing.T) {
	stream := audio.NewMemoryStream(testRate)
	rec := NewMockRecognizer(MockResult{Transcript: "played"})
	l := Listen(context.Background(), stream, rec, testListenConfig())

	require.True(t, stream.Push(loud(100)))
	l.Stop()
	l.Stop()

	text, err := waitListener(t, l)
	require.NoError(t, err)
	assert.Equal(t, "played", text)
}

func TestListener_NoSpeech(t *testing.T) {
	stream := audio.NewMemoryStream(testRate)
	rec := NewMockRecognizer()
	l := Listen(context.Background(), stream, rec, testListenConfig())

	go func() {
		for range 6 {
			if !stream.Push(quiet(200)) {
				return
			}
		}
	}()

	_, err := waitListener(t, l)
	assert.ErrorIs(t, err, ErrNoSpeech)
	assert.Zero(t, rec.CallCount(), "silence never reaches the recognizer")
}

func TestListener_StopBeforeSpeech(t *testing.T) {
	stream := audio.NewMemoryStream(testRate)
	l := Listen(context.Background(), stream, NewMockRecognizer(), testListenConfig())
	require.True(t, stream.Push(quiet(100)))
	l.Stop()

	_, err := waitListener(t, l)
	assert.ErrorIs(t, err, ErrNoSpeech)
}

func TestListener_RecognizerErrorIsClassified(t *testing.T) {
	stream := audio.NewMemoryStream(testRate)
	rec := NewMockRecognizer(MockResult{Err: &ErrProviderUnavailable{Err: errors.New("dial tcp")}})
	l := Listen(context.Background(), stream, rec, testListenConfig())
	require.True(t, stream.Push(loud(100)))
	l.Stop()

	_, err := waitListener(t, l)
	var re *RecognitionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, CodeNetwork, re.Code)
}

func TestListener_StreamEndsWithoutAudio(t *testing.T) {
	stream := audio.NewMemoryStream(testRate)
	l := Listen(context.Background(), stream, NewMockRecognizer(), testListenConfig())
	stream.Close()

	_, err := waitListener(t, l)
	var re *RecognitionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, CodeAudioCapture, re.Code)
}

func TestListener_AbortDuringCapture(t *testing.T) {
	stream := audio.NewMemoryStream(testRate)
	rec := NewMockRecognizer(MockResult{Transcript: "never"})
	l := Listen(context.Background(), stream, rec, testListenConfig())
	require.True(t, stream.Push(loud(100)))

	l.Abort()
	_, err := waitListener(t, l)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rec.CallCount())
	assert.True(t, stream.Closed())
}

func TestListener_AbortDuringRecognition(t *testing.T) {
	stream := audio.NewMemoryStream(testRate)
	rec := NewMockRecognizer(MockResult{Transcript: "late"})
	rec.Block = make(chan struct{})
	l := Listen(context.Background(), stream, rec, testListenConfig())
	require.True(t, stream.Push(loud(100)))
	l.Stop()

	require.Eventually(t, func() bool { return rec.CallCount() == 1 }, time.Second, 5*time.Millisecond)
	l.Abort()

	text, err := waitListener(t, l)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, text)
}

type recordingPlayer struct {
	mu    sync.Mutex
	plays []int
	err   error
}

func (p *recordingPlayer) Play(ctx context.Context, samples []int16, _ int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays = append(p.plays, len(samples))
	return p.err
}

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"am", "is"}, Segments("am / is"))
	assert.Equal(t, []string{"went"}, Segments("went"))
	assert.Equal(t, []string{"a", "b"}, Segments(" a // b /"))
}

func TestSpeaker_SpeaksEachVariantInOrder(t *testing.T) {
	synth := &MockSynthesizer{}
	player := &recordingPlayer{}
	s := NewSpeaker(synth, player, discardLog())
	require.NotNil(t, s)

	<-s.Say("am / is")
	assert.Equal(t, []string{"am", "is"}, synth.Spoken())
	assert.Len(t, player.plays, 2)
}

func TestSpeaker_StopsOnSynthesisError(t *testing.T) {
	synth := &MockSynthesizer{Err: errors.New("boom")}
	player := &recordingPlayer{}
	s := NewSpeaker(synth, player, discardLog())

	<-s.Say("was / were")
	assert.Equal(t, []string{"was"}, synth.Spoken())
	assert.Empty(t, player.plays)
}

func TestSpeaker_NewSayCancelsPrevious(t *testing.T) {
	gate := make(chan struct{})
	var seen []string
	var mu sync.Mutex
	synth := synthFunc(func(ctx context.Context, u Utterance) (PCM, error) {
		mu.Lock()
		seen = append(seen, u.Text)
		mu.Unlock()
		if u.Text == "slow" {
			select {
			case <-gate:
			case <-ctx.Done():
				return PCM{}, ctx.Err()
			}
		}
		return PCM{Samples: []int16{0}, SampleRate: 16000}, nil
	})
	s := NewSpeaker(synth, &recordingPlayer{}, discardLog())

	first := s.Say("slow / never")
	second := s.Say("fast")
	<-first
	<-second

	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, seen, "never")
	assert.Contains(t, seen, "fast")
}

func TestSpeaker_Unavailable(t *testing.T) {
	assert.Nil(t, NewSpeaker(nil, &recordingPlayer{}, discardLog()))
	assert.Nil(t, NewSpeaker(&MockSynthesizer{}, nil, discardLog()))

	var s *Speaker
	<-s.Say("go")
	s.Cancel()
}
