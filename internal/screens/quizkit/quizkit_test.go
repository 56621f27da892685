package quizkit

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speakup-edu/speakup/internal/audio"
	"github.com/speakup-edu/speakup/internal/content"
	"github.com/speakup-edu/speakup/internal/logging"
	"github.com/speakup-edu/speakup/internal/practice"
	"github.com/speakup-edu/speakup/internal/pronounce"
	"github.com/speakup-edu/speakup/internal/quiz"
	"github.com/speakup-edu/speakup/internal/speech"
)

type recordingPlayer struct {
	mu    sync.Mutex
	plays int
}

func (p *recordingPlayer) Play(context.Context, []int16, int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays++
	return nil
}

func testDeps(opts practice.Options) Deps {
	return Deps{
		Store:    content.Default(),
		Practice: opts,
		Seed:     11,
		Logger:   logging.Discard(),
	}
}

// next blocks for the panel's next background message.
func next(t *testing.T, p *Panel) tea.Msg {
	t.Helper()
	ch := make(chan tea.Msg, 1)
	go func() { ch <- p.Init()() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(3 * time.Second):
		t.Fatal("no practice event")
		return nil
	}
}

func TestDeps_QuizOptions(t *testing.T) {
	d := testDeps(practice.Options{})
	p := NewPanel(d)
	t.Cleanup(p.Close)

	opts := d.QuizOptions(p)
	assert.NotNil(t, opts.Rand, "seeded deps fix the order")
	assert.Same(t, p, opts.Practice)

	d.Seed = 0
	assert.Nil(t, d.QuizOptions(p).Rand)
}

func TestDeps_PracticeReady(t *testing.T) {
	assert.False(t, testDeps(practice.Options{}).PracticeReady())
	assert.False(t, testDeps(practice.Options{Source: &audio.MemorySource{}}).PracticeReady())
	assert.True(t, testDeps(practice.Options{
		Source:     &audio.MemorySource{},
		Recognizer: speech.NewMockRecognizer(),
	}).PracticeReady())
}

func TestPanel_ToggleWithoutRecognizer(t *testing.T) {
	p := NewPanel(testDeps(practice.Options{}))
	t.Cleanup(p.Close)

	cmd := p.Toggle("I go to school")
	assert.Nil(t, cmd)
	assert.Equal(t, practice.StateIdle, p.Controller().State())
	assert.Contains(t, p.View("내가 읽은 문장:", 60), practice.MsgRecognitionUnsupported)
}

func TestPanel_MicrophoneDenied(t *testing.T) {
	p := NewPanel(testDeps(practice.Options{
		Source:     &audio.MemorySource{Err: os.ErrPermission},
		Recognizer: speech.NewMockRecognizer(),
	}))
	t.Cleanup(p.Close)

	require.NotNil(t, p.Toggle("went"), "opening the microphone starts the spinner")
	assert.True(t, p.Busy())
	assert.Contains(t, p.View("", 60), LabelOpening)

	handled, _ := p.Update(next(t, p))
	assert.True(t, handled)
	assert.False(t, p.Busy())
	assert.Equal(t, practice.MsgMicrophone, p.Controller().ErrorMessage())
	assert.Contains(t, p.View("", 60), LabelStart)
}

func TestPanel_ForeignEventIsReleased(t *testing.T) {
	opts := practice.Options{
		Source:     &audio.MemorySource{Err: os.ErrPermission},
		Recognizer: speech.NewMockRecognizer(),
	}
	a := NewPanel(testDeps(opts))
	b := NewPanel(testDeps(opts))
	t.Cleanup(a.Close)
	t.Cleanup(b.Close)

	a.Toggle("went")
	msg := next(t, a)

	handled, cmd := b.Update(msg)
	assert.True(t, handled)
	assert.Nil(t, cmd, "the owner's queue is not re-armed by another panel")
	assert.Equal(t, practice.MsgMicrophone, a.Controller().ErrorMessage())
	assert.Empty(t, b.Controller().ErrorMessage())
}

func TestPanel_SpinnerStopsWhenIdle(t *testing.T) {
	p := NewPanel(testDeps(practice.Options{}))
	t.Cleanup(p.Close)

	p.ticking = true
	handled, cmd := p.Update(spinnerTickMsg{panel: p})
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.False(t, p.ticking)
}

func TestPanel_IgnoresOtherPanelsTicks(t *testing.T) {
	a := NewPanel(testDeps(practice.Options{}))
	b := NewPanel(testDeps(practice.Options{}))
	t.Cleanup(a.Close)
	t.Cleanup(b.Close)

	b.ticking = true
	handled, cmd := b.Update(spinnerTickMsg{panel: a})
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.True(t, b.ticking, "b's own chain is untouched")
}

func TestPanel_PlayWithoutPlayer(t *testing.T) {
	p := NewPanel(testDeps(practice.Options{}))
	t.Cleanup(p.Close)

	// No recording yet and no player.
	assert.Nil(t, p.Play())
	assert.False(t, p.Playing())
}

// recordedPanel runs one practice attempt to completion.
func recordedPanel(t *testing.T) (*Panel, *recordingPlayer) {
	t.Helper()
	player := &recordingPlayer{}
	chunks := [][]int16{loud(400), quiet(200), quiet(200), quiet(200)}
	p := NewPanel(Deps{
		Store: content.Default(),
		Practice: practice.Options{
			Source:     &audio.MemorySource{Chunks: chunks, Rate: 1000},
			Recognizer: speech.NewMockRecognizer(speech.MockResult{Transcript: "I went to school"}),
			Player:     player,
			ClipDir:    t.TempDir(),
			Listen:     testListen(),
		},
		Logger: logging.Discard(),
	})
	t.Cleanup(p.Close)

	p.Toggle("I went to school")
	deadline := time.Now().Add(5 * time.Second)
	for p.Controller().Result() == nil || p.Controller().Clip() == nil || p.Busy() {
		require.True(t, time.Now().Before(deadline), "practice did not finish")
		p.Update(next(t, p))
	}
	return p, player
}

func TestPanel_PracticeRoundTrip(t *testing.T) {
	p, player := recordedPanel(t)

	assert.Equal(t, 100, p.Controller().Result().Score)
	view := p.View("내가 읽은 문장:", 60)
	assert.Contains(t, view, "100%")
	assert.Contains(t, view, "녹음 듣기")

	cmd := p.Play()
	require.NotNil(t, cmd)
	assert.True(t, p.Playing())
	handled, _ := p.Update(cmd())
	assert.True(t, handled)
	assert.False(t, p.Playing())
	assert.Equal(t, 1, player.plays)
}

func TestPanel_PlaybackFinishingAfterResetIsIgnored(t *testing.T) {
	p, _ := recordedPanel(t)

	cmd := p.Play()
	require.NotNil(t, cmd)
	p.Reset()

	// The clip is gone, so the late playback fails.
	handled, _ := p.Update(cmd())
	assert.True(t, handled)
	assert.Empty(t, p.playbackErr)
	assert.NotContains(t, p.View("", 60), MsgPlaybackFailed)
}

func TestPanel_StalePlaybackKeepsNewerOne(t *testing.T) {
	p, player := recordedPanel(t)

	first := p.Play()
	require.NotNil(t, first)
	p.stopPlayback()
	second := p.Play()
	require.NotNil(t, second)

	p.Update(first())
	assert.True(t, p.Playing(), "the newer playback is still tracked")
	require.NotNil(t, p.stopPlay)

	p.Update(second())
	assert.False(t, p.Playing())
	assert.Equal(t, 2, player.plays)
}

func TestReleaseOrphaned(t *testing.T) {
	src := &audio.MemorySource{Rate: 1000}
	p := NewPanel(testDeps(practice.Options{
		Source:     src,
		Recognizer: speech.NewMockRecognizer(),
		ClipDir:    t.TempDir(),
		Listen:     testListen(),
	}))
	t.Cleanup(p.Close)

	p.Toggle("went")
	msg := next(t, p)
	assert.False(t, ReleaseOrphaned(msg), "a live controller keeps its events")
	assert.False(t, ReleaseOrphaned(tea.QuitMsg{}))

	p.Close()
	assert.True(t, ReleaseOrphaned(msg))
	require.NotNil(t, src.Last())
	assert.True(t, src.Last().Closed())
}

func TestRenderWords(t *testing.T) {
	out := RenderWords([]pronounce.WordMatch{{Word: "i", Match: true}, {Word: "goed", Match: false}})
	assert.Contains(t, out, "i")
	assert.Contains(t, out, "goed")
}

func TestRenderFeedback(t *testing.T) {
	assert.Empty(t, RenderFeedback(quiz.ResultIdle, false, "", 40))
	assert.Contains(t, RenderFeedback(quiz.ResultCorrect, false, "", 40), "Correct!")

	hidden := RenderFeedback(quiz.ResultIncorrect, false, "w _ _ t", 40)
	assert.Contains(t, hidden, "Try again!")
	assert.NotContains(t, hidden, "w _ _ t")
	assert.Contains(t, RenderFeedback(quiz.ResultIncorrect, true, "w _ _ t", 40), "w _ _ t")
}

func TestRenderProgress(t *testing.T) {
	out := RenderProgress("Word", 2, 19, 3.0/19, nil, 60)
	assert.Contains(t, out, "Word 3 / 19")
	assert.Contains(t, out, "Progress")
	assert.Equal(t, 2, len(strings.Split(out, "\n")))
}

func loud(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = 12000
		if i%2 == 1 {
			out[i] = -12000
		}
	}
	return out
}

func quiet(n int) []int16 { return make([]int16, n) }

func testListen() speech.ListenConfig {
	return speech.ListenConfig{
		Language:        speech.DefaultLanguage,
		Threshold:       0.02,
		SilenceTimeout:  300 * time.Millisecond,
		NoSpeechTimeout: time.Second,
		MaxListen:       5 * time.Second,
		Timeout:         time.Second,
	}
}
