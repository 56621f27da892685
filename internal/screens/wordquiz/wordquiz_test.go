package wordquiz

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/speakup-edu/speakup/internal/audio"
	"github.com/speakup-edu/speakup/internal/content"
	"github.com/speakup-edu/speakup/internal/logging"
	"github.com/speakup-edu/speakup/internal/practice"
	"github.com/speakup-edu/speakup/internal/quiz"
	"github.com/speakup-edu/speakup/internal/screen"
	"github.com/speakup-edu/speakup/internal/screens/quizkit"
	"github.com/speakup-edu/speakup/internal/speech"
)

// silentPlayer implements audio.Player and discards samples.
type silentPlayer struct {
	mu    sync.Mutex
	plays int
}

func (p *silentPlayer) Play(context.Context, []int16, int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays++
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(scr screen.Screen, text string) screen.Screen {
	for _, r := range text {
		scr, _ = scr.Update(keyPress(r))
	}
	return scr
}

func testDeps(opts practice.Options) quizkit.Deps {
	return quizkit.Deps{
		Store:    content.Default(),
		Practice: opts,
		Seed:     42,
		Logger:   logging.Discard(),
	}
}

func testScreen(t *testing.T, opts practice.Options) *WordQuizScreen {
	t.Helper()
	s := New(testDeps(opts))
	t.Cleanup(s.Close)
	return s
}

// firstAnswer is a correct answer for the current word.
func firstAnswer(s *WordQuizScreen) string {
	return content.Variants(s.session.Answer())[0]
}

func answerCorrectly(s *WordQuizScreen) {
	var scr screen.Screen = s
	scr = typeText(scr, firstAnswer(s))
	scr.Update(specialKey(tea.KeyEnter))
}

// pump feeds practice events into the screen until cond holds.
func pump(t *testing.T, s *WordQuizScreen, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not reached; state=%s", s.panel.Controller().State())
		}
		ch := make(chan tea.Msg, 1)
		go func() { ch <- s.panel.Init()() }()
		select {
		case msg := <-ch:
			s.Update(msg)
		case <-time.After(3 * time.Second):
			t.Fatal("no practice event")
		}
	}
}

func TestWordQuizScreen_Title(t *testing.T) {
	s := testScreen(t, practice.Options{})
	if s.Title() != "Vocabulary Quiz" {
		t.Errorf("Title = %q, want %q", s.Title(), "Vocabulary Quiz")
	}
	if s.Status() != "Word 1 / 19" {
		t.Errorf("Status = %q, want %q", s.Status(), "Word 1 / 19")
	}
}

func TestWordQuizScreen_View(t *testing.T) {
	s := testScreen(t, practice.Options{})
	view := s.View(80, 18)
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	if !containsAll(view, s.session.Question(), s.session.Current().Korean) {
		t.Error("expected question word and meaning in view")
	}
}

func TestWordQuizScreen_AnswerSubmit(t *testing.T) {
	s := testScreen(t, practice.Options{})
	answerCorrectly(s)

	if s.session.Result() != quiz.ResultCorrect {
		t.Fatalf("result = %s, want correct", s.session.Result())
	}
	if !s.input.Locked() {
		t.Error("expected input locked after a correct answer")
	}

	// Letters now act as commands, not text.
	s.Update(keyPress('x'))
	if s.input.Value() != firstAnswer(s) {
		t.Errorf("input changed to %q after locking", s.input.Value())
	}
	if !containsAll(s.View(100, 30), "Correct!", quizkit.PanelHeading) {
		t.Error("expected correct card with practice panel")
	}
}

func TestWordQuizScreen_BlankSubmitIgnored(t *testing.T) {
	s := testScreen(t, practice.Options{})
	s.Update(specialKey(tea.KeyEnter))
	if s.session.Result() != quiz.ResultIdle {
		t.Errorf("result = %s, want idle", s.session.Result())
	}
}

func TestWordQuizScreen_WrongAnswerAndHint(t *testing.T) {
	s := testScreen(t, practice.Options{})
	var scr screen.Screen = s
	scr = typeText(scr, "zzz")
	if s.session.Input() != "zzz" {
		t.Errorf("session input = %q, want %q", s.session.Input(), "zzz")
	}
	scr.Update(specialKey(tea.KeyEnter))
	if s.session.Result() != quiz.ResultIncorrect {
		t.Fatalf("result = %s, want incorrect", s.session.Result())
	}

	hint := s.session.Hint()
	if containsAll(s.View(100, 30), hint) {
		t.Error("hint visible before it was requested")
	}
	scr.Update(specialKey(tea.KeyTab))
	if !s.session.HintShown() {
		t.Fatal("expected hint shown after Tab")
	}
	if !containsAll(s.View(100, 30), hint) {
		t.Errorf("expected hint %q in view", hint)
	}
}

func TestWordQuizScreen_TabBeforeAnswerDoesNothing(t *testing.T) {
	s := testScreen(t, practice.Options{})
	s.Update(specialKey(tea.KeyTab))
	if s.session.HintShown() {
		t.Error("hint shown without a wrong answer")
	}
}

func TestWordQuizScreen_NextWord(t *testing.T) {
	s := testScreen(t, practice.Options{})
	answerCorrectly(s)
	s.Update(specialKey(tea.KeyEnter))

	if s.session.Index() != 1 {
		t.Errorf("index = %d, want 1", s.session.Index())
	}
	if s.session.Result() != quiz.ResultIdle {
		t.Errorf("result = %s, want idle", s.session.Result())
	}
	if s.input.Value() != "" || s.input.Locked() {
		t.Error("expected a cleared, editable input")
	}
}

func TestWordQuizScreen_FinishAndRestart(t *testing.T) {
	s := testScreen(t, practice.Options{})
	total := s.session.Len()
	for i := 0; i < total; i++ {
		answerCorrectly(s)
		s.Update(specialKey(tea.KeyEnter))
	}
	if !s.session.Finished() {
		t.Fatal("expected finished session")
	}
	if !containsAll(s.View(80, 18), "Congratulations!", "Start Over") {
		t.Error("expected completion card")
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.session.Finished() || s.session.Index() != 0 {
		t.Error("expected restart from the first word")
	}
}

func TestWordQuizScreen_PracticeUnsupported(t *testing.T) {
	s := testScreen(t, practice.Options{})
	answerCorrectly(s)
	s.Update(keyPress('r'))

	if !containsAll(s.View(100, 30), practice.MsgRecognitionUnsupported) {
		t.Error("expected unsupported message")
	}
}

func TestWordQuizScreen_MicrophoneDenied(t *testing.T) {
	s := testScreen(t, practice.Options{
		Source:     &audio.MemorySource{Err: os.ErrPermission},
		Recognizer: speech.NewMockRecognizer(),
	})
	answerCorrectly(s)
	s.Update(keyPress('r'))
	pump(t, s, func() bool { return s.panel.Controller().Err() != nil })

	if !containsAll(s.View(100, 30), practice.MsgMicrophone) {
		t.Error("expected microphone message")
	}
}

func TestWordQuizScreen_PracticeScoresAnswer(t *testing.T) {
	rec := speech.NewMockRecognizer()
	player := &silentPlayer{}
	s := testScreen(t, practice.Options{
		Source:     &audio.MemorySource{Chunks: [][]int16{loud(400), quiet(300), quiet(300)}, Rate: 1000},
		Recognizer: rec,
		Player:     player,
		ClipDir:    t.TempDir(),
		Listen: speech.ListenConfig{
			Language:        speech.DefaultLanguage,
			Threshold:       0.02,
			SilenceTimeout:  300 * time.Millisecond,
			NoSpeechTimeout: time.Second,
			MaxListen:       5 * time.Second,
			Timeout:         time.Second,
		},
	})
	rec.AddResult(speech.MockResult{Transcript: s.session.Answer()})

	answerCorrectly(s)
	s.Update(keyPress('r'))
	ctrl := s.panel.Controller()
	pump(t, s, func() bool {
		return ctrl.Result() != nil && ctrl.Clip() != nil && ctrl.State() == practice.StateIdle
	})

	if ctrl.Result().Score != 100 {
		t.Errorf("score = %d, want 100", ctrl.Result().Score)
	}
	if !containsAll(s.View(100, 30), "100%") {
		t.Error("expected score in view")
	}

	// Moving on discards the attempt and its recording.
	clip := ctrl.Clip()
	s.Update(specialKey(tea.KeyEnter))
	if ctrl.Result() != nil || ctrl.Clip() != nil {
		t.Error("expected practice state cleared on next word")
	}
	if _, err := os.Stat(clip.Path()); !os.IsNotExist(err) {
		t.Error("expected recording file removed")
	}
}

func TestWordQuizScreen_SpeakForms(t *testing.T) {
	synth := &speech.MockSynthesizer{}
	d := testDeps(practice.Options{})
	d.Speaker = speech.NewSpeaker(synth, &silentPlayer{}, logging.Discard())
	s := New(d)
	t.Cleanup(s.Close)

	answerCorrectly(s)
	s.Update(keyPress('1'))

	want := speech.Segments(s.session.Current().Present)
	deadline := time.Now().Add(2 * time.Second)
	for len(synth.Spoken()) < len(want) {
		if time.Now().After(deadline) {
			t.Fatalf("spoken = %v, want %v", synth.Spoken(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
	if synth.Spoken()[0] != want[0] {
		t.Errorf("first utterance = %q, want %q", synth.Spoken()[0], want[0])
	}
}

func TestWordQuizScreen_KeyHints(t *testing.T) {
	s := testScreen(t, practice.Options{})
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints while answering")
	}
	answerCorrectly(s)
	hints := s.KeyHints()
	if len(hints) == 0 || hints[0].Description != "Next Word" {
		t.Errorf("unexpected hints after a correct answer: %v", hints)
	}
}

func TestWordQuizScreen_CloseReleasesController(t *testing.T) {
	s := New(testDeps(practice.Options{}))
	s.Close()
	select {
	case <-s.panel.Controller().Done():
	default:
		t.Error("expected controller closed")
	}
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

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
