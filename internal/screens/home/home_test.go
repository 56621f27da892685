package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/speakup-edu/speakup/internal/audio"
	"github.com/speakup-edu/speakup/internal/content"
	"github.com/speakup-edu/speakup/internal/logging"
	"github.com/speakup-edu/speakup/internal/practice"
	"github.com/speakup-edu/speakup/internal/router"
	"github.com/speakup-edu/speakup/internal/screen"
	"github.com/speakup-edu/speakup/internal/screens/quizkit"
	"github.com/speakup-edu/speakup/internal/screens/sentencequiz"
	"github.com/speakup-edu/speakup/internal/screens/wordquiz"
	"github.com/speakup-edu/speakup/internal/speech"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testDeps() quizkit.Deps {
	return quizkit.Deps{
		Store:  content.Default(),
		Seed:   3,
		Logger: logging.Discard(),
	}
}

// pushed runs the command and returns the screen it pushes.
func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if c, ok := msg.Screen.(screen.Closer); ok {
		t.Cleanup(c.Close)
	}
	return msg.Screen
}

func TestHomeScreen_Title(t *testing.T) {
	h := New(testDeps())
	if h.Title() != "English Practice" {
		t.Errorf("Title = %q", h.Title())
	}
}

func TestHomeScreen_WordQuiz(t *testing.T) {
	h := New(testDeps())
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if _, ok := pushed(t, cmd).(*wordquiz.WordQuizScreen); !ok {
		t.Error("expected the word quiz")
	}
}

func TestHomeScreen_SentenceQuiz(t *testing.T) {
	h := New(testDeps())
	h.Update(specialKey(tea.KeyDown))
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if _, ok := pushed(t, cmd).(*sentencequiz.SentenceQuizScreen); !ok {
		t.Error("expected the sentence quiz")
	}
}

func TestHomeScreen_Exit(t *testing.T) {
	h := New(testDeps())
	h.Update(specialKey(tea.KeyDown))
	h.Update(specialKey(tea.KeyDown))
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestHomeScreen_View(t *testing.T) {
	h := New(testDeps())
	for _, size := range [][2]int{{80, 18}, {120, 40}} {
		view := h.View(size[0], size[1])
		if !strings.Contains(view, LabelWords) || !strings.Contains(view, LabelSentences) {
			t.Errorf("%dx%d: expected both activities in the menu", size[0], size[1])
		}
	}
}

func TestHomeScreen_SpeechBanner(t *testing.T) {
	if !strings.Contains(New(testDeps()).View(120, 40), "speakup check") {
		t.Error("expected a warning when practice is unavailable")
	}

	d := testDeps()
	d.Practice = practice.Options{
		Source:     &audio.MemorySource{},
		Recognizer: speech.NewMockRecognizer(),
	}
	h := New(d)
	if strings.Contains(h.View(120, 40), "speakup check") {
		t.Error("unexpected warning with practice available")
	}
	if h.mascotVariant != MascotIdle {
		t.Error("expected the idle mascot")
	}
}
