// Package wordquiz is the present/past verb form quiz screen.
package wordquiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/speakup-edu/speakup/internal/content"
	"github.com/speakup-edu/speakup/internal/quiz"
	"github.com/speakup-edu/speakup/internal/screen"
	"github.com/speakup-edu/speakup/internal/screens/quizkit"
	"github.com/speakup-edu/speakup/internal/ui/components"
	"github.com/speakup-edu/speakup/internal/ui/layout"
	"github.com/speakup-edu/speakup/internal/ui/theme"
)

const (
	labelPresent = "Present (현재형)"
	labelPast    = "Past (과거형)"
	heardLabel   = "내가 읽은 단어:"
)

// WordQuizScreen asks for the other verb form of each vocabulary word.
type WordQuizScreen struct {
	session *quiz.WordSession
	panel   *quizkit.Panel
	input   components.TextInput
}

var (
	_ screen.Screen          = (*WordQuizScreen)(nil)
	_ screen.KeyHintProvider = (*WordQuizScreen)(nil)
	_ screen.StatusProvider  = (*WordQuizScreen)(nil)
	_ screen.Closer          = (*WordQuizScreen)(nil)
)

// New creates a word quiz over the store's vocabulary.
func New(d quizkit.Deps) *WordQuizScreen {
	panel := quizkit.NewPanel(d)
	s := &WordQuizScreen{
		panel: panel,
		input: components.NewTextInput("Type the answer...", 40),
	}
	s.session = quiz.NewWordSession(d.Store, d.QuizOptions(panel))
	return s
}

func (s *WordQuizScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), s.panel.Init())
}

func (s *WordQuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if handled, cmd := s.panel.Update(msg); handled {
		return s, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch {
	case s.session.Finished():
		if key.String() == "enter" {
			s.session.Restart()
			return s, s.input.Reset()
		}
		return s, nil
	case s.session.Result() == quiz.ResultCorrect:
		return s, s.handleCorrectKey(key.String())
	}

	switch key.String() {
	case "enter":
		s.submit()
		return s, nil
	case "tab":
		s.session.ShowHint()
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.session.SetInput(s.input.Value())
	return s, cmd
}

func (s *WordQuizScreen) submit() {
	if !s.session.SubmitAnswer(s.input.Value()) {
		return
	}
	correct := s.session.Result() == quiz.ResultCorrect
	s.input.Submit(correct)
	if correct {
		s.input.Lock()
	}
}

// handleCorrectKey serves the answer card: speech, practice and moving on.
func (s *WordQuizScreen) handleCorrectKey(key string) tea.Cmd {
	w := s.session.Current()
	switch key {
	case "enter", "n":
		s.session.Advance()
		return s.input.Reset()
	case "r":
		return s.panel.Toggle(s.session.Answer())
	case "p":
		return s.panel.Play()
	case "1":
		s.panel.Speak(w.Present)
	case "2":
		s.panel.Speak(w.Past)
	}
	return nil
}

func (s *WordQuizScreen) View(width, height int) string {
	if s.session.Finished() {
		return quizkit.RenderFinished("Congratulations!", "You have completed all the words.", width, height)
	}

	cw := components.ContentWidth(width)
	gap := "\n\n"
	if layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		gap = "\n"
	}

	w := s.session.Current()
	asked, wanted := labelPresent, labelPast
	if s.session.Direction() == quiz.PastToPresent {
		asked, wanted = labelPast, labelPresent
	}

	question := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.session.Question()) +
		"\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(w.Korean)

	sections := []string{
		quizkit.RenderProgress("Word", s.session.Index(), s.session.Len(), s.session.Progress(), theme.Primary, cw),
		quizkit.Center(cw, asked, theme.TextDim, false) + "\n" + components.ArcadeCard(question, cw),
		quizkit.Center(cw, wanted, theme.TextDim, false) + "\n" + lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.input.View()),
	}

	if fb := quizkit.RenderFeedback(s.session.Result(), s.session.HintShown(), s.session.Hint(), cw); fb != "" {
		sections = append(sections, fb)
	}
	if s.session.Result() == quiz.ResultCorrect {
		sections = append(sections, s.renderForms(w, cw), s.panel.View(heardLabel, cw))
	}

	body := strings.Join(sections, gap)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *WordQuizScreen) renderForms(w content.VocabWord, cw int) string {
	form := func(label, value, key string) string {
		line := lipgloss.NewStyle().Foreground(theme.TextDim).Render(label+": ") +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(value)
		if s.panel.CanSpeak() {
			line += lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(fmt.Sprintf("  🔊 (%s)", key))
		}
		return line
	}
	return quizkit.Center(cw, form("현재형", w.Present, "1")+"    "+form("과거형", w.Past, "2"), theme.Text, false)
}

func (s *WordQuizScreen) Title() string {
	return "Vocabulary Quiz"
}

// Status shows the position in the session.
func (s *WordQuizScreen) Status() string {
	if s.session.Finished() {
		return ""
	}
	return fmt.Sprintf("Word %d / %d", s.session.Index()+1, s.session.Len())
}

func (s *WordQuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session.Finished():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start Over"},
			{Key: "Esc", Description: "Back"},
		}
	case s.session.Result() == quiz.ResultCorrect:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Next Word"},
			{Key: "r", Description: "따라 읽기"},
		}
		if s.panel.Controller().CanPlay() {
			hints = append(hints, layout.KeyHint{Key: "p", Description: "녹음 듣기"})
		}
		if s.panel.CanSpeak() {
			hints = append(hints, layout.KeyHint{Key: "1/2", Description: "Listen"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	case s.session.Result() == quiz.ResultIncorrect:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check Answer"},
			{Key: "Tab", Description: "Show Hint"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check Answer"},
		{Key: "Esc", Description: "Back"},
	}
}

// Close discards the session's practice state and releases the microphone.
func (s *WordQuizScreen) Close() {
	s.panel.Close()
}
