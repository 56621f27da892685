// Package sentencequiz is the sentence unscramble quiz screen.
package sentencequiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/speakup-edu/speakup/internal/quiz"
	"github.com/speakup-edu/speakup/internal/screen"
	"github.com/speakup-edu/speakup/internal/screens/quizkit"
	"github.com/speakup-edu/speakup/internal/ui/components"
	"github.com/speakup-edu/speakup/internal/ui/layout"
	"github.com/speakup-edu/speakup/internal/ui/theme"
)

const heardLabel = "내가 읽은 문장:"

// SentenceQuizScreen asks the learner to put scrambled words in order.
type SentenceQuizScreen struct {
	session *quiz.SentenceSession
	panel   *quizkit.Panel
	input   components.TextInput
}

var (
	_ screen.Screen          = (*SentenceQuizScreen)(nil)
	_ screen.KeyHintProvider = (*SentenceQuizScreen)(nil)
	_ screen.StatusProvider  = (*SentenceQuizScreen)(nil)
	_ screen.Closer          = (*SentenceQuizScreen)(nil)
)

// New creates a sentence quiz over the store's questions.
func New(d quizkit.Deps) *SentenceQuizScreen {
	panel := quizkit.NewPanel(d)
	s := &SentenceQuizScreen{
		panel: panel,
		input: components.NewTextInput("Type the correct sentence...", 120),
	}
	s.session = quiz.NewSentenceSession(d.Store, d.QuizOptions(panel))
	return s
}

func (s *SentenceQuizScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), s.panel.Init())
}

func (s *SentenceQuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if handled, cmd := s.panel.Update(msg); handled {
		return s, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if s.session.Finished() {
		if key.String() == "enter" {
			s.session.Restart()
			return s, s.input.Reset()
		}
		return s, nil
	}

	if s.session.Result() == quiz.ResultCorrect {
		switch key.String() {
		case "enter", "n":
			s.session.Advance()
			return s, s.input.Reset()
		case "r":
			return s, s.panel.Toggle(s.session.Answer())
		case "p":
			return s, s.panel.Play()
		case "s":
			s.panel.Speak(s.session.Answer())
		}
		return s, nil
	}

	switch key.String() {
	case "enter":
		if s.session.SubmitAnswer(s.input.Value()) {
			correct := s.session.Result() == quiz.ResultCorrect
			s.input.Submit(correct)
			if correct {
				s.input.Lock()
			}
		}
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

func (s *SentenceQuizScreen) View(width, height int) string {
	if s.session.Finished() {
		return quizkit.RenderFinished("Well Done!", "You have completed all the sentences.", width, height)
	}

	cw := components.ContentWidth(width)
	gap := "\n\n"
	if layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		gap = "\n"
	}

	q := s.session.Current()
	korean := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Korean)
	scrambled := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(q.Scrambled, " / "))

	sections := []string{
		quizkit.RenderProgress("Question", s.session.Index(), s.session.Len(), s.session.Progress(), theme.Secondary, cw),
		quizkit.Center(cw, "Korean", theme.TextDim, false) + "\n" + components.ArcadeCard(korean, cw),
		quizkit.Center(cw, "Unscramble the words:", theme.TextDim, false) + "\n" +
			lipgloss.PlaceHorizontal(cw, lipgloss.Center, scrambled) + "\n" +
			lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.input.View()),
	}

	if fb := quizkit.RenderFeedback(s.session.Result(), s.session.HintShown(), s.session.Hint(), cw); fb != "" {
		sections = append(sections, fb)
	}
	if s.session.Result() == quiz.ResultCorrect {
		answer := s.session.Answer()
		if s.panel.CanSpeak() {
			answer += lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("  🔊 (s)")
		}
		sections = append(sections, quizkit.Center(cw, answer, theme.Text, true), s.panel.View(heardLabel, cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, gap))
}

func (s *SentenceQuizScreen) Title() string {
	return "Sentence Practice"
}

// Status shows the position in the session.
func (s *SentenceQuizScreen) Status() string {
	if s.session.Finished() {
		return ""
	}
	return fmt.Sprintf("Question %d / %d", s.session.Index()+1, s.session.Len())
}

func (s *SentenceQuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session.Finished():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start Over"},
			{Key: "Esc", Description: "Back"},
		}
	case s.session.Result() == quiz.ResultCorrect:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Next Question"},
			{Key: "r", Description: "따라 읽기"},
		}
		if s.panel.Controller().CanPlay() {
			hints = append(hints, layout.KeyHint{Key: "p", Description: "녹음 듣기"})
		}
		if s.panel.CanSpeak() {
			hints = append(hints, layout.KeyHint{Key: "s", Description: "Listen"})
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
func (s *SentenceQuizScreen) Close() {
	s.panel.Close()
}
