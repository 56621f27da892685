package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/speakup-edu/speakup/internal/router"
	"github.com/speakup-edu/speakup/internal/screen"
	"github.com/speakup-edu/speakup/internal/screens/quizkit"
	"github.com/speakup-edu/speakup/internal/screens/sentencequiz"
	"github.com/speakup-edu/speakup/internal/screens/wordquiz"
	"github.com/speakup-edu/speakup/internal/ui/components"
	"github.com/speakup-edu/speakup/internal/ui/layout"
)

// Menu labels.
const (
	LabelWords     = "단어 익히기 (Learn Words)"
	LabelSentences = "문장 만들기 (Make Sentences)"
	LabelExit      = "나가기 (Exit)"
)

// HomeScreen is the start screen: pick an activity.
type HomeScreen struct {
	menu          components.Menu
	menuLabels    []string
	catalogTitle  string
	practiceReady bool
	mascotVariant MascotVariant
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates the start screen. Each activity gets a fresh quiz screen.
func New(d quizkit.Deps) *HomeScreen {
	menuLabels := []string{LabelWords, LabelSentences, LabelExit}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: wordquiz.New(d)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: sentencequiz.New(d)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	mascotVariant := MascotIdle
	if !d.PracticeReady() {
		mascotVariant = MascotAlert
	}

	return &HomeScreen{
		menu:          components.NewMenu(items),
		menuLabels:    menuLabels,
		catalogTitle:  d.Store.Title(),
		practiceReady: d.PracticeReady(),
		mascotVariant: mascotVariant,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(h.catalogTitle, cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	if !h.practiceReady {
		sections = append(sections, renderSpeechBanner(cw))
	}

	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "English Practice"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
