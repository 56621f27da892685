package quizkit

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/speakup-edu/speakup/internal/practice"
	"github.com/speakup-edu/speakup/internal/pronounce"
	"github.com/speakup-edu/speakup/internal/quiz"
	"github.com/speakup-edu/speakup/internal/ui/components"
	"github.com/speakup-edu/speakup/internal/ui/theme"
)

// Learner-facing panel text.
const (
	PanelHeading   = "발음 정확도 확인하기"
	NothingHeard   = "아무 말도 감지되지 않았어요."
	LabelStart     = "● 따라 읽기"
	LabelStop      = "■ 녹음 중지"
	LabelAnalyzing = "분석 중..."
	LabelOpening   = "마이크 준비 중..."
)

// Center renders text centered across width.
func Center(width int, text string, fg color.Color, bold bool) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Bold(bold).
		Render(text)
}

// RenderProgress renders the "Progress ... Word 3 / 19" line and bar.
func RenderProgress(noun string, index, total int, fraction float64, fill color.Color, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Progress")
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%s %d / %d", noun, index+1, total))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	bar := components.ProgressBar{Percent: fraction, Width: width, Color: fill}
	return left + strings.Repeat(" ", gap) + right + "\n" + bar.View()
}

// RenderFeedback renders the line under the answer box for the current
// result. hint is shown after a wrong answer once revealed.
func RenderFeedback(result quiz.Result, hintShown bool, hint string, width int) string {
	switch result {
	case quiz.ResultCorrect:
		return Center(width, "✓ Correct!", theme.Success, true)
	case quiz.ResultIncorrect:
		var b strings.Builder
		b.WriteString(Center(width, "✗ Try again!", theme.Error, true))
		b.WriteString("\n")
		if hintShown {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.HintBox.Render(hint)))
		} else {
			b.WriteString(Center(width, "Tab: Show Hint", theme.TextDim, false))
		}
		return b.String()
	}
	return ""
}

// RenderFinished renders the completion card.
func RenderFinished(heading, message string, width, height int) string {
	cw := components.ContentWidth(width)
	body := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(heading) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(message) +
		"\n\n" +
		components.ArcadeButton("Start Over", true, 22)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.ArcadeCard(body, cw))
}

// RenderWords colors each heard word by whether it matched the reference.
func RenderWords(words []pronounce.WordMatch) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		fg := theme.Error
		if w.Match {
			fg = theme.Success
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(fg).Bold(w.Match).Render(w.Word))
	}
	return strings.Join(parts, " ")
}

// View renders the practice section. heardLabel introduces the transcript,
// such as "내가 읽은 단어:".
func (p *Panel) View(heardLabel string, width int) string {
	var lines []string
	lines = append(lines, Center(width, PanelHeading, theme.Text, true))

	if msg := p.ctrl.ErrorMessage(); msg != "" {
		lines = append(lines, Center(width, msg, theme.Error, false))
	}
	if p.playbackErr != "" {
		lines = append(lines, Center(width, p.playbackErr, theme.Error, false))
	}

	if r := p.ctrl.Result(); r != nil {
		score := lipgloss.NewStyle().Foreground(theme.Practice).Bold(true).Render(fmt.Sprintf("%d%%", r.Score))
		lines = append(lines, Center(width, "정확도: "+score, theme.Text, true))
		if r.NothingDetected {
			lines = append(lines, Center(width, NothingHeard, theme.TextDim, false))
		} else {
			lines = append(lines,
				Center(width, heardLabel, theme.TextDim, false),
				lipgloss.PlaceHorizontal(width, lipgloss.Center, RenderWords(r.Words)))
		}
	}

	if p.ctrl.Clip() != nil {
		label := "▶ 녹음 듣기 (p)"
		if p.playing {
			label = "▶ 재생 중..."
		}
		lines = append(lines, Center(width, label, theme.ArcadeCyan, false))
	}

	lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, p.button()))
	return strings.Join(lines, "\n")
}

func (p *Panel) button() string {
	spin := spinnerFrames[p.frame]
	var label string
	var bg color.Color = theme.Practice
	switch p.ctrl.State() {
	case practice.StateRecording:
		label, bg = LabelStop, theme.Error
	case practice.StateFinalizing:
		label, bg = spin+" "+LabelAnalyzing, theme.TextDim
	case practice.StateAcquiring:
		label, bg = spin+" "+LabelOpening, theme.TextDim
	default:
		label = LabelStart
	}
	return lipgloss.NewStyle().
		Width(24).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Background(bg).
		Padding(0, 1).
		Render(label + " (r)")
}
