package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/speakup-edu/speakup/internal/ui/theme"
)

const arcadeTitleFull = `███████╗██████╗ ███████╗ █████╗ ██╗  ██╗██╗   ██╗██████╗
██╔════╝██╔══██╗██╔════╝██╔══██╗██║ ██╔╝██║   ██║██╔══██╗
███████╗██████╔╝█████╗  ███████║█████╔╝ ██║   ██║██████╔╝
╚════██║██╔═══╝ ██╔══╝  ██╔══██║██╔═██╗ ██║   ██║██╔═══╝
███████║██║     ███████╗██║  ██║██║  ██╗╚██████╔╝██║
╚══════╝╚═╝     ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝ ╚═╝`

const arcadeTitleCompact = "S · P · E · A · K · U · P"

// renderTitle returns the block title and the catalog's subtitle.
func renderTitle(subtitle string, cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	block := style.Render(art)
	if subtitle != "" {
		block += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(subtitle)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 36

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeYellow).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderSpeechBanner warns that pronunciation practice is unavailable.
func renderSpeechBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ 발음 연습에는 마이크와 음성 인식 API 키가 필요해요\nspeakup check 로 확인하세요")
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
