package home

import (
	"charm.land/lipgloss/v2"

	"github.com/speakup-edu/speakup/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle  MascotVariant = iota // Ready to listen
	MascotAlert                      // Orange, exclamation: practice unavailable
)

const mascotIdle = `┌─────┐  ))
│ ◉ ◉ │ ))
│  ○  │
│ ABC │
└─────┘`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ ABC │
└─────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	art := mascotIdle
	fg := theme.Primary
	if v == MascotAlert {
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
