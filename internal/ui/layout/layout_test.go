package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 24) || !IsTooSmall(80, 23) {
		t.Error("expected sizes below the minimum to be too small")
	}
	if IsTooSmall(80, 24) {
		t.Error("expected the minimum size to fit")
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Vocabulary Quiz", "Word 3 / 19", 100)
	for _, want := range []string{"SpeakUp", "Vocabulary Quiz", "Word 3 / 19"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if lipgloss.Height(h) != HeaderHeight {
		t.Errorf("header height = %d, want %d", lipgloss.Height(h), HeaderHeight)
	}
}

func TestRenderFrame(t *testing.T) {
	header := RenderHeader("Home", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	if lipgloss.Height(frame) != 24 {
		t.Errorf("frame height = %d, want 24", lipgloss.Height(frame))
	}
}

func TestContentHeight(t *testing.T) {
	if ContentHeight(24) != 18 {
		t.Errorf("ContentHeight(24) = %d, want 18", ContentHeight(24))
	}
	if ContentHeight(2) != 0 {
		t.Error("expected zero for tiny terminals")
	}
}
