package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
		{Label: "c", Disabled: true},
		{Label: "d"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("selection after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(keyPress('k'))
	if m.Selected != 1 {
		t.Errorf("selection after k = %d, want 1", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(specialKey(tea.KeyEnter))
	if !ran {
		t.Error("expected action to run")
	}
}

func TestTextInput_LockAndReset(t *testing.T) {
	ti := NewTextInput("answer", 20)
	ti, _ = ti.Update(keyPress('g'))
	ti, _ = ti.Update(keyPress('o'))
	if ti.Value() != "go" {
		t.Fatalf("value = %q, want %q", ti.Value(), "go")
	}

	ti.Submit(true)
	ti.Lock()
	ti, _ = ti.Update(keyPress('x'))
	if ti.Value() != "go" || !ti.Locked() {
		t.Error("locked input accepted a key")
	}

	ti.Reset()
	if ti.Value() != "" || ti.Locked() {
		t.Error("expected an empty focused input after Reset")
	}
}

func TestTextInput_EditClearsMark(t *testing.T) {
	ti := NewTextInput("answer", 20)
	ti, _ = ti.Update(keyPress('a'))
	ti.Submit(false)
	ti, _ = ti.Update(keyPress('b'))
	if ti.submitted {
		t.Error("expected editing to clear the submission mark")
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	over := ProgressBar{Percent: 1.5, Width: 10}
	under := ProgressBar{Percent: -1, Width: 10}
	if over.View() == "" || under.View() == "" {
		t.Error("expected bars to render")
	}
}
