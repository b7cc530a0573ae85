package ui

import (
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyMsg(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "ctrl+a":
		return tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{}
	}
}

func press(t *testing.T, m *picker, keys ...string) *picker {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(*picker)
	}
	return m
}

func typeText(t *testing.T, m *picker, text string) *picker {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}

var envNames = []string{"production", "staging", "demo"}

func TestPicker_EnterPicksCursor(t *testing.T) {
	t.Parallel()

	m := press(t, newPicker("Select apps", envNames), "down", "enter")
	if !m.done || m.cancelled {
		t.Fatalf("done=%v cancelled=%v, want done", m.done, m.cancelled)
	}
	if got := m.Selected(); !slices.Equal(got, []string{"staging"}) {
		t.Errorf("Selected() = %v, want [staging]", got)
	}
}

func TestPicker_ToggleKeepsOriginalOrder(t *testing.T) {
	t.Parallel()

	m := press(t, newPicker("Select apps", envNames), "down", "down", "space", "up", "up", "space", "enter")
	if got := m.Selected(); !slices.Equal(got, []string{"production", "demo"}) {
		t.Errorf("Selected() = %v, want [production demo]", got)
	}

	m = press(t, newPicker("Select apps", envNames), "space", "space")
	if len(m.chosen) != 0 {
		t.Errorf("double toggle left %v chosen", m.chosen)
	}
}

func TestPicker_Filter(t *testing.T) {
	t.Parallel()

	m := typeText(t, newPicker("Select apps", envNames), "stg")
	if len(m.filtered) != 1 || m.filtered[0].Str != "staging" {
		t.Fatalf("filtered = %+v, want only staging", m.filtered)
	}
	m = press(t, m, "enter")
	if got := m.Selected(); !slices.Equal(got, []string{"staging"}) {
		t.Errorf("Selected() = %v, want [staging]", got)
	}
}

func TestPicker_FilterNoMatch(t *testing.T) {
	t.Parallel()

	m := typeText(t, newPicker("Select apps", envNames), "xyz")
	if len(m.filtered) != 0 {
		t.Fatalf("filtered = %+v, want none", m.filtered)
	}
	m = press(t, m, "enter")
	if m.done {
		t.Error("enter with no matches should not finish")
	}

	m = press(t, m, "backspace", "backspace", "backspace")
	if len(m.filtered) != len(envNames) {
		t.Errorf("filtered %d items after clearing, want %d", len(m.filtered), len(envNames))
	}
}

func TestPicker_ToggleVisible(t *testing.T) {
	t.Parallel()

	m := press(t, newPicker("Select apps", envNames), "ctrl+a")
	if got := m.Selected(); !slices.Equal(got, envNames) {
		t.Errorf("Selected() = %v, want all", got)
	}
	m = press(t, m, "ctrl+a")
	if len(m.chosen) != 0 {
		t.Errorf("second ctrl+a left %v chosen", m.chosen)
	}
}

func TestPicker_Cancel(t *testing.T) {
	t.Parallel()

	t.Run("esc clears filter first", func(t *testing.T) {
		t.Parallel()
		m := typeText(t, newPicker("Select apps", envNames), "demo")
		m = press(t, m, "esc")
		if m.done || m.input.Value() != "" {
			t.Fatalf("done=%v filter=%q, want filter cleared", m.done, m.input.Value())
		}
		m = press(t, m, "esc")
		if !m.cancelled {
			t.Error("second esc should cancel")
		}
	})

	t.Run("ctrl+c", func(t *testing.T) {
		t.Parallel()
		m := press(t, newPicker("Select apps", envNames), "space", "ctrl+c")
		if !m.cancelled {
			t.Error("ctrl+c should cancel")
		}
	})
}

func TestPicker_CursorBounds(t *testing.T) {
	t.Parallel()

	m := press(t, newPicker("Select apps", envNames), "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", m.cursor)
	}
	m = press(t, m, "down", "down", "down", "down")
	if m.cursor != 2 {
		t.Errorf("cursor = %d after moving past the end, want 2", m.cursor)
	}
}
