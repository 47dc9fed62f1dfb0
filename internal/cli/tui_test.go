package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/okrdash/pkg/report"
)

var testPresets = []report.PresetInfo{
	{Name: "classic", Title: "Classic board", Description: "two gauges"},
	{Name: "extended", Title: "Extended board"},
	{Name: "live", Title: "Live board", Description: "with a badge"},
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestPresetPickerNavigation(t *testing.T) {
	m := press(NewPresetPickerModel(testPresets), "down", "down", "down", "up").(PresetPickerModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	m = press(m, "k", "k").(PresetPickerModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 after moving past the top", m.Cursor)
	}
}

func TestPresetPickerSelect(t *testing.T) {
	m := NewPresetPickerModel(testPresets)
	updated, cmd := press(m, "j", "j").Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(PresetPickerModel)
	if got.Selected == nil || got.Selected.Name != "live" {
		t.Fatalf("Selected = %+v, want live", got.Selected)
	}
	if cmd == nil {
		t.Error("enter did not quit the picker")
	}
}

func TestPresetPickerQuit(t *testing.T) {
	updated, cmd := NewPresetPickerModel(testPresets).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if updated.(PresetPickerModel).Selected != nil {
		t.Error("quitting selected a preset")
	}
	if cmd == nil {
		t.Error("q did not quit the picker")
	}
}

func TestPresetPickerView(t *testing.T) {
	view := NewPresetPickerModel(testPresets).View()
	for _, want := range []string{"Select Preset", "classic", "Extended board", "two gauges"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if strings.Contains(view, "with a badge") {
		t.Error("View() shows the description of an unselected preset")
	}
}

func TestPresetTable(t *testing.T) {
	out := presetTable(testPresets)
	for _, p := range testPresets {
		if !strings.Contains(out, p.Name) || !strings.Contains(out, p.Title) {
			t.Errorf("presetTable() missing %s", p.Name)
		}
	}
}
