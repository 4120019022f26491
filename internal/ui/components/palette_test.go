package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPaletteSubmitTrimsInput(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.OpenWith("  session:end lunch  ")

	p, cmd := p.Update(key("enter"))
	if p.Visible() {
		t.Fatalf("palette should close on submit")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Input != "session:end lunch" {
		t.Fatalf("unexpected submit %+v", msg)
	}
}

func TestPaletteCancel(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	p, cmd := p.Update(key("esc"))
	if p.Visible() {
		t.Fatalf("palette should close on esc")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
}

func TestPaletteHistoryRecall(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.OpenWith("tasks:refresh")
	p, _ = p.Update(key("enter"))
	p.OpenWith("session:start")
	p, _ = p.Update(key("enter"))

	p.Open()
	p, _ = p.Update(key("up"))
	p, _ = p.Update(key("up"))
	if got := p.input.Value(); got != "tasks:refresh" {
		t.Fatalf("expected oldest entry, got %q", got)
	}
	p, _ = p.Update(key("down"))
	if got := p.input.Value(); got != "session:start" {
		t.Fatalf("expected newer entry, got %q", got)
	}
	p, _ = p.Update(key("down"))
	if got := p.input.Value(); got != "" {
		t.Fatalf("expected empty input past newest entry, got %q", got)
	}
}

func TestPaletteViewFiltersHints(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.OpenWith("session:")
	view := p.View()
	if !strings.Contains(view, "session:end [comment]") || strings.Contains(view, "task:add") {
		t.Fatalf("unexpected hints in view:\n%s", view)
	}
}
