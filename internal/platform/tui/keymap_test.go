package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/scrollgen/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey("a"), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", runeKey("d"), core.ActionRight},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"s", runeKey("s"), core.ActionDown},
		{"n", runeKey("n"), core.ActionNextFrame},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNextFrame},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionTogglePlay},
		{"r", runeKey("r"), core.ActionRegenerate},
		{"q", runeKey("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey("z"), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestHelpListsEveryBinding(t *testing.T) {
	km := DefaultKeyMap()
	n := 0
	for _, col := range km.FullHelp() {
		n += len(col)
	}
	if n != 9 {
		t.Errorf("FullHelp() has %d bindings, expected 9", n)
	}
}
