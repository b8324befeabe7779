package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/scrollgen/internal/storage"
)

func testRuns() []storage.Run {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []storage.Run{
		{ID: 3, Seed: 30, Preset: "meadow", Cols: 64, Rows: 32, CreatedAt: now},
		{ID: 2, Seed: 20, Preset: "lakeside", Cols: 64, Rows: 32, CreatedAt: now},
		{ID: 1, Seed: 10, Preset: "meadow", Cols: 64, Rows: 32, CreatedAt: now},
	}
}

func TestHistoryPresets(t *testing.T) {
	m := newHistoryModel(testRuns(), 80, 24)
	if got := strings.Join(m.presets, ","); got != "all,meadow,lakeside" {
		t.Errorf("presets = %s, expected all,meadow,lakeside", got)
	}
	if len(m.Shown()) != 3 {
		t.Errorf("all shows %d runs, expected 3", len(m.Shown()))
	}
}

func TestHistoryCyclePresets(t *testing.T) {
	m := newHistoryModel(testRuns(), 80, 24)
	tab := tea.KeyMsg{Type: tea.KeyTab}

	tests := []struct {
		preset string
		runs   int
	}{
		{"meadow", 2},
		{"lakeside", 1},
		{"all", 3},
	}
	for _, tt := range tests {
		next, _ := m.Update(tab)
		m = next.(HistoryModel)
		if m.Preset() != tt.preset || len(m.Shown()) != tt.runs {
			t.Errorf("preset %s shows %d runs, expected %s with %d", m.Preset(), len(m.Shown()), tt.preset, tt.runs)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := next.(HistoryModel).Preset(); got != "lakeside" {
		t.Errorf("shift+tab from all = %s, expected lakeside", got)
	}
}

func TestHistoryEmpty(t *testing.T) {
	m, err := NewHistoryModel(nil, 60, 20)
	if err != nil {
		t.Fatalf("NewHistoryModel(nil) error: %v", err)
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty history has no placeholder")
	}
}

func TestHistoryViewLayouts(t *testing.T) {
	for _, width := range []int{60, 120} {
		m := newHistoryModel(testRuns(), width, 24)
		out := m.View()
		if !strings.Contains(out, "GENERATION HISTORY") || !strings.Contains(out, "lakeside") {
			t.Errorf("width %d: View() missing title or presets", width)
		}
	}
}

func TestSessionSeed(t *testing.T) {
	now := time.Unix(0, 777)
	tests := []struct {
		user string
		want int64
	}{
		{"42", 42},
		{"-7", -7},
		{"alice", 777},
		{"0", 777},
	}
	for _, tt := range tests {
		if got := SessionSeed(tt.user, now); got != tt.want {
			t.Errorf("SessionSeed(%q) = %d, expected %d", tt.user, got, tt.want)
		}
	}
}
