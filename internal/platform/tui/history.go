package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/scrollgen/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show the preset sidebar
	sidebarWidth       = 20  // Width of preset sidebar
	maxRuns            = 200 // Max runs to load
	allPresets         = "all"
)

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextPreset key.Binding
	PrevPreset key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPreset, k.PrevPreset, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextPreset, k.PrevPreset, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPreset: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next preset"),
		),
		PrevPreset: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev preset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded runs.
type HistoryModel struct {
	runs        []storage.Run // every loaded run, newest first
	presets     []string      // "all" followed by every preset seen
	cursor      int
	shown       []storage.Run
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel loads recent runs from the store.
func NewHistoryModel(store *storage.Store, width, height int) (HistoryModel, error) {
	var runs []storage.Run
	if store != nil {
		var err error
		runs, err = store.RecentRuns(maxRuns)
		if err != nil {
			return HistoryModel{}, err
		}
	}
	return newHistoryModel(runs, width, height), nil
}

func newHistoryModel(runs []storage.Run, width, height int) HistoryModel {
	presets := []string{allPresets}
	seen := make(map[string]bool)
	for _, r := range runs {
		if !seen[r.Preset] {
			seen[r.Preset] = true
			presets = append(presets, r.Preset)
		}
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		runs:        runs,
		presets:     presets,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.filter()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Seed", Width: 20},
		{Title: "Preset", Width: 10},
		{Title: "Size", Width: 8},
		{Title: "Trees", Width: 6},
		{Title: "ms", Width: 6},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Preset returns the preset currently shown.
func (m HistoryModel) Preset() string {
	return m.presets[m.cursor]
}

// Shown returns the runs currently listed.
func (m HistoryModel) Shown() []storage.Run {
	return m.shown
}

// filter selects the runs of the current preset and refreshes the table.
func (m *HistoryModel) filter() {
	m.shown = nil
	for _, r := range m.runs {
		if m.Preset() == allPresets || r.Preset == m.Preset() {
			m.shown = append(m.shown, r)
		}
	}

	rows := make([]table.Row, len(m.shown))
	for i, r := range m.shown {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.Seed),
			r.Preset,
			fmt.Sprintf("%dx%d", r.Cols, r.Rows),
			fmt.Sprintf("%d+%d", r.Trees, r.BackTrees),
			fmt.Sprintf("%d", r.DurationMs),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPreset):
			m.cursor = (m.cursor + 1) % len(m.presets)
			m.filter()
			return m, nil

		case key.Matches(msg, m.keys.PrevPreset):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.presets) - 1
			}
			m.filter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.filter()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	title := fmt.Sprintf("GENERATION HISTORY - %s (%d)", m.Preset(), len(m.shown))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with a preset sidebar.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Presets\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for i, p := range m.presets {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + p))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders preset tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.presets))
	for i, p := range m.presets {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(p)
		} else {
			tabs[i] = tabStyle.Render(" " + p + " ")
		}
	}
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.Preset())
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.shown) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nRun `scrollgen generate` to create a level.")
	}
	return m.table.View()
}

// centerText pads text so it is centered within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, width, height int) error {
	model, err := NewHistoryModel(store, width, height)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
