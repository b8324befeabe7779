package tui

import (
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/export"
	"github.com/vovakirdan/scrollgen/internal/gfx"
	"github.com/vovakirdan/scrollgen/internal/level"
	"github.com/vovakirdan/scrollgen/internal/viewer"
)

// Terminal rows used below the picture by the status line and the help
// view, short and full.
const (
	chromeRows     = 2
	fullChromeRows = 5
)

// PreviewOptions configures the terminal preview.
type PreviewOptions struct {
	Zoom     int // level pixels per terminal column, 0 = derive from the tile size
	Sky      core.RGB
	Generate viewer.GenerateFunc
	Logger   *log.Logger
}

// Model is the Bubble Tea model for previewing a generated level.
type Model struct {
	opts     PreviewOptions
	config   core.RuntimeConfig
	lvl      *level.Level
	view     *viewer.View
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	zoom     int
	err      error
	quitting bool
}

// NewModel generates the first level and creates a preview model for it.
func NewModel(opts PreviewOptions, cfg core.RuntimeConfig) (Model, error) {
	if opts.Generate == nil {
		return Model{}, fmt.Errorf("tui: no generator")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		opts:   opts,
		config: cfg,
		screen: core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-chromeRows)),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	if err := m.load(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) load() error {
	lvl, err := m.opts.Generate(gfx.NewMemoryBackend(), m.config.Seed)
	if err != nil {
		return err
	}
	m.lvl = lvl
	m.zoom = m.opts.Zoom
	if m.zoom <= 0 {
		m.zoom = core.Max(1, lvl.TileDim/4)
	}
	w, h := m.viewSize()
	m.view = &viewer.View{
		Camera: viewer.NewCamera(lvl.WidthPx(), lvl.HeightPx(), w, h, 2*m.zoom),
		Anim:   viewer.NewAnimator(core.Max(1, m.config.TickRate/4)),
	}
	m.opts.Logger.Debug("preview level loaded", "seed", m.config.Seed, "elements", len(lvl.Elements))
	return nil
}

// viewSize returns the camera viewport in level pixels.
func (m Model) viewSize() (int, int) {
	return m.screen.Width() * m.zoom, m.screen.Height() * 2 * m.zoom
}

// Level returns the level being shown.
func (m Model) Level() *level.Level {
	return m.lvl
}

// Seed returns the seed of the level being shown.
func (m Model) Seed() int64 {
	return m.config.Seed
}

// Init starts the animation clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m.view.Anim.Tick()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	switch m.view.Handle(m.keys.MapKey(msg)) {
	case viewer.ResultQuit:
		m.quitting = true
		return m, tea.Quit
	case viewer.ResultRegenerate:
		prev := m.config.Seed
		m.config.Seed = time.Now().UnixNano()
		if err := m.load(); err != nil {
			m.opts.Logger.Error("regenerate failed", "seed", m.config.Seed, "err", err)
			m.err = err
			m.config.Seed = prev
			return m, nil
		}
		m.err = nil
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.layout()
	return m, nil
}

// layout fits the picture into the terminal below the chrome.
func (m *Model) layout() {
	chrome := chromeRows
	if m.help.ShowAll {
		chrome = fullChromeRows
	}
	m.screen.Resize(m.config.ScreenW, core.Max(1, m.config.ScreenH-chrome))
	m.view.Camera.Resize(m.viewSize())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	cam := m.view.Camera
	r := cam.Rect()
	window := image.Rect(r.X, r.Y, r.Right(), r.Bottom())
	img := export.ComposeView(m.lvl, m.view.Anim.Frame, m.opts.Sky.RGBA(), window)
	m.screen.Clear()
	Rasterize(m.screen, img)

	status := fmt.Sprintf(" seed %d  frame %d  x %d/%d  trees %d+%d",
		m.config.Seed, m.view.Anim.Frame, cam.X, core.Max(0, cam.LevelW-cam.ViewW),
		m.lvl.Stats.Trees, m.lvl.Stats.BackTrees)
	if !m.view.Anim.Playing {
		status += "  (paused)"
	}
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	if m.err != nil {
		status = " " + m.err.Error()
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return RenderScreen(m.screen) + "\n" + statusStyle.Render(status) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with a preview model.
func Run(opts PreviewOptions, cfg core.RuntimeConfig) error {
	model, err := NewModel(opts, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
