// Package ui drives the dashboard: a Bubble Tea model that reads the
// tracker's latest snapshot each tick and renders the card grid.
//
// The poll loop is the only goroutine touching the snapshot buffer;
// this model is the only code touching display state. The two meet at
// Tracker.Current, one atomic read per tick.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/gpudeck/gpudeck/internal/config"
	"github.com/gpudeck/gpudeck/internal/layout"
	"github.com/gpudeck/gpudeck/internal/model"
	"github.com/gpudeck/gpudeck/internal/render"
	"github.com/gpudeck/gpudeck/internal/tracker"
)

// chromeRows are the header and footer lines around the card grid.
const chromeRows = 2

// Model renders live snapshots from the tracker.
type Model struct {
	cfg  config.Config
	trk  *tracker.Tracker
	log  *zap.Logger
	grid layout.Grid

	overview  render.ViewRenderer
	processes render.ViewRenderer
	active    render.ViewRenderer

	width    int
	height   int
	haveSize bool
	quitting bool
	fatal    error
}

func NewModel(cfg config.Config, trk *tracker.Tracker, log *zap.Logger) *Model {
	m := &Model{
		cfg:       cfg,
		trk:       trk,
		log:       log,
		overview:  render.Overview{},
		processes: render.ProcessList{},
	}
	m.active = m.overview
	return m
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/5, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) Init() tea.Cmd { return tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if err := m.resize(msg.Width, msg.Height); err != nil {
			m.fatal = err
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		// State changes arrive through the tracker; the tick only
		// schedules the next redraw.
		return m, tickCmd()
	}
	return m, nil
}

// resize recomputes the grid for new terminal dimensions. The device
// count and active view are unchanged; an invalid layout is fatal.
func (m *Model) resize(width, height int) error {
	grid, err := layout.New(m.trk.NumDevices(), height-chromeRows, width)
	if err != nil {
		return err
	}
	if m.cfg.CardWidth > 0 && grid.CellWidth > m.cfg.CardWidth {
		grid.CellWidth = m.cfg.CardWidth
	}
	m.width, m.height = width, height
	m.grid = grid
	m.haveSize = true
	m.log.Debug("grid recomputed",
		zap.Int("side", grid.Side),
		zap.Int("cell_height", grid.CellHeight),
		zap.Int("cell_width", grid.CellWidth))
	return nil
}

// toggleView swaps the active renderer. Cards are rebuilt from scratch
// on the next redraw; geometry is untouched, so toggling twice lands
// exactly where it started.
func (m *Model) toggleView() {
	if m.active == m.overview {
		m.active = m.processes
	} else {
		m.active = m.overview
	}
}

// Err returns the fatal error that ended the session, if any.
func (m *Model) Err() error { return m.fatal }

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.haveSize {
		return subtleStyle.Render("measuring terminal...")
	}

	set := m.trk.Current()
	if len(set) == 0 {
		return m.header() + "\n" + subtleStyle.Render("waiting for first snapshot...")
	}

	cell := render.Cell{
		Width:  m.grid.CellWidth - 2, // card border
		Height: m.grid.CellHeight - 2,
	}

	rows := make([]string, 0, m.grid.Rows())
	for r := 0; r < m.grid.Rows(); r++ {
		cards := make([]string, 0, m.grid.Side)
		for _, idx := range m.grid.Row(r) {
			cards = append(cards, m.renderCard(idx, set[idx], cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		append([]string{m.header()}, append(rows, m.footer())...)...)
}

// renderCard draws one device's cell content inside a border, padded
// and clipped so every card in a row has identical geometry.
func (m *Model) renderCard(idx int, snap model.DeviceSnapshot, cell render.Cell) string {
	lines := padLines(m.active.Render(idx, snap, cell), cell.Height)
	clip := lipgloss.NewStyle().MaxWidth(cell.Width)
	for i, line := range lines {
		lines[i] = clip.Render(line)
	}
	return cardStyle.Width(cell.Width).Height(cell.Height).Render(strings.Join(lines, "\n"))
}

func (m *Model) header() string {
	return titleStyle.Render("gpudeck") + "  " +
		subtleStyle.Render(fmt.Sprintf("%d device(s) · view: %s", m.trk.NumDevices(), m.active.Name()))
}

func (m *Model) footer() string {
	return subtleStyle.Render("q: quit · p: toggle view")
}

// padLines extends lines with blanks up to height so short content
// still fills the card.
func padLines(lines []string, height int) []string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// Run starts the poll loop, hands the terminal to Bubble Tea, and joins
// the loop on the way out. A fatal layout error surfaces after the
// terminal is restored, never through a panic mid-render.
func Run(cfg config.Config, trk *tracker.Tracker, loop *tracker.PollLoop, log *zap.Logger) error {
	m := NewModel(cfg, trk, log)

	loop.Start()
	defer loop.Stop()

	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return err
	}
	return m.fatal
}
