package ui

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitUpper  = "Q"
	KeyQuitAlt    = "ctrl+c"
	KeyToggleView = "p"
)

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyQuitAlt:
		m.quitting = true
		return m, tea.Quit

	case KeyToggleView:
		m.toggleView()
		return m, nil
	}
	return m, nil
}
