package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubbletea messages and updates browser state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sizeDetail()
		m.ensureCursorVisible()
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	if m.mode == viewDetail && m.ready {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case viewDetail:
		return m.handleDetailKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.MoveCursorUp()
		return m, nil

	case "down", "j":
		m.MoveCursorDown()
		return m, nil

	// Direct selection with number keys (1-indexed like the list).
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.SetCursor(int(msg.String()[0] - '1'))
		return m, nil

	case "enter", " ":
		return m.openDetail()
	}

	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc", "backspace":
		m.mode = viewList
		return m, nil

	// Flip to the neighbouring procedure without going back to the list.
	case "left", "h":
		m.MoveCursorUp()
		return m.openDetail()

	case "right", "l":
		m.MoveCursorDown()
		return m.openDetail()
	}

	// Everything else (arrows, pgup/pgdown, mouse wheel) scrolls the steps.
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	selected, ok := m.SelectedProcedure()
	if !ok {
		return m, nil
	}
	if !m.ready {
		m.sizeDetail()
	}
	m.mode = viewDetail
	m.detail.SetContent(m.stepListing(selected))
	m.detail.GotoTop()
	return m, nil
}

// sizeDetail fits the viewport to the current terminal, leaving room for
// the title, description and footer rows around it.
func (m *Model) sizeDetail() {
	contentWidth := m.width - 4
	contentHeight := m.height - 8
	if contentWidth < 1 {
		contentWidth = 1
	}
	if contentHeight < 1 {
		contentHeight = 1
	}

	if !m.ready {
		m.detail = viewport.New(contentWidth, contentHeight)
		m.ready = true
	} else {
		m.detail.Width = contentWidth
		m.detail.Height = contentHeight
	}

	if m.mode == viewDetail {
		if selected, ok := m.SelectedProcedure(); ok {
			m.detail.SetContent(m.stepListing(selected))
		}
	}
}
