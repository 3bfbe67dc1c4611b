package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/stepwise/internal/config"
)

// viewMode determines which screen to render.
type viewMode int

const (
	viewList viewMode = iota
	viewDetail
)

// Model is the interactive configuration browser behind `stepwise show`.
// The list screen enumerates procedures in declaration order; the detail
// screen shows one procedure's steps in a scrollable viewport. Commands
// are displayed exactly as written, so {{var}} references stay visible.
type Model struct {
	cfg  *config.Config
	path string

	mode         viewMode
	cursor       int
	scrollOffset int

	detail viewport.Model
	ready  bool

	width      int
	height     int
	useUnicode bool
}

// NewBrowser constructs a browser over a parsed configuration. The path is
// shown in the header so the user can tell which file they are looking at.
func NewBrowser(cfg *config.Config, path string, useUnicode bool) Model {
	return Model{
		cfg:        cfg,
		path:       path,
		mode:       viewList,
		useUnicode: useUnicode,
		width:      80,
		height:     24,
	}
}

// Init implements tea.Model. The browser has no background work to start.
func (m Model) Init() tea.Cmd {
	return nil
}

// SelectedProcedure returns the procedure under the cursor.
func (m Model) SelectedProcedure() (config.Procedure, bool) {
	if m.cfg == nil || m.cursor < 0 || m.cursor >= len(m.cfg.Procedures) {
		return config.Procedure{}, false
	}
	return m.cfg.Procedures[m.cursor], true
}

// MoveCursorUp moves the cursor up with wrapping.
func (m *Model) MoveCursorUp() {
	if len(m.cfg.Procedures) == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.cfg.Procedures) - 1
	}
	m.ensureCursorVisible()
}

// MoveCursorDown moves the cursor down with wrapping.
func (m *Model) MoveCursorDown() {
	if len(m.cfg.Procedures) == 0 {
		return
	}
	m.cursor++
	if m.cursor >= len(m.cfg.Procedures) {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

// SetCursor moves the cursor to a specific index, ignoring out-of-range values.
func (m *Model) SetCursor(index int) {
	if index >= 0 && index < len(m.cfg.Procedures) {
		m.cursor = index
		m.ensureCursorVisible()
	}
}

// Focus jumps straight to a procedure's detail screen, reporting whether
// the name matched a declared procedure.
func (m *Model) Focus(name string) bool {
	if m.cfg == nil {
		return false
	}
	for i, proc := range m.cfg.Procedures {
		if proc.Name != name {
			continue
		}
		m.SetCursor(i)
		if next, _ := m.openDetail(); next != nil {
			if updated, ok := next.(Model); ok {
				*m = updated
			}
		}
		return true
	}
	return false
}

// visibleItems returns how many two-line list entries fit on screen after
// the header, footer and scroll markers take their share.
func (m Model) visibleItems() int {
	rows := (m.height - 9) / 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}
