package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/stepwise/internal/config"
)

// View renders the current browser state.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case viewDetail:
		return m.renderDetail()
	default:
		return m.renderList()
	}
}

func (m Model) renderList() string {
	sections := []string{m.renderHeader()}

	if len(m.cfg.Procedures) == 0 {
		sections = append(sections, emptyStateStyle.Render("No procedures defined in this configuration."))
	} else {
		sections = append(sections, m.renderProcedureItems())
	}

	hints := []string{
		"up/down: navigate",
		"enter: inspect",
		"1-9: jump",
		"q: quit",
	}
	sections = append(sections, footerStyle.Render(strings.Join(hints, m.hintSeparator())))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(m.title())

	steps := 0
	for _, proc := range m.cfg.Procedures {
		steps += len(proc.Steps)
	}
	summary := fmt.Sprintf("%d procedures, %d steps, %d vars", len(m.cfg.Procedures), steps, len(m.cfg.Vars))
	if m.path != "" {
		summary += mutedStyle.Render("  " + m.path)
	}

	return headerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, summary))
}

func (m Model) renderProcedureItems() string {
	visible := m.visibleItems()
	start := m.scrollOffset
	end := start + visible
	if end > len(m.cfg.Procedures) {
		end = len(m.cfg.Procedures)
	}

	var items []string
	if start > 0 {
		items = append(items, mutedStyle.Render(m.moreAbove()))
	}
	for i := start; i < end; i++ {
		items = append(items, m.renderProcedureItem(i, i == m.cursor))
	}
	if end < len(m.cfg.Procedures) {
		items = append(items, mutedStyle.Render(m.moreBelow()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m Model) renderProcedureItem(index int, selected bool) string {
	proc := m.cfg.Procedures[index]

	line1 := fmt.Sprintf("%d. %s", index+1, stepLabelStyle.Render(proc.Name))

	detail := fmt.Sprintf("%d steps", len(proc.Steps))
	if len(proc.Steps) == 1 {
		detail = "1 step"
	}
	if proc.Description != "" {
		detail = fmt.Sprintf("%s (%s)", proc.Description, detail)
	}
	line2 := mutedStyle.Render(detail)

	content := lipgloss.JoinVertical(lipgloss.Left, line1, line2)
	if selected {
		return selectedItemStyle.Render(content)
	}
	return itemStyle.Render(content)
}

func (m Model) renderDetail() string {
	selected, ok := m.SelectedProcedure()
	if !ok {
		return m.renderList()
	}

	title := titleStyle.Render(fmt.Sprintf("[%d/%d] %s", m.cursor+1, len(m.cfg.Procedures), selected.Name))
	sections := []string{title}

	if selected.Description != "" {
		sections = append(sections, mutedStyle.Render(selected.Description))
	}

	if m.ready {
		sections = append(sections, m.detail.View())
		if m.detail.TotalLineCount() > m.detail.VisibleLineCount() {
			pct := m.detail.ScrollPercent() * 100
			sections = append(sections, mutedStyle.Render(fmt.Sprintf("%3.0f%%", pct)))
		}
	} else {
		sections = append(sections, m.stepListing(selected))
	}

	hints := []string{
		"up/down: scroll",
		"left/right: switch procedure",
		"esc: back",
		"q: quit",
	}
	sections = append(sections, footerStyle.Render(strings.Join(hints, m.hintSeparator())))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// stepListing renders the step-by-step body shown in the detail viewport.
// When a step has an explicit name the command is printed underneath it,
// prefixed with $ the way it would be typed in a terminal.
func (m Model) stepListing(proc config.Procedure) string {
	var lines []string
	for i, step := range proc.Steps {
		lines = append(lines, fmt.Sprintf("%2d. %s", i+1, stepLabelStyle.Render(step.Label())))
		if step.Name != "" {
			lines = append(lines, commandStyle.Render("    $ "+step.Command))
		}
		if meta := stepMeta(step); meta != "" {
			lines = append(lines, mutedStyle.Render("    "+meta))
		}
		if i < len(proc.Steps)-1 {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

func stepMeta(step config.Step) string {
	var parts []string
	if step.Shell != "" {
		parts = append(parts, "shell: "+step.Shell)
	}
	if step.WorkDir != "" {
		parts = append(parts, "workdir: "+step.WorkDir)
	}
	if len(step.Env) > 0 {
		keys := make([]string, 0, len(step.Env))
		for key := range step.Env {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts = append(parts, "env: "+strings.Join(keys, ", "))
	}
	return strings.Join(parts, "  ")
}

func (m Model) title() string {
	if strings.TrimSpace(m.cfg.Name) != "" {
		return m.cfg.Name
	}
	return m.path
}

func (m Model) hintSeparator() string {
	if m.useUnicode {
		return "  •  "
	}
	return "  |  "
}

func (m Model) moreAbove() string {
	if m.useUnicode {
		return "▲ more"
	}
	return "^ more"
}

func (m Model) moreBelow() string {
	if m.useUnicode {
		return "▼ more"
	}
	return "v more"
}
