package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/jot/internal/prefs"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showDiagnostics {
		return m.renderDiagnostics()
	}

	sections := []string{m.renderHeader()}
	if banner := m.renderBanner(); banner != "" {
		sections = append(sections, banner)
	}
	if m.mode == modeCompose {
		sections = append(sections, m.theme.Styles().Panel.Render(m.compose.View()))
	}
	sections = append(sections, m.renderList(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	open := 0
	for _, todo := range m.snapshot.Items {
		if !todo.Completed {
			open++
		}
	}

	left := styles.Title.Render("jot")
	info := fmt.Sprintf("%d open / %d total", open, len(m.snapshot.Items))
	if m.filter != prefs.FilterAll {
		info += " · showing " + m.filter
	}
	parts := []string{left, styles.Muted.Render(info)}
	if m.serviceURL != "" {
		parts = append(parts, styles.Muted.Render(m.serviceURL))
	}
	if m.pending > 0 {
		parts = append(parts, m.spinner.View())
	}
	return strings.Join(parts, "  ")
}

// renderBanner shows the last failure, then any transient status.
func (m Model) renderBanner() string {
	styles := m.theme.Styles()
	switch {
	case m.snapshot.LastError != "":
		return styles.Banner.Render(m.snapshot.LastError + "  (x to dismiss)")
	case m.status != "":
		return styles.Warning.Render(m.status)
	}
	return ""
}

func (m Model) renderList() string {
	styles := m.theme.Styles()
	items := m.visibleItems()
	if len(items) == 0 {
		msg := "No todos yet. Press a to add one."
		if m.pending > 0 && m.snapshot.LastRefreshed.IsZero() {
			msg = "Loading…"
		} else if len(m.snapshot.Items) > 0 {
			msg = fmt.Sprintf("No %s todos.", m.filter)
		}
		return styles.Muted.Render(msg)
	}

	var b strings.Builder
	for i, todo := range items {
		cursor := "  "
		if i == m.selected && m.mode != modeCompose {
			cursor = styles.Accent.Render("> ")
		}
		box := "[ ]"
		if todo.Completed {
			box = styles.Accent.Render("[x]")
		}

		var body string
		switch {
		case m.mode == modeEdit && m.snapshot.IsEditing(todo.ID):
			body = styles.EditLabel.Render("edit ") + m.edit.View()
		case todo.Completed:
			body = styles.Done.Render(todo.Body)
		case i == m.selected:
			body = styles.Selected.Render(todo.Body)
		default:
			body = styles.Text.Render(todo.Body)
		}

		b.WriteString(cursor + box + " " + body)
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderFooter() string {
	if m.mode == modeBrowse {
		return m.help.View(m.keys)
	}
	return m.help.View(inputKeys{k: m.keys})
}

func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Title.Render("Diagnostics"))
	if m.logFile != "" {
		b.WriteString("  " + styles.Muted.Render(m.logFile))
	}
	b.WriteString("\n\n")

	lines := m.diagnostics
	if m.height > 4 && len(lines) > m.height-4 {
		lines = lines[len(lines)-(m.height-4):]
	}
	if len(lines) == 0 {
		b.WriteString(styles.Muted.Render("No log entries."))
	} else {
		b.WriteString(styles.Text.Render(strings.Join(lines, "\n")))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("L or esc to close"))
	return b.String()
}
