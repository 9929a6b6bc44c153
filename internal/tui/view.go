package tui

import (
	"fmt"
	"strings"

	"renamer/internal/preview"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const maxOutcomeErrors = 5

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("renamer"))
	sb.WriteString(" " + m.styles.Muted.Render(fmt.Sprintf("%d files", len(m.engine.Selection()))))
	sb.WriteString("\n\n")

	if m.showHistory {
		sb.WriteString(m.historyView())
	} else {
		sb.WriteString(m.styles.Label.Render("Pattern") + m.pattern.View() + "\n")
		sb.WriteString(m.styles.Label.Render("Replacement") + m.replacement.View() + "\n")
		sb.WriteString(m.togglesView() + "\n")
		sb.WriteString(m.styles.Panel.Render(m.table.View()) + "\n")
		if out := m.outcomeView(); out != "" {
			sb.WriteString(out + "\n")
		}
	}

	sb.WriteString(m.status.View() + "\n")
	if m.showHistory {
		sb.WriteString(m.help.View(historyKeys(m.keys)))
	} else {
		sb.WriteString(m.help.View(m.keys))
	}

	return m.styles.App.Render(sb.String())
}

func (m *Model) togglesView() string {
	toggle := func(on bool, label string) string {
		if on {
			return m.styles.ToggleOn.Render("[x] " + label)
		}
		return m.styles.ToggleOff.Render("[ ] " + label)
	}
	return toggle(m.regex, "regex") + "  " + toggle(m.caseInsensitive, "ignore case")
}

func (m *Model) outcomeView() string {
	if m.outcome == nil {
		return ""
	}
	o := m.outcome

	summary := fmt.Sprintf("Renamed %d files", o.SuccessCount)
	style := m.styles.Success
	if o.HasFailures() {
		summary += fmt.Sprintf(", %d failed", o.FailureCount)
		style = m.styles.Error
	}

	lines := []string{style.Render(summary)}
	for i, e := range o.Errors {
		if i == maxOutcomeErrors {
			lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("  and %d more", len(o.Errors)-i)))
			break
		}
		lines = append(lines, m.styles.Error.Render("  ✗ "+e))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) historyView() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Label.Render("History") + "\n")

	if len(m.history) == 0 {
		sb.WriteString(m.styles.Muted.Render("No transforms applied yet") + "\n")
		return sb.String()
	}

	for i, h := range m.history {
		line := h.Spec().String()
		when := m.styles.Muted.Render(humanize.Time(h.Timestamp))
		if i == m.historyCursor {
			sb.WriteString(m.styles.Selected.Render("> "+line) + "  " + when + "\n")
			continue
		}
		sb.WriteString("  " + line + "  " + when + "\n")
	}
	return sb.String()
}

// renderPreview lays out one line per file: changed files show
// "● old → new", unchanged files are dimmed
func renderPreview(set preview.Set, s Styles) string {
	if set.Len() == 0 {
		return s.Muted.Render("No files selected. Pass files on the command line or forward them with `renamer send`.")
	}

	width := 0
	for _, e := range set.Entries {
		if w := lipgloss.Width(e.OriginalName); w > width {
			width = w
		}
	}

	lines := make([]string, 0, set.Len())
	for _, e := range set.Entries {
		if !e.HasChanged {
			lines = append(lines, s.Unchanged.Render("  "+e.OriginalName))
			continue
		}
		pad := strings.Repeat(" ", width-lipgloss.Width(e.OriginalName))
		lines = append(lines, s.Changed.Render("● "+e.OriginalName)+pad+s.Arrow.Render(" → ")+s.Changed.Render(e.NewName))
	}
	return strings.Join(lines, "\n")
}
