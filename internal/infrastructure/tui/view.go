package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/doeshing/wai-go/internal/domain"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")

	inputBox := InactiveBorderStyle
	if m.focus == focusInput {
		inputBox = ActiveBorderStyle
	}
	b.WriteString(inputBox.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render(fmt.Sprintf(" %d characters", utf8.RuneCountInString(m.input.Value()))))
	b.WriteString("\n\n")

	b.WriteString(m.resultView())
	b.WriteString("\n\n")
	b.WriteString(m.historyView())
	b.WriteString("\n")
	b.WriteString(m.messageView())
	b.WriteString("\n")
	if m.focus == focusHistory {
		b.WriteString(m.help.View(historyHelp{}))
	} else {
		b.WriteString(m.help.View(inputHelp{}))
	}
	return b.String()
}

func (m *Model) headerView() string {
	var tabs []string
	for i, mode := range domain.Modes {
		label := fmt.Sprintf("%d %s", i+1, mode.Name())
		if mode == m.orch.Modes.Mode() {
			tabs = append(tabs, SelectedStyle.Render(" "+label+" "))
		} else {
			tabs = append(tabs, NormalStyle.Render(" "+label+" "))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, TitleStyle.Render("wai "), strings.Join(tabs, " "))
	if m.orch.Modes.Mode().RequiresLanguage() {
		header += "  " + ModeStyle.Render("→ "+m.orch.Modes.TargetLanguage().Name())
	}
	return header
}

func (m *Model) resultView() string {
	switch state := m.orch.State().(type) {
	case domain.Pending:
		return fmt.Sprintf("%s %s", m.spinner.View(), HeaderStyle.Render("Processing "+state.Payload.Mode.Name()+"..."))
	case domain.Succeeded:
		title := "Result"
		if m.lastLabel != "" {
			title = m.lastLabel
		}
		return HeaderStyle.Render(title) + "\n" + m.result.View()
	default:
		return HeaderStyle.Render("Result") + "\n" + DimStyle.Render("  nothing yet")
	}
}

func (m *Model) historyView() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("History (%d)", m.orch.History.Len())))
	switch {
	case m.filtering:
		b.WriteString("  " + m.filter.View())
	case m.filter.Value() != "":
		b.WriteString("  " + DimStyle.Render("filter: "+m.filter.Value()))
	}
	b.WriteString("\n")
	if len(m.entries) == 0 {
		if m.filter.Value() != "" {
			b.WriteString(DimStyle.Render("  no matching transformations"))
		} else {
			b.WriteString(DimStyle.Render("  no transformations yet"))
		}
		return b.String()
	}

	width := uint(max(m.width-40, 20))
	now := m.opts.Now()
	for i, entry := range m.entries {
		preview := strings.Join(strings.Fields(entry.InputText), " ")
		line := fmt.Sprintf("%-24s %-16s %s",
			entry.Label(),
			humanize.RelTime(entry.CreatedAt, now, "ago", "from now"),
			truncate.StringWithTail(preview, width, "…"),
		)
		if m.focus == focusHistory && i == m.selected {
			b.WriteString(SelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(NormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// messageView shows the orchestrator's single user-visible message, falling
// back to the last local status.
func (m *Model) messageView() string {
	if msg := m.orch.Message(); msg != "" {
		return ErrorStyle.Render("✗ " + msg)
	}
	if m.status != "" {
		return SuccessStyle.Render(m.status)
	}
	return ""
}
