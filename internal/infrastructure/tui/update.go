package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/doeshing/wai-go/internal/domain"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !domain.IsPending(m.orch.State()) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case generationDoneMsg:
		return m, m.handleDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}
	if m.filtering {
		return m, m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Submit):
		return m, m.submit()
	case key.Matches(msg, keys.NextMode):
		m.orch.Modes.SetMode(m.orch.Modes.Mode().Next())
		return m, nil
	case key.Matches(msg, keys.ModeShort):
		m.pickMode(msg.String()[len(msg.String())-1:])
		return m, nil
	case key.Matches(msg, keys.NextLang):
		m.orch.Modes.SetTargetLanguage(m.orch.Modes.TargetLanguage().Next())
		return m, nil
	case key.Matches(msg, keys.PrevLang):
		m.orch.Modes.SetTargetLanguage(m.orch.Modes.TargetLanguage().Prev())
		return m, nil
	case key.Matches(msg, keys.CopyResult):
		m.status = ""
		if err := m.orch.CopyLatest(); err == nil {
			m.status = "result copied to clipboard"
		} else if !isClipboardErr(err) {
			m.status = err.Error()
		}
		return m, nil
	case key.Matches(msg, keys.Export):
		m.exportHistory()
		return m, nil
	case key.Matches(msg, keys.SwitchFocus):
		m.toggleFocus()
		return m, nil
	}

	if m.focus == focusHistory {
		return m, m.handleHistoryKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, keys.Down):
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
	case key.Matches(msg, keys.ReEdit):
		entry, ok := m.selectedEntry()
		if !ok {
			return nil
		}
		text, err := m.orch.ReEdit(entry.ID)
		if err != nil {
			m.status = err.Error()
			return nil
		}
		m.input.SetValue(text)
		m.status = "loaded entry into the editor"
		m.toggleFocus()
	case key.Matches(msg, keys.Filter):
		m.filtering = true
		return m.filter.Focus()
	case key.Matches(msg, keys.CopyEntry):
		entry, ok := m.selectedEntry()
		if !ok {
			return nil
		}
		m.status = ""
		if err := m.orch.CopyEntry(entry.ID); err == nil {
			m.status = "entry copied to clipboard"
		}
	case msg.Type == tea.KeyLeft:
		m.orch.Modes.SetTargetLanguage(m.orch.Modes.TargetLanguage().Prev())
	case msg.Type == tea.KeyRight:
		m.orch.Modes.SetTargetLanguage(m.orch.Modes.TargetLanguage().Next())
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		m.pickMode(string(msg.Runes))
	}
	return nil
}

// handleFilterKey edits the history filter. Enter keeps it, esc clears it.
func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.selected = 0
		m.refreshHistory()
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.selected = 0
	m.refreshHistory()
	return cmd
}

// submit hands the input to the orchestrator. Validation failures and
// submissions while pending are reported through the message line only.
func (m *Model) submit() tea.Cmd {
	m.status = ""
	payload, err := m.orch.Begin(m.input.Value())
	if err != nil {
		if errors.Is(err, domain.ErrRequestPending) {
			m.status = "a request is already in progress"
		}
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.generate(payload))
}

func (m *Model) handleDone(msg generationDoneMsg) tea.Cmd {
	entry, ok := m.orch.Resolve(msg.output, msg.err)
	if !ok {
		// An unrecorded result is still shown; Message carries the failure.
		if _, succeeded := m.orch.State().(domain.Succeeded); !succeeded {
			return nil
		}
	}
	m.lastLabel = entry.Label()
	m.result.SetContent(wordwrap.String(entry.OutputText, max(m.result.Width-2, 10)))
	m.result.GotoTop()
	m.refreshHistory()
	m.selected = 0
	if m.opts.CopyOnSuccess {
		if err := m.orch.Copy(entry.OutputText); err == nil {
			m.status = "result copied to clipboard"
		}
	}
	return nil
}

func (m *Model) pickMode(digit string) {
	if len(digit) != 1 {
		return
	}
	idx := int(digit[0]) - '1'
	if idx < 0 || idx >= len(domain.Modes) {
		return
	}
	m.orch.Modes.SetMode(domain.Modes[idx])
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusHistory
		m.input.Blur()
		m.refreshHistory()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	inner := max(width-4, 20)
	m.input.SetWidth(inner)
	m.result.Width = inner
	m.result.Height = max(height/4, 4)
	m.help.Width = width
}

func isClipboardErr(err error) bool {
	var cerr *domain.ClipboardError
	return errors.As(err, &cerr)
}
