// Package tui is the interactive terminal front end: a text area, a mode and
// language selector, the latest result, and the session history.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/doeshing/wai-go/internal/application/assistant"
	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusHistory
)

// generationDoneMsg carries the outcome of the service call back into Update.
type generationDoneMsg struct {
	output string
	err    error
}

// Options tweak the model; zero values are usable.
type Options struct {
	CopyOnSuccess bool
	DisplayLimit  int
	// ExportDir receives history exports; defaults to the working directory.
	ExportDir string
	Now       func() time.Time
}

// Model is the Bubble Tea model. It never mutates domain state directly;
// every transition goes through the orchestrator.
type Model struct {
	orch *assistant.Orchestrator
	opts Options

	input   textarea.Model
	filter  textinput.Model
	result  viewport.Model
	spinner spinner.Model
	help    help.Model

	focus     focusArea
	filtering bool
	selected  int
	// lastLabel heads the result pane; entries may be filtered.
	lastLabel string
	entries   []domain.HistoryEntry
	status    string
	width     int
	height    int
}

// New builds the model around an orchestrator.
func New(orch *assistant.Orchestrator, opts Options) *Model {
	if opts.DisplayLimit <= 0 {
		opts.DisplayLimit = domain.DefaultHistoryDisplayLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ta := textarea.New()
	ta.Placeholder = "Type or paste the text to transform..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(8)
	ta.Focus()

	fi := textinput.New()
	fi.Prompt = "/"
	fi.Placeholder = "filter history"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ModeStyle

	return &Model{
		orch:    orch,
		opts:    opts,
		input:   ta,
		filter:  fi,
		result:  viewport.New(80, 8),
		spinner: sp,
		help:    help.New(),
		width:   80,
		height:  40,
	}
}

// Run starts the program on the alternate screen and blocks until exit.
func Run(ctx context.Context, orch *assistant.Orchestrator, opts Options) error {
	p := tea.NewProgram(New(orch, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// generate performs the only suspension point: the service call runs inside
// a tea.Cmd and its outcome returns as a message.
func (m *Model) generate(payload domain.RequestPayload) tea.Cmd {
	service := m.orch.Service
	return func() tea.Msg {
		out, err := service.Generate(context.Background(), payload)
		return generationDoneMsg{output: out, err: err}
	}
}

func (m *Model) refreshHistory() {
	entries, err := m.orch.Search(strings.TrimSpace(m.filter.Value()), m.opts.DisplayLimit)
	if err != nil {
		m.status = "history unavailable: " + err.Error()
		return
	}
	m.entries = entries
	if m.selected >= len(m.entries) {
		m.selected = max(len(m.entries)-1, 0)
	}
}

func (m *Model) selectedEntry() (domain.HistoryEntry, bool) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return domain.HistoryEntry{}, false
	}
	return m.entries[m.selected], true
}

func (m *Model) exportHistory() {
	exporter, ok := m.orch.History.(ports.HistoryExporter)
	if !ok {
		m.status = "export not supported by this history backend"
		return
	}
	dir := m.opts.ExportDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("wai-history-%s.jsonl", m.opts.Now().Format("20060102-150405")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.SecureFilePermissions)
	if err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	defer file.Close()
	if err := exporter.Export(file); err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("exported %d entries to %s", m.orch.History.Len(), path)
}
