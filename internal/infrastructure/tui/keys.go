package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit      key.Binding
	NextMode    key.Binding
	ModeShort   key.Binding
	NextLang    key.Binding
	PrevLang    key.Binding
	CopyResult  key.Binding
	Export      key.Binding
	SwitchFocus key.Binding
	Up          key.Binding
	Down        key.Binding
	ReEdit      key.Binding
	CopyEntry   key.Binding
	Filter      key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Submit:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
	NextMode:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "mode")),
	ModeShort:   key.NewBinding(key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4"), key.WithHelp("alt+1-4", "pick mode")),
	NextLang:    key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "next language")),
	PrevLang:    key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("ctrl+←", "prev language")),
	CopyResult:  key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy result")),
	Export:      key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export history")),
	SwitchFocus: key.NewBinding(key.WithKeys("shift+tab", "esc"), key.WithHelp("shift+tab", "history")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	ReEdit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "re-edit")),
	CopyEntry:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// inputHelp and historyHelp implement help.KeyMap for the two focus areas.
type inputHelp struct{}

func (inputHelp) ShortHelp() []key.Binding {
	return []key.Binding{keys.Submit, keys.NextMode, keys.NextLang, keys.CopyResult, keys.SwitchFocus, keys.Export, keys.Quit}
}

func (h inputHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type historyHelp struct{}

func (historyHelp) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.ReEdit, keys.CopyEntry, keys.Filter, keys.SwitchFocus, keys.Quit}
}

func (h historyHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
