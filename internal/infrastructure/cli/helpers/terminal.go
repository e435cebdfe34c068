package helpers

import (
	"io"

	"github.com/charmbracelet/x/term"
)

type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether stream (a reader or writer) is attached to a terminal.
func IsTerminal(stream interface{}) bool {
	f, ok := stream.(fder)
	return ok && term.IsTerminal(f.Fd())
}

// Width returns the terminal width of w, or DefaultWrapWidth when unknown.
func Width(w io.Writer) int {
	f, ok := w.(fder)
	if !ok {
		return DefaultWrapWidth
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil || width <= 0 {
		return DefaultWrapWidth
	}
	return width
}
