package cli

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/doeshing/wai-go/internal/ports"
)

// Clipboard implements ports.Clipboard on top of the system clipboard.
type Clipboard struct{}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Enabled reports whether a clipboard utility was found at startup.
func (c *Clipboard) Enabled() bool {
	return !clipboard.Unsupported
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if !c.Enabled() {
		return errors.New("no clipboard utility available (install xclip, xsel or wl-clipboard)")
	}
	return clipboard.WriteAll(text)
}

var _ ports.Clipboard = (*Clipboard)(nil)
