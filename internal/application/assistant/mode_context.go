package assistant

import "github.com/doeshing/wai-go/internal/domain"

// ModeContext holds the selected mode and target language.
// It performs no validation; the language is kept even when the mode
// does not use it so switching back to Translate restores the selection.
type ModeContext struct {
	mode     domain.Mode
	language domain.TargetLanguage
}

// NewModeContext builds a context with the given starting selection.
func NewModeContext(mode domain.Mode, language domain.TargetLanguage) *ModeContext {
	return &ModeContext{mode: mode, language: language}
}

// SetMode switches the active mode unconditionally.
func (c *ModeContext) SetMode(mode domain.Mode) {
	c.mode = mode
}

// SetTargetLanguage stores the language regardless of the current mode.
func (c *ModeContext) SetTargetLanguage(language domain.TargetLanguage) {
	c.language = language
}

// Mode returns the active mode.
func (c *ModeContext) Mode() domain.Mode {
	return c.mode
}

// TargetLanguage returns the stored language.
func (c *ModeContext) TargetLanguage() domain.TargetLanguage {
	return c.language
}

// Payload builds the outgoing payload for text under the current selection.
func (c *ModeContext) Payload(text string) domain.RequestPayload {
	return domain.NewRequestPayload(text, c.mode, c.language)
}
