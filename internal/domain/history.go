package domain

import "time"

// HistoryEntry records one completed transformation. Immutable once created.
type HistoryEntry struct {
	ID             int64           `json:"id"`
	InputText      string          `json:"input"`
	OutputText     string          `json:"output"`
	Mode           Mode            `json:"mode"`
	TargetLanguage *TargetLanguage `json:"target_language,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewHistoryEntry snapshots a completed payload/output pair.
func NewHistoryEntry(id int64, payload RequestPayload, output string, at time.Time) HistoryEntry {
	entry := HistoryEntry{
		ID:         id,
		InputText:  payload.Text,
		OutputText: output,
		Mode:       payload.Mode,
		CreatedAt:  at,
	}
	if lang, ok := payload.Language(); ok {
		entry.TargetLanguage = &lang
	}
	return entry
}

// Label is the heading shown for the entry. It uses the language captured at
// creation time, not the live selection.
func (e HistoryEntry) Label() string {
	return e.Mode.Label(e.TargetLanguage)
}
