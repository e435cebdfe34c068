package history

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/doeshing/wai-go/internal/domain"
)

// ExportJSONL writes one JSON object per entry.
func ExportJSONL(w io.Writer, entries []domain.HistoryEntry) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("export entry %d: %w", entry.ID, err)
		}
	}
	return nil
}
