package history

import (
	"strings"

	"github.com/doeshing/wai-go/internal/domain"
)

// matcher is the literal, case-insensitive substring test shared by every
// backend. Wildcard characters in the query have no special meaning.
type matcher struct {
	needle string
}

func newMatcher(query string) matcher {
	return matcher{needle: strings.ToLower(query)}
}

func (m matcher) all() bool {
	return m.needle == ""
}

func (m matcher) match(entry domain.HistoryEntry) bool {
	return m.all() ||
		strings.Contains(strings.ToLower(entry.InputText), m.needle) ||
		strings.Contains(strings.ToLower(entry.OutputText), m.needle)
}
