package history

import (
	"fmt"
	"io"
	"sync"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

// node is one cell of the newest-first sequence. Nodes are never modified
// after being linked, so a List snapshot stays valid after later appends.
type node struct {
	entry domain.HistoryEntry
	next  *node
}

// MemoryStore keeps the session history as a head-inserted linked sequence.
type MemoryStore struct {
	mu    sync.RWMutex
	head  *node
	size  int
	index map[int64]domain.HistoryEntry
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[int64]domain.HistoryEntry)}
}

// Append inserts entry at the head. Ids must increase with every append.
func (m *MemoryStore) Append(entry domain.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.head != nil && entry.ID <= m.head.entry.ID {
		return fmt.Errorf("history id %d is not newer than %d", entry.ID, m.head.entry.ID)
	}
	entry = cloneEntry(entry)
	m.head = &node{entry: entry, next: m.head}
	m.index[entry.ID] = entry
	m.size++
	return nil
}

// List returns every entry, newest first.
func (m *MemoryStore) List() ([]domain.HistoryEntry, error) {
	m.mu.RLock()
	head, size := m.head, m.size
	m.mu.RUnlock()

	entries := make([]domain.HistoryEntry, 0, size)
	for n := head; n != nil; n = n.next {
		entries = append(entries, cloneEntry(n.entry))
	}
	return entries, nil
}

// Get looks up an entry by id.
func (m *MemoryStore) Get(id int64) (domain.HistoryEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.index[id]
	if !ok {
		return domain.HistoryEntry{}, false
	}
	return cloneEntry(entry), true
}

// Len returns the number of entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}

// Search returns entries whose input or output contains query (ignoring
// case), newest first.
func (m *MemoryStore) Search(query string, limit int) ([]domain.HistoryEntry, error) {
	entries, err := m.List()
	if err != nil {
		return nil, err
	}
	match := newMatcher(query)
	var matches []domain.HistoryEntry
	for _, entry := range entries {
		if !match.match(entry) {
			continue
		}
		matches = append(matches, entry)
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches, nil
}

// ReEdit implements ports.HistoryRepository.
func (m *MemoryStore) ReEdit(entry domain.HistoryEntry) string {
	return ReEdit(entry)
}

// Export writes the history as JSON lines, newest first.
func (m *MemoryStore) Export(w io.Writer) error {
	entries, err := m.List()
	if err != nil {
		return err
	}
	return ExportJSONL(w, entries)
}

// ReEdit returns the output of entry, to be placed into the next input.
func ReEdit(entry domain.HistoryEntry) string {
	return entry.OutputText
}

// cloneEntry detaches the language pointer so callers cannot reach stored data.
func cloneEntry(entry domain.HistoryEntry) domain.HistoryEntry {
	if entry.TargetLanguage != nil {
		lang := *entry.TargetLanguage
		entry.TargetLanguage = &lang
	}
	return entry
}

var (
	_ ports.HistoryRepository = (*MemoryStore)(nil)
	_ ports.HistorySearcher   = (*MemoryStore)(nil)
	_ ports.HistoryExporter   = (*MemoryStore)(nil)
)
