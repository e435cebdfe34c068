package history

import (
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

// SQLiteStore keeps the session history in a private in-memory SQLite
// database, which adds keyword search. The database disappears with the process.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens a fresh in-memory database.
func NewSQLiteStore() (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:wai-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// A single connection keeps the in-memory database alive and serialises writes.
	db.SetMaxOpenConns(1)
	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS transformations (
		id INTEGER PRIMARY KEY,
		created_at TEXT NOT NULL,
		mode TEXT NOT NULL,
		target_language TEXT,
		input TEXT NOT NULL,
		output TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("create history table: %w", err)
	}
	return nil
}

// Append inserts a new record. Ids must increase with every append.
func (s *SQLiteStore) Append(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var newest sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(id) FROM transformations`).Scan(&newest); err != nil {
		return err
	}
	if newest.Valid && entry.ID <= newest.Int64 {
		return fmt.Errorf("history id %d is not newer than %d", entry.ID, newest.Int64)
	}

	var lang sql.NullString
	if entry.TargetLanguage != nil {
		lang = sql.NullString{String: string(*entry.TargetLanguage), Valid: true}
	}
	_, err := s.db.Exec(`INSERT INTO transformations
		(id, created_at, mode, target_language, input, output)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.CreatedAt.Format(time.RFC3339Nano),
		string(entry.Mode),
		lang,
		entry.InputText,
		entry.OutputText,
	)
	return err
}

// List returns every entry, newest first.
func (s *SQLiteStore) List() ([]domain.HistoryEntry, error) {
	return s.Search("", 0)
}

// Search returns entries whose input or output contains query, newest first.
// Matching happens in Go rather than with LIKE, so the query is literal and
// case is ignored beyond ASCII, the same as MemoryStore.
func (s *SQLiteStore) Search(query string, limit int) ([]domain.HistoryEntry, error) {
	match := newMatcher(query)

	stmt := "SELECT id, created_at, mode, target_language, input, output FROM transformations ORDER BY id DESC"
	var args []interface{}
	if match.all() && limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, limit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if !match.match(entry) {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, rows.Err()
}

// Get looks up an entry by id.
func (s *SQLiteStore) Get(id int64) (domain.HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.db.QueryRow(`SELECT id, created_at, mode, target_language, input, output
		FROM transformations WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if err != nil {
		return domain.HistoryEntry{}, false
	}
	return entry, true
}

// Len returns the number of entries.
func (s *SQLiteStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM transformations`).Scan(&count); err != nil {
		return 0
	}
	return count
}

// ReEdit implements ports.HistoryRepository.
func (s *SQLiteStore) ReEdit(entry domain.HistoryEntry) string {
	return ReEdit(entry)
}

// Export writes the history as JSON lines, newest first.
func (s *SQLiteStore) Export(w io.Writer) error {
	entries, err := s.List()
	if err != nil {
		return err
	}
	return ExportJSONL(w, entries)
}

// Close releases the database; its contents are gone afterwards.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (domain.HistoryEntry, error) {
	var (
		entry     domain.HistoryEntry
		createdAt string
		mode      string
		lang      sql.NullString
	)
	if err := row.Scan(&entry.ID, &createdAt, &mode, &lang, &entry.InputText, &entry.OutputText); err != nil {
		return domain.HistoryEntry{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		entry.CreatedAt = t
	}
	entry.Mode = domain.Mode(mode)
	if lang.Valid {
		l := domain.TargetLanguage(lang.String)
		entry.TargetLanguage = &l
	}
	return entry, nil
}

var (
	_ ports.HistoryRepository = (*SQLiteStore)(nil)
	_ ports.HistorySearcher   = (*SQLiteStore)(nil)
	_ ports.HistoryExporter   = (*SQLiteStore)(nil)
)
