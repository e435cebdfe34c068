package history

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/wai-go/internal/domain"
)

func backends(t *testing.T) map[string]func() interface{} {
	t.Helper()
	return map[string]func() interface{}{
		"memory": func() interface{} { return NewMemoryStore() },
		"sqlite": func() interface{} {
			s, err := NewSQLiteStore()
			if err != nil {
				t.Fatalf("NewSQLiteStore() error = %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func sampleEntries() []domain.HistoryEntry {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	french := domain.LanguageFrench
	return []domain.HistoryEntry{
		{ID: 1, InputText: "Hello", OutputText: "Hello!", Mode: domain.ModeImprove, CreatedAt: base},
		{ID: 2, InputText: "Hola", OutputText: "Bonjour", Mode: domain.ModeTranslate, TargetLanguage: &french, CreatedAt: base.Add(time.Minute)},
		{ID: 3, InputText: "long text", OutputText: "short", Mode: domain.ModeSummarize, CreatedAt: base.Add(2 * time.Minute)},
	}
}

func TestStoresListNewestFirst(t *testing.T) {
	for name, build := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := build().(interface {
				Append(domain.HistoryEntry) error
				List() ([]domain.HistoryEntry, error)
				Len() int
			})
			for _, entry := range sampleEntries() {
				if err := repo.Append(entry); err != nil {
					t.Fatalf("Append(%d) error = %v", entry.ID, err)
				}
			}

			got, err := repo.List()
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			entries := sampleEntries()
			want := []domain.HistoryEntry{entries[2], entries[1], entries[0]}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("List() mismatch (-want +got):\n%s", diff)
			}
			if repo.Len() != 3 {
				t.Errorf("Len() = %d, want 3", repo.Len())
			}
		})
	}
}

func TestStoresRejectNonIncreasingIDs(t *testing.T) {
	for name, build := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := build().(interface {
				Append(domain.HistoryEntry) error
				Len() int
			})
			entries := sampleEntries()
			if err := repo.Append(entries[1]); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
			if err := repo.Append(entries[0]); err == nil {
				t.Fatal("expected error for older id")
			}
			if err := repo.Append(entries[1]); err == nil {
				t.Fatal("expected error for duplicate id")
			}
			if repo.Len() != 1 {
				t.Errorf("Len() = %d, want 1", repo.Len())
			}
		})
	}
}

func TestStoresGetAndReEdit(t *testing.T) {
	for name, build := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := build().(interface {
				Append(domain.HistoryEntry) error
				List() ([]domain.HistoryEntry, error)
				Get(int64) (domain.HistoryEntry, bool)
				ReEdit(domain.HistoryEntry) string
			})
			for _, entry := range sampleEntries() {
				if err := repo.Append(entry); err != nil {
					t.Fatalf("Append() error = %v", err)
				}
			}
			before, _ := repo.List()

			entry, ok := repo.Get(2)
			if !ok {
				t.Fatal("Get(2) not found")
			}
			if entry.TargetLanguage == nil || *entry.TargetLanguage != domain.LanguageFrench {
				t.Errorf("language snapshot lost: %+v", entry.TargetLanguage)
			}
			if got := repo.ReEdit(entry); got != "Bonjour" {
				t.Errorf("ReEdit() = %q, want %q", got, "Bonjour")
			}

			after, _ := repo.List()
			if diff := cmp.Diff(before, after); diff != "" {
				t.Errorf("ReEdit mutated history (-before +after):\n%s", diff)
			}
			if _, ok := repo.Get(99); ok {
				t.Error("Get(99) should miss")
			}
		})
	}
}

func TestStoresSearch(t *testing.T) {
	for name, build := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := build().(interface {
				Append(domain.HistoryEntry) error
				Search(string, int) ([]domain.HistoryEntry, error)
			})
			for _, entry := range sampleEntries() {
				if err := repo.Append(entry); err != nil {
					t.Fatalf("Append() error = %v", err)
				}
			}
			got, err := repo.Search("Hol", 0)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != 1 || got[0].ID != 2 {
				t.Errorf("Search(Hol) = %+v", got)
			}
			folded, _ := repo.Search("bonjour", 0)
			if len(folded) != 1 || folded[0].ID != 2 {
				t.Errorf("Search(bonjour) should ignore case, got %+v", folded)
			}
			limited, _ := repo.Search("", 2)
			if len(limited) != 2 || limited[0].ID != 3 {
				t.Errorf("Search with limit = %+v", limited)
			}
		})
	}
}

func TestStoresSearchIsLiteralAndFoldsUnicode(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []domain.HistoryEntry{
		{ID: 1, InputText: "discount 50 off", OutputText: "50 off", Mode: domain.ModeImprove, CreatedAt: base},
		{ID: 2, InputText: "ÑANDÚ corre", OutputText: "El ÑANDÚ corre", Mode: domain.ModeImprove, CreatedAt: base.Add(time.Minute)},
		{ID: 3, InputText: "snake_case name", OutputText: "snake_case", Mode: domain.ModeImprove, CreatedAt: base.Add(2 * time.Minute)},
	}

	tests := []struct {
		query string
		want  []int64
	}{
		{query: "50%", want: nil},
		{query: "_", want: []int64{3}},
		{query: "%", want: nil},
		{query: "ñandú", want: []int64{2}},
		{query: "Ñandú CORRE", want: []int64{2}},
		{query: "50 OFF", want: []int64{1}},
	}

	for name, build := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := build().(interface {
				Append(domain.HistoryEntry) error
				Search(string, int) ([]domain.HistoryEntry, error)
			})
			for _, entry := range entries {
				if err := repo.Append(entry); err != nil {
					t.Fatalf("Append() error = %v", err)
				}
			}
			for _, tt := range tests {
				got, err := repo.Search(tt.query, 0)
				if err != nil {
					t.Fatalf("Search(%q) error = %v", tt.query, err)
				}
				var ids []int64
				for _, entry := range got {
					ids = append(ids, entry.ID)
				}
				if diff := cmp.Diff(tt.want, ids); diff != "" {
					t.Errorf("Search(%q) ids mismatch (-want +got):\n%s", tt.query, diff)
				}
			}

			limited, err := repo.Search("o", 1)
			if err != nil {
				t.Fatalf("Search(o, 1) error = %v", err)
			}
			if len(limited) != 1 || limited[0].ID != 2 {
				t.Errorf("Search(o, 1) = %+v, want newest match only", limited)
			}
		})
	}
}

func TestMemoryStoreListIsDetached(t *testing.T) {
	repo := NewMemoryStore()
	for _, entry := range sampleEntries() {
		if err := repo.Append(entry); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	listed, _ := repo.List()
	listed[0].OutputText = "tampered"
	*listed[1].TargetLanguage = domain.LanguageGerman

	again, _ := repo.List()
	if again[0].OutputText != "short" {
		t.Errorf("stored output changed to %q", again[0].OutputText)
	}
	if *again[1].TargetLanguage != domain.LanguageFrench {
		t.Errorf("stored language changed to %q", *again[1].TargetLanguage)
	}
}

func TestExportJSONL(t *testing.T) {
	repo := NewMemoryStore()
	for _, entry := range sampleEntries() {
		if err := repo.Append(entry); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	var buf bytes.Buffer
	if err := repo.Export(&buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var ids []int64
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry domain.HistoryEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("invalid line %q: %v", scanner.Text(), err)
		}
		ids = append(ids, entry.ID)
	}
	if diff := cmp.Diff([]int64{3, 2, 1}, ids); diff != "" {
		t.Errorf("export order mismatch (-want +got):\n%s", diff)
	}
}
