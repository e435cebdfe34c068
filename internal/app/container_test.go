package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/infrastructure/history"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildContainerMemoryBackend(t *testing.T) {
	t.Setenv("WAI_ENDPOINT", "")
	path := writeConfig(t, "preferences:\n  default_mode: resumir\n")

	c, err := BuildContainer(context.Background(), Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("BuildContainer() error = %v", err)
	}
	defer c.Close()

	if !c.Ready() {
		t.Fatal("container not ready")
	}
	if _, ok := c.HistoryStore.(*history.MemoryStore); !ok {
		t.Errorf("history store = %T, want *history.MemoryStore", c.HistoryStore)
	}
	if c.Assistant.Modes.Mode() != domain.ModeSummarize {
		t.Errorf("starting mode = %s", c.Assistant.Modes.Mode())
	}
	if c.Generation.Endpoint() != domain.DefaultServiceEndpoint {
		t.Errorf("endpoint = %s", c.Generation.Endpoint())
	}
}

func TestBuildContainerSQLiteBackend(t *testing.T) {
	path := writeConfig(t, "history:\n  backend: sqlite\n")

	c, err := BuildContainer(context.Background(), Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("BuildContainer() error = %v", err)
	}
	if _, ok := c.HistoryStore.(*history.SQLiteStore); !ok {
		t.Errorf("history store = %T, want *history.SQLiteStore", c.HistoryStore)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestBuildContainerInvalidConfig(t *testing.T) {
	path := writeConfig(t, "history:\n  backend: redis\n")
	if _, err := BuildContainer(context.Background(), Options{ConfigPath: path}); err == nil {
		t.Fatal("expected error for invalid backend")
	}
}

func TestZeroContainerNotReady(t *testing.T) {
	var c Container
	if c.Ready() {
		t.Error("zero container reported ready")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on zero container = %v", err)
	}
}
