package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{"~", "/home/tester"},
		{"~/notes/config.yaml", "/home/tester/notes/config.yaml"},
		{"/etc/wai/config.yaml", "/etc/wai/config.yaml"},
		{"conf/../config.yaml", "config.yaml"},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAppDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := AppDir(); got != "/home/tester/.wai" {
		t.Errorf("AppDir() = %q", got)
	}
}

func TestEnsureParentDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "config.yaml")
	if err := EnsureParentDir(target, 0o755); err != nil {
		t.Fatalf("EnsureParentDir() error = %v", err)
	}
	info, err := os.Stat(filepath.Dir(target))
	if err != nil || !info.IsDir() {
		t.Fatalf("parent not created: %v", err)
	}
}
