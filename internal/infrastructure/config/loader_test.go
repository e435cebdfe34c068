package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/wai-go/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfigPath, EnvEndpoint, EnvHealthEndpoint, EnvListen, EnvOllamaURL, EnvModel} {
		t.Setenv(key, "")
	}
}

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path, filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.GetServiceEndpoint() != domain.DefaultServiceEndpoint {
		t.Errorf("endpoint = %s", cfg.GetServiceEndpoint())
	}
	if cfg.DefaultMode() != domain.ModeImprove || cfg.DefaultLanguage() != domain.LanguageEnglish {
		t.Errorf("unexpected defaults: %s / %s", cfg.DefaultMode(), cfg.DefaultLanguage())
	}
	if diff := cmp.Diff(domain.DefaultModeParams(), cfg.Server.ModeParams); diff != "" {
		t.Errorf("embedded mode params drift from built-ins (-want +got):\n%s", diff)
	}

	again, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if diff := cmp.Diff(cfg, again); diff != "" {
		t.Errorf("reload mismatch (-first +second):\n%s", diff)
	}
}

func TestLoadHydratesPartialFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "service:\n  endpoint: http://example.test:8080/api/generate\npreferences:\n  default_mode: Translate\n  default_language: francés\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Service.HealthEndpoint != "http://example.test:8080/health" {
		t.Errorf("health endpoint = %s", cfg.Service.HealthEndpoint)
	}
	if cfg.DefaultMode() != domain.ModeTranslate || cfg.DefaultLanguage() != domain.LanguageFrench {
		t.Errorf("preferences = %+v", cfg.Preferences)
	}
	if cfg.History.Backend != domain.HistoryBackendMemory {
		t.Errorf("history backend = %s", cfg.History.Backend)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("preferences:\n  default_mode: poetry\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestEnvOverridesAndDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("WAI_MODEL=mistral\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvEndpoint, "http://remote:9000/api/generate")
	t.Setenv(EnvListen, ":7000")
	// godotenv.Load never overrides, so the empty value from clearEnv must go.
	os.Unsetenv(EnvModel)
	t.Cleanup(func() { os.Unsetenv(EnvModel) })

	cfg, err := NewFileLoader(path, envFile).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Service.Endpoint != "http://remote:9000/api/generate" || cfg.Service.HealthEndpoint != "http://remote:9000/health" {
		t.Errorf("service = %+v", cfg.Service)
	}
	if cfg.GetListenAddr() != ":7000" {
		t.Errorf("listen = %s", cfg.GetListenAddr())
	}
	if cfg.GetServerModel().ModelID != "mistral" {
		t.Errorf("model = %+v", cfg.GetServerModel())
	}
}

func TestLoadRejectsMalformedDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("WAI_MODEL=\"unterminated\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileLoader(filepath.Join(dir, "config.yaml"), envFile).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed .env")
	}
	if !strings.Contains(err.Error(), envFile) {
		t.Errorf("error = %q, want it to name %s", err, envFile)
	}
}

func TestPathHonoursEnv(t *testing.T) {
	clearEnv(t)
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(EnvConfigPath, custom)
	if got := NewFileLoader("").Path(); got != custom {
		t.Errorf("Path() = %s, want %s", got, custom)
	}
	if got := NewFileLoader("/explicit.yaml").Path(); got != "/explicit.yaml" {
		t.Errorf("explicit Path() = %s", got)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults() error = %v", err)
	}
	if err := cfg.ValidateConsistency(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
	if cfg.GetServerModel().Endpoint != domain.DefaultOllamaEndpoint {
		t.Errorf("model endpoint = %s", cfg.GetServerModel().Endpoint)
	}
}

func TestResetKeepsBackup(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	custom := "history:\n  backend: sqlite\n"
	if err := os.WriteFile(path, []byte(custom), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Reset()
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if cfg.GetHistoryBackend() != domain.HistoryBackendMemory {
		t.Errorf("backend after reset = %s", cfg.GetHistoryBackend())
	}
	backup, err := os.ReadFile(path + ".bak")
	if err != nil || string(backup) != custom {
		t.Errorf("backup = (%q, %v)", backup, err)
	}
}
