// Package config loads ~/.wai/config.yaml.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/wai-go/assets"
	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/pkg/filesystem"
	"github.com/doeshing/wai-go/internal/ports"
)

// Environment variables consulted by the loader.
const (
	EnvConfigPath     = "WAI_CONFIG"
	EnvEndpoint       = "WAI_ENDPOINT"
	EnvHealthEndpoint = "WAI_HEALTH_ENDPOINT"
	EnvListen         = "WAI_LISTEN"
	EnvOllamaURL      = "WAI_OLLAMA_URL"
	EnvModel          = "WAI_MODEL"
)

// FileLoader loads YAML configuration from ~/.wai/config.yaml (overridable via WAI_CONFIG).
type FileLoader struct {
	overridePath string
	dotenvFiles  []string
}

// NewFileLoader builds a new loader. dotenvFiles defaults to ".env" in the working directory.
func NewFileLoader(path string, dotenvFiles ...string) *FileLoader {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	return &FileLoader{overridePath: path, dotenvFiles: dotenvFiles}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	if err := l.loadDotEnv(); err != nil {
		return domain.Config{}, err
	}

	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, fmt.Errorf("write default config: %w", err)
		}
		data = assets.DefaultConfigYAML
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg = applyEnvOverrides(hydrateDefaults(cfg))
	if err := cfg.ValidateConsistency(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

// Reset overwrites the config file with the embedded defaults, keeping a
// .bak copy of the previous file.
func (l *FileLoader) Reset() (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if current, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path+".bak", current, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, fmt.Errorf("backup config: %w", err)
		}
	}
	if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
		return domain.Config{}, fmt.Errorf("write default config: %w", err)
	}
	return Defaults()
}

// Defaults parses the embedded default configuration.
func Defaults() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

// loadDotEnv never overrides variables already set in the environment.
// Missing files are skipped; malformed ones are an error.
func (l *FileLoader) loadDotEnv() error {
	for _, file := range l.dotenvFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func ensureConfigDir(path string) error {
	return filesystem.EnsureParentDir(path, domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Service.Endpoint == "" {
		cfg.Service.Endpoint = domain.DefaultServiceEndpoint
	}
	if cfg.Service.HealthEndpoint == "" {
		cfg.Service.HealthEndpoint = deriveHealthEndpoint(cfg.Service.Endpoint)
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.HistoryBackendMemory
	}
	if cfg.History.DisplayLimit == 0 {
		cfg.History.DisplayLimit = domain.DefaultHistoryDisplayLimit
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = domain.DefaultListenAddr
	}
	if len(cfg.Server.ModeParams) == 0 {
		cfg.Server.ModeParams = domain.DefaultModeParams()
	}
	return cfg
}

func applyEnvOverrides(cfg domain.Config) domain.Config {
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Service.Endpoint = v
		if os.Getenv(EnvHealthEndpoint) == "" {
			cfg.Service.HealthEndpoint = deriveHealthEndpoint(v)
		}
	}
	if v := os.Getenv(EnvHealthEndpoint); v != "" {
		cfg.Service.HealthEndpoint = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv(EnvOllamaURL); v != "" {
		cfg.Server.Model.Endpoint = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Server.Model.Name = v
		cfg.Server.Model.ModelID = v
	}
	return cfg
}

// deriveHealthEndpoint maps http://host/api/generate to http://host/health.
func deriveHealthEndpoint(endpoint string) string {
	if idx := strings.Index(endpoint, "/api/"); idx > 0 {
		return endpoint[:idx] + "/health"
	}
	return domain.DefaultHealthEndpoint
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filesystem.ExpandHome(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
