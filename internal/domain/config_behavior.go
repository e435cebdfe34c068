package domain

import (
	"fmt"
	"strings"
	"time"
)

// Rich domain model: behaviour that interprets the raw configuration lives
// next to the data instead of being scattered through callers.

// DefaultMode returns the configured starting mode, falling back to ModeImprove.
func (c *Config) DefaultMode() Mode {
	if mode, err := ParseMode(c.Preferences.DefaultMode); err == nil {
		return mode
	}
	return ModeImprove
}

// DefaultLanguage returns the configured starting language, falling back to English.
func (c *Config) DefaultLanguage() TargetLanguage {
	if lang, err := ParseLanguage(c.Preferences.DefaultLanguage); err == nil {
		return lang
	}
	return LanguageEnglish
}

// ShouldCopyOnSuccess reports whether outputs go to the clipboard automatically.
func (c *Config) ShouldCopyOnSuccess() bool {
	return c.Preferences.CopyOnSuccess
}

// GetServiceEndpoint returns the generation endpoint with default fallback.
func (c *Config) GetServiceEndpoint() string {
	if c.Service.Endpoint == "" {
		return DefaultServiceEndpoint
	}
	return c.Service.Endpoint
}

// GetHealthEndpoint returns the health endpoint with default fallback.
func (c *Config) GetHealthEndpoint() string {
	if c.Service.HealthEndpoint == "" {
		return DefaultHealthEndpoint
	}
	return c.Service.HealthEndpoint
}

// GetServiceTimeout returns the transport timeout; zero means wait indefinitely.
func (c *Config) GetServiceTimeout() time.Duration {
	if c.Service.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Service.TimeoutSeconds) * time.Second
}

// GetHistoryBackend returns the history backend name with default fallback.
func (c *Config) GetHistoryBackend() string {
	switch strings.ToLower(c.History.Backend) {
	case HistoryBackendSQLite:
		return HistoryBackendSQLite
	default:
		return HistoryBackendMemory
	}
}

// HistoryDisplayLimit returns how many history entries to render.
func (c *Config) HistoryDisplayLimit() int {
	if c.History.DisplayLimit <= 0 {
		return DefaultHistoryDisplayLimit
	}
	return c.History.DisplayLimit
}

// GetListenAddr returns the address for `wai serve`.
func (c *Config) GetListenAddr() string {
	if c.Server.Listen == "" {
		return DefaultListenAddr
	}
	return c.Server.Listen
}

// GetServerModel returns the upstream model definition with defaults applied.
func (c *Config) GetServerModel() ModelDefinition {
	model := c.Server.Model
	if model.Name == "" {
		model.Name = DefaultModelName
	}
	if model.ModelID == "" {
		model.ModelID = model.Name
	}
	if model.Endpoint == "" {
		model.Endpoint = DefaultOllamaEndpoint
	}
	return model
}

// ParamsFor returns the sampling options for mode, falling back to the
// "default" entry and then to the built-in table.
func (c *Config) ParamsFor(mode Mode) GenerationParams {
	if params, ok := c.Server.ModeParams[string(mode)]; ok {
		return params
	}
	if params, ok := c.Server.ModeParams[DefaultParamsKey]; ok {
		return params
	}
	builtin := DefaultModeParams()
	if params, ok := builtin[string(mode)]; ok {
		return params
	}
	return builtin[DefaultParamsKey]
}

// ValidateConsistency checks the internal consistency of the configuration.
func (c *Config) ValidateConsistency() error {
	if c.Preferences.DefaultMode != "" {
		if _, err := ParseMode(c.Preferences.DefaultMode); err != nil {
			return fmt.Errorf("preferences.default_mode: %w", err)
		}
	}
	if c.Preferences.DefaultLanguage != "" {
		if _, err := ParseLanguage(c.Preferences.DefaultLanguage); err != nil {
			return fmt.Errorf("preferences.default_language: %w", err)
		}
	}
	switch strings.ToLower(c.History.Backend) {
	case "", HistoryBackendMemory, HistoryBackendSQLite:
	default:
		return fmt.Errorf("history.backend must be memory|sqlite, got %s", c.History.Backend)
	}
	if c.Service.TimeoutSeconds < 0 {
		return fmt.Errorf("service.timeout must be >= 0")
	}
	for key, params := range c.Server.ModeParams {
		if key != DefaultParamsKey {
			if _, err := ParseMode(key); err != nil {
				return fmt.Errorf("server.mode_params: %w", err)
			}
		}
		if params.Temperature < 0 || params.Temperature > 2 {
			return fmt.Errorf("server.mode_params.%s.temperature must be within [0, 2]", key)
		}
		if params.TopP < 0 || params.TopP > 1 {
			return fmt.Errorf("server.mode_params.%s.top_p must be within [0, 1]", key)
		}
	}
	return nil
}
