package domain

// Config mirrors ~/.wai/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Service             ServiceSettings `yaml:"service"`
	Preferences         Preferences     `yaml:"preferences"`
	History             HistorySettings `yaml:"history"`
	Server              ServerSettings  `yaml:"server"`
}

// ServiceSettings locates the generation service the client talks to.
type ServiceSettings struct {
	Endpoint       string `yaml:"endpoint"`
	HealthEndpoint string `yaml:"health_endpoint"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultMode     string `yaml:"default_mode"`
	DefaultLanguage string `yaml:"default_language"`
	CopyOnSuccess   bool   `yaml:"copy_on_success"`
}

// HistorySettings selects the session history backend.
type HistorySettings struct {
	Backend      string `yaml:"backend"`
	DisplayLimit int    `yaml:"display_limit"`
}

// ServerSettings configures `wai serve`, the bundled generation service.
type ServerSettings struct {
	Listen     string                      `yaml:"listen"`
	Model      ModelDefinition             `yaml:"model"`
	ModeParams map[string]GenerationParams `yaml:"mode_params"`
}
