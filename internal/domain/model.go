package domain

// ModelDefinition describes the upstream model provider used by `wai serve`.
type ModelDefinition struct {
	Name string `yaml:"name"`
	// Provider forces the API dialect; inferred from Endpoint when empty.
	Provider   ProviderKind `yaml:"provider,omitempty"`
	Endpoint   string       `yaml:"endpoint"`
	AuthEnvVar string       `yaml:"auth_env_var,omitempty"`
	ModelID    string       `yaml:"model_id"`
	MaxTokens  int          `yaml:"max_tokens,omitempty"`
}

// GenerationParams are the sampling options applied for one mode.
type GenerationParams struct {
	Temperature float64 `yaml:"temperature" json:"temperature"`
	TopP        float64 `yaml:"top_p" json:"top_p"`
	TopK        int     `yaml:"top_k" json:"top_k"`
	MaxTokens   int     `yaml:"max_tokens" json:"num_predict"`
}

// ProviderKind identifies the API dialect spoken by a model endpoint.
type ProviderKind string

const (
	ProviderKindOllama    ProviderKind = "ollama"
	ProviderKindOpenAI    ProviderKind = "openai"
	ProviderKindAnthropic ProviderKind = "anthropic"
)

// DefaultParamsKey is the mode_params entry used when a mode has none.
const DefaultParamsKey = "default"

// DefaultModeParams reproduces the tuned sampling options per mode:
// lower temperature for precise edits and translations, higher for continuations.
func DefaultModeParams() map[string]GenerationParams {
	return map[string]GenerationParams{
		DefaultParamsKey:      {Temperature: 0.7, TopP: 0.9, TopK: 40, MaxTokens: 2000},
		string(ModeImprove):   {Temperature: 0.6, TopP: 0.9, TopK: 40, MaxTokens: 2000},
		string(ModeSummarize): {Temperature: 0.7, TopP: 0.9, TopK: 40, MaxTokens: 1500},
		string(ModeTranslate): {Temperature: 0.5, TopP: 0.9, TopK: 40, MaxTokens: 2000},
		string(ModeContinue):  {Temperature: 0.8, TopP: 0.95, TopK: 50, MaxTokens: 2500},
	}
}
