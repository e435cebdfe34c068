// Package ai contains the upstream model providers used by the bundled
// generation service.
package ai

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

type Factory struct {
	httpClient *http.Client
}

// NewFactory builds a factory whose providers share one HTTP client.
func NewFactory(timeout time.Duration) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultProviderTimeout
	}
	return &Factory{
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	kind := model.Provider
	if kind == "" {
		kind = inferProviderKind(model.Endpoint)
	}

	switch kind {
	case domain.ProviderKindAnthropic:
		return newHTTPProvider("anthropic", model, f.httpClient, anthropicAdapter()), nil
	case domain.ProviderKindOpenAI:
		return newHTTPProvider("openai", model, f.httpClient, openaiAdapter()), nil
	case domain.ProviderKindOllama:
		return newHTTPProvider("ollama", model, f.httpClient, ollamaAdapter()), nil
	default:
		return nil, fmt.Errorf("unsupported provider kind: %s", kind)
	}
}

func inferProviderKind(endpoint string) domain.ProviderKind {
	lower := strings.ToLower(endpoint)
	switch {
	case strings.Contains(lower, "anthropic.com"), strings.HasSuffix(lower, "/v1/messages"):
		return domain.ProviderKindAnthropic
	case strings.Contains(lower, "openai.com"), strings.HasSuffix(lower, "/chat/completions"):
		return domain.ProviderKindOpenAI
	default:
		return domain.ProviderKindOllama
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
