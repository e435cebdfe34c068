package ai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
	TopP        float64            `json:"top_p,omitempty"`
	TopK        int                `json:"top_k,omitempty"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

func anthropicAdapter() providerAdapter {
	return providerAdapter{
		defaultEndpoint: "https://api.anthropic.com/v1/messages",
		buildRequest:    buildAnthropicRequest,
		parseResponse:   parseAnthropicResponse,
		setHeaders:      setAnthropicHeaders,
	}
}

func buildAnthropicRequest(model domain.ModelDefinition, req ports.ProviderRequest) ([]byte, error) {
	maxTokens := valueOrDefaultInt(req.Params.MaxTokens, valueOrDefaultInt(model.MaxTokens, 1024))
	return json.Marshal(anthropicRequest{
		Model:     valueOrDefault(model.ModelID, "claude-3-5-sonnet-20240620"),
		MaxTokens: maxTokens,
		Messages: []anthropicMessage{
			{
				Role:    "user",
				Content: []anthropicContent{{Type: "text", Text: req.Prompt}},
			},
		},
		Temperature: clampUnit(req.Params.Temperature),
		TopP:        req.Params.TopP,
		TopK:        req.Params.TopK,
	})
}

func parseAnthropicResponse(body []byte) (string, error) {
	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	var parts []string
	for _, block := range response.Content {
		if block.Type == "" || block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "")), nil
}

func setAnthropicHeaders(req *http.Request, model domain.ModelDefinition) error {
	apiKey := resolveAuth(model.AuthEnvVar, "ANTHROPIC_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("missing API key: set %s or ANTHROPIC_API_KEY", valueOrDefault(model.AuthEnvVar, "auth_env_var"))
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	return nil
}

// clampUnit keeps temperature inside the [0, 1] range the messages API accepts.
func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
