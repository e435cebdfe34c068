package ai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c chatCompletionResponse) FirstMessage() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(c.Choices[0].Message.Content)
}

func openaiAdapter() providerAdapter {
	return providerAdapter{
		defaultEndpoint: "https://api.openai.com/v1/chat/completions",
		buildRequest:    buildChatCompletionRequest,
		parseResponse:   parseChatCompletionResponse,
		setHeaders:      setOpenAIHeaders,
	}
}

func buildChatCompletionRequest(model domain.ModelDefinition, req ports.ProviderRequest) ([]byte, error) {
	return json.Marshal(chatCompletionRequest{
		Model:       valueOrDefault(model.ModelID, "gpt-4o-mini"),
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens:   valueOrDefaultInt(req.Params.MaxTokens, model.MaxTokens),
		Temperature: req.Params.Temperature,
		TopP:        req.Params.TopP,
	})
}

func parseChatCompletionResponse(body []byte) (string, error) {
	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	return response.FirstMessage(), nil
}

func setOpenAIHeaders(req *http.Request, model domain.ModelDefinition) error {
	apiKey := resolveAuth(model.AuthEnvVar, "OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("missing API key: set %s or OPENAI_API_KEY", valueOrDefault(model.AuthEnvVar, "auth_env_var"))
	}
	req.Header.Set("authorization", "Bearer "+apiKey)
	return nil
}
