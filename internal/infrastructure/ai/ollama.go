package ai

import (
	"encoding/json"
	"net/http"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

type ollamaRequest struct {
	Model   string                  `json:"model"`
	Prompt  string                  `json:"prompt"`
	Stream  bool                    `json:"stream"`
	Options domain.GenerationParams `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func ollamaAdapter() providerAdapter {
	return providerAdapter{
		defaultEndpoint: domain.DefaultOllamaEndpoint,
		buildRequest:    buildOllamaRequest,
		parseResponse:   parseOllamaResponse,
		setHeaders:      setOllamaHeaders,
	}
}

// buildOllamaRequest targets /api/generate without streaming; the sampling
// options are passed through untouched.
func buildOllamaRequest(model domain.ModelDefinition, req ports.ProviderRequest) ([]byte, error) {
	return json.Marshal(ollamaRequest{
		Model:   valueOrDefault(model.ModelID, domain.DefaultModelName),
		Prompt:  req.Prompt,
		Stream:  false,
		Options: req.Params,
	})
}

func parseOllamaResponse(body []byte) (string, error) {
	var response ollamaResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	return response.Response, nil
}

func setOllamaHeaders(req *http.Request, model domain.ModelDefinition) error {
	if token := resolveAuth(model.AuthEnvVar, ""); token != "" {
		req.Header.Set("authorization", "Bearer "+token)
	}
	return nil
}
