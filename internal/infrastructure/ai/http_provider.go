package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

type httpProvider struct {
	name       string
	model      domain.ModelDefinition
	httpClient *http.Client
	adapter    providerAdapter
}

type providerAdapter struct {
	defaultEndpoint string
	buildRequest    func(domain.ModelDefinition, ports.ProviderRequest) ([]byte, error)
	parseResponse   func([]byte) (string, error)
	setHeaders      func(*http.Request, domain.ModelDefinition) error
}

func newHTTPProvider(name string, model domain.ModelDefinition, client *http.Client, adapter providerAdapter) ports.Provider {
	return &httpProvider{
		name:       name,
		model:      model,
		httpClient: client,
		adapter:    adapter,
	}
}

func (p *httpProvider) Name() string {
	return p.name
}

func (p *httpProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *httpProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	requestBody, err := p.adapter.buildRequest(p.model, req)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("%s: build request: %w", p.name, err)
	}

	endpoint := valueOrDefault(p.model.Endpoint, p.adapter.defaultEndpoint)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return ports.ProviderResponse{}, err
	}

	httpReq.Header.Set("content-type", "application/json")
	if err := p.adapter.setHeaders(httpReq, p.model); err != nil {
		return ports.ProviderResponse{}, err
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("%s: %w", p.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("%s: read response: %w", p.name, err)
	}

	if resp.StatusCode >= 400 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		if snippet == "" {
			return ports.ProviderResponse{}, fmt.Errorf("%s: %s", p.name, resp.Status)
		}
		return ports.ProviderResponse{}, fmt.Errorf("%s: %s: %s", p.name, resp.Status, snippet)
	}

	content, err := p.adapter.parseResponse(body)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("%s: parse response: %w", p.name, err)
	}
	return ports.ProviderResponse{Text: content}, nil
}

func resolveAuth(primary string, fallback string) string {
	if primary != "" {
		if value := os.Getenv(primary); value != "" {
			return value
		}
	}
	if fallback == "" {
		return ""
	}
	return os.Getenv(fallback)
}

func valueOrDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}

func valueOrDefaultInt(value int, def int) int {
	if value == 0 {
		return def
	}
	return value
}
