// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The orchestrator depends only on these interfaces, so
// the generation service, clipboard and history backend can be swapped or stubbed
// without touching the request lifecycle.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., GenerationService, Clipboard)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"io"

	"github.com/doeshing/wai-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.wai/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// GenerationService is the remote collaborator that transforms text.
// Implementations return *domain.NetworkError for transport failures and
// *domain.ServiceError for non-success statuses or malformed bodies.
type GenerationService interface {
	Generate(ctx context.Context, payload domain.RequestPayload) (string, error)
}

// HealthChecker queries the generation service health endpoint.
type HealthChecker interface {
	Health(ctx context.Context) (domain.ServiceHealth, error)
}

// HistoryRepository is the session-scoped, append-only history of completed
// transformations. List returns entries newest first.
type HistoryRepository interface {
	Append(entry domain.HistoryEntry) error
	List() ([]domain.HistoryEntry, error)
	Get(id int64) (domain.HistoryEntry, bool)
	Len() int
	// ReEdit returns the text to place into the next input for entry.
	// It never mutates the repository.
	ReEdit(entry domain.HistoryEntry) string
}

// HistorySearcher is implemented by backends that can filter history.
type HistorySearcher interface {
	Search(query string, limit int) ([]domain.HistoryEntry, error)
}

// HistoryExporter writes the session history to w.
type HistoryExporter interface {
	Export(w io.Writer) error
}

// Clipboard provides cross-platform clipboard integration.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Provider is an upstream text model used by the bundled generation service.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderFactory builds Provider instances from model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// ProviderRequest carries a rendered prompt and its sampling options.
type ProviderRequest struct {
	Prompt string
	Params domain.GenerationParams
}

// ProviderResponse carries the raw model reply.
type ProviderResponse struct {
	Text string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
