package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Health         ports.HealthChecker
	Clipboard      ports.Clipboard
}

// Run executes checks and returns a report. The error is non-nil only when
// the configuration cannot be loaded; other problems are reported as checks.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	if s.ConfigProvider == nil {
		return domain.HealthReport{}, errors.New("doctor.Service dependencies not satisfied")
	}

	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format v%s, history backend %s", cfg.ConfigFormatVersion, cfg.GetHistoryBackend())))

	checks = append(checks, s.serviceCheck(ctx, cfg))
	checks = append(checks, s.clipboardCheck())
	checks = append(checks, apiCheck(cfg.GetServerModel()))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) serviceCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	name := "Generation service"
	if s.Health == nil {
		return warn(name, "health checker not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, domain.DefaultHealthTimeout)
	defer cancel()

	health, err := s.Health.Health(ctx)
	if err != nil {
		return fail(name, fmt.Sprintf("%s unreachable: %v (start one with `wai serve`)", cfg.GetHealthEndpoint(), err))
	}
	if !health.Healthy() {
		return warn(name, fmt.Sprintf("status %q", health.Status))
	}
	return ok(name, fmt.Sprintf("%s ready (model %s)", cfg.GetServiceEndpoint(), health.Model))
}

func (s *Service) clipboardCheck() domain.HealthCheck {
	if s.Clipboard == nil || !s.Clipboard.Enabled() {
		return warn("Clipboard", "unavailable; copy actions will fail")
	}
	return ok("Clipboard", "available")
}

// apiCheck only matters for `wai serve` with a hosted provider.
func apiCheck(model domain.ModelDefinition) domain.HealthCheck {
	switch detectProvider(model) {
	case domain.ProviderKindAnthropic:
		if envMissing(model.AuthEnvVar, "ANTHROPIC_API_KEY") {
			return warn("API keys", "ANTHROPIC_API_KEY missing for wai serve")
		}
	case domain.ProviderKindOpenAI:
		if envMissing(model.AuthEnvVar, "OPENAI_API_KEY") {
			return warn("API keys", "OPENAI_API_KEY missing for wai serve")
		}
	default:
		return ok("API keys", "not required for "+model.Endpoint)
	}
	return ok("API keys", "detected for "+model.Name)
}

func detectProvider(model domain.ModelDefinition) domain.ProviderKind {
	if model.Provider != "" {
		return model.Provider
	}
	switch {
	case strings.Contains(model.Endpoint, "anthropic.com"):
		return domain.ProviderKindAnthropic
	case strings.Contains(model.Endpoint, "openai.com"):
		return domain.ProviderKindOpenAI
	default:
		return domain.ProviderKindOllama
	}
}

func envMissing(primary, fallback string) bool {
	if primary != "" && os.Getenv(primary) != "" {
		return false
	}
	if fallback != "" && os.Getenv(fallback) != "" {
		return false
	}
	return true
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
