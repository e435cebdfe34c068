// Package server is the bundled generation service behind `wai serve`.
// It accepts {text, mode, targetLanguage}, renders the per-mode prompt and
// forwards it to the configured model provider.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

const shutdownTimeout = 10 * time.Second

// ParamsFunc resolves sampling options for a mode.
type ParamsFunc func(domain.Mode) domain.GenerationParams

// Server wires the HTTP routes to a model provider.
type Server struct {
	provider ports.Provider
	params   ParamsFunc
	log      *zap.Logger
	router   chi.Router
}

// New builds the router. A nil logger disables request logging.
func New(provider ports.Provider, params ParamsFunc, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if params == nil {
		params = func(mode domain.Mode) domain.GenerationParams {
			defaults := domain.DefaultModeParams()
			if p, ok := defaults[string(mode)]; ok {
				return p
			}
			return defaults[domain.DefaultParamsKey]
		}
	}
	s := &Server{provider: provider, params: params, log: log}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
	})
	return r
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("generation service listening",
			zap.String("addr", addr),
			zap.String("provider", s.provider.Name()),
			zap.String("model", s.provider.Model().Name),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
