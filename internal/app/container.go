package app

import (
	"context"
	"io"
	"path/filepath"

	"github.com/doeshing/wai-go/internal/application/assistant"
	"github.com/doeshing/wai-go/internal/application/doctor"
	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/infrastructure/ai"
	"github.com/doeshing/wai-go/internal/infrastructure/config"
	"github.com/doeshing/wai-go/internal/infrastructure/generation"
	"github.com/doeshing/wai-go/internal/infrastructure/history"
	"github.com/doeshing/wai-go/internal/pkg/logger"
	"github.com/doeshing/wai-go/internal/ports"
)

// Options controls how the dependency graph is built.
type Options struct {
	ConfigPath string
	Verbose    bool
	// LogToFile sends debug logs to wai.log next to the config file,
	// keeping the terminal clean for the TUI.
	LogToFile bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Options         Options
	Config          domain.Config
	ConfigLoader    *config.FileLoader
	Logger          *logger.ZapLogger
	Generation      *generation.Client
	HistoryStore    ports.HistoryRepository
	Assistant       *assistant.Orchestrator
	DoctorService   *doctor.Service
	ProviderFactory ports.ProviderFactory

	closers []io.Closer
}

// BuildContainer constructs the dependency graph. The clipboard is attached
// by the CLI layer, which owns terminal concerns.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	c := &Container{}
	if err := c.Init(ctx, opts); err != nil {
		return nil, err
	}
	return c, nil
}

// Init populates an empty container in place, so commands built before flag
// parsing can share it.
func (c *Container) Init(ctx context.Context, opts Options) error {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.New(opts.Verbose)
	if opts.LogToFile {
		log = logger.NewFile(opts.Verbose, filepath.Join(filepath.Dir(cfgLoader.Path()), "wai.log"))
	}

	client := generation.NewClient(
		cfg.GetServiceEndpoint(),
		cfg.GetHealthEndpoint(),
		cfg.GetServiceTimeout(),
		generation.WithLogger(log),
	)

	c.Options = opts
	c.Config = cfg
	c.ConfigLoader = cfgLoader
	c.Logger = log
	c.Generation = client
	c.ProviderFactory = ai.NewFactory(domain.DefaultProviderTimeout)

	store, err := c.buildHistory(cfg)
	if err != nil {
		return err
	}
	c.HistoryStore = store

	c.Assistant = &assistant.Orchestrator{
		Service: client,
		History: store,
		Modes:   assistant.NewModeContext(cfg.DefaultMode(), cfg.DefaultLanguage()),
		Logger:  log,
	}

	c.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		Health:         client,
	}

	log.Debug("container ready", map[string]interface{}{
		"endpoint": cfg.GetServiceEndpoint(),
		"history":  cfg.GetHistoryBackend(),
	})
	return nil
}

// Ready reports whether Init has run.
func (c *Container) Ready() bool {
	return c != nil && c.Assistant != nil
}

func (c *Container) buildHistory(cfg domain.Config) (ports.HistoryRepository, error) {
	if cfg.GetHistoryBackend() != domain.HistoryBackendSQLite {
		return history.NewMemoryStore(), nil
	}
	store, err := history.NewSQLiteStore()
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, store)
	return store, nil
}

// AttachClipboard sets the clipboard on every service that uses one.
func (c *Container) AttachClipboard(clip ports.Clipboard) {
	c.Assistant.Clipboard = clip
	c.DoctorService.Clipboard = clip
}

// Close releases the history backend and flushes logs.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return firstErr
}
