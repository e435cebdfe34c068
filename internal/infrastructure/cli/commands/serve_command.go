package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/wai-go/internal/app"
	"github.com/doeshing/wai-go/internal/infrastructure/server"
	"github.com/doeshing/wai-go/internal/pkg/logger"
)

// NewServeCommand runs the bundled generation service in front of the
// configured upstream model.
func NewServeCommand(container *app.Container) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the generation service backed by the configured model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.ProviderFactory == nil {
				return fmt.Errorf("provider factory unavailable")
			}
			model := container.Config.GetServerModel()
			provider, err := container.ProviderFactory.ForModel(model)
			if err != nil {
				return fmt.Errorf("build provider for %s: %w", model.Name, err)
			}

			addr := listen
			if addr == "" {
				addr = container.Config.GetListenAddr()
			}

			svcLog := logger.NewService(container.Options.Verbose)
			defer func() { _ = svcLog.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(provider, container.Config.ParamsFor, svcLog.Zap())
			fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s via %s on http://%s\n", model.Name, provider.Name(), addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from config)")
	return cmd
}
