package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/doeshing/wai-go/internal/app"
	"github.com/doeshing/wai-go/internal/infrastructure/tui"
)

// NewTUICommand opens the interactive session.
func NewTUICommand(container *app.Container) *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:         "tui",
		Short:       "Open the interactive session",
		Annotations: map[string]string{AnnotationLogToFile: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTUI(cmd, container, exportDir)
		},
	}

	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for history exports (default: working directory)")
	return cmd
}

// RunTUI starts the full-screen session on the container's orchestrator.
func RunTUI(cmd *cobra.Command, container *app.Container, exportDir string) error {
	if container.Assistant == nil {
		return errors.New(ErrAssistantUnavailable)
	}
	return tui.Run(cmd.Context(), container.Assistant, tui.Options{
		CopyOnSuccess: container.Config.ShouldCopyOnSuccess(),
		DisplayLimit:  container.Config.HistoryDisplayLimit(),
		ExportDir:     exportDir,
	})
}
