package commands

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/wai-go/internal/infrastructure/cli/helpers"
)

// NewModesCommand lists the transformation modes and target languages.
func NewModesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "modes",
		Short:       "List transformation modes and target languages",
		Annotations: map[string]string{AnnotationSkipContainer: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			helpers.RenderModes(cmd.OutOrStdout())
			return nil
		},
	}
}
