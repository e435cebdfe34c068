package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/wai-go/internal/app"
	"github.com/doeshing/wai-go/internal/infrastructure/cli/commands"
	"github.com/doeshing/wai-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/wai-go/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The container is populated once
// flags are parsed, so --config and --verbose take effect.
func NewRootCmd(opts Options) *cobra.Command {
	container := &app.Container{}

	var (
		configPath string
		verbose    = opts.Verbose
		runOpts    commands.RunOptions
	)

	root := &cobra.Command{
		Use:   "wai [text]",
		Short: "wai - writing assistant in the terminal",
		Long: `wai improves, summarizes, translates or continues text through a generation service.

Without arguments it opens the interactive session. With arguments, or with
text piped on stdin, it transforms the text once and prints the result.`,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipContainer(cmd) {
				return nil
			}
			if err := container.Init(cmd.Context(), app.Options{
				ConfigPath: configPath,
				Verbose:    verbose,
				LogToFile:  logsToFile(cmd, args),
			}); err != nil {
				return err
			}
			container.AttachClipboard(NewClipboard())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !container.Ready() {
				return nil
			}
			return container.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && helpers.IsTerminal(cmd.InOrStdin()) {
				return commands.RunTUI(cmd, container, "")
			}
			return commands.RunTransformation(cmd, container, args, runOpts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.wai/config.yaml, or $WAI_CONFIG)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", opts.Verbose, "Enable debug logging")
	commands.BindRunFlags(root, &runOpts)

	root.AddCommand(
		commands.NewRunCommand(container),
		commands.NewTUICommand(container),
		commands.NewServeCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewModesCommand(),
		commands.NewVersionCommand(),
	)
	return root
}

// skipContainer reports whether cmd or one of its parents runs without config.
func skipContainer(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
		if c.Annotations[commands.AnnotationSkipContainer] == "true" {
			return true
		}
	}
	return false
}

// logsToFile is true for full-screen runs, where stderr output would corrupt the display.
func logsToFile(cmd *cobra.Command, args []string) bool {
	if cmd.Annotations[commands.AnnotationLogToFile] == "true" {
		return true
	}
	return !cmd.HasParent() && len(args) == 0 && helpers.IsTerminal(cmd.InOrStdin())
}
