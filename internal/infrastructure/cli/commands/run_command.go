package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/wai-go/internal/app"
	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/infrastructure/cli/helpers"
)

// RunOptions are the flags shared by `wai run` and the bare root command.
type RunOptions struct {
	Mode     string
	Language string
	Copy     bool
	Plain    bool
	Timeout  time.Duration
}

// BindRunFlags registers the transformation flags on cmd.
func BindRunFlags(cmd *cobra.Command, opts *RunOptions) {
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "Transformation mode: improve|summarize|translate|continue (default from config)")
	cmd.Flags().StringVarP(&opts.Language, "lang", "l", "", "Target language for translate (default from config)")
	cmd.Flags().BoolVarP(&opts.Copy, "copy", "c", false, "Copy the result to the clipboard")
	cmd.Flags().BoolVarP(&opts.Plain, "plain", "p", false, "Print only the transformed text")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Override request timeout (default from config)")
}

// NewRunCommand transforms text from args or stdin once and prints the result.
func NewRunCommand(container *app.Container) *cobra.Command {
	var opts RunOptions

	cmd := &cobra.Command{
		Use:   "run [text]",
		Short: "Transform text from arguments or stdin",
		Example: `  wai run --mode summarize "long text here"
  cat draft.txt | wai run -m translate -l french`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTransformation(cmd, container, args, opts)
		},
	}
	BindRunFlags(cmd, &opts)
	return cmd
}

// RunTransformation performs one submission through the orchestrator.
func RunTransformation(cmd *cobra.Command, container *app.Container, args []string, opts RunOptions) error {
	if container.Assistant == nil {
		return errors.New(ErrAssistantUnavailable)
	}
	if err := applyModeFlags(container, opts); err != nil {
		return err
	}

	text, err := helpers.ReadInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	plain := opts.Plain || !helpers.IsTerminal(out)

	var spinner *helpers.Spinner
	if helpers.IsTerminal(errOut) {
		mode := container.Assistant.Modes.Mode()
		spinner = helpers.NewSpinner(errOut, mode.Name()+"...")
		spinner.Start()
	}
	started := time.Now()
	entry, err := container.Assistant.Submit(ctx, text)
	if spinner != nil {
		spinner.Stop()
	}
	var historyErr *domain.HistoryError
	if err != nil && !errors.As(err, &historyErr) {
		return describeFailure(err)
	}

	helpers.RenderEntry(out, entry, helpers.Width(out), plain)
	container.Logger.Debug("transformation rendered", map[string]interface{}{
		"mode":    string(entry.Mode),
		"elapsed": helpers.Elapsed(time.Since(started)),
	})

	if opts.Copy || container.Config.ShouldCopyOnSuccess() {
		copyResult(errOut, container, plain)
	}
	if historyErr != nil {
		return describeFailure(err)
	}
	return nil
}

func applyModeFlags(container *app.Container, opts RunOptions) error {
	if opts.Mode != "" {
		mode, err := domain.ParseMode(opts.Mode)
		if err != nil {
			return err
		}
		container.Assistant.Modes.SetMode(mode)
	}
	if opts.Language != "" {
		lang, err := domain.ParseLanguage(opts.Language)
		if err != nil {
			return err
		}
		container.Assistant.Modes.SetTargetLanguage(lang)
	}
	return nil
}

func copyResult(errOut io.Writer, container *app.Container, quiet bool) {
	if err := container.Assistant.CopyLatest(); err != nil {
		fmt.Fprintf(errOut, "warning: %v\n", err)
		return
	}
	if !quiet {
		fmt.Fprintln(errOut, "Copied to clipboard.")
	}
}

func describeFailure(err error) error {
	info := domain.Describe(err)
	switch info.Kind {
	case domain.KindValidation:
		return fmt.Errorf("nothing to transform: %s", info.Message)
	case domain.KindNetwork:
		return fmt.Errorf("%s (is the generation service running? try `wai serve` or `wai doctor`)", info.Message)
	default:
		return errors.New(info.Message)
	}
}
