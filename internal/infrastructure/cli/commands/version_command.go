package commands

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/wai-go/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Show wai version information",
		Annotations: map[string]string{AnnotationSkipContainer: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return nil
			}
			return displayVersionInformation(cmd.OutOrStdout(), time.Now())
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func displayVersionInformation(out io.Writer, now time.Time) error {
	fmt.Fprintf(out, "wai version %s\n", version.Version)

	if version.Commit != "" {
		fmt.Fprintf(out, "Commit: %s\n", version.Commit)
	}

	if version.BuildDate != "" {
		if built, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
			fmt.Fprintf(out, "Built: %s (%s)\n", version.BuildDate, humanize.RelTime(built, now, "ago", "from now"))
		} else {
			fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
		}
	}

	fmt.Fprintf(out, "Go version: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
