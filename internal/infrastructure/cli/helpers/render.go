package helpers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/doeshing/wai-go/internal/domain"
)

// DefaultWrapWidth is used when the terminal width is unknown.
const DefaultWrapWidth = 80

// RenderEntry prints a completed transformation. With plain set only the
// output text is written, suitable for piping.
func RenderEntry(out io.Writer, entry domain.HistoryEntry, width int, plain bool) {
	if plain {
		fmt.Fprintln(out, entry.OutputText)
		return
	}
	if width <= 0 {
		width = DefaultWrapWidth
	}
	fmt.Fprintf(out, "%s (%s, %s → %s characters)\n\n",
		entry.Label(),
		humanize.Time(entry.CreatedAt),
		humanize.Comma(int64(len([]rune(entry.InputText)))),
		humanize.Comma(int64(len([]rune(entry.OutputText)))),
	)
	fmt.Fprintln(out, wordwrap.String(entry.OutputText, width))
}

// RenderModes lists the modes and languages with their wire tokens.
func RenderModes(out io.Writer) {
	fmt.Fprintln(out, "Modes:")
	for i, mode := range domain.Modes {
		fmt.Fprintf(out, "  %d. %-10s %-10s %s\n", i+1, mode.Name(), string(mode), mode.Label(nil))
	}
	fmt.Fprintln(out, "\nTarget languages (translate only):")
	for _, lang := range domain.Languages {
		fmt.Fprintf(out, "  %-11s %s\n", lang.Name(), string(lang))
	}
}

// RenderHealth prints doctor checks as [STATUS] name - details.
func RenderHealth(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}

// Elapsed formats a duration for status lines.
func Elapsed(d time.Duration) string {
	return d.Round(10 * time.Millisecond).String()
}
