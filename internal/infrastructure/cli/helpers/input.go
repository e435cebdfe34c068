package helpers

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// maxStdinBytes bounds piped input.
const maxStdinBytes = 4 << 20

// ReadInput joins args into the text to submit, or reads stdin when there are none.
// Piped input larger than maxStdinBytes is rejected rather than truncated.
func ReadInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if stdin == nil {
		return "", nil
	}
	raw, err := io.ReadAll(io.LimitReader(stdin, maxStdinBytes+1))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if len(raw) > maxStdinBytes {
		return "", fmt.Errorf("read stdin: input exceeds %s", humanize.IBytes(maxStdinBytes))
	}
	return string(raw), nil
}
