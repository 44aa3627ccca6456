package smoke

import (
	"fmt"
	"io"

	"github.com/okian/lineup/pkg/logger"
)

// SetupLogging routes smoke logs to w in text form; verbose lowers the
// level to debug.
func SetupLogging(w io.Writer, verbose bool) error {
	if err := logger.InitWith(w, logger.FormatText); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}
