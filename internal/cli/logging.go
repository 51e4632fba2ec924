package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

type runFunc func(cmd *cobra.Command, args []string) error

// logged wraps a command so every run is logged with its duration and error.
func logged(run runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		command := cmd.CommandPath()

		err := run(cmd, args)

		duration := time.Since(start).Milliseconds()
		if err != nil {
			slog.Warn("Command error",
				"command", command,
				"error", err,
				"duration_ms", duration,
			)
		} else {
			slog.Debug("Command ok",
				"command", command,
				"duration_ms", duration,
			)
		}
		return err
	}
}
