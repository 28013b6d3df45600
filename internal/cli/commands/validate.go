package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lyricsync/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a lyricsync configuration file.

Checks:
  - YAML syntax
  - Durations (poll interval, seek step, timeouts, cache TTL)
  - Output format
  - LRCLIB and Redis URLs
  - Style colors

Environment overrides (LYRICSYNC_LRCLIB_URL, LYRICSYNC_REDIS_URL,
LYRICSYNC_POLL_INTERVAL) are applied before validation.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(commandContext(cmd), configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Poll interval: %s\n", cfg.Playback.PollInterval)
	fmt.Fprintf(w, "  Seek step:     %s\n", cfg.Playback.SeekStep)
	fmt.Fprintf(w, "  Output:        %s\n", cfg.Output.Format)
	fmt.Fprintf(w, "  LRCLIB:        %s (timeout %s)\n", cfg.LRCLIB.BaseURL, cfg.LRCLIB.Timeout)
	if cfg.Cache.Enabled() {
		fmt.Fprintf(w, "  Cache:         redis (ttl %s)\n", cfg.Cache.TTL)
	} else {
		fmt.Fprintf(w, "  Cache:         disabled\n")
	}
	fmt.Fprintf(w, "  Style:         active %s, dim %s, %d context lines\n",
		cfg.Style.ActiveColor, cfg.Style.DimColor, cfg.Style.ContextLines)

	return nil
}
