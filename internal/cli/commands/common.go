// Package commands implements the lyricsync subcommands.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lyricsync/pkg/config"
	"github.com/ccollicutt/lyricsync/pkg/lrc"
	"github.com/ccollicutt/lyricsync/pkg/media"
	"github.com/ccollicutt/lyricsync/pkg/output"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// Exit codes.
const (
	ExitOK       = 0
	ExitNoLyrics = 1
	ExitError    = 2
)

// ConfigFlag is the persistent flag holding the config file path.
const ConfigFlag = "config"

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig loads the file named by --config, or the defaults when the
// flag is unset or not registered on this command tree.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(ConfigFlag)
	cfg, err := config.LoadOrDefault(commandContext(cmd), path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// createFormatter picks the --output flag value, falling back to the
// configured default format.
func createFormatter(name string, cfg *config.Config, opts output.FormatOptions) (output.Formatter, error) {
	if name == "" {
		name = string(cfg.Output.Format)
	}
	return output.New(name, opts)
}

// loadTimeline reads a lyrics or audio file and parses it.
func loadTimeline(ctx context.Context, path string) (lrc.Timeline, error) {
	text, err := media.LoadText(ctx, path)
	if err != nil {
		return lrc.Timeline{}, err
	}
	return lrc.Parse(text), nil
}
