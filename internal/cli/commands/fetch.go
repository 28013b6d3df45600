package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lyricsync/pkg/config"
	"github.com/ccollicutt/lyricsync/pkg/lrc"
	"github.com/ccollicutt/lyricsync/pkg/lrclib"
	"github.com/ccollicutt/lyricsync/pkg/media"
)

// FetchOptions holds command-line options for the fetch command.
type FetchOptions struct {
	Track    string
	Artist   string
	Album    string
	Duration int
	Audio    string
	Write    string
	Output   string
	NoCache  bool
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand() *cobra.Command {
	opts := &FetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download synced lyrics from LRCLIB",
		Long: `Look up synced lyrics on LRCLIB (https://lrclib.net) and print them.

The track can be named with --track and --artist (and optionally --album and
--duration), or read from the tags of an audio file with --audio. Flags win
over tags.

When cache.redis_url is configured (or LYRICSYNC_REDIS_URL is set) results
are cached in Redis.

Exit codes:
  0 - Synced lyrics found
  1 - No lyrics found, or only plain lyrics available
  2 - Configuration or runtime error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Track, "track", "t", "", "Track name")
	cmd.Flags().StringVarP(&opts.Artist, "artist", "a", "", "Artist name")
	cmd.Flags().StringVar(&opts.Album, "album", "", "Album name")
	cmd.Flags().IntVar(&opts.Duration, "duration", 0, "Track duration in seconds")
	cmd.Flags().StringVar(&opts.Audio, "audio", "", "Read track details from an audio file's tags")
	cmd.Flags().StringVarP(&opts.Write, "write", "w", "", "Write the LRC to this file (will not overwrite)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json), default from config")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Bypass the Redis cache")

	return cmd
}

func runFetch(cmd *cobra.Command, opts *FetchOptions) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	query, err := buildQuery(cmd, opts)
	if err != nil {
		return err
	}

	clientOpts := []lrclib.Option{
		lrclib.WithBaseURL(cfg.LRCLIB.BaseURL),
		lrclib.WithTimeout(cfg.LRCLIB.Timeout),
		lrclib.WithUserAgent(cfg.LRCLIB.UserAgent + "/" + Version),
	}
	if cache := openCache(cfg, opts); cache != nil {
		defer cache.Close()
		clientOpts = append(clientOpts, lrclib.WithCache(cache))
	}

	rec, err := lrclib.NewClient(clientOpts...).Get(ctx, query)
	if errors.Is(err, lrclib.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "No lyrics found: %v\n", err)
		ExitCode = ExitNoLyrics
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetching lyrics: %w", err)
	}

	format := opts.Output
	if format == "" {
		format = string(cfg.Output.Format)
	}
	if format == string(config.OutputFormatJSON) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rec); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}
	}

	if !rec.HasSynced() {
		if rec.Instrumental {
			fmt.Fprintf(os.Stderr, "%s by %s is instrumental\n", rec.TrackName, rec.ArtistName)
		} else {
			fmt.Fprintf(os.Stderr, "No synced lyrics for %s by %s\n", rec.TrackName, rec.ArtistName)
		}
		ExitCode = ExitNoLyrics
		return nil
	}

	if opts.Write != "" {
		return writeLyrics(cmd.OutOrStdout(), opts.Write, rec)
	}
	if format != string(config.OutputFormatJSON) {
		fmt.Fprintln(cmd.OutOrStdout(), rec.SyncedLyrics)
	}
	return nil
}

// buildQuery fills a query from flags, falling back to audio tags.
func buildQuery(cmd *cobra.Command, opts *FetchOptions) (lrclib.Query, error) {
	q := lrclib.Query{
		TrackName:   opts.Track,
		ArtistName:  opts.Artist,
		AlbumName:   opts.Album,
		DurationSec: opts.Duration,
	}

	if opts.Audio != "" {
		info, err := media.Probe(commandContext(cmd), opts.Audio)
		if err != nil {
			return q, err
		}
		if q.TrackName == "" {
			q.TrackName = info.Title
		}
		if q.ArtistName == "" {
			q.ArtistName = info.Artist
		}
		if q.AlbumName == "" {
			q.AlbumName = info.Album
		}
		if q.DurationSec == 0 && info.DurationMs > 0 {
			q.DurationSec = int((info.DurationMs + 500) / 1000)
		}
	}

	if err := q.Validate(); err != nil {
		return q, fmt.Errorf("%w (use --track and --artist, or --audio)", err)
	}
	return q, nil
}

// openCache connects the Redis cache when configured. Connection problems
// are reported and fetching continues uncached.
func openCache(cfg *config.Config, opts *FetchOptions) *lrclib.RedisCache {
	if opts.NoCache || !cfg.Cache.Enabled() {
		return nil
	}
	cache, err := lrclib.NewRedisCache(cfg.Cache.RedisURL, cfg.Cache.TTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cache disabled: %v\n", err)
		return nil
	}
	return cache
}

func writeLyrics(w io.Writer, path string, rec *lrclib.Record) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("lyrics file already exists: %s (will not overwrite)", path)
	}

	// #nosec G306 - lyrics files don't need restrictive permissions
	if err := os.WriteFile(path, []byte(rec.SyncedLyrics+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write lyrics file: %w", err)
	}

	tl := lrc.Parse(rec.SyncedLyrics)
	fmt.Fprintf(w, "Wrote %d lines to: %s\n", tl.Len(), path)
	return nil
}
