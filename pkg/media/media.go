// Package media supplies lyric text and track details from local files.
//
// Lyric files are read as text. Audio files are probed for tags and embedded
// (unsynchronised lyrics) frames, and WAV files additionally report their
// duration so a playback transport can show progress.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
)

// ErrNoLyrics is returned when an audio file carries no embedded lyrics.
var ErrNoLyrics = errors.New("no embedded lyrics")

// audioExtensions lists file extensions treated as audio rather than text.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".mp4":  true,
	".aac":  true,
	".alac": true,
	".flac": true,
	".ogg":  true,
	".dsf":  true,
	".wav":  true,
}

// Info describes an audio file.
type Info struct {
	Path   string `json:"path"`
	Format string `json:"format,omitempty"`
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Lyrics string `json:"lyrics,omitempty"`

	// DurationMs is 0 when the duration could not be determined.
	DurationMs int64 `json:"duration_ms"`
}

// IsAudio reports whether path looks like an audio file.
func IsAudio(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Probe reads tags, embedded lyrics and (for WAV) duration from an audio file.
// Files without tags are not an error.
func Probe(ctx context.Context, path string) (*Info, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening audio file %s: %w", path, err)
	}
	defer f.Close()

	info := &Info{Path: path}
	isWAV := strings.EqualFold(filepath.Ext(path), ".wav")

	m, err := tag.ReadFrom(f)
	switch {
	case err == nil:
		info.Format = string(m.FileType())
		info.Title = m.Title()
		info.Artist = m.Artist()
		info.Album = m.Album()
		info.Lyrics = m.Lyrics()
	case errors.Is(err, tag.ErrNoTagsFound), isWAV:
		// Untagged files still have a usable name and maybe a duration.
	default:
		return nil, fmt.Errorf("reading tags from %s: %w", path, err)
	}

	if info.Title == "" {
		info.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if isWAV {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewinding %s: %w", path, err)
		}
		ms, err := wavDuration(f)
		if err != nil {
			return nil, fmt.Errorf("reading WAV duration from %s: %w", path, err)
		}
		info.Format = "WAV"
		info.DurationMs = ms
	}

	return info, nil
}

func wavDuration(r io.ReadSeeker) (int64, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return 0, errors.New("invalid WAV file")
	}

	d, err := decoder.Duration()
	if err != nil {
		return 0, err
	}
	return d.Milliseconds(), nil
}

// ReadLyrics reads a lyric text file. A leading UTF-8 byte order mark is dropped.
func ReadLyrics(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return "", fmt.Errorf("reading lyrics file %s: %w", path, err)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// LoadText returns lyric text for path: embedded lyrics for audio files,
// the file content otherwise.
func LoadText(ctx context.Context, path string) (string, error) {
	if !IsAudio(path) {
		return ReadLyrics(ctx, path)
	}

	info, err := Probe(ctx, path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(info.Lyrics) == "" {
		return "", fmt.Errorf("%s: %w", path, ErrNoLyrics)
	}
	return info.Lyrics, nil
}
