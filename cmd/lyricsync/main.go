// lyricsync - Time-synchronized lyrics follower
//
// lyricsync parses LRC lyric files and reports which line is active at a
// given playback position.
package main

import (
	"os"

	"github.com/ccollicutt/lyricsync/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
