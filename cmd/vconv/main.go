// Command vconv is the batch video converter CLI. It applies a named ffmpeg
// preset to every video file in the input directory, mirroring progress and
// file statistics to the console and a per-day log file.
package main

import (
	"errors"
	"fmt"
	"os"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// errRunFailed signals a non-zero exit for outcomes that were already
// reported through the run logger; main must not print them twice.
var errRunFailed = errors.New("run completed with failures")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintf(os.Stderr, "vconv: %v\n", err)
		}
		os.Exit(1)
	}
}
