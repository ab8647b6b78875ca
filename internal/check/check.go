// Package check provides the `vconv check` diagnostics: engine binaries on
// PATH and the encoders the preset table relies on.
package check

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// requiredEncoders are the codecs the built-in presets reference.
var requiredEncoders = []string{"libx264", "libxvid", "aac", "libmp3lame"}

// Run prints the availability of ffmpeg, ffprobe, and the preset encoders
// to w. It reports false when anything required is missing; it does not stop
// at the first failure so the full picture lands in one pass.
func Run(w io.Writer) bool {
	ok := checkBinary(w, "ffmpeg")
	ok = checkBinary(w, "ffprobe") && ok
	ok = checkEncoders(w) && ok
	return ok
}

func checkBinary(w io.Writer, name string) bool {
	if _, err := exec.LookPath(name); err != nil {
		fmt.Fprintf(w, "%s: NOT FOUND on PATH\n", name)
		return false
	}
	out, err := exec.Command(name, "-version").Output()
	if err != nil {
		fmt.Fprintf(w, "%s: found, but -version failed: %v\n", name, err)
		return false
	}
	fmt.Fprintf(w, "%s: %s\n", name, firstLine(string(out)))
	return true
}

func checkEncoders(w io.Writer) bool {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").Output()
	if err != nil {
		fmt.Fprintf(w, "encoders: could not list (%v)\n", err)
		return false
	}
	ok := true
	for _, enc := range requiredEncoders {
		if EncoderListed(string(out), enc) {
			fmt.Fprintf(w, "encoder %s: available\n", enc)
		} else {
			fmt.Fprintf(w, "encoder %s: MISSING (presets using it will fail)\n", enc)
			ok = false
		}
	}
	return ok
}

// EncoderListed reports whether ffmpeg's -encoders listing contains name.
// Each listing line is "<flags> <name> <description>".
func EncoderListed(listing, name string) bool {
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx > 0 {
		s = s[:idx]
	}
	return s
}
