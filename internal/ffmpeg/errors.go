package ffmpeg

import "strings"

// ConversionError reports a failed transcode. Msg is the terminal failure
// message; Detail carries the tail of ffmpeg's stderr so operators can
// diagnose codec and container problems from the log without re-running.
type ConversionError struct {
	Msg    string
	Detail string
}

func (e *ConversionError) Error() string {
	return e.Msg
}

// Tail returns the last n lines of s, trimmed of surrounding whitespace.
func Tail(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return ""
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
