package probe

import "fmt"

// StreamStats describes the first stream of one type in a probed file.
// BitRate is bits/sec; zero means the container reports no rate for the
// stream (common for VBR content), which is distinct from the stream being
// absent entirely (a nil *StreamStats on FileStats).
type StreamStats struct {
	Codec   string
	BitRate int64
}

// FileStats is the normalized result of probing one media file.
type FileStats struct {
	Path     string
	Size     int64   // bytes; zero when the container reports none
	Duration float64 // seconds; zero when unknown
	Video    *StreamStats
	Audio    *StreamStats
}

// ProbeError reports that ffprobe could not read or parse a file. Msg carries
// the engine's own message text so codec and container problems can be
// diagnosed from the log alone.
type ProbeError struct {
	Path string
	Msg  string
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %s", e.Path, e.Msg)
}
