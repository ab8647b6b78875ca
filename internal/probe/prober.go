// Package probe wraps ffprobe-based media inspection behind a normalized
// FileStats record. One JSON call per file covers container size, duration,
// and the first video and audio streams.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Probe runs a single ffprobe JSON call against path and returns the
// normalized stats. Failures are reported as *ProbeError carrying ffprobe's
// stderr text.
func Probe(ctx context.Context, path string) (*FileStats, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		msg := err.Error()
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			if s := strings.TrimSpace(string(ee.Stderr)); s != "" {
				msg = s
			}
		}
		return nil, &ProbeError{Path: path, Msg: msg}
	}

	st, err := ParseJSON(out)
	if err != nil {
		return nil, &ProbeError{Path: path, Msg: err.Error()}
	}
	st.Path = path
	return st, nil
}

// ParseJSON converts raw ffprobe JSON output into FileStats. Exported for
// testing without a real ffprobe binary.
func ParseJSON(data []byte) (*FileStats, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildStats(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
}

type ffprobeStream struct {
	CodecName   string         `json:"codec_name"`
	CodecType   string         `json:"codec_type"`
	BitRate     string         `json:"bit_rate"`
	Disposition map[string]int `json:"disposition"`
}

// buildStats selects the first video stream (ignoring attached cover art)
// and the first audio stream. Missing streams leave the corresponding
// pointer nil; a missing bitrate leaves the field zero.
func buildStats(raw *ffprobeOutput) *FileStats {
	st := &FileStats{
		Size:     parseInt64(raw.Format.Size),
		Duration: parseFloat(raw.Format.Duration),
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			if st.Video == nil && s.Disposition["attached_pic"] != 1 {
				st.Video = &StreamStats{Codec: s.CodecName, BitRate: parseInt64(s.BitRate)}
			}
		case "audio":
			if st.Audio == nil {
				st.Audio = &StreamStats{Codec: s.CodecName, BitRate: parseInt64(s.BitRate)}
			}
		}
	}
	return st
}

// ffprobe returns numbers as strings.

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
