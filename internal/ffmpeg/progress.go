package ffmpeg

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// readProgress consumes ffmpeg's -progress key=value stream. Values
// accumulate until a "progress=" marker closes the batch, at which point the
// callback fires with the percentage of totalSeconds completed.
// "progress=end" always reports 100.
//
// ffmpeg's out_time_ms field carries microseconds despite its name; out_time
// ("HH:MM:SS.micros") is the fallback for builds that omit the numeric keys.
func readProgress(r io.Reader, totalSeconds float64, fn func(percent float64)) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var outTimeUs int64
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "progress=") {
			if fn == nil {
				continue
			}
			if line == "progress=end" {
				fn(100)
				continue
			}
			if totalSeconds > 0 {
				fn(clampPercent(float64(outTimeUs) / 1e6 / totalSeconds * 100))
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "out_time_us", "out_time_ms":
			if n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
				outTimeUs = n
			}
		case "out_time":
			// Fallback for builds that omit the numeric keys; when both are
			// present they carry the same value, so overwriting is harmless.
			if us, ok := parseOutTime(strings.TrimSpace(value)); ok {
				outTimeUs = us
			}
		}
	}
}

// parseOutTime parses ffmpeg's "HH:MM:SS.micros" clock into microseconds.
func parseOutTime(s string) (int64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err1 := strconv.ParseInt(parts[0], 10, 64)
	m, err2 := strconv.ParseInt(parts[1], 10, 64)
	sec, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	total := float64(h*3600+m*60) + sec
	return int64(total * 1e6), true
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
