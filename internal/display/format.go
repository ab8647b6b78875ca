package display

import (
	"fmt"
	"time"
)

// FormatBytes returns a human-readable size in base-1024 units with two
// decimals (e.g. "1.50 KB"). Zero is the literal "0 Bytes" label.
func FormatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	const unit = 1024
	suffixes := []string{"Bytes", "KB", "MB", "GB", "TB", "PB"}
	div, exp := int64(1), 0
	for n := bytes; n >= unit && exp < len(suffixes)-1; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatBitrate renders a bitrate in bits/sec as whole kb/s. Zero or
// negative means the container did not report one; that renders as "N/A".
func FormatBitrate(bps int64) string {
	if bps <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d kb/s", bps/1000)
}

// FormatSizeChange renders the percentage size change from source to target
// with two decimals and an explicit sign. A zero-byte source makes the ratio
// undefined, so that case reports "unknown" instead of dividing.
func FormatSizeChange(source, target int64) string {
	if source <= 0 {
		return "unknown"
	}
	pct := float64(target-source) / float64(source) * 100
	return fmt.Sprintf("%+.2f%%", pct)
}

// FormatSeconds renders an elapsed duration as seconds with two decimals.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2f s", d.Seconds())
}

// FormatDuration renders a media duration in seconds with two decimals,
// or "unknown" when the container did not report one.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%.2f s", seconds)
}
