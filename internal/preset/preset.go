// Package preset defines the built-in conversion presets: named bundles of
// ffmpeg output arguments plus the output file extension they produce.
// Presets are read-only data; adding one is a code change, not a runtime
// operation.
package preset

// Preset is one named conversion profile. Args is order-significant: flag
// tokens are followed by their value tokens exactly as ffmpeg expects them.
type Preset struct {
	Name        string
	Description string
	Args        []string
	OutputExt   string // includes the leading dot
}

// registry is the full preset table in display order.
var registry = []Preset{
	{
		Name:        "half_size",
		Description: "Half-resolution H.264/AAC MP4",
		Args: []string{
			"-vf", "scale=iw/2:ih/2",
			"-c:v", "libx264", "-crf", "23", "-preset", "medium",
			"-c:a", "aac", "-b:a", "128k",
		},
		OutputExt: ".mp4",
	},
	{
		Name:        "web_optimized",
		Description: "Web-friendly H.264/AAC MP4 with fast-start muxing",
		Args: []string{
			"-c:v", "libx264", "-crf", "22", "-preset", "slow", "-profile:v", "high",
			"-c:a", "aac", "-b:a", "160k",
			"-movflags", "+faststart",
		},
		OutputExt: ".mp4",
	},
	{
		Name:        "extract_audio",
		Description: "Audio-only MP3 extraction",
		Args:        []string{"-vn", "-c:a", "libmp3lame", "-q:a", "2"},
		OutputExt:   ".mp3",
	},
	{
		Name:        "small_xvid",
		Description: "480p Xvid/MP3 AVI",
		Args: []string{
			"-vf", "scale=-2:480",
			"-c:v", "libxvid", "-qscale:v", "5",
			"-c:a", "libmp3lame", "-qscale:a", "4",
		},
		OutputExt: ".avi",
	},
	{
		Name:        "tiny_xvid",
		Description: "360p Xvid/MP3 AVI for very small files",
		Args: []string{
			"-vf", "scale=-2:360",
			"-c:v", "libxvid", "-qscale:v", "7",
			"-c:a", "libmp3lame", "-qscale:a", "6",
		},
		OutputExt: ".avi",
	},
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Preset, bool) {
	for _, p := range registry {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Names returns all preset names in registry order.
func Names() []string {
	names := make([]string, len(registry))
	for i, p := range registry {
		names[i] = p.Name
	}
	return names
}

// All returns the full preset table in registry order.
func All() []Preset {
	out := make([]Preset, len(registry))
	copy(out, registry)
	return out
}
