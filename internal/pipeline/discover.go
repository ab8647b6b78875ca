package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Recognized video file extensions (lowercase, with leading dot). This set
// is fixed and deliberately excludes audio-only containers.
var videoExtensions = map[string]bool{
	".mp4": true,
	".mkv": true,
	".avi": true,
	".mov": true,
	".flv": true,
	".wmv": true,
}

// Discover lists the immediate entries of inputDir and returns the names of
// candidate video files, sorted lexicographically for deterministic
// processing order. Subdirectories are not descended into.
func Discover(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if videoExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
