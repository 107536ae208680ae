package clip

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/rangecut/pkg/timecode"
)

// OutputExtension is the container written by every export.
const OutputExtension = ".mp4"

// SupportedExtensions lists the source containers offered by the open form.
var SupportedExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".wmv"}

// IsSupportedSource reports whether path has one of SupportedExtensions (case-insensitive).
func IsSupportedSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// SuggestFilename returns {source-stem}_{start}_{end}.mp4 with file-safe timestamps.
func SuggestFilename(sourcePath string, start, end timecode.TimeCode) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%s_%s%s", stem, timecode.FormatFileSafe(start), timecode.FormatFileSafe(end), OutputExtension)
}

// SuggestPath joins SuggestFilename onto outputDir, or onto the source directory when outputDir is empty.
func SuggestPath(sourcePath, outputDir string, start, end timecode.TimeCode) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(sourcePath)
	}
	return filepath.Join(dir, SuggestFilename(sourcePath, start, end))
}

// EnsureMP4 appends .mp4 to a destination that has no extension.
func EnsureMP4(dest string) string {
	if filepath.Ext(dest) == "" {
		return dest + OutputExtension
	}
	return dest
}
