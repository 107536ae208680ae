// Package forms provides huh-based form components for the TUI.
package forms

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/user/rangecut/clip"
	"github.com/user/rangecut/pkg/timecode"
)

// NewOpenForm asks for the video file to open. The path must exist and be one of
// the supported containers.
func NewOpenForm(path *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Open video").
				Description(strings.Join(clip.SupportedExtensions, " ")).
				Placeholder("/path/to/video.mp4").
				Value(path).
				Validate(ValidateSource),
		),
	).WithTheme(Theme())
}

// ValidateSource accepts an existing regular file with a supported extension.
func ValidateSource(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	if !clip.IsSupportedSource(path) {
		return fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	info, err := os.Stat(ExpandHome(path))
	if err != nil {
		return fmt.Errorf("cannot open: %w", err)
	}
	if info.IsDir() {
		return errors.New("path is a directory")
	}
	return nil
}

// NewExportForm asks where to save the cut. dest should hold the suggested path on entry.
func NewExportForm(start, end timecode.TimeCode, dest *string) *huh.Form {
	header := fmt.Sprintf("Cut %s - %s", timecode.Format(start), timecode.Format(end))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(header).Description("Stream copy, saved as " + clip.OutputExtension),

			huh.NewInput().
				Title("Save as").
				Value(dest).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return errors.New("destination is required")
					}
					if ext := filepath.Ext(s); ext != "" && !strings.EqualFold(ext, clip.OutputExtension) {
						return fmt.Errorf("destination must be %s", clip.OutputExtension)
					}
					return nil
				}),
		),
	).WithTheme(Theme())
}

// NewConfirmOverwriteForm asks whether an existing destination may be replaced.
func NewConfirmOverwriteForm(dest string, overwrite *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Replace existing file?").
				Description(dest).
				Affirmative("Replace").
				Negative("Cancel").
				Value(overwrite),
		),
	).WithTheme(Theme())
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
