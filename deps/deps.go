// Package deps checks that the external programs rangecut drives are installed.
package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// Program names an external dependency and its default executable.
type Program struct {
	Name       string
	InstallURL string
}

var (
	Mpv    = Program{Name: "mpv", InstallURL: MpvInstallURL}
	Ffmpeg = Program{Name: "ffmpeg", InstallURL: FfmpegInstallURL}
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	Binary     string
	InstallURL string
}

func (e *DependencyError) Error() string {
	if e.Binary != "" && e.Binary != e.Name {
		return fmt.Sprintf("%s not found at %q. Install from: %s", e.Name, e.Binary, e.InstallURL)
	}
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Check resolves binary (or the program's default name when empty) and returns its full path.
func Check(p Program, binary string) (string, error) {
	if binary == "" {
		binary = p.Name
	}
	path, err := lookPath(binary)
	if err != nil {
		return "", &DependencyError{
			Name:       p.Name,
			Binary:     binary,
			InstallURL: p.InstallURL,
		}
	}
	return path, nil
}

// Status is the result of checking one program.
type Status struct {
	Program Program
	// Path is the resolved executable when Err is nil
	Path string
	Err  error
}

// CheckAll checks the configured mpv and ffmpeg binaries, in that order.
// Empty binaries mean the default names on PATH.
func CheckAll(mpvBinary, ffmpegBinary string) []Status {
	var statuses []Status
	for _, c := range []struct {
		program Program
		binary  string
	}{
		{Mpv, mpvBinary},
		{Ffmpeg, ffmpegBinary},
	} {
		path, err := Check(c.program, c.binary)
		statuses = append(statuses, Status{Program: c.program, Path: path, Err: err})
	}
	return statuses
}
