// Package clip builds and runs ffmpeg stream-copy extractions of a time range.
package clip

import (
	"errors"

	"github.com/google/uuid"
	"github.com/user/rangecut/pkg/timecode"
)

// JobIDPrefix prefixes every generated job ID.
const JobIDPrefix = "cut-"

// Job is a single export request. It is built when an export starts and dropped when it ends.
type Job struct {
	ID         string
	SourcePath string
	Start      timecode.TimeCode
	End        timecode.TimeCode
	DestPath   string
}

// NewJob creates a job with a fresh ID.
func NewJob(sourcePath string, start, end timecode.TimeCode, destPath string) Job {
	return Job{
		ID:         JobIDPrefix + uuid.NewString(),
		SourcePath: sourcePath,
		Start:      start,
		End:        end,
		DestPath:   destPath,
	}
}

// Duration is End - Start.
func (j Job) Duration() timecode.TimeCode {
	return j.End.Sub(j.Start)
}

// Validate checks that the job can be handed to the encoder.
func (j Job) Validate() error {
	if j.SourcePath == "" {
		return errors.New("clip: no source file")
	}
	if j.DestPath == "" {
		return errors.New("clip: no destination file")
	}
	if !j.End.After(j.Start) {
		return errors.New("clip: end must be after start")
	}
	return nil
}

// Args returns the encoder arguments for a stream copy of the job's range:
//
//	-ss <start> -i <source> -t <duration> -c copy <dest> -y
func (j Job) Args() []string {
	return []string{
		"-ss", timecode.Format(j.Start),
		"-i", j.SourcePath,
		"-t", timecode.Format(j.Duration()),
		"-c", "copy",
		j.DestPath,
		"-y",
	}
}
