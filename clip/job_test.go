package clip

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/rangecut/pkg/timecode"
)

func TestJobArgs(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected []string
	}{
		{
			name:  "Ten to twenty five seconds",
			start: "00:00:10.000",
			end:   "00:00:25.000",
			expected: []string{
				"-ss", "00:00:10.000", "-i", "/in/match.mkv", "-t", "00:00:15.000",
				"-c", "copy", "/out/cut.mp4", "-y",
			},
		},
		{
			name:  "Millisecond bounds",
			start: "01:02:03.456",
			end:   "01:02:04.000",
			expected: []string{
				"-ss", "01:02:03.456", "-i", "/in/match.mkv", "-t", "00:00:00.544",
				"-c", "copy", "/out/cut.mp4", "-y",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewJob("/in/match.mkv", timecode.MustParse(tt.start), timecode.MustParse(tt.end), "/out/cut.mp4")
			assert.Equal(t, tt.expected, job.Args())
		})
	}
}

func TestNewJobID(t *testing.T) {
	a := NewJob("/in.mp4", 0, 1000, "/out.mp4")
	b := NewJob("/in.mp4", 0, 1000, "/out.mp4")
	assert.True(t, strings.HasPrefix(a.ID, JobIDPrefix))
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, timecode.TimeCode(1000), a.Duration())
}

func TestJobValidate(t *testing.T) {
	tests := []struct {
		name    string
		job     Job
		wantErr string
	}{
		{"Valid", Job{SourcePath: "/in.mp4", DestPath: "/out.mp4", Start: 0, End: 1}, ""},
		{"No source", Job{DestPath: "/out.mp4", End: 1}, "no source"},
		{"No destination", Job{SourcePath: "/in.mp4", End: 1}, "no destination"},
		{"Empty range", Job{SourcePath: "/in.mp4", DestPath: "/out.mp4", Start: 5, End: 5}, "end must be after start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
