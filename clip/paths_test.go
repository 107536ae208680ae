package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/rangecut/pkg/timecode"
)

func TestSuggestFilename(t *testing.T) {
	got := SuggestFilename("/videos/Final Match.v2.mkv", timecode.MustParse("00:00:10"), timecode.MustParse("01:00:25.500"))
	assert.Equal(t, "Final Match.v2_00-00-10-000_01-00-25-500.mp4", got)
}

func TestSuggestPath(t *testing.T) {
	start, end := timecode.MustParse("00:00:10"), timecode.MustParse("00:00:25")
	assert.Equal(t, "/videos/match_00-00-10-000_00-00-25-000.mp4", SuggestPath("/videos/match.mp4", "", start, end))
	assert.Equal(t, "/exports/match_00-00-10-000_00-00-25-000.mp4", SuggestPath("/videos/match.mp4", "/exports", start, end))
}

func TestIsSupportedSource(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"a.mp4", true},
		{"a.MKV", true},
		{"/x/y/a.avi", true},
		{"a.mov", true},
		{"a.wmv", true},
		{"a.webm", false},
		{"a", false},
		{"mp4", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSupportedSource(tt.path))
		})
	}
}

func TestEnsureMP4(t *testing.T) {
	assert.Equal(t, "/out/cut.mp4", EnsureMP4("/out/cut"))
	assert.Equal(t, "/out/cut.mp4", EnsureMP4("/out/cut.mp4"))
	assert.Equal(t, "/out/cut.mkv", EnsureMP4("/out/cut.mkv"))
}
