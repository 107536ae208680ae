package trim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/rangecut/clip"
	"github.com/user/rangecut/pkg/timecode"
)

func loadedSession(t *testing.T) Session {
	t.Helper()
	s, effects := NewSession().Apply(Opened{Path: "/videos/match.mp4"})
	require.Equal(t, []Effect{LoadSource{Path: "/videos/match.mp4"}}, effects)
	return s
}

func TestNewSession(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Loaded())
	assert.Equal(t, "00:00:00.000", s.Fields.Start)
	assert.Equal(t, "00:00:00.000", s.Fields.End)
	assert.Equal(t, "00:00:00.000 / 00:00:00.000", s.TimeText())
}

func TestOpened(t *testing.T) {
	s := loadedSession(t)
	assert.Equal(t, "/videos/match.mp4", s.SourcePath)
	assert.Equal(t, "Loaded: match.mp4", s.Status)

	same, effects := s.Apply(Opened{})
	assert.Empty(t, effects)
	assert.Equal(t, s, same)
}

func TestLoadFailedUnloads(t *testing.T) {
	s := loadedSession(t)
	s, _ = s.Apply(PlayRange{})
	require.True(t, s.Range.Looping)

	stale, effects := s.Apply(LoadFailed{Path: "/videos/other.mp4", Err: errors.New("gone")})
	assert.Empty(t, effects)
	assert.Equal(t, s, stale)

	s, effects = s.Apply(LoadFailed{Path: "/videos/match.mp4", Err: errors.New("unrecognized file format")})
	assert.Equal(t, []Effect{StopPolling{}}, effects)
	assert.False(t, s.Loaded())
	assert.False(t, s.Playing)
	assert.False(t, s.Range.Looping)
	assert.Equal(t, "Error: could not load match.mp4: unrecognized file format", s.Status)

	for _, ev := range []Event{PlayFull{}, PlayRange{}, PrepareExport{}} {
		_, effects := s.Apply(ev)
		assert.Empty(t, effects, "%T", ev)
	}
}

func TestPlayWithoutSource(t *testing.T) {
	s := NewSession()
	for _, ev := range []Event{PlayFull{}, PlayRange{}, PrepareExport{}} {
		next, effects := s.Apply(ev)
		assert.Empty(t, effects, "%T", ev)
		assert.Equal(t, s, next)
	}
}

func TestPlayFull(t *testing.T) {
	s := loadedSession(t)
	s.Range.Looping = true

	s, effects := s.Apply(PlayFull{})
	assert.Equal(t, []Effect{Play{}, StartPolling{}}, effects)
	assert.True(t, s.Playing)
	assert.False(t, s.Range.Looping)
	assert.Equal(t, "Playing full video", s.Status)
}

func TestPlayRangeNormalizes(t *testing.T) {
	s := loadedSession(t)
	s.Fields = Fields{Start: "00:00:30.000", End: "00:00:10.000"}

	s, effects := s.Apply(PlayRange{})
	require.Equal(t, []Effect{
		WriteField{Bound: BoundEnd, Text: "00:00:45.000"},
		Seek{To: timecode.MustParse("00:00:30")},
		Play{},
		StartPolling{},
	}, effects)
	assert.True(t, s.Range.Looping)
	assert.Equal(t, "00:00:45.000", s.Fields.End)
	assert.Equal(t, "Looping range 00:00:30.000 - 00:00:45.000", s.Status)
}

func TestPlayRangeIgnoresBadFields(t *testing.T) {
	s := loadedSession(t)
	s.Fields.Start = "abc"
	next, effects := s.Apply(PlayRange{})
	assert.Empty(t, effects)
	assert.Equal(t, s, next)
}

func TestStop(t *testing.T) {
	s := loadedSession(t)
	s.Fields = Fields{Start: "00:00:10.000", End: "00:00:20.000"}
	s, _ = s.Apply(PlayRange{})
	s, _ = s.Apply(Tick{Position: timecode.FromSeconds(12), Duration: timecode.FromSeconds(60), DurationKnown: true})
	require.NotZero(t, s.Progress)

	s, effects := s.Apply(Stop{})
	assert.Equal(t, []Effect{StopPlayback{}, StopPolling{}}, effects)
	assert.False(t, s.Playing)
	assert.False(t, s.Range.Looping)
	assert.Equal(t, timecode.Zero, s.Position)
	assert.Equal(t, timecode.Zero, s.Duration)
	assert.Zero(t, s.Progress)
	assert.Equal(t, "Stopped", s.Status)
	assert.Equal(t, "00:00:10.000", s.Fields.Start, "bounds survive a stop")
}

func TestTick(t *testing.T) {
	s := loadedSession(t)

	s, effects := s.Apply(Tick{Position: timecode.FromSeconds(15), Duration: timecode.FromSeconds(60), DurationKnown: true})
	assert.Empty(t, effects)
	assert.InDelta(t, 0.25, s.Progress, 1e-9)
	assert.Equal(t, "00:00:15.000 / 00:01:00.000", s.TimeText())
}

func TestTickUnknownDurationIgnored(t *testing.T) {
	s := loadedSession(t)
	for _, ev := range []Tick{
		{Position: timecode.FromSeconds(3)},
		{Position: timecode.FromSeconds(3), DurationKnown: true},
	} {
		next, effects := s.Apply(ev)
		assert.Empty(t, effects)
		assert.Equal(t, s, next)
	}
}

func TestTickShortDurationFloor(t *testing.T) {
	s := loadedSession(t)
	s, _ = s.Apply(Tick{Position: timecode.FromSeconds(0.25), Duration: timecode.FromSeconds(0.5), DurationKnown: true})
	assert.InDelta(t, 0.25, s.Progress, 1e-9)
}

func TestTickLoopsAtRangeEnd(t *testing.T) {
	s := loadedSession(t)
	s.Fields = Fields{Start: "00:00:10.000", End: "00:00:20.000"}
	s, _ = s.Apply(PlayRange{})
	duration := timecode.FromSeconds(60)

	_, effects := s.Apply(Tick{Position: timecode.FromSeconds(19.9), Duration: duration, DurationKnown: true})
	assert.Empty(t, effects)

	_, effects = s.Apply(Tick{Position: timecode.FromSeconds(20), Duration: duration, DurationKnown: true})
	assert.Equal(t, []Effect{Seek{To: timecode.FromSeconds(10)}}, effects)

	_, effects = s.Apply(Tick{Position: timecode.FromSeconds(20.08), Duration: duration, DurationKnown: true})
	assert.Equal(t, []Effect{Seek{To: timecode.FromSeconds(10)}}, effects, "overshoot still loops")

	s, _ = s.Apply(PlayFull{})
	_, effects = s.Apply(Tick{Position: timecode.FromSeconds(25), Duration: duration, DurationKnown: true})
	assert.Empty(t, effects, "full playback does not loop")
}

func TestFieldEdited(t *testing.T) {
	s := loadedSession(t)

	s, effects := s.Apply(FieldEdited{Bound: BoundStart, Text: "00:00:10.000"})
	require.Equal(t, []Effect{
		WriteField{Bound: BoundEnd, Text: "00:00:25.000"},
		Seek{To: timecode.FromSeconds(10)},
		Play{},
		StartPolling{},
	}, effects)
	assert.Equal(t, timecode.FromSeconds(25), s.Range.End)

	s, effects = s.Apply(FieldEdited{Bound: BoundEnd, Text: "00:00:40.000"})
	require.Equal(t, []Effect{Seek{To: timecode.FromSeconds(10)}, Play{}, StartPolling{}}, effects)
	assert.Equal(t, timecode.FromSeconds(40), s.Range.End)
	assert.True(t, s.Range.Looping)
}

func TestFieldEditedPartialTextIgnored(t *testing.T) {
	s := loadedSession(t)
	s, _ = s.Apply(FieldEdited{Bound: BoundStart, Text: "00:00:10.000"})
	before := s.Range

	for _, text := range []string{"00:00:1", "00:00:", "0", ""} {
		next, effects := s.Apply(FieldEdited{Bound: BoundStart, Text: text})
		assert.Empty(t, effects, "%q", text)
		assert.Equal(t, before, next.Range)
		assert.Equal(t, text, next.Fields.Start, "the typed text is kept")
		s = next
	}
}

func TestFieldEditedWithoutSource(t *testing.T) {
	s, effects := NewSession().Apply(FieldEdited{Bound: BoundStart, Text: "00:00:10.000"})
	assert.Equal(t, []Effect{WriteField{Bound: BoundEnd, Text: "00:00:25.000"}}, effects)
	assert.Equal(t, timecode.FromSeconds(10), s.Range.Start)
	assert.False(t, s.Range.Looping)
	assert.False(t, s.Playing)
}

func TestNudgeEvent(t *testing.T) {
	s := loadedSession(t)
	s.Fields = Fields{Start: "00:00:10.000", End: "00:00:10.400"}

	s, effects := s.Apply(Nudge{Bound: BoundStart, Delta: NudgeStep})
	require.Equal(t, []Effect{
		WriteField{Bound: BoundStart, Text: "00:00:10.500"},
		WriteField{Bound: BoundEnd, Text: "00:00:25.500"},
		Seek{To: timecode.MustParse("00:00:10.500")},
		Play{},
		StartPolling{},
	}, effects)
	assert.Equal(t, Fields{Start: "00:00:10.500", End: "00:00:25.500"}, s.Fields)

	s, effects = s.Apply(Nudge{Bound: BoundEnd, Delta: -NudgeStep})
	require.Equal(t, WriteField{Bound: BoundEnd, Text: "00:00:25.000"}, effects[0])
	assert.Len(t, effects, 4)
}

func TestNudgeEndBelowStart(t *testing.T) {
	s := loadedSession(t)
	s.Fields = Fields{Start: "00:00:10.000", End: "00:00:10.300"}

	s, effects := s.Apply(Nudge{Bound: BoundEnd, Delta: -NudgeStep})
	assert.Equal(t, WriteField{Bound: BoundEnd, Text: "00:00:25.000"}, effects[0])
	assert.Equal(t, "00:00:25.000", s.Fields.End)
}

func TestNudgeFloorsAtZero(t *testing.T) {
	s := loadedSession(t)
	s.Fields = Fields{Start: "00:00:00.200", End: "00:00:05.000"}

	s, effects := s.Apply(Nudge{Bound: BoundStart, Delta: -NudgeStep})
	assert.Equal(t, WriteField{Bound: BoundStart, Text: "00:00:00.000"}, effects[0])
	assert.Equal(t, timecode.Zero, s.Range.Start)
}

func TestNudgeUnparseable(t *testing.T) {
	s := loadedSession(t)
	s.Fields = Fields{Start: "junk", End: "00:00:05.000"}
	next, effects := s.Apply(Nudge{Bound: BoundStart, Delta: NudgeStep})
	assert.Empty(t, effects)
	assert.Equal(t, s, next)

	s.Fields = Fields{Start: "00:00:01.000", End: "junk"}
	next, effects = s.Apply(Nudge{Bound: BoundStart, Delta: NudgeStep})
	assert.Equal(t, []Effect{WriteField{Bound: BoundStart, Text: "00:00:01.500"}}, effects)
	assert.Equal(t, s.Range, next.Range)
}

func TestProgressClicked(t *testing.T) {
	s := loadedSession(t)
	duration := timecode.FromSeconds(120)

	s, effects := s.Apply(ProgressClicked{X: 25, Width: 100, Duration: duration, DurationKnown: true})
	require.Equal(t, []Effect{
		WriteField{Bound: BoundStart, Text: "00:00:30.000"},
		WriteField{Bound: BoundEnd, Text: "00:00:40.000"},
		Seek{To: timecode.FromSeconds(30)},
		Play{},
		StartPolling{},
	}, effects)
	assert.True(t, s.Range.Looping)
	assert.Equal(t, "Looping range 00:00:30.000 - 00:00:40.000", s.Status)
}

func TestProgressClickedEdges(t *testing.T) {
	s := loadedSession(t)
	duration := timecode.FromSeconds(60)

	atStart, _ := s.Apply(ProgressClicked{X: 0, Width: 80, Duration: duration, DurationKnown: true})
	assert.Equal(t, Fields{Start: "00:00:00.000", End: "00:00:10.000"}, atStart.Fields)

	atEnd, _ := s.Apply(ProgressClicked{X: 80, Width: 80, Duration: duration, DurationKnown: true})
	assert.Equal(t, Fields{Start: "00:01:00.000", End: "00:01:10.000"}, atEnd.Fields)

	for _, ev := range []ProgressClicked{
		{X: 10, Width: 80, Duration: duration},
		{X: 10, Width: 0, Duration: duration, DurationKnown: true},
	} {
		next, effects := s.Apply(ev)
		assert.Empty(t, effects)
		assert.Equal(t, s, next)
	}
}

func TestPrepareExport(t *testing.T) {
	s := loadedSession(t)
	s.Fields = Fields{Start: "00:00:10.000", End: "00:00:05.000"}

	s, effects := s.Apply(PrepareExport{})
	require.Equal(t, []Effect{
		WriteField{Bound: BoundEnd, Text: "00:00:25.000"},
		PromptDestination{
			Suggested: "/videos/match_00-00-10-000_00-00-25-000.mp4",
			Start:     timecode.FromSeconds(10),
			End:       timecode.FromSeconds(25),
		},
	}, effects)

	_, effects = s.Apply(PrepareExport{OutputDir: "/exports"})
	prompt := effects[0].(PromptDestination)
	assert.Equal(t, "/exports/match_00-00-10-000_00-00-25-000.mp4", prompt.Suggested)
}

func TestExportConfirmed(t *testing.T) {
	s := loadedSession(t)
	s.Fields = Fields{Start: "00:00:10.000", End: "00:00:25.000"}
	s, _ = s.Apply(PrepareExport{})

	s, effects := s.Apply(ExportConfirmed{Dest: "/out/clip"})
	require.Len(t, effects, 1)
	job := effects[0].(StartExport).Job
	assert.Equal(t, "/videos/match.mp4", job.SourcePath)
	assert.Equal(t, "/out/clip.mp4", job.DestPath)
	assert.Equal(t, timecode.FromSeconds(10), job.Start)
	assert.Equal(t, timecode.FromSeconds(25), job.End)
	assert.True(t, s.Exporting)
	assert.Equal(t, "Cutting...", s.Status)
}

func TestExportCancelled(t *testing.T) {
	s := loadedSession(t)
	s.Fields = Fields{Start: "00:00:10.000", End: "00:00:25.000"}
	s, _ = s.Apply(PrepareExport{})
	status := s.Status

	s, effects := s.Apply(ExportConfirmed{})
	assert.Empty(t, effects)
	assert.False(t, s.Exporting)
	assert.Equal(t, status, s.Status)

	_, effects = s.Apply(ExportConfirmed{Dest: "/out/late.mp4"})
	assert.Empty(t, effects, "a confirmation needs a fresh prepare")
}

func TestExportSingleFlight(t *testing.T) {
	s := loadedSession(t)
	s.Fields = Fields{Start: "00:00:10.000", End: "00:00:25.000"}
	s, _ = s.Apply(PrepareExport{})
	s, _ = s.Apply(ExportConfirmed{Dest: "/out/a.mp4"})
	require.True(t, s.Exporting)

	next, effects := s.Apply(PrepareExport{})
	assert.Empty(t, effects)
	assert.Equal(t, s, next)

	s, _ = s.Apply(ExportFinished{Result: clip.Result{Job: clip.Job{DestPath: "/out/a.mp4"}}})
	assert.False(t, s.Exporting)

	_, effects = s.Apply(PrepareExport{})
	assert.Len(t, effects, 1, "export is available again")
}

func TestExportFinished(t *testing.T) {
	base := loadedSession(t)
	base.Exporting = true
	job := clip.Job{DestPath: "/out/a.mp4"}

	tests := []struct {
		name      string
		err       error
		status    string
		exportLog string
	}{
		{"Success", nil, "Cut saved: /out/a.mp4", ""},
		{"Non-zero exit", &clip.ExecutionError{Binary: "/usr/bin/ffmpeg", ExitCode: 1, Stderr: "Invalid data"}, "ffmpeg failed (code 1)", "Invalid data"},
		{"Launch failure", &clip.LaunchError{Binary: "ffmpeg", Err: errors.New("executable file not found in $PATH")}, "Error: failed to start ffmpeg: executable file not found in $PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, effects := base.Apply(ExportFinished{Result: clip.Result{Job: job}, Err: tt.err})
			assert.Empty(t, effects)
			assert.False(t, s.Exporting)
			assert.Equal(t, tt.status, s.Status)
			assert.Equal(t, tt.exportLog, s.ExportLog)
		})
	}
}
