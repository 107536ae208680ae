package trim

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/user/rangecut/clip"
	"github.com/user/rangecut/pkg/timecode"
)

// Fields holds the text of the two range inputs as the user sees them.
type Fields struct {
	Start string
	End   string
}

// Get returns the text of the chosen field.
func (f Fields) Get(b Bound) string {
	if b == BoundEnd {
		return f.End
	}
	return f.Start
}

// Set replaces the text of the chosen field.
func (f *Fields) Set(b Bound, text string) {
	if b == BoundEnd {
		f.End = text
	} else {
		f.Start = text
	}
}

// Session is the whole trimming state for one run of the UI.
// It is a value: Apply returns the next Session rather than mutating the receiver.
type Session struct {
	SourcePath string
	Range      Range
	Playing    bool
	Exporting  bool

	Fields   Fields
	Position timecode.TimeCode
	Duration timecode.TimeCode
	// Progress is Position/Duration in [0, 1] for the progress bar.
	Progress float64
	Status   string
	// ExportLog holds the encoder's stderr from the last failed export.
	ExportLog string

	pending *Range
}

// NewSession returns an empty session with both fields at zero.
func NewSession() Session {
	zero := timecode.Format(timecode.Zero)
	return Session{
		Fields: Fields{Start: zero, End: zero},
		Status: "Open a video to begin",
	}
}

// Loaded reports whether a source file has been opened.
func (s Session) Loaded() bool {
	return s.SourcePath != ""
}

// TimeText is the "position / duration" display.
func (s Session) TimeText() string {
	return timecode.Format(s.Position) + " / " + timecode.Format(s.Duration)
}

// Apply handles ev and returns the next session and the effects to perform, in order.
func (s Session) Apply(ev Event) (Session, []Effect) {
	switch ev := ev.(type) {
	case Opened:
		return s.open(ev.Path)
	case LoadFailed:
		return s.loadFailed(ev)
	case PlayFull:
		return s.playFull()
	case PlayRange:
		return s.playRange()
	case Stop:
		return s.stop()
	case Tick:
		return s.tick(ev)
	case FieldEdited:
		s.Fields.Set(ev.Bound, ev.Text)
		return s.applyFields(nil)
	case Nudge:
		return s.nudge(ev.Bound, ev.Delta)
	case ProgressClicked:
		return s.progressClick(ev)
	case PrepareExport:
		return s.prepareExport(ev.OutputDir)
	case ExportConfirmed:
		return s.confirmExport(ev.Dest)
	case ExportFinished:
		return s.exportFinished(ev)
	}
	return s, nil
}

func (s Session) open(path string) (Session, []Effect) {
	if path == "" {
		return s, nil
	}
	s.SourcePath = path
	s.Status = "Loaded: " + filepath.Base(path)
	return s, []Effect{LoadSource{Path: path}}
}

// loadFailed unloads the session so play, loop and export stay disabled until
// another file opens. A failure for a path that is no longer current is ignored.
func (s Session) loadFailed(ev LoadFailed) (Session, []Effect) {
	if ev.Path == "" || ev.Path != s.SourcePath {
		return s, nil
	}
	s.SourcePath = ""
	s.Playing = false
	s.Range.Looping = false
	s.pending = nil
	s.Position = timecode.Zero
	s.Duration = timecode.Zero
	s.Progress = 0
	s.Status = fmt.Sprintf("Error: could not load %s: %v", filepath.Base(ev.Path), ev.Err)
	return s, []Effect{StopPolling{}}
}

func (s Session) playFull() (Session, []Effect) {
	if !s.Loaded() {
		return s, nil
	}
	s.Range.Looping = false
	s.Playing = true
	s.Status = "Playing full video"
	return s, []Effect{Play{}, StartPolling{}}
}

func (s Session) playRange() (Session, []Effect) {
	if !s.Loaded() {
		return s, nil
	}
	r, effects, ok := s.parseNormalized()
	if !ok {
		return s, nil
	}
	if effects != nil {
		s.Fields.End = timecode.Format(r.End)
	}
	s.Range = r
	return s.startLoop(effects)
}

func (s Session) stop() (Session, []Effect) {
	s.Playing = false
	s.Range.Looping = false
	s.Position = timecode.Zero
	s.Duration = timecode.Zero
	s.Progress = 0
	s.Status = "Stopped"
	return s, []Effect{StopPlayback{}, StopPolling{}}
}

func (s Session) tick(ev Tick) (Session, []Effect) {
	if !ev.DurationKnown || ev.Duration <= timecode.Zero {
		return s, nil
	}

	s.Position = ev.Position
	s.Duration = ev.Duration
	// Floor of one second keeps the ratio finite before the real duration settles.
	s.Progress = clampRatio(ev.Position.Seconds() / math.Max(1, ev.Duration.Seconds()))

	if s.Range.Looping && !ev.Position.Before(s.Range.End) {
		return s, []Effect{Seek{To: s.Range.Start}}
	}
	return s, nil
}

// parseNormalized parses both fields and normalizes them. effects holds the
// write-back of a corrected end, and is nil when nothing changed.
func (s Session) parseNormalized() (Range, []Effect, bool) {
	start, err := timecode.Parse(s.Fields.Start)
	if err != nil {
		return Range{}, nil, false
	}
	end, err := timecode.Parse(s.Fields.End)
	if err != nil {
		return Range{}, nil, false
	}

	r, changed := Range{Start: start, End: end}.Normalize()
	if !changed {
		return r, nil, true
	}
	return r, []Effect{WriteField{Bound: BoundEnd, Text: timecode.Format(r.End)}}, true
}

// applyFields is the shared path after a user edit or nudge: parse, normalize,
// commit, and loop the new range when a source is loaded. Unparseable text is ignored.
func (s Session) applyFields(effects []Effect) (Session, []Effect) {
	r, writes, ok := s.parseNormalized()
	if !ok {
		return s, effects
	}
	if writes != nil {
		s.Fields.End = timecode.Format(r.End)
		effects = append(effects, writes...)
	}
	return s.commit(r, effects)
}

func (s Session) commit(r Range, effects []Effect) (Session, []Effect) {
	r.Looping = s.Range.Looping
	s.Range = r
	if !s.Loaded() {
		return s, effects
	}
	return s.startLoop(effects)
}

func (s Session) startLoop(effects []Effect) (Session, []Effect) {
	s.Range.Looping = true
	s.Playing = true
	s.Status = fmt.Sprintf("Looping range %s - %s", timecode.Format(s.Range.Start), timecode.Format(s.Range.End))
	return s, append(effects, Seek{To: s.Range.Start}, Play{}, StartPolling{})
}

func (s Session) nudge(b Bound, delta float64) (Session, []Effect) {
	value, err := timecode.Parse(s.Fields.Get(b))
	if err != nil {
		return s, nil
	}

	otherBound := BoundEnd
	if b == BoundEnd {
		otherBound = BoundStart
	}
	other, err := timecode.Parse(s.Fields.Get(otherBound))
	if err != nil {
		// Only the nudged field can be rewritten; the range stays as it was.
		text := timecode.Format(value.Add(delta))
		s.Fields.Set(b, text)
		return s, []Effect{WriteField{Bound: b, Text: text}}
	}

	r := Range{Start: value, End: other}
	if b == BoundEnd {
		r = Range{Start: other, End: value}
	}

	r, changed := r.Nudge(b, delta)

	effects := []Effect{WriteField{Bound: b, Text: timecode.Format(r.Get(b))}}
	if changed && b == BoundStart {
		effects = append(effects, WriteField{Bound: BoundEnd, Text: timecode.Format(r.End)})
	}
	s.Fields = Fields{Start: timecode.Format(r.Start), End: timecode.Format(r.End)}

	return s.commit(r, effects)
}

func (s Session) progressClick(ev ProgressClicked) (Session, []Effect) {
	if !ev.DurationKnown || ev.Width <= 0 {
		return s, nil
	}

	r := FromProgressClick(ev.X/ev.Width, ev.Duration)
	s.Fields = Fields{Start: timecode.Format(r.Start), End: timecode.Format(r.End)}
	s.Range = r

	effects := []Effect{
		WriteField{Bound: BoundStart, Text: s.Fields.Start},
		WriteField{Bound: BoundEnd, Text: s.Fields.End},
	}
	if !s.Loaded() {
		return s, effects
	}
	return s.startLoop(effects)
}

func (s Session) prepareExport(outputDir string) (Session, []Effect) {
	if s.Exporting || !s.Loaded() {
		return s, nil
	}

	r, effects, ok := s.parseNormalized()
	if !ok {
		return s, nil
	}
	if effects != nil {
		s.Fields.End = timecode.Format(r.End)
	}

	s.pending = &Range{Start: r.Start, End: r.End}
	return s, append(effects, PromptDestination{
		Suggested: clip.SuggestPath(s.SourcePath, outputDir, r.Start, r.End),
		Start:     r.Start,
		End:       r.End,
	})
}

func (s Session) confirmExport(dest string) (Session, []Effect) {
	if s.Exporting || s.pending == nil {
		return s, nil
	}

	r := *s.pending
	s.pending = nil
	if dest == "" {
		return s, nil
	}

	job := clip.NewJob(s.SourcePath, r.Start, r.End, clip.EnsureMP4(dest))
	s.Exporting = true
	s.ExportLog = ""
	s.Status = "Cutting..."
	return s, []Effect{StartExport{Job: job}}
}

func (s Session) exportFinished(ev ExportFinished) (Session, []Effect) {
	s.Exporting = false

	var execErr *clip.ExecutionError
	switch {
	case ev.Err == nil:
		s.Status = "Cut saved: " + ev.Result.Job.DestPath
	case errors.As(ev.Err, &execErr):
		s.Status = fmt.Sprintf("%s failed (code %d)", filepath.Base(execErr.Binary), execErr.ExitCode)
		s.ExportLog = execErr.Stderr
	default:
		s.Status = "Error: " + ev.Err.Error()
	}
	return s, nil
}
