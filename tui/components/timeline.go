package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/rangecut/pkg/timecode"
	"github.com/user/rangecut/tui/styles"
)

const (
	// TimelineHeight is the number of lines Timeline renders.
	TimelineHeight = 6
	// TimelineBarRow is the bar's line within the timeline box.
	TimelineBarRow = 2
	// TimelineBarCol is the bar's first column within the timeline box.
	TimelineBarCol = 2
	// timelineMinBar is the narrowest bar drawn.
	timelineMinBar = 10
)

// TimelineState holds the playback position and selected range to draw.
type TimelineState struct {
	Position timecode.TimeCode
	Duration timecode.TimeCode
	Start    timecode.TimeCode
	End      timecode.TimeCode
	// ShowRange draws the range markers; off until a range is committed
	ShowRange bool
	Looping   bool
}

// TimelineBarWidth returns the width in cells of the clickable bar for a timeline
// rendered at width.
func TimelineBarWidth(width int) int {
	innerWidth := width - 4
	timeDisplay := " " + timecode.Format(0) + " / " + timecode.Format(0)
	barWidth := innerWidth - lipgloss.Width(timeDisplay) - 2
	if barWidth < timelineMinBar {
		barWidth = timelineMinBar
	}
	return barWidth
}

// Timeline renders a progress bar with the selected range in a bordered box.
// The range is shaded with [ and ] at its bounds; the playhead is marked below the bar.
func Timeline(state TimelineState, width int) string {
	if width < 20 {
		return ""
	}

	barWidth := TimelineBarWidth(width)

	filledStyle := lipgloss.NewStyle().Foreground(styles.Focus)
	unfilledStyle := lipgloss.NewStyle().Foreground(styles.Border)
	rangeStyle := lipgloss.NewStyle().Foreground(styles.Info)
	boundStyle := lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(styles.Text).Bold(true)
	posStyle := lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)

	cell := func(tc timecode.TimeCode) int {
		if state.Duration <= 0 {
			return -1
		}
		pos := int(math.Round(float64(barWidth-1) * tc.Seconds() / state.Duration.Seconds()))
		if pos < 0 {
			return 0
		}
		if pos > barWidth-1 {
			return barWidth - 1
		}
		return pos
	}

	fillPos := cell(state.Position)
	startPos, endPos := -1, -1
	if state.ShowRange && state.Duration > 0 {
		startPos, endPos = cell(state.Start), cell(state.End)
	}

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		inRange := startPos >= 0 && i >= startPos && i <= endPos
		switch {
		case i == startPos:
			bar.WriteString(boundStyle.Render("["))
		case i == endPos:
			bar.WriteString(boundStyle.Render("]"))
		case i == fillPos:
			bar.WriteString(posStyle.Render("╸"))
		case inRange && state.Looping:
			bar.WriteString(rangeStyle.Render("━"))
		case inRange:
			bar.WriteString(rangeStyle.Render("─"))
		case i < fillPos:
			bar.WriteString(filledStyle.Render("━"))
		default:
			bar.WriteString(unfilledStyle.Render("─"))
		}
	}

	timeDisplay := " " + timecode.Format(state.Position) + " / " + timecode.Format(state.Duration)
	barLine := " " + bar.String() + " " + timeStyle.Render(timeDisplay)

	var indicator strings.Builder
	indicator.WriteString(" ")
	for i := 0; i < barWidth; i++ {
		if i == fillPos {
			indicator.WriteString(posStyle.Render("▲"))
		} else {
			indicator.WriteString(" ")
		}
	}

	return RenderInfoBox("Timeline", []string{"", barLine, indicator.String(), ""}, width, false)
}

// TimelineHit maps a click at column x of a timeline rendered at width to a cell on
// the bar. ok is false when the click misses the bar horizontally. The caller checks the row.
func TimelineHit(x, width int) (cell, barWidth int, ok bool) {
	barWidth = TimelineBarWidth(width)
	cell = x - TimelineBarCol
	if cell < 0 || cell >= barWidth {
		return 0, barWidth, false
	}
	return cell, barWidth, true
}
