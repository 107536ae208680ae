package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/user/rangecut/pkg/timecode"
	"github.com/user/rangecut/tui/styles"
)

// RangeFieldsState holds the rendered inputs and the committed range.
type RangeFieldsState struct {
	// StartView and EndView are the rendered text inputs
	StartView string
	EndView   string
	// Focused is true when either input has focus
	Focused bool
	// Range is the committed range, shown as its length
	Start   timecode.TimeCode
	End     timecode.TimeCode
	Looping bool
}

// RangeFields renders the start/end inputs with their nudge keys.
func RangeFields(state RangeFieldsState, width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted).Width(7)

	loop := styles.SecondaryText.Render("idle")
	if state.Looping {
		loop = styles.InProgress.Render("looping")
	}

	lines := []string{
		" " + labelStyle.Render("Start") + state.StartView + "  " + styles.Key.Render("[ ]"),
		" " + labelStyle.Render("End") + state.EndView + "  " + styles.Key.Render("{ }"),
		" " + labelStyle.Render("Length") + styles.PrimaryText.Render(timecode.Format(state.End.Sub(state.Start))) + "  " + loop,
	}

	return RenderInfoBox("Range", lines, width, state.Focused)
}
