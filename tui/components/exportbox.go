package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/rangecut/tui/styles"
)

// ExportBoxState holds the state for the export panel.
type ExportBoxState struct {
	Exporting bool
	// Spinner is the rendered spinner frame while exporting
	Spinner string
	// Dest is the file being written, or the last one written
	Dest string
	// Failed marks the last export as failed
	Failed bool
	// Log is the encoder's stderr from a failed export
	Log string
}

// ExportBox renders the export panel: idle hint, running spinner, or the last result.
func ExportBox(state ExportBoxState, width int) string {
	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}
	fit := func(s string) string {
		if lipgloss.Width(s) > innerW {
			return ansi.Truncate(s, innerW, "…")
		}
		return s
	}

	var lines []string
	switch {
	case state.Exporting:
		lines = append(lines,
			" "+state.Spinner+" "+styles.InProgress.Render("Cutting..."),
			" "+styles.PrimaryText.Render(fit(state.Dest)),
		)
	case state.Failed:
		lines = append(lines, " "+styles.Warning.Render("Last cut failed"))
		if last := lastLine(state.Log); last != "" {
			lines = append(lines, " "+styles.SecondaryText.Render(fit(last)))
		}
	case state.Dest != "":
		lines = append(lines,
			" "+styles.Success.Render("Saved"),
			" "+styles.PrimaryText.Render(fit(state.Dest)),
		)
	default:
		lines = append(lines, " "+styles.SecondaryText.Render("No cut yet"))
	}

	for len(lines) < 2 {
		lines = append(lines, "")
	}
	lines = append(lines, " "+styles.Key.Render("x")+styles.SecondaryText.Render(" cut range to file"))

	return RenderInfoBox("Export", lines, width, false)
}

// lastLine returns the last non-empty line of s, which for ffmpeg is usually the error.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
