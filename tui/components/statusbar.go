package components

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/rangecut/tui/styles"
)

// StatusBarState holds what the status bar shows.
type StatusBarState struct {
	// Status is the session's single status line
	Status string
	// Source is the loaded file, empty before one is opened
	Source string
	// Playing, Looping and Exporting pick the mode icon
	Playing   bool
	Looping   bool
	Exporting bool
}

// StatusBar renders the one-line status bar: mode icon and status on the left,
// file name on the right.
func StatusBar(state StatusBarState, width int) string {
	icon := "■"
	switch {
	case state.Exporting:
		icon = "✂"
	case state.Looping:
		icon = "⟲"
	case state.Playing:
		icon = "▶"
	}

	// The bar must stay one line: the timeline below is hit-tested by row.
	leftContent := " " + icon + " " + strings.ReplaceAll(state.Status, "\n", " ")
	if width > 0 {
		leftContent = ansi.Truncate(leftContent, width, "…")
	}
	rightContent := ""
	if state.Source != "" {
		rightContent = filepath.Base(state.Source) + " "
	}

	padding := width - lipgloss.Width(leftContent) - lipgloss.Width(rightContent)
	if padding < 1 {
		// Status wins over the file name on narrow terminals.
		rightContent = ""
		padding = width - lipgloss.Width(leftContent)
	}
	if padding < 0 {
		padding = 0
	}

	statusBarStyle := lipgloss.NewStyle().
		Background(styles.DarkInk).
		Foreground(styles.Text).
		Bold(true).
		Width(width).
		MaxWidth(width).
		MaxHeight(1)

	return statusBarStyle.Render(leftContent + strings.Repeat(" ", padding) + rightContent)
}
