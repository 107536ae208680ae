// Package layout arranges rendered components into the terminal.
package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	// MinTerminalWidth is the narrowest terminal the main view is drawn in.
	MinTerminalWidth = 60
	// SideBySideWidth is the width from which the range and export boxes share a row.
	SideBySideWidth = 90
)

// PanelWidths splits the terminal between the range box and the export box.
// stacked is true when they do not fit next to each other.
func PanelWidths(termWidth int) (left, right int, stacked bool) {
	if termWidth < SideBySideWidth {
		return termWidth, termWidth, true
	}
	left = termWidth / 2
	return left, termWidth - left, false
}

// Row joins two rendered blocks side by side, padding each line to its width.
func Row(left, right string, leftWidth, rightWidth int) string {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")

	height := len(leftLines)
	if len(rightLines) > height {
		height = len(rightLines)
	}
	leftLines = NormalizeLines(leftLines, height)
	rightLines = NormalizeLines(rightLines, height)

	rows := make([]string, height)
	for i := range rows {
		rows[i] = PadToWidth(leftLines[i], leftWidth) + PadToWidth(rightLines[i], rightWidth)
	}
	return strings.Join(rows, "\n")
}

// Fit constrains content to exactly width columns and at most height lines.
// A zero size, before the terminal has reported one, leaves content as it is.
func Fit(content string, width, height int) string {
	if width <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = PadToWidth(line, width)
	}
	return strings.Join(lines, "\n")
}

// PadToWidth pads or truncates a string to exactly the specified width.
// Truncation is ANSI-aware so styled text keeps its escape sequences intact.
func PadToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currentWidth := lipgloss.Width(s)
	if currentWidth > width {
		s = ansi.Truncate(s, width, "")
		currentWidth = lipgloss.Width(s)
	}
	if currentWidth < width {
		return s + strings.Repeat(" ", width-currentWidth)
	}
	return s
}

// NormalizeLines pads or truncates a slice of strings to exactly the given height.
func NormalizeLines(lines []string, height int) []string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}
