package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/rangecut/tui/styles"
)

type binding struct {
	key  string
	desc string
}

var helpGroups = []struct {
	title    string
	bindings []binding
}{
	{
		title: "Playback",
		bindings: []binding{
			{"p", "Play full video"},
			{"r", "Loop the range"},
			{"s", "Stop"},
			{"click", "Loop 10s from the clicked point"},
		},
	},
	{
		title: "Range",
		bindings: []binding{
			{"Tab", "Edit start / end"},
			{"Esc, Enter", "Leave the fields"},
			{"[ ]", "Nudge start -/+ 0.5s"},
			{"{ }", "Nudge end -/+ 0.5s"},
		},
	},
	{
		title: "File",
		bindings: []binding{
			{"o", "Open a video"},
			{"x", "Cut the range to a file"},
			{"?", "Show/hide this help"},
			{"q", "Quit"},
		},
	},
}

// HelpOverlay renders the help overlay showing all keybindings, centered.
func HelpOverlay(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Info).
		Bold(true).
		Padding(0, 1)

	groupHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true).
		Width(12)

	var lines []string
	lines = append(lines, titleStyle.Render("Keybindings"))

	for _, group := range helpGroups {
		lines = append(lines, groupHeaderStyle.Render(group.title))
		for _, b := range group.bindings {
			lines = append(lines, "  "+keyStyle.Render(b.key)+styles.PrimaryText.Render(b.desc))
		}
	}

	lines = append(lines, "")
	lines = append(lines, styles.SecondaryText.Italic(true).Render("Press any key to close"))

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Focus).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
