package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/rangecut/tui/styles"
)

// Theme returns a huh theme that matches the TUI color palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Focus).
		PaddingLeft(1)

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)

	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Red).
		Bold(true)

	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Red)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Info)

	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Border)

	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Info)

	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(styles.Text)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(styles.Focus).
		Foreground(styles.DarkInk).
		Bold(true).
		Padding(0, 1)

	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(styles.Border).
		Foreground(styles.Text).
		Padding(0, 1)

	t.Focused.NoteTitle = lipgloss.NewStyle().
		Foreground(styles.Info).
		Bold(true)

	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)

	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	t.Blurred.Description = lipgloss.NewStyle().
		Foreground(styles.Border)

	t.Blurred.TextInput.Text = lipgloss.NewStyle().
		Foreground(styles.Muted)

	t.Blurred.FocusedButton = t.Focused.BlurredButton
	t.Blurred.BlurredButton = t.Focused.BlurredButton

	return t
}
