// Package styles provides Lipgloss styles for the TUI using the Kanagawa colour palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Kanagawa Wave theme
const (
	// Ink is the main background colour (sumiInk1)
	Ink = lipgloss.Color("#1F1F28")
	// DarkInk is the status bar and panel background (sumiInk0)
	DarkInk = lipgloss.Color("#16161D")
	// Border is the dim accent for box borders (sumiInk4)
	Border = lipgloss.Color("#54546D")
	// Focus marks the focused field and active borders (oniViolet)
	Focus = lipgloss.Color("#957FB8")
	// Muted is secondary text (fujiGray)
	Muted = lipgloss.Color("#727169")
	// Text is the primary text colour (fujiWhite)
	Text = lipgloss.Color("#DCD7BA")
	// Accent is used for headers and the playhead (sakuraPink)
	Accent = lipgloss.Color("#D27E99")
	// Info highlights the selected range (crystalBlue)
	Info = lipgloss.Color("#7E9CD8")
	// Amber marks range bounds and work in progress (carpYellow)
	Amber = lipgloss.Color("#E6C384")
	// Red is used for warnings and errors (autumnRed)
	Red = lipgloss.Color("#C34043")
	// Green is used for success messages (springGreen)
	Green = lipgloss.Color("#98BB6C")
)

// Header is the style for box titles
var Header = lipgloss.NewStyle().
	Foreground(Accent).
	Bold(true)

// Key is the style for key hints
var Key = lipgloss.NewStyle().
	Foreground(Info).
	Bold(true)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(Text)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Muted)

// Warning is the style for warning messages
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)

// InProgress is the style for running work
var InProgress = lipgloss.NewStyle().
	Foreground(Amber)
