// Package styles provides the Lipgloss palette and shared styles of the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Ciapre palette (Gogh).
const (
	DeepPurple    = lipgloss.Color("#191C27")
	DarkPurple    = lipgloss.Color("#181818")
	Purple        = lipgloss.Color("#5C4F4B")
	BrightPurple  = lipgloss.Color("#724D7C")
	Lavender      = lipgloss.Color("#AEA47A")
	LightLavender = lipgloss.Color("#F3DBB2")
	Pink          = lipgloss.Color("#D33061")
	Cyan          = lipgloss.Color("#3097C6")
	Amber         = lipgloss.Color("#CC8B3F")
	Red           = lipgloss.Color("#AC3835")
	Green         = lipgloss.Color("#A6A75D")
)

// Bar is the full-width header and status line.
var Bar = lipgloss.NewStyle().
	Background(DarkPurple).
	Foreground(LightLavender)

// Title is the file name in the header.
var Title = lipgloss.NewStyle().
	Foreground(Pink).
	Bold(true)

// PrimaryText is the style for primary text content.
var PrimaryText = lipgloss.NewStyle().
	Foreground(LightLavender)

// SecondaryText is the style for less prominent text.
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// Warning is used for rejected actions and failed exports.
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is used for saved exports.
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)

// Button styles for the control row.
var (
	Button = lipgloss.NewStyle().
		Background(BrightPurple).
		Foreground(LightLavender).
		Bold(true).
		Padding(0, 1)

	ButtonDisabled = lipgloss.NewStyle().
			Background(DeepPurple).
			Foreground(Purple).
			Padding(0, 1)

	ButtonBusy = lipgloss.NewStyle().
			Background(Amber).
			Foreground(DarkPurple).
			Bold(true).
			Padding(0, 1)

	Shortcut = lipgloss.NewStyle().
			Foreground(Cyan)
)
