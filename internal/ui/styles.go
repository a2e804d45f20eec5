package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette. Orange is the TrueMoney brand color and frames every box.
var (
	PrimaryColor = lipgloss.Color("#FF8300")
	SuccessColor = lipgloss.Color("#43BF6D")
	ErrorColor   = lipgloss.Color("#FF5555")
	WarningColor = lipgloss.Color("#FFA500")
	MutedColor   = lipgloss.Color("#626262")
	TextColor    = lipgloss.Color("#FFFFFF")
)

// Output is clamped to this width range
const (
	MinTerminalWidth = 60
	MaxContentWidth  = 100
)

var (
	textStyle  = lipgloss.NewStyle().Foreground(TextColor)
	mutedStyle = lipgloss.NewStyle().Foreground(MutedColor)
)

// Tone is the outcome a box, step or line reports
type Tone int

const (
	ToneSuccess Tone = iota
	ToneFailure
	ToneWarning
)

// Color returns the tone's foreground and border color
func (t Tone) Color() lipgloss.Color {
	switch t {
	case ToneFailure:
		return ErrorColor
	case ToneWarning:
		return WarningColor
	default:
		return SuccessColor
	}
}

// Marker returns the symbol prefixed to the tone's lines
func (t Tone) Marker() string {
	switch t {
	case ToneFailure:
		return "✗"
	case ToneWarning:
		return "⚠"
	default:
		return "✓"
	}
}

// Word is the banner label shown in result boxes
func (t Tone) Word() string {
	switch t {
	case ToneFailure:
		return "FAILED"
	case ToneWarning:
		return "WARNING"
	default:
		return "SUCCESS"
	}
}

// Style is the bold title style of the tone
func (t Tone) Style() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Color()).Bold(true)
}

// Line renders text prefixed with the tone's marker
func (t Tone) Line(text string) string {
	return t.Style().Render(t.Marker() + " " + text)
}

// GetTerminalWidth returns the stdout width clamped to the supported range.
// Non-terminals get MinTerminalWidth.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth
	}
	return clampWidth(width)
}

func clampWidth(width int) int {
	switch {
	case width < MinTerminalWidth:
		return MinTerminalWidth
	case width > MaxContentWidth:
		return MaxContentWidth
	}
	return width
}

// IsTerminal reports whether stdout is a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// box is the double-bordered frame around results and warnings
func box(color lipgloss.Color, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Width(width-2).
		Padding(0, 2)
}

func divider(width int) string {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().Foreground(PrimaryColor).Render(strings.Repeat("─", width))
}
