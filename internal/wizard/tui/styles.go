package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tmcatcher/internal/version"
)

// Application branding constants
const (
	AppName    = "TRUEMONEY CATCHER"
	AppTagline = "ดักซองอังเปา"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#FF8300") // TrueMoney orange
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	AccentColor    = lipgloss.Color("#4DA3FF") // Blue
	WarningColor   = lipgloss.Color("#FFA500") // Amber
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor   = lipgloss.Color("#FFFFFF")
	SubtleColor = lipgloss.Color("#626262")
	BorderColor = lipgloss.Color("#FF8300")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// Menu item style (unselected)
	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(TextColor)

	MenuKeyStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor)

	// Card style for status and result panels
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 2)

	OnlineStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	OfflineStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	PendingStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	ClockStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	TerminalStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	NavItemStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(0, 2)

	NavActiveStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 2)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderError renders an error message
func RenderError(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// RenderSuccess renders a success message
func RenderSuccess(text string) string {
	return SuccessStyle.Render("✓ " + text)
}

// RenderMenuItem renders a shortcut line, e.g. "[r] เพิ่มเบอร์"
func RenderMenuItem(key, text string) string {
	return MenuItemStyle.Render(MenuKeyStyle.Render("["+key+"]") + " " + text)
}

// contentWidth clamps the terminal width to the usable range
func contentWidth(terminalWidth int) int {
	if terminalWidth < MinTerminalWidth {
		return MinTerminalWidth
	}
	if terminalWidth > MaxContentWidth {
		return MaxContentWidth
	}
	return terminalWidth
}

// BuildHeaderContent creates header content with the logo line and version
func BuildHeaderContent(title string) string {
	left := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		Render(AppName)

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(title + "  v" + AppVersion())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps a screen with the header, the bottom
// navigation and the context-sensitive help line.
func RenderApplicationContainer(title, content, nav, helpText string, terminalWidth, terminalHeight int) string {
	width := contentWidth(terminalWidth)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(width-4).
		Padding(1, 1)

	footer := lipgloss.JoinVertical(lipgloss.Left,
		nav,
		lipgloss.NewStyle().Foreground(SubtleColor).Render(helpText),
	)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent(title)),
		contentStyle.Render(content),
		footerStyle.Render(footer),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2).
		Render(inner)

	if terminalHeight <= 0 {
		return bordered
	}
	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}
