package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tmcatcher/internal/api"
)

// Result is the boxed outcome of one command
type Result struct {
	Tone            Tone
	Title           string      // e.g. "Registration Status"
	Message         string      // Server or validation message, shown under the title
	Details         []api.Field // Rendered in order
	Troubleshooting []string    // Tips, failures only
	Width           int
}

// NewSuccessResult creates a success box
func NewSuccessResult(title string, details []api.Field) *Result {
	return &Result{Tone: ToneSuccess, Title: title, Details: details, Width: GetTerminalWidth()}
}

// NewFailureResult creates a failure box with troubleshooting tips
func NewFailureResult(title, message string, troubleshooting []string) *Result {
	return &Result{
		Tone:            ToneFailure,
		Title:           title,
		Message:         message,
		Troubleshooting: troubleshooting,
		Width:           GetTerminalWidth(),
	}
}

// NewWarningResult creates a warning box
func NewWarningResult(title string, details []api.Field) *Result {
	return &Result{Tone: ToneWarning, Title: title, Details: details, Width: GetTerminalWidth()}
}

func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

func (r *Result) AddDetail(label, value string) *Result {
	r.Details = append(r.Details, api.Field{Label: label, Value: value})
	return r
}

// Render returns the styled box
func (r *Result) Render() string {
	width := clampWidth(r.Width)

	lines := []string{"", r.Tone.Style().Render(fmt.Sprintf("   %s  %s  ─  %s", r.Tone.Marker(), r.Tone.Word(), r.Title)), ""}
	if r.Message != "" {
		style := textStyle
		if r.Tone == ToneFailure {
			style = lipgloss.NewStyle().Foreground(ErrorColor)
		}
		lines = append(lines, style.Render("   "+r.Message), "")
	}
	if len(r.Details) > 0 {
		lines = append(lines, renderDetails(r.Details), "")
	}
	if len(r.Troubleshooting) > 0 {
		lines = append(lines, renderTips(r.Troubleshooting, width), "")
	}
	return box(r.Tone.Color(), width).Render(strings.Join(lines, "\n"))
}

// renderDetails aligns the values after the widest label
func renderDetails(details []api.Field) string {
	labelWidth := 0
	for _, d := range details {
		labelWidth = max(labelWidth, lipgloss.Width(d.Label))
	}
	key := mutedStyle.Width(labelWidth + 4)

	lines := make([]string, len(details))
	for i, d := range details {
		lines[i] = key.Render("   "+d.Label+":") + " " + textStyle.Render(d.Value)
	}
	return strings.Join(lines, "\n")
}

func renderTips(tips []string, width int) string {
	lines := []string{mutedStyle.Bold(true).Render("Troubleshooting:"), ""}
	for _, tip := range tips {
		lines = append(lines, mutedStyle.Render("  • "+tip))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(width-12).
		Padding(0, 1).
		MarginLeft(3).
		Render(strings.Join(lines, "\n"))
}

func (r *Result) String() string {
	return r.Render()
}

// TroubleshootingFor returns tips matching the failure in resp
func TroubleshootingFor(resp api.Response) []string {
	switch {
	case resp.Err == nil:
		return nil
	case api.IsTimeoutError(resp.Err):
		return []string{
			"The backend did not answer in time",
			"Retry with a longer --timeout",
		}
	case api.IsNetworkError(resp.Err):
		return []string{
			api.GetShortErrorMessage(resp.Err),
			"Check your internet connection",
			"Verify --base-url or TMCATCHER_BASE_URL",
		}
	case api.IsServerError(resp.Err):
		return []string{api.GetShortErrorMessage(resp.Err)}
	case api.IsValidationError(resp.Err):
		return []string{"Check the command arguments and try again"}
	}
	return []string{api.GetShortErrorMessage(resp.Err)}
}
