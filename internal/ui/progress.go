package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the current state of a step
type StepStatus int

const (
	StepPending  StepStatus = iota // Not yet reached
	StepRunning                    // Current step
	StepComplete                   // Done
	StepFailed                     // Current step with an error
)

// Step represents a single step in a multi-step flow
type Step struct {
	Number int
	Name   string
	Status StepStatus
}

// Progress is a step indicator with a bar, used for the registration wizard
type Progress struct {
	Steps   []Step
	Current int     // Current step (1-based, 0 before start)
	Percent float64 // Completed share (0.0 - 1.0)
	ShowBar bool
	bar     progress.Model
}

// NewProgress creates a progress display for the named steps
func NewProgress(names []string) *Progress {
	steps := make([]Step, len(names))
	for i, name := range names {
		steps[i] = Step{Number: i + 1, Name: name}
	}
	return &Progress{
		Steps:   steps,
		ShowBar: true,
		bar: progress.New(
			progress.WithGradient(string(PrimaryColor), string(WarningColor)),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

// SetWidth sizes the bar for the available width
func (p *Progress) SetWidth(width int) *Progress {
	barWidth := width - 20
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 40 {
		barWidth = 40
	}
	p.bar.Width = barWidth
	return p
}

// SetCurrent marks steps before n complete, n running (or failed) and the
// rest pending.
func (p *Progress) SetCurrent(n int, failed bool) {
	p.Current = n
	completed := 0
	for i := range p.Steps {
		switch {
		case p.Steps[i].Number < n:
			p.Steps[i].Status = StepComplete
			completed++
		case p.Steps[i].Number == n && failed:
			p.Steps[i].Status = StepFailed
		case p.Steps[i].Number == n:
			p.Steps[i].Status = StepRunning
		default:
			p.Steps[i].Status = StepPending
		}
	}
	if len(p.Steps) > 0 {
		p.Percent = float64(completed) / float64(len(p.Steps))
	}
}

// Render returns the bar followed by a one-line step list
func (p *Progress) Render() string {
	var b strings.Builder

	if p.ShowBar {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(
			fmt.Sprintf("%s  [%d/%d]", p.bar.ViewAs(p.Percent), p.Current, len(p.Steps))))
		b.WriteString("\n")
	}

	parts := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		parts = append(parts, renderStep(s))
	}
	b.WriteString("  " + strings.Join(parts, mutedStyle.Render(" › ")))
	return b.String()
}

func renderStep(s Step) string {
	label := fmt.Sprintf("%d.%s", s.Number, s.Name)
	switch s.Status {
	case StepComplete:
		return lipgloss.NewStyle().Foreground(SuccessColor).Render("✓ " + label)
	case StepRunning:
		return ToneWarning.Style().Render("● " + label)
	case StepFailed:
		return ToneFailure.Line(label)
	default:
		return mutedStyle.Render("· " + label)
	}
}

// String implements fmt.Stringer
func (p *Progress) String() string {
	return p.Render()
}
