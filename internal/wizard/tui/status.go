package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tmcatcher/internal/api"
	"github.com/muurk/tmcatcher/internal/scheduler"
	"github.com/muurk/tmcatcher/internal/wizard"
)

var (
	statusCountdown = scheduler.ID{Owner: string(ScreenStatus), Purpose: "countdown"}
	statusCensus    = scheduler.ID{Owner: string(ScreenStatus), Purpose: "census"}
)

// statusScreen looks up a registration, counts down to the bot session
// expiry and keeps the online bot census fresh.
type statusScreen struct {
	w       *wizard.StatusCheck
	census  *api.CensusResult
	input   textinput.Model
	spinner spinner.Model
	keys    formKeyMap
}

func newStatusScreen(loc *time.Location) *statusScreen {
	w := wizard.NewStatusCheck()
	w.Location = loc
	keys := newFormKeys("home")
	keys.toggle = true
	s := &statusScreen{
		w:       w,
		input:   newInput(),
		spinner: newSpinner(),
		keys:    keys,
	}
	s.bind()
	return s
}

func (s *statusScreen) spec() inputSpec {
	if s.w.Mode == wizard.ModeAPIKey {
		return apiKeyInput
	}
	return phoneInput
}

func (s *statusScreen) bind() {
	configure(&s.input, s.spec(), s.w.Input)
}

func (s *statusScreen) init(e *env) tea.Cmd {
	return tea.Batch(textinput.Blink, e.sched.StartNow(statusCensus, e.opts.CensusInterval))
}

func (s *statusScreen) update(msg tea.Msg, e *env) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Submit):
			cmd := e.run(s.w.Submit())
			if cmd == nil {
				return nil
			}
			e.sched.Stop(statusCountdown)
			return tea.Batch(cmd, s.spinner.Tick)
		case key.Matches(msg, s.keys.Toggle):
			s.w.ToggleMode()
			s.w.SetInput("")
			s.bind()
			return nil
		case key.Matches(msg, s.keys.Back):
			return navigate(ScreenHome)
		}

	case outcomeMsg:
		if !s.w.Apply(msg.outcome) {
			return nil
		}
		if s.w.CountdownActive() {
			return e.sched.Start(statusCountdown, e.opts.CountdownInterval)
		}
		return nil

	case scheduler.TickMsg:
		switch msg.ID {
		case statusCountdown:
			if !s.w.Tick(msg.Time) {
				e.sched.Stop(statusCountdown)
			}
		case statusCensus:
			return e.checkCensus()
		}
		return nil

	case censusMsg:
		result := msg.result
		s.census = &result
		return nil

	case spinner.TickMsg:
		return spin(&s.spinner, msg, s.w.Loading())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.w.SetInput(s.input.Value())
	return cmd
}

func renderFields(fields []api.Field) string {
	width := 0
	for _, f := range fields {
		if w := lipgloss.Width(f.Label); w > width {
			width = w
		}
	}
	label := LabelStyle.Width(width + 2)
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = label.Render(f.Label+":") + ValueStyle.Render(f.Value)
	}
	return strings.Join(lines, "\n")
}

func (s *statusScreen) renderCensus() string {
	if s.census == nil {
		return PendingStyle.Render("● กำลังนับบอทออนไลน์...")
	}
	return renderFields(api.CensusFields(*s.census, s.w.Location))
}

func (s *statusScreen) renderResult() string {
	r := s.w.Result
	if r == nil || !r.Success {
		return ""
	}
	fields := api.StatusFields(*r, s.w.Location)
	if s.w.Countdown != nil {
		fields = append(fields, api.Field{Label: "นับถอยหลัง", Value: s.w.Countdown.String()})
	}
	return CardStyle.Render(RenderSuccess("ตรวจสอบสำเร็จ") + "\n\n" + renderFields(fields))
}

func (s *statusScreen) view(width int) string {
	var b strings.Builder

	b.WriteString(CardStyle.Render(s.renderCensus()))
	b.WriteString("\n\n")

	b.WriteString(MenuKeyStyle.Render(s.w.Mode.Label()))
	b.WriteString("\n")
	b.WriteString(renderField(s.spec(), s.input))
	b.WriteString("\n\n")

	if fb := renderFeedback(s.spinner, s.w.Loading(), s.w.Error, ""); fb != "" {
		b.WriteString(fb)
		b.WriteString("\n\n")
	}
	b.WriteString(s.renderResult())
	return b.String()
}

func (s *statusScreen) help() help.KeyMap { return s.keys }

func (s *statusScreen) typing() bool { return true }
