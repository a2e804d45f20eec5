package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/tmcatcher/internal/ui"
	"github.com/muurk/tmcatcher/internal/wizard"
)

// registerScreen drives the registration wizard. The single input is bound
// to whichever field the current step collects.
type registerScreen struct {
	w        *wizard.Registration
	input    textinput.Model
	spinner  spinner.Model
	progress *ui.Progress
	keys     formKeyMap
	bound    wizard.Step
}

func newRegisterScreen(store wizard.PhoneStore) *registerScreen {
	names := make([]string, len(wizard.Steps))
	for i, s := range wizard.Steps {
		names[i] = s.Label()
	}
	r := &registerScreen{
		w:        wizard.NewRegistration(store),
		input:    newInput(),
		spinner:  newSpinner(),
		progress: ui.NewProgress(names),
		keys:     newFormKeys("back"),
	}
	r.bind()
	return r
}

func (r *registerScreen) spec() inputSpec {
	switch r.w.Step {
	case wizard.StepAPIKey:
		return apiKeyInput
	case wizard.StepBotPhone:
		return botPhoneInput
	case wizard.StepBotOTP:
		return otpInput
	default:
		return phoneInput
	}
}

func (r *registerScreen) field() string {
	switch r.w.Step {
	case wizard.StepAPIKey:
		return r.w.APIKey
	case wizard.StepBotPhone:
		return r.w.BotPhone
	case wizard.StepBotOTP:
		return r.w.Code
	default:
		return r.w.Phone
	}
}

func (r *registerScreen) setField(v string) {
	switch r.w.Step {
	case wizard.StepAPIKey:
		r.w.SetAPIKey(v)
	case wizard.StepBotPhone:
		r.w.SetBotPhone(v)
	case wizard.StepBotOTP:
		r.w.SetCode(v)
	default:
		r.w.SetPhone(v)
	}
}

// bind reconfigures the input for the current step
func (r *registerScreen) bind() {
	r.bound = r.w.Step
	configure(&r.input, r.spec(), r.field())
	r.keys.resend = r.w.Step == wizard.StepBotOTP
	r.keys.jump = r.w.Step > wizard.StepRegisterPhone
	r.progress.SetCurrent(int(r.w.Step)+1, r.w.Error != "")
}

// sync rebinds after anything that may have moved the wizard
func (r *registerScreen) sync() {
	if r.w.Step != r.bound || r.input.Value() != r.field() {
		r.bind()
		return
	}
	r.progress.SetCurrent(int(r.w.Step)+1, r.w.Error != "")
}

func (r *registerScreen) init(e *env) tea.Cmd {
	return textinput.Blink
}

func (r *registerScreen) started(cmd tea.Cmd) tea.Cmd {
	r.sync()
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, r.spinner.Tick)
}

func (r *registerScreen) update(msg tea.Msg, e *env) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, r.keys.Submit):
			return r.started(e.run(r.w.Submit()))
		case key.Matches(msg, r.keys.Resend):
			return r.started(e.run(r.w.Resend()))
		case key.Matches(msg, r.keys.Back):
			if !r.w.Back() {
				return navigate(ScreenHome)
			}
			r.sync()
			return nil
		case key.Matches(msg, r.keys.Jump):
			// alt+N selects progress step N, only earlier steps move
			if step, ok := jumpTarget(msg); ok && step < r.w.Step {
				r.w.JumpBack(step)
				r.sync()
			}
			return nil
		}

	case outcomeMsg:
		r.w.Apply(msg.outcome)
		r.sync()
		return nil

	case spinner.TickMsg:
		return spin(&r.spinner, msg, r.w.Loading())
	}

	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	r.setField(r.input.Value())
	return cmd
}

func (r *registerScreen) view(width int) string {
	r.progress.SetWidth(width)

	var b strings.Builder
	b.WriteString(r.progress.Render())
	b.WriteString("\n\n")
	if r.w.Step > wizard.StepRegisterPhone {
		b.WriteString(LabelStyle.Render("เบอร์รับซอง: ") + ValueStyle.Render(r.w.Phone))
		b.WriteString("\n")
	}
	if r.w.Step == wizard.StepBotOTP {
		b.WriteString(LabelStyle.Render("เบอร์บอท: ") + ValueStyle.Render(r.w.BotPhone))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderField(r.spec(), r.input))
	b.WriteString("\n\n")
	b.WriteString(renderFeedback(r.spinner, r.w.Loading(), r.w.Error, r.w.Notice))
	return b.String()
}

// jumpTarget maps alt+1..alt+3 onto the first three wizard steps
func jumpTarget(msg tea.KeyMsg) (wizard.Step, bool) {
	if !msg.Alt || len(msg.Runes) != 1 {
		return 0, false
	}
	n := int(msg.Runes[0] - '1')
	if n < 0 || n >= len(wizard.Steps)-1 {
		return 0, false
	}
	return wizard.Steps[n], true
}

func (r *registerScreen) help() help.KeyMap { return r.keys }

func (r *registerScreen) typing() bool { return true }
