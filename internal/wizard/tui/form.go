package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formKeyMap is shared by the screens built around a single text input
type formKeyMap struct {
	Submit key.Binding
	Back   key.Binding
	Resend key.Binding
	Toggle key.Binding
	Jump   key.Binding

	resend bool
	toggle bool
	jump   bool
}

func newFormKeys(backHelp string) formKeyMap {
	return formKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", backHelp)),
		Resend: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "resend otp")),
		Toggle: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "switch mode")),
		Jump:   key.NewBinding(key.WithKeys("alt+1", "alt+2", "alt+3"), key.WithHelp("alt+1-3", "back to step")),
	}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	b := []key.Binding{k.Submit, k.Back}
	if k.resend {
		b = append(b, k.Resend)
	}
	if k.toggle {
		b = append(b, k.Toggle)
	}
	if k.jump {
		b = append(b, k.Jump)
	}
	return b
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// inputSpec describes what the text input collects. A zero limit leaves
// the length unbounded.
type inputSpec struct {
	label       string
	placeholder string
	limit       int
	secret      bool
}

var (
	phoneInput    = inputSpec{label: "เบอร์โทรศัพท์", placeholder: "0812345678", limit: 10}
	apiKeyInput   = inputSpec{label: "API Key", placeholder: "กรอก API Key", secret: true}
	botPhoneInput = inputSpec{label: "เบอร์บอท", placeholder: "0812345678 หรือ +66812345678", limit: 12}
	otpInput      = inputSpec{label: "รหัส OTP", placeholder: "12345", limit: 5}
)

func newInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.PromptStyle = MenuKeyStyle
	ti.TextStyle = ValueStyle
	ti.Width = 40
	ti.Focus()
	return ti
}

// configure points ti at spec and sets its value
func configure(ti *textinput.Model, spec inputSpec, value string) {
	ti.Placeholder = spec.placeholder
	ti.CharLimit = spec.limit
	if spec.secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	} else {
		ti.EchoMode = textinput.EchoNormal
	}
	ti.SetValue(value)
	ti.CursorEnd()
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = SpinnerStyle
	return s
}

// spin advances s while loading and lets the tick chain die otherwise
func spin(s *spinner.Model, msg spinner.TickMsg, loading bool) tea.Cmd {
	if !loading {
		return nil
	}
	var cmd tea.Cmd
	*s, cmd = s.Update(msg)
	return cmd
}

// renderField draws one labelled input
func renderField(spec inputSpec, ti textinput.Model) string {
	return LabelStyle.Render(spec.label) + "\n" + ti.View()
}

func renderFeedback(s spinner.Model, loading bool, errText, notice string) string {
	var lines []string
	if loading {
		lines = append(lines, PendingStyle.Render(s.View()+" กำลังดำเนินการ..."))
	}
	if errText != "" {
		lines = append(lines, RenderError(errText))
	}
	if notice != "" {
		lines = append(lines, RenderSuccess(notice))
	}
	return strings.Join(lines, "\n")
}
