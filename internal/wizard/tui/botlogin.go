package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/tmcatcher/internal/validators"
	"github.com/muurk/tmcatcher/internal/wizard"
)

// botLoginScreen logs a bot in with an existing API key. Without a
// prefilled key it asks for one first.
type botLoginScreen struct {
	w        *wizard.BotLogin
	needKey  bool // still collecting the API key
	keyError string
	prefill  bool
	input    textinput.Model
	spinner  spinner.Model
	keys     formKeyMap
}

func newBotLoginScreen(apiKey string) *botLoginScreen {
	b := &botLoginScreen{
		w:       wizard.NewBotLogin(apiKey),
		needKey: !validators.IsValidAPIKey(apiKey),
		prefill: validators.IsValidAPIKey(apiKey),
		input:   newInput(),
		spinner: newSpinner(),
		keys:    newFormKeys("back"),
	}
	b.bind()
	return b
}

func (b *botLoginScreen) spec() inputSpec {
	switch {
	case b.needKey:
		return apiKeyInput
	case b.w.AwaitingOTP:
		return otpInput
	default:
		return botPhoneInput
	}
}

func (b *botLoginScreen) field() string {
	switch {
	case b.needKey:
		return b.w.APIKey
	case b.w.AwaitingOTP:
		return b.w.Code
	default:
		return b.w.Phone
	}
}

func (b *botLoginScreen) bind() {
	configure(&b.input, b.spec(), b.field())
	b.keys.resend = b.w.AwaitingOTP
}

func (b *botLoginScreen) init(e *env) tea.Cmd { return textinput.Blink }

func (b *botLoginScreen) submit(e *env) tea.Cmd {
	if b.needKey {
		if !validators.IsValidAPIKey(b.w.APIKey) {
			b.keyError = wizard.MsgAPIKeyRequired
			return nil
		}
		b.needKey = false
		b.keyError = ""
		b.bind()
		return nil
	}
	return b.started(e.run(b.w.Submit()))
}

func (b *botLoginScreen) started(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, b.spinner.Tick)
}

func (b *botLoginScreen) back() tea.Cmd {
	switch {
	case b.w.Back():
	case !b.needKey && !b.prefill:
		b.needKey = true
	default:
		return navigate(ScreenHome)
	}
	b.bind()
	return nil
}

func (b *botLoginScreen) update(msg tea.Msg, e *env) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Submit):
			return b.submit(e)
		case key.Matches(msg, b.keys.Resend):
			return b.started(e.run(b.w.Resend()))
		case key.Matches(msg, b.keys.Back):
			return b.back()
		}

	case outcomeMsg:
		awaiting := b.w.AwaitingOTP
		if b.w.Apply(msg.outcome) && awaiting != b.w.AwaitingOTP {
			b.bind()
		}
		return nil

	case spinner.TickMsg:
		return spin(&b.spinner, msg, b.w.Loading())
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	v := b.input.Value()
	switch {
	case b.needKey:
		if b.w.APIKey != v {
			b.w.APIKey = v
			b.keyError = ""
		}
	case b.w.AwaitingOTP:
		b.w.SetCode(v)
	default:
		b.w.SetPhone(v)
	}
	return cmd
}

func (b *botLoginScreen) view(width int) string {
	var s strings.Builder
	if !b.needKey {
		s.WriteString(LabelStyle.Render("API Key: ") + ValueStyle.Render(maskKey(b.w.APIKey)))
		s.WriteString("\n")
	}
	if b.w.AwaitingOTP {
		s.WriteString(LabelStyle.Render("เบอร์บอท: ") + ValueStyle.Render(validators.NormalizeBotPhone(b.w.Phone)))
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(renderField(b.spec(), b.input))
	s.WriteString("\n\n")

	errText := b.w.Error
	if b.needKey {
		errText = b.keyError
	}
	s.WriteString(renderFeedback(b.spinner, b.w.Loading(), errText, b.w.Notice))
	return s.String()
}

// maskKey keeps the last four characters of secret visible
func maskKey(secret string) string {
	r := []rune(secret)
	if len(r) <= 4 {
		return strings.Repeat("•", len(r))
	}
	return strings.Repeat("•", len(r)-4) + string(r[len(r)-4:])
}

func (b *botLoginScreen) help() help.KeyMap { return b.keys }

func (b *botLoginScreen) typing() bool { return true }
