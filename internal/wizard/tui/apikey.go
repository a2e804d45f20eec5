package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/tmcatcher/internal/wizard"
)

// apiKeyScreen binds a new API key to the remembered registrant phone
type apiKeyScreen struct {
	w       *wizard.APIKeySetup
	input   textinput.Model
	spinner spinner.Model
	keys    formKeyMap
}

func newAPIKeyScreen(store wizard.PhoneStore) *apiKeyScreen {
	a := &apiKeyScreen{
		w:       wizard.NewAPIKeySetup(store),
		input:   newInput(),
		spinner: newSpinner(),
		keys:    newFormKeys("home"),
	}
	configure(&a.input, apiKeyInput, "")
	return a
}

func (a *apiKeyScreen) init(e *env) tea.Cmd { return textinput.Blink }

func (a *apiKeyScreen) update(msg tea.Msg, e *env) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Submit):
			cmd := e.run(a.w.Submit())
			if cmd == nil {
				return nil
			}
			return tea.Batch(cmd, a.spinner.Tick)
		case key.Matches(msg, a.keys.Back):
			return navigate(ScreenHome)
		}

	case outcomeMsg:
		if a.w.Apply(msg.outcome) && a.w.Done {
			a.w.SetAPIKey("")
			configure(&a.input, apiKeyInput, "")
		}
		return nil

	case spinner.TickMsg:
		return spin(&a.spinner, msg, a.w.Loading())
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.w.SetAPIKey(a.input.Value())
	return cmd
}

func (a *apiKeyScreen) view(width int) string {
	var b strings.Builder
	phone := a.w.Phone()
	if phone == "" {
		phone = "-"
	}
	b.WriteString(LabelStyle.Render("เบอร์รับซอง: ") + ValueStyle.Render(phone))
	b.WriteString("\n\n")
	b.WriteString(renderField(apiKeyInput, a.input))
	b.WriteString("\n\n")
	b.WriteString(renderFeedback(a.spinner, a.w.Loading(), a.w.Error, a.w.Notice))
	return b.String()
}

func (a *apiKeyScreen) help() help.KeyMap { return a.keys }

func (a *apiKeyScreen) typing() bool { return true }
