package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tmcatcher/internal/scheduler"
)

var (
	splashAdvance = scheduler.ID{Owner: string(ScreenSplash), Purpose: "advance"}
	splashTyping  = scheduler.ID{Owner: string(ScreenSplash), Purpose: "typing"}
)

const splashLineInterval = 500 * time.Millisecond

var splashLines = []string{
	"> Initializing system...",
	"> Loading modules...",
	"> Establishing secure connection...",
	"> Access granted.",
}

const logo = `
 ████████╗███╗   ███╗ ██████╗
 ╚══██╔══╝████╗ ████║██╔════╝
    ██║   ██╔████╔██║██║
    ██║   ██║╚██╔╝██║██║
    ██║   ██║ ╚═╝ ██║╚██████╗
    ╚═╝   ╚═╝     ╚═╝ ╚═════╝`

type splashScreen struct {
	shown   int
	spinner spinner.Model
}

func newSplash() *splashScreen {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return &splashScreen{spinner: s}
}

func (s *splashScreen) init(e *env) tea.Cmd {
	return tea.Batch(
		e.sched.Start(splashAdvance, e.opts.SplashDuration),
		e.sched.Start(splashTyping, splashLineInterval),
		s.spinner.Tick,
	)
}

func (s *splashScreen) update(msg tea.Msg, e *env) tea.Cmd {
	switch msg := msg.(type) {
	case scheduler.TickMsg:
		switch msg.ID {
		case splashAdvance:
			e.sched.Stop(splashAdvance)
			return navigate(ScreenHome)
		case splashTyping:
			if s.shown < len(splashLines) {
				s.shown++
			}
			if s.shown >= len(splashLines) {
				e.sched.Stop(splashTyping)
			}
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (s *splashScreen) view(width int) string {
	logoBlock := lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true).Render(logo)
	name := lipgloss.NewStyle().Foreground(TextColor).Bold(true).Render(AppName)
	terminal := TerminalStyle.Render(strings.Join(splashLines[:s.shown], "\n") + "█")
	loading := PendingStyle.Render(s.spinner.View() + " SYSTEM LOADING...")

	content := lipgloss.JoinVertical(lipgloss.Center, logoBlock, name, "",
		lipgloss.NewStyle().Width(40).Render(terminal), "", loading)

	if width <= 0 {
		return content
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (s *splashScreen) help() help.KeyMap { return splashKeys{} }

func (s *splashScreen) typing() bool { return false }

type splashKeys struct{}

func (splashKeys) ShortHelp() []key.Binding {
	return []key.Binding{key.NewBinding(key.WithKeys("any"), key.WithHelp("any key", "skip"))}
}

func (k splashKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
