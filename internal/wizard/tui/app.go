package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/tmcatcher/internal/api"
	"github.com/muurk/tmcatcher/internal/logging"
	"github.com/muurk/tmcatcher/internal/scheduler"
	"github.com/muurk/tmcatcher/internal/wizard"
)

// Backend is everything the TUI asks of the API client. *api.Client
// satisfies it.
type Backend interface {
	wizard.Backend
	CheckTotalBots(ctx context.Context) api.CensusResult
	CheckAPIHealth(ctx context.Context) bool
}

// Options configures the app
type Options struct {
	Backend Backend
	Store   wizard.PhoneStore

	// APIKey prefills the standalone bot login form
	APIKey string

	// Poll intervals; zero values use the defaults below
	HealthInterval    time.Duration
	CensusInterval    time.Duration
	CountdownInterval time.Duration
	SplashDuration    time.Duration

	// Location renders timestamps; nil means time.Local
	Location *time.Location

	// SkipSplash starts on the home screen
	SkipSplash bool
}

const (
	defaultHealthInterval    = 30 * time.Second
	defaultCensusInterval    = 10 * time.Second
	defaultCountdownInterval = time.Second
	defaultSplashDuration    = 5 * time.Second
)

func (o *Options) applyDefaults() {
	if o.HealthInterval <= 0 {
		o.HealthInterval = defaultHealthInterval
	}
	if o.CensusInterval <= 0 {
		o.CensusInterval = defaultCensusInterval
	}
	if o.CountdownInterval <= 0 {
		o.CountdownInterval = defaultCountdownInterval
	}
	if o.SplashDuration <= 0 {
		o.SplashDuration = defaultSplashDuration
	}
	if o.Store == nil {
		o.Store = &wizard.MemoryPhoneStore{}
	}
}

// env is what a screen may use while it is shown. ctx is canceled and gen
// retired when the screen is left.
type env struct {
	ctx     context.Context
	gen     uint64
	backend Backend
	sched   *scheduler.Scheduler
	opts    *Options
}

// run performs call in the background and reports its outcome
func (e *env) run(call *wizard.Call) tea.Cmd {
	if call == nil {
		return nil
	}
	c, ctx, gen, b := *call, e.ctx, e.gen, e.backend
	return func() tea.Msg {
		return outcomeMsg{gen: gen, outcome: c.Do(ctx, b)}
	}
}

func (e *env) checkHealth() tea.Cmd {
	ctx, gen, b := e.ctx, e.gen, e.backend
	return func() tea.Msg {
		return healthMsg{gen: gen, healthy: b.CheckAPIHealth(ctx)}
	}
}

func (e *env) checkCensus() tea.Cmd {
	ctx, gen, b := e.ctx, e.gen, e.backend
	return func() tea.Msg {
		return censusMsg{gen: gen, result: b.CheckTotalBots(ctx)}
	}
}

// screen is one page of the app
type screen interface {
	// init starts the screen's timers and initial requests
	init(e *env) tea.Cmd
	update(msg tea.Msg, e *env) tea.Cmd
	view(width int) string
	help() help.KeyMap
	// typing reports whether a text input has focus, which disables the
	// single-key shortcuts
	typing() bool
}

type globalKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Tab  key.Binding
	Quit key.Binding
}

func newGlobalKeys() globalKeyMap {
	return globalKeyMap{
		Next: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Prev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Tab:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "tab")),
		Quit: key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	Current Screen
	Width   int
	Height  int

	opts   *Options
	sched  *scheduler.Scheduler
	screen screen
	env    *env
	cancel context.CancelFunc
	gen    uint64

	Help help.Model
	keys globalKeyMap
}

// NewAppModel creates the app, starting on the splash screen unless
// opts.SkipSplash is set.
func NewAppModel(opts Options) *AppModel {
	opts.applyDefaults()
	m := &AppModel{
		opts:  &opts,
		sched: scheduler.New(),
		Help:  help.New(),
		keys:  newGlobalKeys(),
	}
	return m
}

// Scheduler exposes the timer registry, mainly for tests
func (m *AppModel) Scheduler() *scheduler.Scheduler {
	return m.sched
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	if m.opts.SkipSplash {
		return m.switchTo(ScreenHome)
	}
	return m.switchTo(ScreenSplash)
}

func (m *AppModel) newScreen(s Screen) screen {
	switch s {
	case ScreenSplash:
		return newSplash()
	case ScreenRegister:
		return newRegisterScreen(m.opts.Store)
	case ScreenStatus:
		return newStatusScreen(m.opts.Location)
	case ScreenHelp:
		return newHelpScreen()
	case ScreenBotLogin:
		return newBotLoginScreen(m.opts.APIKey)
	case ScreenAPIKey:
		return newAPIKeyScreen(m.opts.Store)
	default:
		return newHomeScreen()
	}
}

// switchTo leaves the current screen, stopping its timers and canceling its
// requests, and mounts a fresh instance of s.
func (m *AppModel) switchTo(s Screen) tea.Cmd {
	if m.screen != nil {
		m.sched.StopOwner(string(m.Current))
		m.cancel()
		logging.LogStateTransition("tui", string(m.Current), string(s))
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.gen++
	m.cancel = cancel
	m.Current = s
	m.env = &env{ctx: ctx, gen: m.gen, backend: m.opts.Backend, sched: m.sched, opts: m.opts}
	m.screen = m.newScreen(s)
	return m.screen.init(m.env)
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.Current == ScreenSplash {
			return m, m.switchTo(ScreenHome)
		}
		switch {
		case key.Matches(msg, m.keys.Next):
			return m, m.switchTo(nextTab(m.Current, 1))
		case key.Matches(msg, m.keys.Prev):
			return m, m.switchTo(nextTab(m.Current, -1))
		}
		if !m.screen.typing() {
			switch {
			case key.Matches(msg, m.keys.Tab):
				return m, m.switchTo(Tabs[int(msg.Runes[0]-'1')])
			case key.Matches(msg, m.keys.Quit):
				return m.quit()
			}
		}

	case navigateMsg:
		return m, m.switchTo(msg.screen)

	case scheduler.TickMsg:
		next, ok := m.sched.Accept(msg)
		if !ok {
			return m, nil
		}
		return m, tea.Batch(next, m.screen.update(msg, m.env))

	case outcomeMsg:
		if msg.gen != m.gen {
			return m, nil
		}
	case healthMsg:
		if msg.gen != m.gen {
			return m, nil
		}
	case censusMsg:
		if msg.gen != m.gen {
			return m, nil
		}
	}

	return m, m.screen.update(msg, m.env)
}

func (m *AppModel) quit() (tea.Model, tea.Cmd) {
	m.sched.StopOwner(string(m.Current))
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.screen == nil {
		return ""
	}
	if m.Current == ScreenSplash {
		return m.screen.view(m.Width)
	}

	helpText := m.Help.View(m.screen.help())
	if !m.screen.typing() {
		helpText += "  " + m.Help.ShortHelpView([]key.Binding{m.keys.Tab, m.keys.Quit})
	} else {
		helpText += "  " + m.Help.ShortHelpView([]key.Binding{m.keys.Next})
	}

	return RenderApplicationContainer(
		m.Current.Title(),
		m.screen.view(contentWidth(m.Width)-6),
		renderNav(m.Current),
		helpText,
		m.Width,
		m.Height,
	)
}

// Run starts the TUI in the alternate screen and blocks until it exits
func Run(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
