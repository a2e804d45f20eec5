package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tmcatcher/internal/scheduler"
)

var (
	homeHealth = scheduler.ID{Owner: string(ScreenHome), Purpose: "health"}
	homeClock  = scheduler.ID{Owner: string(ScreenHome), Purpose: "clock"}
)

type homeKeyMap struct {
	Register key.Binding
	Status   key.Binding
	Help     key.Binding
	BotLogin key.Binding
	APIKey   key.Binding
}

func (k homeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Register, k.Status, k.BotLogin, k.APIKey, k.Help}
}

func (k homeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// homeScreen shows API health (polled) and a clock, plus shortcuts
type homeScreen struct {
	healthy *bool // nil until the first check returns
	now     time.Time
	keys    homeKeyMap
}

func newHomeScreen() *homeScreen {
	return &homeScreen{
		now: time.Now(),
		keys: homeKeyMap{
			Register: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "register")),
			Status:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
			Help:     key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
			BotLogin: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bot login")),
			APIKey:   key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "api key")),
		},
	}
}

func (h *homeScreen) init(e *env) tea.Cmd {
	return tea.Batch(
		e.sched.StartNow(homeHealth, e.opts.HealthInterval),
		e.sched.Start(homeClock, time.Second),
	)
}

func (h *homeScreen) update(msg tea.Msg, e *env) tea.Cmd {
	switch msg := msg.(type) {
	case scheduler.TickMsg:
		switch msg.ID {
		case homeHealth:
			return e.checkHealth()
		case homeClock:
			h.now = msg.Time
		}

	case healthMsg:
		healthy := msg.healthy
		h.healthy = &healthy

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, h.keys.Register):
			return navigate(ScreenRegister)
		case key.Matches(msg, h.keys.Status):
			return navigate(ScreenStatus)
		case key.Matches(msg, h.keys.Help):
			return navigate(ScreenHelp)
		case key.Matches(msg, h.keys.BotLogin):
			return navigate(ScreenBotLogin)
		case key.Matches(msg, h.keys.APIKey):
			return navigate(ScreenAPIKey)
		}
	}
	return nil
}

// healthLabel renders the connection state
func (h *homeScreen) healthLabel() string {
	switch {
	case h.healthy == nil:
		return PendingStyle.Render("● กำลังสแกน...")
	case *h.healthy:
		return OnlineStyle.Render("✓ เชื่อมต่อแล้ว")
	default:
		return OfflineStyle.Render("✗ ออฟไลน์")
	}
}

func (h *homeScreen) view(width int) string {
	var b strings.Builder

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		LabelStyle.Render(">_ ระบบ.คอนโซล"),
		"   ",
		ClockStyle.Render(h.now.Format("15:04:05")),
	)
	b.WriteString(top)
	b.WriteString("\n\n")

	card := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, TitleStyle.UnsetMarginBottom().Render("สถานะระบบ"), "  ", h.healthLabel()),
		LabelStyle.Render("ความปลอดภัย: ")+OnlineStyle.Render("เข้ารหัสแล้ว"),
	)
	b.WriteString(CardStyle.Render(card))
	b.WriteString("\n\n")

	b.WriteString(RenderMenuItem("r", "เพิ่มเบอร์  ลงทะเบียนเบอร์ใหม่"))
	b.WriteString("\n")
	b.WriteString(RenderMenuItem("s", "เช็คสถานะ  ตรวจสอบข้อมูล"))
	b.WriteString("\n")
	b.WriteString(RenderMenuItem("b", "ล็อกอินบอท  ด้วย API Key ที่มีอยู่"))
	b.WriteString("\n")
	b.WriteString(RenderMenuItem("k", "ตั้งค่า API Key  สำหรับเบอร์ที่ลงทะเบียนไว้"))
	b.WriteString("\n\n")

	b.WriteString(PendingStyle.Render("SECURE SYSTEM"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Auto-capture TrueMoney red packets with our advanced interception system."))
	b.WriteString("\n")
	b.WriteString(RenderMenuItem("h", "ACCESS DOCUMENTATION"))

	return b.String()
}

func (h *homeScreen) help() help.KeyMap { return h.keys }

func (h *homeScreen) typing() bool { return false }
