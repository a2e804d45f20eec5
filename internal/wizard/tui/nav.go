package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Screen identifies what the app is showing
type Screen string

const (
	ScreenSplash   Screen = "splash"
	ScreenHome     Screen = "home"
	ScreenRegister Screen = "register"
	ScreenStatus   Screen = "status"
	ScreenHelp     Screen = "help"
	ScreenBotLogin Screen = "bot_login"
	ScreenAPIKey   Screen = "api_key"
)

// Tabs are the screens reachable from the bottom navigation, in order
var Tabs = []Screen{ScreenHome, ScreenRegister, ScreenStatus, ScreenHelp}

// Label is the bottom navigation label
func (s Screen) Label() string {
	switch s {
	case ScreenHome:
		return "บ้าน"
	case ScreenRegister:
		return "เพิ่มเบอร์"
	case ScreenStatus:
		return "เช็คข้อมูล"
	case ScreenHelp:
		return "วิธีใช้"
	case ScreenBotLogin:
		return "ล็อกอินบอท"
	case ScreenAPIKey:
		return "ตั้งค่า API Key"
	default:
		return string(s)
	}
}

// Title is the header title shown for the screen
func (s Screen) Title() string {
	switch s {
	case ScreenRegister:
		return "จัดการบริการ"
	case ScreenStatus:
		return "เช็คสถานะ"
	case ScreenHelp:
		return "วิธีใช้งาน"
	case ScreenBotLogin:
		return "ล็อกอินบอท"
	case ScreenAPIKey:
		return "ตั้งค่า API Key"
	default:
		return AppTagline
	}
}

// tabIndex returns the position of s in Tabs, or -1
func tabIndex(s Screen) int {
	for i, t := range Tabs {
		if t == s {
			return i
		}
	}
	return -1
}

// nextTab cycles through Tabs. Screens outside the navigation cycle from home.
func nextTab(s Screen, delta int) Screen {
	i := tabIndex(s)
	if i < 0 {
		i = 0
	}
	n := len(Tabs)
	return Tabs[((i+delta)%n+n)%n]
}

// renderNav renders the bottom navigation with the active tab highlighted
func renderNav(active Screen) string {
	items := make([]string, 0, len(Tabs))
	for i, t := range Tabs {
		label := string(rune('1'+i)) + " " + t.Label()
		if t == active {
			items = append(items, NavActiveStyle.Render(label))
		} else {
			items = append(items, NavItemStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(items, " "))
}
