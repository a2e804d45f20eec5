package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title   string
	body    string
	bullets []string
}

var helpSections = []helpSection{
	{
		title: "1. ลงทะเบียนเบอร์โทรศัพท์",
		body:  `ไปที่แท็บ "เพิ่มเบอร์" และกรอกเบอร์โทรศัพท์ของคุณในรูปแบบไทย (เช่น 0812345678) พร้อมกับ API Key`,
	},
	{
		title: "2. ตรวจสอบสถานะ",
		body:  `ไปที่แท็บ "เช็คข้อมูล" และเลือกวิธีการตรวจสอบโดย:`,
		bullets: []string{
			"กรอกเบอร์โทรศัพท์ที่ลงทะเบียนไว้ หรือ",
			"กรอก API Key ที่ใช้ในการลงทะเบียน",
		},
	},
	{
		title: "3. ล็อกอินบอท",
		body:  "กรอกเบอร์บอทและรหัส OTP 5 หลักที่ได้รับทาง SMS เพื่อเริ่มการทำงานของบอท",
	},
	{
		title: "4. ดูข้อมูลการดักซอง",
		body:  "เมื่อตรวจสอบสำเร็จ ระบบจะแสดงข้อมูลต่อไปนี้:",
		bullets: []string{
			"เบอร์โทรศัพท์ที่ลงทะเบียน",
			"จำนวนเงินที่ดักซองได้ (ถ้ามี)",
			"วันและเวลาหมดอายุ",
			"เวลาที่เหลือก่อนหมดอายุ",
		},
	},
	{
		title: "5. การหมดอายุ",
		body:  "API Key และการลงทะเบียนเบอร์จะหมดอายุหลังจากเวลาที่กำหนด คุณสามารถลงทะเบียนใหม่โดยทำตามขั้นตอนที่ 1-2 อีกครั้ง",
	},
}

type helpKeyMap struct {
	Scroll key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Scroll} }

func (k helpKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// helpScreen shows static instructions in a scrollable viewport
type helpScreen struct {
	viewport viewport.Model
	width    int
	keys     helpKeyMap
}

func newHelpScreen() *helpScreen {
	return &helpScreen{
		viewport: viewport.New(MinTerminalWidth, 18),
		keys: helpKeyMap{
			Scroll: key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		},
	}
}

func (h *helpScreen) init(e *env) tea.Cmd { return nil }

func (h *helpScreen) update(msg tea.Msg, e *env) tea.Cmd {
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return cmd
}

func renderHelpText(width int) string {
	body := lipgloss.NewStyle().Width(width - 4)
	var b strings.Builder
	b.WriteString(RenderTitle("วิธีใช้งาน"))
	b.WriteString("\n")
	for _, s := range helpSections {
		b.WriteString(lipgloss.NewStyle().Foreground(AccentColor).Bold(true).Render(s.title))
		b.WriteString("\n")
		b.WriteString(body.Render(s.body))
		b.WriteString("\n")
		for _, item := range s.bullets {
			b.WriteString(body.Render("  • " + item))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (h *helpScreen) view(width int) string {
	if width != h.width {
		h.width = width
		h.viewport.Width = width
		h.viewport.SetContent(renderHelpText(width))
	}
	return h.viewport.View()
}

func (h *helpScreen) help() help.KeyMap { return h.keys }

func (h *helpScreen) typing() bool { return false }
