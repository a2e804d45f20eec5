package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/muurk/tmcatcher/internal/validators"
)

// Labels used by the text renderings.
const (
	labelPhone         = "เบอร์โทรศัพท์"
	labelBotPhone      = "เบอร์บอท"
	labelAmount        = "ยอดเงินที่ดักได้"
	labelExpires       = "วันหมดอายุ"
	labelRemaining     = "เวลาคงเหลือ"
	labelBotSession    = "สถานะบอท"
	labelSessionExpiry = "เซสชันบอทหมดอายุ"
	labelBotCount      = "จำนวนบอท"
	labelUpdated       = "อัพเดทล่าสุด"
	labelState         = "สถานะ"

	StateOnline   = "ออนไลน์"
	StateOffline  = "ออฟไลน์"
	StateActive   = "ใช้งานได้"
	StateInactive = "ไม่ได้ใช้งาน"
)

// Field is one labelled line of a rendered result.
type Field struct {
	Label string
	Value string
}

// StatusFields returns the display lines for a successful status lookup.
// Missing values render as "-".
func StatusFields(r StatusResult, loc *time.Location) []Field {
	fields := []Field{
		{labelPhone, orDash(r.Phone)},
	}
	if r.BotPhone != "" {
		fields = append(fields, Field{labelBotPhone, r.BotPhone})
	}
	fields = append(fields, Field{labelAmount, fmt.Sprintf("%s บาท", formatAmount(r.TotalAmount))})

	expires := "-"
	if r.ExpiresAt != "" {
		expires = validators.FormatThaiDateIn(r.ExpiresAt, loc)
	}
	fields = append(fields, Field{labelExpires, expires})

	remaining := "-"
	if r.RemainingTime != nil {
		remaining = validators.FormatRemainingTime(*r.RemainingTime)
	}
	fields = append(fields, Field{labelRemaining, remaining})

	if b := r.BotSessionStatus; b != nil {
		switch {
		case b.Session != nil:
			state := StateInactive
			if b.Session.Active {
				state = StateActive
			}
			if b.Session.TelegramPhone != "" {
				state = fmt.Sprintf("%s (%s)", state, b.Session.TelegramPhone)
			}
			fields = append(fields, Field{labelBotSession, state})
			if b.Session.SessionExpiresAt != "" {
				fields = append(fields, Field{labelSessionExpiry, validators.FormatThaiDateIn(b.Session.SessionExpiresAt, loc)})
			}
		case b.Text != "":
			fields = append(fields, Field{labelBotSession, b.Text})
		}
	}
	return fields
}

// CensusFields returns the display lines for a census result.
func CensusFields(r CensusResult, loc *time.Location) []Field {
	state := StateOffline
	if r.Success {
		state = StateOnline
	}
	updated := "-"
	if !r.AsOf.IsZero() {
		if loc == nil {
			loc = time.Local
		}
		updated = r.AsOf.In(loc).Format("15:04:05")
	}
	return []Field{
		{labelBotCount, fmt.Sprintf("%d บอท", r.OnlineBotCount)},
		{labelUpdated, updated},
		{labelState, state},
	}
}

// FormatFields renders fields as aligned "label: value" lines.
func FormatFields(fields []Field) string {
	width := 0
	for _, f := range fields {
		if w := len([]rune(f.Label)); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, f := range fields {
		pad := width - len([]rune(f.Label))
		b.WriteString(f.Label)
		b.WriteString(":")
		b.WriteString(strings.Repeat(" ", pad+1))
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatAmount drops the fraction for whole amounts.
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
