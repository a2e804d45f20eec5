package api

import (
	"strings"
	"testing"
	"time"

	"github.com/muurk/tmcatcher/internal/validators"
)

func TestStatusFields(t *testing.T) {
	r := StatusResult{
		Response:      Response{Success: true},
		Phone:         "0812345678",
		TotalAmount:   120,
		ExpiresAt:     "2024-01-15T10:30:00",
		RemainingTime: &validators.RemainingTime{Days: 2, Hours: 3, Minutes: 45},
		BotSessionStatus: &BotSessionStatus{Session: &BotSession{
			Active:           true,
			TelegramPhone:    "+66912345678",
			SessionExpiresAt: "2024-01-16T00:00:00",
		}},
	}

	got := map[string]string{}
	for _, f := range StatusFields(r, time.UTC) {
		got[f.Label] = f.Value
	}

	want := map[string]string{
		labelPhone:         "0812345678",
		labelAmount:        "120 บาท",
		labelExpires:       "15/1/2567 10:30:00",
		labelRemaining:     "2 วัน 3 ชั่วโมง 45 นาที",
		labelBotSession:    "ใช้งานได้ (+66912345678)",
		labelSessionExpiry: "16/1/2567 00:00:00",
	}
	for label, value := range want {
		if got[label] != value {
			t.Errorf("%s = %q, want %q", label, got[label], value)
		}
	}
	if _, ok := got[labelBotPhone]; ok {
		t.Error("empty bot phone should be omitted")
	}
}

func TestStatusFields_MissingValues(t *testing.T) {
	fields := StatusFields(StatusResult{Response: Response{Success: true}}, time.UTC)

	got := map[string]string{}
	for _, f := range fields {
		got[f.Label] = f.Value
	}
	if got[labelPhone] != "-" || got[labelExpires] != "-" || got[labelRemaining] != "-" {
		t.Errorf("fields = %v, want dashes for missing values", got)
	}
}

func TestCensusFields(t *testing.T) {
	r := CensusResult{
		Response:       Response{Success: true},
		OnlineBotCount: 5,
		AsOf:           time.Date(2024, 1, 15, 8, 5, 9, 0, time.UTC),
	}
	fields := CensusFields(r, time.UTC)

	if fields[0].Value != "5 บอท" || fields[1].Value != "08:05:09" || fields[2].Value != StateOnline {
		t.Errorf("CensusFields() = %+v", fields)
	}

	offline := CensusFields(CensusResult{}, time.UTC)
	if offline[2].Value != StateOffline || offline[1].Value != "-" {
		t.Errorf("CensusFields(offline) = %+v", offline)
	}
}

func TestFormatFields(t *testing.T) {
	out := FormatFields([]Field{{"a", "1"}, {"bbb", "2"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if lines[0] != "a:   1" || lines[1] != "bbb: 2" {
		t.Errorf("FormatFields() = %q", out)
	}
}
