package validators

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// BuddhistEraOffset is the number of years between the Gregorian calendar and
// the Thai Buddhist Era.
const BuddhistEraOffset = 543

// ThaiCountryCode is the international prefix bot phones are normalized to.
const ThaiCountryCode = "+66"

// OTPLength is the number of digits in a bot-login OTP code.
const OTPLength = 5

var thaiPhoneRe = regexp.MustCompile(`^0[6-9]\d{8}$`)

// timestampLayouts are tried in order by ParseTimestamp. Layouts without a
// zone are interpreted in the caller's location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// RemainingTime is the coarse remaining-validity value returned by the
// status endpoints.
type RemainingTime struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// IsValidThaiPhone reports whether phone is a 10-digit Thai mobile number
// starting with 06, 07, 08 or 09. Separators are not accepted.
func IsValidThaiPhone(phone string) bool {
	return thaiPhoneRe.MatchString(phone)
}

// IsValidAPIKey reports whether key contains anything besides whitespace.
func IsValidAPIKey(key string) bool {
	return strings.TrimSpace(key) != ""
}

// IsValidOTP reports whether code is exactly OTPLength digits.
func IsValidOTP(code string) bool {
	if len(code) != OTPLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// AcceptsBotPhone reports whether phone can be used for a bot login: either a
// local Thai number or a value that already carries a country-code prefix.
func AcceptsBotPhone(phone string) bool {
	return IsValidThaiPhone(phone) || strings.HasPrefix(phone, "+")
}

// NormalizeBotPhone converts a local Thai number to the +66 form expected by
// the bot-login endpoint. Values that already start with '+' are returned as is.
func NormalizeBotPhone(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return ThaiCountryCode + strings.TrimPrefix(phone, "0")
}

// ParseTimestamp parses the timestamp formats the backend is known to emit.
// Values without an explicit offset are read in loc.
func ParseTimestamp(input string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(input)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", input)
}

// FormatThaiDate renders an ISO-8601 timestamp as "D/M/YYYY HH:MM:SS" with a
// Buddhist Era year, in the local time zone. Input that cannot be parsed is
// returned unchanged.
func FormatThaiDate(input string) string {
	return FormatThaiDateIn(input, time.Local)
}

// FormatThaiDateIn is FormatThaiDate with an explicit location.
func FormatThaiDateIn(input string, loc *time.Location) string {
	t, err := ParseTimestamp(input, loc)
	if err != nil {
		return input
	}
	return FormatThaiTime(t)
}

// FormatThaiTime renders t as "D/M/YYYY HH:MM:SS" using the Buddhist Era year.
func FormatThaiTime(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d %02d:%02d:%02d",
		t.Day(), int(t.Month()), t.Year()+BuddhistEraOffset,
		t.Hour(), t.Minute(), t.Second())
}

// FormatRemainingTime renders the remaining validity with Thai unit labels.
// Callers are responsible for passing non-negative values.
func FormatRemainingTime(r RemainingTime) string {
	return fmt.Sprintf("%d วัน %d ชั่วโมง %d นาที", r.Days, r.Hours, r.Minutes)
}
