package wizard

import (
	"context"
	"time"

	"github.com/muurk/tmcatcher/internal/api"
	"github.com/muurk/tmcatcher/internal/countdown"
	"github.com/muurk/tmcatcher/internal/validators"
)

// Mode selects what the status form looks up by.
type Mode int

const (
	ModePhone Mode = iota
	ModeAPIKey
)

func (m Mode) String() string {
	if m == ModeAPIKey {
		return "api_key"
	}
	return "phone"
}

// Label is the toggle label.
func (m Mode) Label() string {
	if m == ModeAPIKey {
		return "เช็คด้วย API Key"
	}
	return "เช็คด้วยเบอร์โทร"
}

// StatusCheck is the single-state status lookup form. Result holds the
// latest successful lookup; each submission supersedes it.
type StatusCheck struct {
	Mode  Mode
	Input string
	Error string

	Result *api.StatusResult

	// Countdown runs while the result has a structured session expiry.
	Countdown *countdown.State

	// Location renders and parses timestamps; nil means time.Local.
	Location *time.Location

	now func() time.Time
	flight
}

// NewStatusCheck creates a form in phone mode.
func NewStatusCheck() *StatusCheck {
	return &StatusCheck{now: time.Now}
}

func (s *StatusCheck) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// SetMode switches the lookup mode. The input is kept.
func (s *StatusCheck) SetMode(m Mode) {
	s.Mode = m
	s.Error = ""
}

// ToggleMode flips between phone and API key.
func (s *StatusCheck) ToggleMode() {
	if s.Mode == ModePhone {
		s.SetMode(ModeAPIKey)
		return
	}
	s.SetMode(ModePhone)
}

// SetInput updates the input field
func (s *StatusCheck) SetInput(v string) {
	if s.Input != v {
		s.Input = v
		s.Error = ""
	}
}

// Submit validates the input for the current mode and clears the previous
// result.
func (s *StatusCheck) Submit() *Call {
	if s.Loading() {
		return nil
	}
	s.Error = ""

	switch s.Mode {
	case ModeAPIKey:
		if !validators.IsValidAPIKey(s.Input) {
			s.Error = MsgAPIKeyRequired
			return nil
		}
		s.clearResult()
		return s.begin(Call{Action: ActionStatusByAPIKey, APIKey: s.Input})
	default:
		if !validators.IsValidThaiPhone(s.Input) {
			s.Error = MsgInvalidPhone
			return nil
		}
		s.clearResult()
		return s.begin(Call{Action: ActionStatusByPhone, Phone: s.Input})
	}
}

func (s *StatusCheck) clearResult() {
	s.Result = nil
	s.Countdown = nil
}

// Apply feeds back the lookup outcome and starts the countdown when the
// result carries a session expiry.
func (s *StatusCheck) Apply(o Outcome) bool {
	if !s.settle(o) {
		return false
	}
	if !o.Response.Success || o.Status == nil {
		s.Error = messageOr(o.Response.Message, msgLookupFailed)
		return true
	}

	s.Result = o.Status
	if at, ok := o.Status.BotSessionStatus.ExpiresAt(s.Location); ok {
		cd := countdown.New(at, s.clock())
		s.Countdown = &cd
	}
	return true
}

// Tick advances the countdown to now and reports whether it should keep
// ticking.
func (s *StatusCheck) Tick(now time.Time) bool {
	if s.Countdown == nil {
		return false
	}
	return s.Countdown.Tick(now)
}

// CountdownActive reports whether a countdown exists and has not expired.
func (s *StatusCheck) CountdownActive() bool {
	return s.Countdown != nil && !s.Countdown.Expired
}

// Run is Submit followed by a synchronous call.
func (s *StatusCheck) Run(ctx context.Context, b Backend) bool {
	call := s.Submit()
	if call == nil {
		return false
	}
	s.Apply(call.Do(ctx, b))
	return true
}
