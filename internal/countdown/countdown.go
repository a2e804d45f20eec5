// Package countdown tracks the time left until a bot session expires.
//
// The state is structured (days, hours, minutes, seconds plus an explicit
// expired flag) so renderers never have to parse a formatted string back.
package countdown

import (
	"fmt"
	"time"
)

// ExpiredLabel is rendered once the target time has passed.
const ExpiredLabel = "หมดอายุแล้ว"

// Remaining is a duration split into display units.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Until returns the time left from now to target. The boolean is true once
// target is not after now, in which case the Remaining value is zero.
func Until(target, now time.Time) (Remaining, bool) {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{}, true
	}

	total := int64(d / time.Second)
	return Remaining{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}, false
}

// State is a running countdown towards Target.
type State struct {
	Target    time.Time
	Remaining Remaining
	Expired   bool
}

// New creates a countdown evaluated at now.
func New(target, now time.Time) State {
	s := State{Target: target}
	s.Tick(now)
	return s
}

// Tick recomputes the remaining time and reports whether the countdown
// should keep ticking. An expired state stays expired.
func (s *State) Tick(now time.Time) bool {
	if s.Expired {
		return false
	}
	s.Remaining, s.Expired = Until(s.Target, now)
	return !s.Expired
}

// String renders "D วัน HH:MM:SS" or the expired label.
func (s State) String() string {
	if s.Expired {
		return ExpiredLabel
	}
	r := s.Remaining
	return fmt.Sprintf("%d วัน %02d:%02d:%02d", r.Days, r.Hours, r.Minutes, r.Seconds)
}
