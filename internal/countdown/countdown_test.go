package countdown

import (
	"testing"
	"time"
)

var base = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func TestUntil(t *testing.T) {
	tests := []struct {
		name        string
		target      time.Time
		want        Remaining
		wantExpired bool
	}{
		{
			name:   "mixed units",
			target: base.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second),
			want:   Remaining{Days: 2, Hours: 3, Minutes: 4, Seconds: 5},
		},
		{
			name:   "sub-second truncates",
			target: base.Add(1500 * time.Millisecond),
			want:   Remaining{Seconds: 1},
		},
		{
			name:        "exactly now",
			target:      base,
			wantExpired: true,
		},
		{
			name:        "in the past",
			target:      base.Add(-time.Hour),
			wantExpired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, expired := Until(tt.target, base)
			if got != tt.want {
				t.Errorf("Until() remaining = %+v, want %+v", got, tt.want)
			}
			if expired != tt.wantExpired {
				t.Errorf("Until() expired = %v, want %v", expired, tt.wantExpired)
			}
		})
	}
}

func TestState_TickUntilExpired(t *testing.T) {
	s := New(base.Add(2*time.Second), base)
	if s.Expired {
		t.Fatal("New() should not be expired with a future target")
	}
	if got := s.String(); got != "0 วัน 00:00:02" {
		t.Errorf("String() = %q, want 0 วัน 00:00:02", got)
	}

	if !s.Tick(base.Add(time.Second)) {
		t.Error("Tick() at 1s should keep running")
	}
	if s.Tick(base.Add(2 * time.Second)) {
		t.Error("Tick() at target should stop")
	}
	if !s.Expired {
		t.Error("state should be expired after reaching target")
	}
	if got := s.String(); got != ExpiredLabel {
		t.Errorf("String() = %q, want %q", got, ExpiredLabel)
	}
}

func TestState_NeverUnexpires(t *testing.T) {
	s := New(base, base)
	if !s.Expired {
		t.Fatal("New() at target should be expired")
	}

	// A clock that moves backwards must not revive the countdown.
	if s.Tick(base.Add(-time.Hour)) {
		t.Error("Tick() returned true after expiry")
	}
	if !s.Expired {
		t.Error("Expired was cleared")
	}
}
