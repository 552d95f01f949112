package models

import (
	"testing"
	"time"
)

func TestTimeoutActiveBoundary(t *testing.T) {
	applied := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	timeout := &Timeout{
		GuildID: 100,
		UserID:  3,
		Until:   applied.Add(600 * time.Second),
	}

	cases := []struct {
		name   string
		now    time.Time
		active bool
	}{
		{"one second before expiry", applied.Add(599 * time.Second), true},
		{"exactly at expiry", applied.Add(600 * time.Second), false},
		{"one second after expiry", applied.Add(601 * time.Second), false},
	}
	for _, tc := range cases {
		if got := timeout.Active(tc.now); got != tc.active {
			t.Errorf("%s: Active = %v, want %v", tc.name, got, tc.active)
		}
	}
}

func TestTimeoutActiveNilReceiver(t *testing.T) {
	var timeout *Timeout
	if timeout.Active(time.Now()) {
		t.Error("nil timeout reported active")
	}
}
