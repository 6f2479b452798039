package state

import (
	"testing"
	"time"
)

func TestEnsureSunday(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "sunday stays", in: "2026-08-23", want: "2026-08-23"},
		{name: "monday snaps forward", in: "2026-08-24", want: "2026-08-30"},
		{name: "saturday snaps forward", in: "2026-08-29", want: "2026-08-30"},
		{name: "month boundary", in: "2026-08-31", want: "2026-09-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsureSunday(tt.in); got != tt.want {
				t.Fatalf("EnsureSunday(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnsureSundayInvalidInput(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2026-13-99"} {
		got := EnsureSunday(in)
		d, err := time.Parse("2006-01-02", got)
		if err != nil {
			t.Fatalf("EnsureSunday(%q) = %q, not a date", in, got)
		}
		if d.Weekday() != time.Sunday {
			t.Fatalf("EnsureSunday(%q) = %q, not a Sunday", in, got)
		}
		if d.Before(time.Now().Add(-48 * time.Hour)) {
			t.Fatalf("EnsureSunday(%q) = %q, in the past", in, got)
		}
	}
}
