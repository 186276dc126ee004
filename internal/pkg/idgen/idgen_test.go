package idgen

import (
	"regexp"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	day := time.Date(2026, 8, 24, 15, 4, 5, 0, time.UTC)

	if got := Format(OrderPrefix, day, 7); got != "ORD-20260824-0007" {
		t.Errorf("Format = %q, want ORD-20260824-0007", got)
	}
	if got := Format(SessionPrefix, day, 1234); got != "SES-20260824-1234" {
		t.Errorf("Format = %q, want SES-20260824-1234", got)
	}

	pattern := regexp.MustCompile(`^[A-Z]{3}-\d{8}-\d{4}$`)
	for _, prefix := range []string{OrderPrefix, SessionPrefix, ReservationPrefix} {
		id := Format(prefix, day, 42)
		if !pattern.MatchString(id) {
			t.Errorf("id %q does not match expected shape", id)
		}
	}
}

func TestDayPattern(t *testing.T) {
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if got := DayPattern(ReservationPrefix, day); got != "RES-20260824-%" {
		t.Errorf("DayPattern = %q, want RES-20260824-%%", got)
	}
}
