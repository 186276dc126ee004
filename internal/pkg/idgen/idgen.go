package idgen

import (
	"fmt"
	"time"
)

// External id prefixes. These ids are customer-facing and never change
// after creation.
const (
	OrderPrefix       = "ORD"
	SessionPrefix     = "SES"
	ReservationPrefix = "RES"
)

// Format builds an external id like ORD-20260824-0007 from a prefix, a
// day and a per-day sequence number.
func Format(prefix string, t time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, t.Format("20060102"), seq)
}

// DayPattern returns the SQL LIKE pattern matching every id generated on
// the given day, used to derive the next sequence number.
func DayPattern(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%%", prefix, t.Format("20060102"))
}
