package time

import (
	"testing"
	"time"
)

func TestStamp(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2025, 1, 2, 5, 4, 5, 678_900_000, loc)
	if got := Stamp(in); got != "2025-01-02T03:04:05.678Z" {
		t.Fatalf("Stamp = %q", got)
	}
	if got := Stamp(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)); got != "2025-01-02T03:04:05.000Z" {
		t.Fatalf("Stamp zero millis = %q", got)
	}
}

func TestClock(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := Clock(func() time.Time { return fixed }).Now(); !got.Equal(fixed) {
		t.Fatalf("fixed clock = %v", got)
	}
	var c Clock
	if d := time.Since(c.Now()); d < 0 || d > time.Minute {
		t.Fatalf("nil clock drifted: %v", d)
	}
}
