// Package time contains time related helpers
package time

import "time"

// ISOMillis is the record timestamp layout: UTC, millisecond precision, Z suffix
const ISOMillis = "2006-01-02T15:04:05.000Z"

// Stamp formats t in UTC with ISOMillis
func Stamp(t time.Time) string { return t.UTC().Format(ISOMillis) }

// Clock is injected where tests need a fixed now
type Clock func() time.Time

// Now returns c() or time.Now when c is nil
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
