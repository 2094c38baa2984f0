package util

import "time"

// ISOTimestampLayout matches JavaScript's Date.prototype.toISOString output.
const ISOTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ISOTimestamp renders t in UTC with millisecond precision.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(ISOTimestampLayout)
}
