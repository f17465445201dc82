package logformat

import (
	"time"
)

// EntryLayout is the bracketed timestamp at the start of every entry
const EntryLayout = "[2006-01-02 15:04:05]"

// ParseTimestamp parses an entry timestamp such as "[2023-02-14 13:42:48]"
// in the local time zone
func ParseTimestamp(ts string) (time.Time, bool) {
	t, err := time.ParseInLocation(EntryLayout, ts, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
