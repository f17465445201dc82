package index

// TimestampTemplate is the entry start pattern. Every 'd' matches one ASCII
// digit, every other byte matches itself.
const TimestampTemplate = "[dddd-dd-dd dd:dd:dd] "

// TimestampWidth is the number of bytes a full template match covers
const TimestampWidth = len(TimestampTemplate)

type text interface {
	~string | ~[]byte
}

// Boundaries returns the byte offset of every entry start in buf.
//
// An entry starts where a physical line begins with a full template match.
// Position 0 counts as a line start; after that only the byte following a
// '\n' or '\r' does. Bytes before the first boundary belong to no entry, and
// a timestamp beginning in the final TimestampWidth-1 bytes is never
// recognized. A buffer without any match yields no boundaries.
func Boundaries[T text](buf T) []int {
	n := len(buf)
	if n < TimestampWidth {
		return nil
	}

	// Estimate initial capacity (assume ~128 bytes per entry)
	offsets := make([]int, 0, n/128+1)

	lineStart := true
	for i := 0; i+TimestampWidth <= n; i++ {
		if lineStart {
			if ok, _ := matchFrom(buf, i); ok {
				offsets = append(offsets, i)
			}
		}
		c := buf[i]
		lineStart = c == '\n' || c == '\r'
	}

	return offsets
}

// MatchTimestamp reports whether b begins with a full template match.
// The second result is the number of bytes examined: TimestampWidth on a
// match, otherwise the 1-based position of the first mismatching byte, or
// len(b) when b ends before the template does.
func MatchTimestamp[T text](b T) (bool, int) {
	return matchFrom(b, 0)
}

func matchFrom[T text](buf T, start int) (bool, int) {
	for j := 0; j < TimestampWidth; j++ {
		if start+j >= len(buf) {
			return false, j
		}
		if !matchByte(TimestampTemplate[j], buf[start+j]) {
			return false, j + 1
		}
	}
	return true, TimestampWidth
}

func matchByte(want, got byte) bool {
	if want == 'd' {
		return got >= '0' && got <= '9'
	}
	return want == got
}
