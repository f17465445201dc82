package source

import (
	"strings"
	"unicode/utf8"

	"github.com/TimelordUK/logdeck/internal/index"
)

const (
	// timestampLen covers "[YYYY-MM-DD HH:MM:SS]" without the trailing space
	timestampLen = index.TimestampWidth - 1
	// levelOffset is where the level field starts inside an entry
	levelOffset = index.TimestampWidth
	// separatorLen is the ": " between level and body, assumed not checked
	separatorLen = 2
)

// Entry is a read-only view of one log entry inside a Buffer.
//
// An Entry only records offsets; every field is sliced out of the owning
// Buffer's text when asked for, so nothing is copied. It stays tied to the
// Buffer it came from: after the ingestion controller swaps in a new Buffer
// the old entries describe stale content and must be fetched again.
type Entry struct {
	buf      *Buffer
	position int
	start    int
	end      int
}

// Position returns the entry's index in its Buffer
func (e Entry) Position() int {
	return e.position
}

// Start returns the byte offset of the entry in the Buffer
func (e Entry) Start() int {
	return e.start
}

// End returns the exclusive end offset of the entry in the Buffer
func (e Entry) End() int {
	return e.end
}

// Len returns the entry length in bytes
func (e Entry) Len() int {
	return e.end - e.start
}

// Text returns the whole entry, including its trailing line break
func (e Entry) Text() string {
	if e.buf == nil {
		return ""
	}
	return e.buf.text[e.start:e.end]
}

// Timestamp returns the bracketed timestamp, e.g. "[2023-02-14 13:42:48]"
func (e Entry) Timestamp() string {
	return e.slice(0, timestampLen)
}

// Level returns the text between the timestamp and the first ':' after it.
// Without a ':' the level runs to the end of the entry.
func (e Entry) Level() string {
	return e.slice(levelOffset, e.levelEnd())
}

// Body returns everything after the level separator, continuation lines included
func (e Entry) Body() string {
	return e.slice(e.separatorEnd(), e.Len())
}

// Header returns timestamp, level and separator as a one-line summary
func (e Entry) Header() string {
	return e.slice(0, e.separatorEnd())
}

// Label returns at most n bytes from the start of the body. A cut that would
// split a multi-byte character is moved back to the character start.
func (e Entry) Label(n int) string {
	body := e.Body()
	if n <= 0 {
		return ""
	}
	if n >= len(body) {
		return body
	}
	for n > 0 && !utf8.RuneStart(body[n]) {
		n--
	}
	return body[:n]
}

// levelEnd returns the entry-relative offset where the level stops
func (e Entry) levelEnd() int {
	n := e.Len()
	if n <= levelOffset {
		return n
	}
	text := e.Text()
	if i := strings.IndexByte(text[levelOffset:], ':'); i >= 0 {
		return levelOffset + i
	}
	return n
}

func (e Entry) separatorEnd() int {
	return min(e.levelEnd()+separatorLen, e.Len())
}

// slice returns the entry-relative range [from, to), clamped to the entry
func (e Entry) slice(from, to int) string {
	n := e.Len()
	from = max(0, min(from, n))
	to = max(from, min(to, n))
	if e.buf == nil {
		return ""
	}
	return e.buf.text[e.start+from : e.start+to]
}
