package source

import (
	"github.com/TimelordUK/logdeck/internal/index"
)

// Buffer owns the full known text of a log file and the entry boundaries
// found in it. A Buffer never changes once built: growth produces a new
// Buffer, so a reader always sees either the old or the new one whole.
type Buffer struct {
	text    string
	offsets []int

	// duplicate counts by digest, built on first use
	counts map[uint64]int
}

// Empty returns a buffer with no text and no entries
func Empty() *Buffer {
	return &Buffer{}
}

// FromContent scans text and builds a buffer over it
func FromContent(text string) *Buffer {
	return &Buffer{
		text:    text,
		offsets: index.Boundaries(text),
	}
}

// Append returns a new buffer holding the current text followed by delta.
//
// The whole resulting text is rescanned rather than only the delta, which
// keeps Append equivalent to FromContent(text + delta) at the price of
// O(total size) per growth event.
func (b *Buffer) Append(delta string) *Buffer {
	if delta == "" {
		return b
	}
	return FromContent(b.text + delta)
}

// Len returns the number of entries
func (b *Buffer) Len() int {
	return len(b.offsets)
}

// Size returns the text length in bytes
func (b *Buffer) Size() int {
	return len(b.text)
}

// Text returns the full buffer text
func (b *Buffer) Text() string {
	return b.text
}

// Boundaries returns the entry start offsets. The slice is shared and must
// not be modified.
func (b *Buffer) Boundaries() []int {
	return b.offsets
}

// Entry returns the entry at position i
func (b *Buffer) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(b.offsets) {
		return Entry{}, false
	}

	end := len(b.text)
	if i+1 < len(b.offsets) {
		end = b.offsets[i+1]
	}

	return Entry{
		buf:      b,
		position: i,
		start:    b.offsets[i],
		end:      end,
	}, true
}

// Entries returns every entry in order
func (b *Buffer) Entries() []Entry {
	entries := make([]Entry, len(b.offsets))
	for i := range b.offsets {
		entries[i], _ = b.Entry(i)
	}
	return entries
}

// Occurrences returns how many entries in the buffer share e's level and body
func (b *Buffer) Occurrences(e Entry) int {
	if b.counts == nil {
		b.counts = make(map[uint64]int, len(b.offsets))
		for i := range b.offsets {
			entry, _ := b.Entry(i)
			b.counts[entry.Digest()]++
		}
	}
	return b.counts[e.Digest()]
}
