package source

import (
	"github.com/zeebo/xxh3"
)

// Digest hashes everything after the timestamp, so repeats of the same
// message logged at different times share a digest
func (e Entry) Digest() uint64 {
	return xxh3.HashString(e.slice(levelOffset, e.Len()))
}
