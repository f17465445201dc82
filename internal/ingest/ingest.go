//go:generate mockgen -source=ingest.go -destination=ingest_mock.go -package=ingest
package ingest

import (
	"fmt"

	"github.com/TimelordUK/logdeck/internal/errors"
	"github.com/TimelordUK/logdeck/internal/source"
)

// FileInfo is what a stat of the log file reports
type FileInfo struct {
	Exists bool
	Size   int64
}

// FileSource gives the ingestion controller access to the log file
type FileSource interface {
	Stat(path string) (FileInfo, error)
	ReadRange(path string, start, end int64) ([]byte, error)
	ReadAll(path string) ([]byte, error)
}

// Update is the outcome of reconciling a buffer with a file stat
type Update struct {
	Buffer   *source.Buffer
	Size     int64
	Changed  bool
	Reloaded bool
}

// Reconcile brings prev in line with the file described by st.
//
//   - a missing file changes nothing
//   - an unchanged size changes nothing; a rewrite that keeps the exact
//     size is indistinguishable from no change and goes unnoticed
//   - a larger size reads only the new tail and appends it
//   - a smaller size is a truncation or rotation: the whole file is
//     read again and the buffer rebuilt from scratch
//
// On a read error prev and prevSize are returned untouched with the error.
func Reconcile(src FileSource, path string, prev *source.Buffer, prevSize int64, st FileInfo) (Update, error) {
	unchanged := Update{Buffer: prev, Size: prevSize}

	if !st.Exists || st.Size == prevSize {
		return unchanged, nil
	}

	if st.Size > prevSize {
		delta, err := src.ReadRange(path, prevSize, st.Size)
		if err != nil {
			return unchanged, fmt.Errorf("%w: read [%d, %d) of %s: %w", errors.ErrIngest, prevSize, st.Size, path, err)
		}
		if int64(len(delta)) != st.Size-prevSize {
			return unchanged, fmt.Errorf("%w: %w: got %d of %d bytes from %s",
				errors.ErrIngest, errors.ErrShortRead, len(delta), st.Size-prevSize, path)
		}

		return Update{
			Buffer:  prev.Append(string(delta)),
			Size:    st.Size,
			Changed: true,
		}, nil
	}

	content, err := src.ReadAll(path)
	if err != nil {
		return unchanged, fmt.Errorf("%w: reload %s: %w", errors.ErrIngest, path, err)
	}

	return Update{
		Buffer:   source.FromContent(string(content)),
		Size:     int64(len(content)),
		Changed:  true,
		Reloaded: true,
	}, nil
}
