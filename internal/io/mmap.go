package io

import (
	"fmt"
	"os"
	"runtime/debug"

	"golang.org/x/exp/mmap"

	"github.com/TimelordUK/logdeck/internal/errors"
	"github.com/TimelordUK/logdeck/internal/ingest"
)

// MappedFile provides memory-mapped read access to a file
type MappedFile struct {
	reader *mmap.ReaderAt
	size   int64
	path   string
}

// OpenMapped opens a file with memory mapping. The size is fixed at the
// moment of mapping; growth after that needs a new mapping.
func OpenMapped(path string) (*MappedFile, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	return &MappedFile{
		reader: reader,
		size:   int64(reader.Len()),
		path:   path,
	}, nil
}

// ReadAt reads len(p) bytes at offset. Touching pages the file no longer
// covers, after it was truncated under the mapping, returns ErrShortRead
// instead of crashing with SIGBUS.
func (m *MappedFile) ReadAt(p []byte, off int64) (n int, err error) {
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		fault, ok := r.(interface{ Addr() uintptr })
		if !ok {
			panic(r)
		}
		n, err = 0, fmt.Errorf("%w: %s was truncated during the read (fault at %#x)",
			errors.ErrShortRead, m.path, fault.Addr())
	}()

	return m.reader.ReadAt(p, off)
}

// Size returns the mapped size
func (m *MappedFile) Size() int64 {
	return m.size
}

// Path returns the file path
func (m *MappedFile) Path() string {
	return m.path
}

// Close closes the memory mapping
func (m *MappedFile) Close() error {
	return m.reader.Close()
}

// ReadRange reads exactly the bytes in [start, end). A range reaching past
// the mapped size means the file shrank since it was stat'ed.
func (m *MappedFile) ReadRange(start, end int64) ([]byte, error) {
	if start >= end {
		return nil, nil
	}
	if start < 0 || end > m.size {
		return nil, fmt.Errorf("%w: want [%d, %d) of %s, have %d bytes",
			errors.ErrShortRead, start, end, m.path, m.size)
	}

	buf := make([]byte, end-start)
	if _, err := m.ReadAt(buf, start); err != nil {
		return nil, err
	}
	return buf, nil
}

// MappedSource reads log files through short-lived memory mappings. Each
// read maps the file afresh so growth between polls is always visible.
type MappedSource struct{}

// NewMappedSource creates a file source backed by mmap
func NewMappedSource() *MappedSource {
	return &MappedSource{}
}

// Stat reports whether path exists as a regular file and its size
func (s *MappedSource) Stat(path string) (ingest.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ingest.FileInfo{}, err
	}
	if !info.Mode().IsRegular() {
		return ingest.FileInfo{}, fmt.Errorf("%w: %s", errors.ErrNotRegularFile, path)
	}

	return ingest.FileInfo{
		Exists: true,
		Size:   info.Size(),
	}, nil
}

// ReadRange returns bytes [start, end) of the file at path
func (s *MappedSource) ReadRange(path string, start, end int64) ([]byte, error) {
	file, err := OpenMapped(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return file.ReadRange(start, end)
}

// ReadAll returns the whole file at path
func (s *MappedSource) ReadAll(path string) ([]byte, error) {
	file, err := OpenMapped(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return file.ReadRange(0, file.Size())
}
