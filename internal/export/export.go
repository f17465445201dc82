package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/TimelordUK/logdeck/internal/errors"
	"github.com/TimelordUK/logdeck/internal/source"
)

// Format selects how entries are written
type Format string

const (
	// FormatText writes each entry's raw text, continuation lines included
	FormatText Format = "text"
	// FormatJSONL writes one JSON record per entry
	FormatJSONL Format = "jsonl"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownExportFormat, name)
	}
}

// Extension returns the file extension used for the format
func (f Format) Extension() string {
	if f == FormatJSONL {
		return ".jsonl"
	}
	return ".log"
}

// Record is the JSON-lines shape of an entry
type Record struct {
	Position  int    `json:"position"`
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Body      string `json:"body"`
}

// NewRecord builds the export record for an entry. The timestamp loses its
// brackets and the body its trailing line break.
func NewRecord(e source.Entry) Record {
	return Record{
		Position:  e.Position(),
		Timestamp: strings.Trim(e.Timestamp(), "[]"),
		Level:     e.Level(),
		Body:      strings.TrimRight(e.Body(), "\r\n"),
	}
}

// Write writes entries to w in the given format
func Write(w io.Writer, entries []source.Entry, format Format) error {
	bw := bufio.NewWriter(w)

	switch format {
	case FormatText:
		for _, e := range entries {
			text := e.Text()
			if _, err := bw.WriteString(text); err != nil {
				return fmt.Errorf("failed to write entry %d: %w", e.Position(), err)
			}
			// the last entry of a file may have no line break
			if !strings.HasSuffix(text, "\n") {
				if err := bw.WriteByte('\n'); err != nil {
					return fmt.Errorf("failed to write newline: %w", err)
				}
			}
		}
	case FormatJSONL:
		for _, e := range entries {
			data, err := json.Marshal(NewRecord(e))
			if err != nil {
				return fmt.Errorf("failed to encode entry %d: %w", e.Position(), err)
			}
			data = append(data, '\n')
			if _, err := bw.Write(data); err != nil {
				return fmt.Errorf("failed to write entry %d: %w", e.Position(), err)
			}
		}
	default:
		return fmt.Errorf("%w: %q", errors.ErrUnknownExportFormat, format)
	}

	return bw.Flush()
}

// WriteFile writes entries to path, compressing by extension: zstd for
// ".zst", gzip for ".gz", plain otherwise. A failed export removes the
// partial file.
func WriteFile(path string, entries []source.Entry, format Format) (err error) {
	if len(entries) == 0 {
		return errors.ErrNothingToExport
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close export file: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	w, err := compressor(out, path)
	if err != nil {
		return err
	}

	if err = Write(w, entries, format); err != nil {
		w.Close()
		return err
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to finish export: %w", err)
	}

	return nil
}

func compressor(out io.Writer, path string) (io.WriteCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return enc, nil
	case ".gz":
		return gzip.NewWriter(out), nil
	default:
		return nopCloser{out}, nil
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// FileName returns a timestamped export path in dir named after the log file,
// e.g. "laravel-20230214-134248.jsonl"
func FileName(dir, logPath string, format Format, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(logPath), filepath.Ext(logPath))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "export"
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", base, now.Format("20060102-150405"), format.Extension()))
}
