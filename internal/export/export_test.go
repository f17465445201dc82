package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/logdeck/internal/errors"
	"github.com/TimelordUK/logdeck/internal/source"
)

const logText = "[2023-02-14 13:42:48] local.INFO: log1\n" +
	"[2023-02-14 13:43:50] local.ERROR: boom\n#0 /app/index.php(12)\n" +
	"[2023-02-14 13:44:00] local.DEBUG: tail"

func entries() []source.Entry {
	return source.FromContent(logText).Entries()
}

func Test_ParseFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
		err   error
	}{
		{name: "Text", input: "text", want: FormatText},
		{name: "JSONL mixed case", input: " JSONL ", want: FormatJSONL},
		{name: "Unknown", input: "xml", err: errors.ErrUnknownExportFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Write_Text(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, entries(), FormatText))

	assert.Equal(t, logText+"\n", buf.String())
}

func Test_Write_JSONL(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, entries()[1:], FormatJSONL))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, Record{
		Position:  1,
		Timestamp: "2023-02-14 13:43:50",
		Level:     "local.ERROR",
		Body:      "boom\n#0 /app/index.php(12)",
	}, rec)

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "tail", rec.Body)
}

func Test_Write_UnknownFormat(t *testing.T) {
	err := Write(io.Discard, entries(), Format("xml"))
	assert.ErrorIs(t, err, errors.ErrUnknownExportFormat)
}

func Test_WriteFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		file   string
		decode func(t *testing.T, r io.Reader) io.Reader
	}{
		{
			name:   "Plain",
			file:   "out.log",
			decode: func(_ *testing.T, r io.Reader) io.Reader { return r },
		},
		{
			name: "Gzip",
			file: "out.log.gz",
			decode: func(t *testing.T, r io.Reader) io.Reader {
				zr, err := gzip.NewReader(r)
				require.NoError(t, err)
				return zr
			},
		},
		{
			name: "Zstd",
			file: "out.log.zst",
			decode: func(t *testing.T, r io.Reader) io.Reader {
				zr, err := zstd.NewReader(r)
				require.NoError(t, err)
				t.Cleanup(zr.Close)
				return zr
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)

			require.NoError(t, WriteFile(path, entries(), FormatText))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()

			got, err := io.ReadAll(tt.decode(t, f))
			require.NoError(t, err)
			assert.Equal(t, logText+"\n", string(got))
		})
	}
}

func Test_WriteFile_Errors(t *testing.T) {
	dir := t.TempDir()

	err := WriteFile(filepath.Join(dir, "empty.log"), nil, FormatText)
	assert.ErrorIs(t, err, errors.ErrNothingToExport)
	assert.NoFileExists(t, filepath.Join(dir, "empty.log"))

	bad := filepath.Join(dir, "bad.log")
	err = WriteFile(bad, entries(), Format("xml"))
	assert.ErrorIs(t, err, errors.ErrUnknownExportFormat)
	assert.NoFileExists(t, bad)

	err = WriteFile(filepath.Join(dir, "missing", "out.log"), entries(), FormatText)
	assert.Error(t, err)
}

func Test_FileName(t *testing.T) {
	now := time.Date(2023, 2, 14, 13, 42, 48, 0, time.Local)

	assert.Equal(t, filepath.Join("/tmp", "laravel-20230214-134248.jsonl"),
		FileName("/tmp", "storage/logs/laravel.log", FormatJSONL, now))
	assert.Equal(t, filepath.Join("/tmp", "app-20230214-134248.log"),
		FileName("/tmp", "app", FormatText, now))
}
