package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrConfigExists        = errors.New("config file already exists")

	ErrNotRegularFile = errors.New("log path is not a regular file")
	ErrIngest         = errors.New("failed to ingest log file")
	ErrShortRead      = errors.New("log file changed while it was being read")

	ErrUnknownExportFormat = errors.New("unknown export format")
	ErrNothingToExport     = errors.New("no entries to export")
	ErrConflictingLevels   = errors.New("--level and --min-level cannot be combined")

	ErrFailedToOpenLogFile = errors.New("failed to open diagnostics log file")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
