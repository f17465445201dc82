package logformat

import (
	"strings"

	"github.com/TimelordUK/logdeck/internal/config"
	"github.com/TimelordUK/logdeck/internal/source"
)

// LevelDetector classifies an entry's level field, e.g. "local.ERROR"
type LevelDetector struct {
	patterns map[source.LogLevel][]string
}

// severityOrder is the order patterns are tried in, most severe first
var severityOrder = []source.LogLevel{
	source.LevelFatal,
	source.LevelError,
	source.LevelWarn,
	source.LevelInfo,
	source.LevelDebug,
	source.LevelTrace,
}

// NewLevelDetector creates a detector from config
func NewLevelDetector(cfg *config.LogLevelConfig) *LevelDetector {
	return &LevelDetector{
		patterns: map[source.LogLevel][]string{
			source.LevelTrace: upper(cfg.TracePatterns),
			source.LevelDebug: upper(cfg.DebugPatterns),
			source.LevelInfo:  upper(cfg.InfoPatterns),
			source.LevelWarn:  upper(cfg.WarnPatterns),
			source.LevelError: upper(cfg.ErrorPatterns),
			source.LevelFatal: upper(cfg.FatalPatterns),
		},
	}
}

// Detect returns the log level for a level field.
// Only the part after the last '.' is inspected so a channel name such as
// "errors.INFO" does not read as an error.
func (d *LevelDetector) Detect(level string) source.LogLevel {
	if i := strings.LastIndexByte(level, '.'); i >= 0 {
		level = level[i+1:]
	}
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "" {
		return source.LevelUnknown
	}

	for _, l := range severityOrder {
		for _, pattern := range d.patterns[l] {
			if strings.Contains(level, pattern) {
				return l
			}
		}
	}

	return source.LevelUnknown
}

func upper(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
