package logformat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimelordUK/logdeck/internal/config"
	"github.com/TimelordUK/logdeck/internal/source"
)

func Test_LevelDetector_Detect(t *testing.T) {
	d := NewLevelDetector(&config.DefaultConfig().LogLevels)

	tests := []struct {
		level    string
		expected source.LogLevel
	}{
		{level: "local.INFO", expected: source.LevelInfo},
		{level: "local.ERROR", expected: source.LevelError},
		{level: "production.WARNING", expected: source.LevelWarn},
		{level: "local.DEBUG", expected: source.LevelDebug},
		{level: "local.NOTICE", expected: source.LevelInfo},
		{level: "local.CRITICAL", expected: source.LevelFatal},
		{level: "local.EMERGENCY", expected: source.LevelFatal},
		{level: "local.ALERT", expected: source.LevelFatal},
		{level: "errors.INFO", expected: source.LevelInfo},
		{level: "local.error", expected: source.LevelError},
		{level: "ERROR", expected: source.LevelError},
		{level: "local.CUSTOM", expected: source.LevelUnknown},
		{level: "", expected: source.LevelUnknown},
		{level: "local.", expected: source.LevelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Detect(tt.level))
		})
	}
}

func Test_LevelDetector_CustomPatterns(t *testing.T) {
	d := NewLevelDetector(&config.LogLevelConfig{
		ErrorPatterns: []string{" oops ", ""},
	})

	assert.Equal(t, source.LevelError, d.Detect("app.OOPS"))
	assert.Equal(t, source.LevelUnknown, d.Detect("app.ERROR"))
}
