package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/logdeck/internal/config"
	"github.com/TimelordUK/logdeck/internal/source"
	"github.com/TimelordUK/logdeck/pkg/logformat"
)

// Renderer styles the text shown for an entry
type Renderer interface {
	Render(e source.Entry, text string) string
}

// LogLevelRenderer colors entries based on their log level
type LogLevelRenderer struct {
	detector *logformat.LevelDetector
	styles   map[source.LogLevel]lipgloss.Style
}

// NewLogLevelRenderer creates a renderer with config
func NewLogLevelRenderer(cfg *config.Config) *LogLevelRenderer {
	detector := logformat.NewLevelDetector(&cfg.LogLevels)

	styles := map[source.LogLevel]lipgloss.Style{
		source.LevelUnknown: lipgloss.NewStyle(),
		source.LevelTrace:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Trace)),
		source.LevelDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Debug)),
		source.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Info)),
		source.LevelWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Warn)),
		source.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Error)),
		source.LevelFatal:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Fatal)),
	}

	return &LogLevelRenderer{
		detector: detector,
		styles:   styles,
	}
}

// Level returns the detected level of an entry
func (r *LogLevelRenderer) Level(e source.Entry) source.LogLevel {
	return r.detector.Detect(e.Level())
}

// Detector returns the level detector the renderer colors with
func (r *LogLevelRenderer) Detector() *logformat.LevelDetector {
	return r.detector
}

// Render applies the entry's level style to text
func (r *LogLevelRenderer) Render(e source.Entry, text string) string {
	return r.styles[r.Level(e)].Render(text)
}

// PlainRenderer renders without styling
type PlainRenderer struct{}

// NewPlainRenderer creates a plain renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// Render returns text as-is
func (r *PlainRenderer) Render(_ source.Entry, text string) string {
	return text
}
