package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/TimelordUK/logdeck/internal/errors"
)

// AppName is used for the config directory and temp file names
const AppName = "logdeck"

// Config holds all application configuration
type Config struct {
	Theme       ThemeConfig      `toml:"theme"`
	LogLevels   LogLevelConfig   `toml:"log_levels"`
	Keybindings KeybindingConfig `toml:"keybindings"`
	Display     DisplayConfig    `toml:"display"`
	Poll        PollConfig       `toml:"poll"`
	Logging     LoggingConfig    `toml:"logging"`
	Export      ExportConfig     `toml:"export"`
}

// ThemeConfig defines color schemes
type ThemeConfig struct {
	Name          string         `toml:"name"`
	Header        string         `toml:"header"`
	Selection     string         `toml:"selection"`
	StatusBar     string         `toml:"status_bar"`
	StatusBarText string         `toml:"status_bar_text"`
	Syntax        string         `toml:"syntax"`
	Levels        LogLevelColors `toml:"levels"`
}

// LogLevelColors defines colors for each log level
type LogLevelColors struct {
	Trace string `toml:"trace"`
	Debug string `toml:"debug"`
	Info  string `toml:"info"`
	Warn  string `toml:"warn"`
	Error string `toml:"error"`
	Fatal string `toml:"fatal"`
}

// LogLevelConfig defines log level detection patterns
type LogLevelConfig struct {
	TracePatterns []string `toml:"trace_patterns"`
	DebugPatterns []string `toml:"debug_patterns"`
	InfoPatterns  []string `toml:"info_patterns"`
	WarnPatterns  []string `toml:"warn_patterns"`
	ErrorPatterns []string `toml:"error_patterns"`
	FatalPatterns []string `toml:"fatal_patterns"`
}

// KeybindingConfig allows customizing keybindings
type KeybindingConfig struct {
	Quit        []string `toml:"quit"`
	Next        []string `toml:"next"`
	Previous    []string `toml:"previous"`
	PageUp      []string `toml:"page_up"`
	PageDown    []string `toml:"page_down"`
	Top         []string `toml:"top"`
	Bottom      []string `toml:"bottom"`
	Unselect    []string `toml:"unselect"`
	Follow      []string `toml:"follow"`
	Filter      []string `toml:"filter"`
	ClearView   []string `toml:"clear_view"`
	ResetCutoff []string `toml:"reset_cutoff"`
	Export      []string `toml:"export"`
	Help        []string `toml:"help"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	LabelWidth     int  `toml:"label_width"`
	// ShowHeader prefixes each row with timestamp, level and separator
	ShowHeader     bool `toml:"show_header"`
	ShowPositions  bool `toml:"show_positions"`
	StartFollowing bool `toml:"start_following"`
	ListPercent    int  `toml:"list_percent"`
}

// PollConfig controls how often the file is checked for changes
type PollConfig struct {
	IntervalMs int  `toml:"interval_ms"`
	Watch      bool `toml:"watch"`
}

// LoggingConfig controls the diagnostics log
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// ExportConfig controls where and how visible entries are exported
type ExportConfig struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Name:          "subtle",
			Header:        "244", // Medium gray
			Selection:     "29",  // Green
			StatusBar:     "236", // Darker gray background
			StatusBarText: "252", // Light gray text
			Syntax:        "monokai",
			Levels: LogLevelColors{
				Trace: "240", // Dark gray
				Debug: "244", // Medium gray
				Info:  "250", // Light gray (default)
				Warn:  "214", // Orange
				Error: "167", // Soft red
				Fatal: "196", // Bright red
			},
		},
		LogLevels: LogLevelConfig{
			TracePatterns: []string{"TRACE", "TRC"},
			DebugPatterns: []string{"DEBUG", "DBG"},
			InfoPatterns:  []string{"INFO", "INF", "NOTICE"},
			WarnPatterns:  []string{"WARNING", "WARN", "WRN"},
			ErrorPatterns: []string{"ERROR", "ERR"},
			FatalPatterns: []string{"EMERGENCY", "ALERT", "CRITICAL", "FATAL", "FTL", "CRIT"},
		},
		Keybindings: KeybindingConfig{
			Quit:        []string{"q", "ctrl+c"},
			Next:        []string{"j", "down"},
			Previous:    []string{"k", "up"},
			PageUp:      []string{"pgup", "ctrl+u"},
			PageDown:    []string{"pgdown", "ctrl+d"},
			Top:         []string{"g", "home"},
			Bottom:      []string{"G", "end"},
			Unselect:    []string{"left", "esc"},
			Follow:      []string{"f"},
			Filter:      []string{"/"},
			ClearView:   []string{"c"},
			ResetCutoff: []string{"C"},
			Export:      []string{"w"},
			Help:        []string{"?"},
		},
		Display: DisplayConfig{
			LabelWidth:     30,
			ShowHeader:     true,
			ShowPositions:  true,
			StartFollowing: false,
			ListPercent:    50,
		},
		Poll: PollConfig{
			IntervalMs: 200,
			Watch:      true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   filepath.Join(os.TempDir(), AppName+".log"),
		},
		Export: ExportConfig{
			Format:    "text",
			Directory: os.TempDir(),
		},
	}
}

// PollInterval returns the poll interval as a duration
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Poll.IntervalMs) * time.Millisecond
}

// Validate checks values that would break the viewer
func (c *Config) Validate() error {
	if c.Poll.IntervalMs <= 0 {
		return fmt.Errorf("poll.interval_ms must be positive, got %d", c.Poll.IntervalMs)
	}
	if c.Display.LabelWidth < 0 {
		return fmt.Errorf("display.label_width must not be negative, got %d", c.Display.LabelWidth)
	}
	if c.Display.ListPercent < 10 || c.Display.ListPercent > 90 {
		return fmt.Errorf("display.list_percent must be between 10 and 90, got %d", c.Display.ListPercent)
	}
	switch c.Export.Format {
	case "text", "jsonl":
	default:
		return fmt.Errorf("export.format must be text or jsonl, got %q", c.Export.Format)
	}
	return nil
}

// Load loads config from the default path, falling back to defaults
func Load() (*Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFrom loads config from path, falling back to defaults when the file
// does not exist
func LoadFrom(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParseConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// SaveTo saves config to path
func SaveTo(configPath string, cfg *Config) error {
	if configPath == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, "config.toml")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", AppName, "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
