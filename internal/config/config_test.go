package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/logdeck/internal/errors"
)

func Test_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.Display.LabelWidth)
	assert.Equal(t, 200*time.Millisecond, cfg.PollInterval())
	assert.True(t, cfg.Poll.Watch)
	assert.Equal(t, "text", cfg.Export.Format)
	assert.Contains(t, cfg.Keybindings.Follow, "f")
}

func Test_LoadFrom(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg *Config)
		err     error
	}{
		{
			name: "Overrides merge onto defaults",
			content: `
[display]
label_width = 50
list_percent = 40

[poll]
interval_ms = 1000
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 50, cfg.Display.LabelWidth)
				assert.Equal(t, 40, cfg.Display.ListPercent)
				assert.Equal(t, time.Second, cfg.PollInterval())
				assert.Equal(t, "subtle", cfg.Theme.Name)
			},
		},
		{
			name: "Level patterns",
			content: `
[log_levels]
error_patterns = ["BOOM"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"BOOM"}, cfg.LogLevels.ErrorPatterns)
				assert.NotEmpty(t, cfg.LogLevels.InfoPatterns)
			},
		},
		{
			name:    "Malformed toml",
			content: "[display\nlabel_width = ",
			err:     errors.ErrFailedToParseConfig,
		},
		{
			name:    "Invalid poll interval",
			content: "[poll]\ninterval_ms = 0\n",
			err:     errors.ErrInvalidConfig,
		},
		{
			name:    "Invalid export format",
			content: "[export]\nformat = \"xml\"\n",
			err:     errors.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := LoadFrom(path)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func Test_LoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func Test_LoadFrom_EmptyPath(t *testing.T) {
	cfg, err := LoadFrom("")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func Test_SaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Display.LabelWidth = 12
	cfg.Poll.Watch = false
	require.NoError(t, SaveTo(path, cfg))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func Test_GetConfigPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, AppName, "config.toml"), GetConfigPath())
}
