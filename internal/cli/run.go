package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/logdeck/internal/config"
	"github.com/TimelordUK/logdeck/internal/errors"
	"github.com/TimelordUK/logdeck/internal/export"
	"github.com/TimelordUK/logdeck/internal/ingest"
	logio "github.com/TimelordUK/logdeck/internal/io"
	"github.com/TimelordUK/logdeck/internal/logger"
	"github.com/TimelordUK/logdeck/internal/render"
	"github.com/TimelordUK/logdeck/internal/source"
	"github.com/TimelordUK/logdeck/internal/ui"
	"github.com/TimelordUK/logdeck/internal/view"
	"github.com/TimelordUK/logdeck/internal/watch"
)

// LoadConfig loads the config from path, or from the default location when
// path is empty
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// RunInit writes the default config to the --config path, or to the default
// location, and returns the path written
func RunInit(opts *Options) (string, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.GetConfigPath()
	}
	if path == "" {
		return "", fmt.Errorf("%w: no config path could be determined", errors.ErrFailedToReadConfig)
	}

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return "", fmt.Errorf("%w: %s (use --force to overwrite)", errors.ErrConfigExists, path)
	}

	if err := config.SaveTo(path, config.DefaultConfig()); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}

	return path, nil
}

// RunViewer opens the log file in the terminal UI and blocks until it quits
func RunViewer(opts *Options, cfg *config.Config, log logger.Logger) error {
	pane := ui.NewPane(opts.Path, logio.NewMappedSource(), cfg, log)
	if opts.Follow {
		pane.Index().SetFollow(true)
	}
	if err := pane.Load(); err != nil {
		return err
	}
	if terms := source.ParseTerms(opts.Filters...); len(terms) > 0 {
		pane.SetFilterText(strings.Join(terms, "|"))
	}

	var watcher watch.Watcher
	if cfg.Poll.Watch {
		w, err := watch.New(opts.Path, log)
		if err != nil {
			log.Warn().Err(err).Msg("File watching unavailable, polling only")
		} else {
			watcher = w
		}
	}

	model := ui.NewModel(pane, cfg, watcher, log)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}

	return nil
}

// RunExport loads the log file once, applies cutoff and filters, and writes
// the remaining entries. An output of "-" or "" writes to stdout.
func RunExport(opts *Options, cfg *config.Config, src ingest.FileSource, stdout io.Writer, log logger.Logger) (int, error) {
	formatName := opts.Export.Format
	if formatName == "" {
		formatName = cfg.Export.Format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return 0, err
	}

	controller := ingest.NewController(src, opts.Path, log)
	if err := controller.Load(); err != nil {
		return 0, err
	}

	if opts.Export.MinLevel != "" && len(opts.Export.Levels) > 0 {
		return 0, errors.ErrConflictingLevels
	}

	detector := render.NewLogLevelRenderer(cfg).Detector()
	filter := source.NewFilter(detector.Detect)
	levels := make(map[source.LogLevel]bool, len(opts.Export.Levels))
	for _, name := range opts.Export.Levels {
		level, ok := source.ParseLevel(name)
		if !ok {
			return 0, fmt.Errorf("unknown level %q", name)
		}
		levels[level] = true
	}
	if opts.Export.MinLevel != "" {
		level, ok := source.ParseLevel(opts.Export.MinLevel)
		if !ok {
			return 0, fmt.Errorf("unknown level %q", opts.Export.MinLevel)
		}
		filter.SetLevelAndAbove(level)
	} else {
		filter.SetLevelFilter(levels)
	}
	filter.SetTerms(source.ParseTerms(opts.Filters...))

	index := view.NewIndex(controller.Buffer(), filter)
	index.SetCutoff(opts.Export.Cutoff)
	entries := index.Visible()

	if opts.Export.Output == "" || opts.Export.Output == "-" {
		return len(entries), export.Write(stdout, entries, format)
	}

	if err := export.WriteFile(opts.Export.Output, entries, format); err != nil {
		return 0, err
	}

	return len(entries), nil
}
