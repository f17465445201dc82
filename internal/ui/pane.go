package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/logdeck/internal/config"
	"github.com/TimelordUK/logdeck/internal/export"
	"github.com/TimelordUK/logdeck/internal/ingest"
	"github.com/TimelordUK/logdeck/internal/logger"
	"github.com/TimelordUK/logdeck/internal/render"
	"github.com/TimelordUK/logdeck/internal/source"
	"github.com/TimelordUK/logdeck/internal/view"
	"github.com/TimelordUK/logdeck/pkg/logformat"
)

// Pane represents a single log file with its own ingestion and view state
type Pane struct {
	controller *ingest.Controller
	index      *view.Index
	viewport   *view.Viewport
	levels     *render.LogLevelRenderer
	syntax     *render.SyntaxRenderer
	config     *config.Config
	log        logger.Logger

	// File state
	filename string

	// Last committed filter text, as typed
	filterText string

	// Styling
	headerStyle lipgloss.Style
	dimStyle    lipgloss.Style
}

// NewPane creates a pane for a log file. Nothing is read until Load.
func NewPane(path string, src ingest.FileSource, cfg *config.Config, log logger.Logger) *Pane {
	levels := render.NewLogLevelRenderer(cfg)
	filter := source.NewFilter(levels.Detector().Detect)
	index := view.NewIndex(nil, filter)

	viewport := view.NewViewport(80, 24)
	viewport.SetList(index)
	viewport.SetRenderer(levels)
	viewport.SetLabelWidth(cfg.Display.LabelWidth)
	viewport.SetShowHeader(cfg.Display.ShowHeader)
	viewport.SetShowPositions(cfg.Display.ShowPositions)
	viewport.SetStyles(
		lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Header)),
		lipgloss.NewStyle().Background(lipgloss.Color(cfg.Theme.Selection)).Bold(true),
	)

	index.SetFollow(cfg.Display.StartFollowing)

	return &Pane{
		controller:  ingest.NewController(src, path, log),
		index:       index,
		viewport:    viewport,
		levels:      levels,
		syntax:      render.NewSyntaxRenderer(cfg.Theme.Syntax),
		config:      cfg,
		log:         log.WithComponent("PANE"),
		filename:    filepath.Base(path),
		headerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Header)).Bold(true),
		dimStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Load reads the file for the first time
func (p *Pane) Load() error {
	if err := p.controller.Load(); err != nil {
		return err
	}
	p.apply(false)
	return nil
}

// Refresh polls the file once and updates the view when anything changed
func (p *Pane) Refresh() (ingest.Event, error) {
	ev, err := p.controller.Poll()
	if err != nil {
		return ev, err
	}
	if ev.Changed {
		p.apply(ev.Reloaded)
	}
	return ev, nil
}

func (p *Pane) apply(reloaded bool) {
	if reloaded {
		p.index.Reload(p.controller.Buffer())
	} else {
		p.index.SetBuffer(p.controller.Buffer())
	}
	p.index.FollowTick()
	p.viewport.Sync()
}

// SetSize sets the list size
func (p *Pane) SetSize(width, height int) {
	p.viewport.SetSize(width, height)
	p.viewport.Sync()
}

// Index returns the pane's entry index
func (p *Pane) Index() *view.Index {
	return p.index
}

// Viewport returns the pane's viewport
func (p *Pane) Viewport() *view.Viewport {
	return p.viewport
}

// Filename returns the display filename
func (p *Pane) Filename() string {
	return p.filename
}

// Gone reports whether the file was missing at the last poll
func (p *Pane) Gone() bool {
	return p.controller.Gone()
}

// navigate runs a selection change and keeps it in view
func (p *Pane) navigate(move func()) {
	move()
	p.viewport.Sync()
}

// Next selects the next entry
func (p *Pane) Next() { p.navigate(p.index.Next) }

// Previous selects the previous entry
func (p *Pane) Previous() { p.navigate(p.index.Previous) }

// PageDown moves the selection down one page
func (p *Pane) PageDown() {
	p.navigate(func() { p.index.JumpRelative(p.viewport.PageSize()) })
}

// PageUp moves the selection up one page
func (p *Pane) PageUp() {
	p.navigate(func() { p.index.JumpRelative(-p.viewport.PageSize()) })
}

// Scroll moves the list by n rows without touching the selection
func (p *Pane) Scroll(n int) {
	if n < 0 {
		p.viewport.ScrollUp(-n)
	} else {
		p.viewport.ScrollDown(n)
	}
}

// Top selects the first entry
func (p *Pane) Top() { p.navigate(p.index.GotoStart) }

// Bottom selects the last entry
func (p *Pane) Bottom() { p.navigate(p.index.GotoEnd) }

// Unselect clears the selection
func (p *Pane) Unselect() { p.navigate(p.index.Unselect) }

// ClearView hides all entries received so far
func (p *Pane) ClearView() { p.navigate(p.index.ClearView) }

// ResetCutoff shows hidden entries again
func (p *Pane) ResetCutoff() { p.navigate(p.index.ResetCutoff) }

// ToggleFollow toggles follow mode and jumps to the end when turned on
func (p *Pane) ToggleFollow() bool {
	on := p.index.ToggleFollow()
	p.navigate(p.index.FollowTick)
	return on
}

// ToggleLevel toggles a level in the level filter
func (p *Pane) ToggleLevel(level source.LogLevel) {
	p.navigate(func() { p.index.ToggleLevel(level) })
}

// FilterText returns the last committed filter text
func (p *Pane) FilterText() string {
	return p.filterText
}

// SetFilterText replaces the text filter with the terms in text
func (p *Pane) SetFilterText(text string) {
	p.filterText = text
	terms := source.ParseTerms(text)
	p.log.Debug().Strs("terms", terms).Msg("Filter changed")
	p.navigate(func() { p.index.SetFilters(terms) })
}

// ClearFilters removes text and level filters
func (p *Pane) ClearFilters() {
	p.filterText = ""
	p.navigate(p.index.ClearFilters)
}

// Export writes the visible entries to a new file in dir
func (p *Pane) Export(dir string, format export.Format) (string, error) {
	path := export.FileName(dir, p.controller.Path(), format, time.Now())
	if err := export.WriteFile(path, p.index.Visible(), format); err != nil {
		return "", err
	}

	p.log.Info().Str("path", path).Int("entries", p.index.VisibleLen()).Msg("Exported entries")

	return path, nil
}

// RenderList returns the rendered entry list
func (p *Pane) RenderList() string {
	return p.viewport.Render()
}

// RenderDetail returns the selected entry, body highlighted, fitted to the
// given size
func (p *Pane) RenderDetail(width, height int) string {
	if height <= 0 {
		return ""
	}

	e, ok := p.index.SelectedEntry()
	if !ok {
		return p.dimStyle.Render("No entry selected")
	}

	var header strings.Builder
	header.WriteString(p.headerStyle.Render(e.Timestamp()))
	header.WriteString(" ")
	header.WriteString(p.levels.Render(e, e.Level()))
	header.WriteString(p.dimStyle.Render(fmt.Sprintf("  #%d", e.Position()+1)))

	if t, ok := logformat.ParseTimestamp(e.Timestamp()); ok {
		header.WriteString(p.dimStyle.Render("  " + age(time.Since(t))))
	}
	if n := p.index.Buffer().Occurrences(e); n > 1 {
		header.WriteString(p.dimStyle.Render(fmt.Sprintf("  seen %d times", n)))
	}

	body := p.syntax.Highlight(strings.TrimRight(e.Body(), "\r\n"))
	lines := append([]string{header.String()}, strings.Split(body, "\n")...)
	if len(lines) > height {
		lines = lines[:height]
	}

	style := lipgloss.NewStyle()
	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// StatusLine summarises the pane state for the status bar
func (p *Pane) StatusLine() string {
	var parts []string

	name := p.filename
	if p.Gone() {
		name += " (missing)"
	}
	parts = append(parts, name)

	if sel, ok := p.index.Selected(); ok {
		parts = append(parts, fmt.Sprintf("%d/%d", sel+1, p.index.VisibleLen()))
	} else {
		parts = append(parts, fmt.Sprintf("-/%d", p.index.VisibleLen()))
	}
	if p.index.Filter().IsFiltered() || p.index.Cutoff() > 0 {
		parts = append(parts, fmt.Sprintf("of %d", p.index.Len()))
	}
	if p.index.VisibleLen() > p.viewport.Height() {
		parts = append(parts, fmt.Sprintf("%.0f%%", p.viewport.PercentScrolled()))
	}
	if p.index.Following() {
		parts = append(parts, "[FOLLOW]")
	}
	if c := p.index.Cutoff(); c > 0 {
		parts = append(parts, fmt.Sprintf("cutoff:%d", c))
	}
	if terms := p.index.Filters(); len(terms) > 0 {
		parts = append(parts, "filter:"+strings.Join(terms, "|"))
	}
	if levels := activeLevels(p.index.Filter()); levels != "" {
		parts = append(parts, "levels:"+levels)
	}

	return strings.Join(parts, "  ")
}

func activeLevels(f *source.Filter) string {
	active := f.ActiveLevels()
	if len(active) == 0 {
		return ""
	}

	names := make([]string, 0, len(active))
	for level := range active {
		names = append(names, level.String())
	}
	sort.Slice(names, func(i, j int) bool {
		a, _ := source.ParseLevel(names[i])
		b, _ := source.ParseLevel(names[j])
		return a < b
	})
	return strings.Join(names, ",")
}

func age(d time.Duration) string {
	switch {
	case d < 0:
		return "in the future"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
