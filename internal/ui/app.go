package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/looplab/fsm"

	"github.com/TimelordUK/logdeck/internal/config"
	"github.com/TimelordUK/logdeck/internal/export"
	"github.com/TimelordUK/logdeck/internal/logger"
	"github.com/TimelordUK/logdeck/internal/source"
	"github.com/TimelordUK/logdeck/internal/watch"
)

// reserved rows: status bar and message line
const chromeRows = 2

// rows per mouse wheel notch
const wheelRows = 3

// pollTickMsg fires on every poll interval
type pollTickMsg time.Time

// fileChangedMsg is sent when the watcher reports a change
type fileChangedMsg struct{}

// watchClosedMsg is sent once the watcher has stopped
type watchClosedMsg struct{}

// Model is the main application model
type Model struct {
	pane        *Pane
	config      *config.Config
	keys        KeyMap
	help        help.Model
	filterInput textinput.Model
	mode        *fsm.FSM
	watcher     watch.Watcher
	log         logger.Logger

	width  int
	height int

	// Last transient error, cleared on the next key press
	err error
	// Last informational message, cleared on the next key press
	notice string

	statusStyle lipgloss.Style
	errStyle    lipgloss.Style
	helpStyle   lipgloss.Style
}

// NewModel creates a model around a loaded pane. watcher may be nil, in
// which case changes are picked up by polling alone.
func NewModel(pane *Pane, cfg *config.Config, watcher watch.Watcher, log logger.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "term | other term"
	ti.CharLimit = 512
	ti.Prompt = "/"

	m := &Model{
		pane:        pane,
		config:      cfg,
		keys:        NewKeyMap(cfg.Keybindings),
		help:        help.New(),
		filterInput: ti,
		watcher:     watcher,
		log:         log.WithComponent("UI"),
		statusStyle: lipgloss.NewStyle().
			Background(lipgloss.Color(cfg.Theme.StatusBar)).
			Foreground(lipgloss.Color(cfg.Theme.StatusBarText)),
		errStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Error)),
		helpStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}

	m.mode = newModeFSM(modeHooks{
		focusFilter: func() {
			m.filterInput.SetValue(m.pane.FilterText())
			m.filterInput.CursorEnd()
			m.filterInput.Focus()
		},
		blurFilter: m.filterInput.Blur,
		showHelp:   func(show bool) { m.help.ShowAll = show },
	}, m.log)

	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForChange())
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.config.PollInterval(), func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return watchClosedMsg{}
		}
		return fileChangedMsg{}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollTickMsg:
		m.poll()
		return m, m.tick()

	case fileChangedMsg:
		m.poll()
		return m, m.waitForChange()

	case watchClosedMsg:
		m.log.Debug().Msg("Watcher closed, polling only")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.pane.Scroll(-wheelRows)
		case tea.MouseButtonWheelDown:
			m.pane.Scroll(wheelRows)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.pane.SetSize(msg.Width, m.listHeight())
		return m, nil
	}

	return m, nil
}

// poll checks the file once. Errors are shown, never fatal: the next poll
// simply tries again.
func (m *Model) poll() {
	if _, err := m.pane.Refresh(); err != nil {
		m.err = err
	}
}

// Mode returns the current input mode
func (m *Model) Mode() string {
	return m.mode.Current()
}

func (m *Model) event(name string) {
	if err := m.mode.Event(context.Background(), name); err != nil {
		m.log.Debug().Err(err).Msgf("Ignored mode event %s", name)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.notice = ""

	switch m.mode.Current() {
	case Filtering:
		return m.handleFilterKey(msg)
	case Helping:
		return m.handleHelpKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.pane.Next()
	case key.Matches(msg, m.keys.Previous):
		m.pane.Previous()
	case key.Matches(msg, m.keys.PageDown):
		m.pane.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.pane.PageUp()
	case key.Matches(msg, m.keys.Top):
		m.pane.Top()
	case key.Matches(msg, m.keys.Bottom):
		m.pane.Bottom()
	case key.Matches(msg, m.keys.Unselect):
		m.pane.Unselect()
	case key.Matches(msg, m.keys.Follow):
		m.pane.ToggleFollow()
	case key.Matches(msg, m.keys.ClearView):
		m.pane.ClearView()
	case key.Matches(msg, m.keys.ResetCutoff):
		m.pane.ResetCutoff()
	case key.Matches(msg, m.keys.Export):
		m.exportVisible()
	case key.Matches(msg, m.keys.Filter):
		m.event(OpenFilter)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Help):
		m.event(OpenHelp)
	default:
		for i, b := range m.keys.Levels {
			if key.Matches(msg, b) {
				m.pane.ToggleLevel(source.Levels[i])
				break
			}
		}
	}

	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.pane.SetFilterText(m.filterInput.Value())
		m.event(Close)
		return m, nil

	case tea.KeyEsc:
		m.event(Close)
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Unselect):
		m.event(Close)
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) exportVisible() {
	format, err := export.ParseFormat(m.config.Export.Format)
	if err != nil {
		m.err = err
		return
	}

	path, err := m.pane.Export(m.config.Export.Directory, format)
	if err != nil {
		m.err = err
		return
	}

	m.notice = fmt.Sprintf("Exported %d entries to %s", m.pane.Index().VisibleLen(), path)
}

func (m *Model) listHeight() int {
	available := max(0, m.height-chromeRows)
	return available * m.config.Display.ListPercent / 100
}

// View implements tea.Model
func (m *Model) View() string {
	var builder strings.Builder

	listHeight := m.listHeight()
	detailHeight := max(0, m.height-chromeRows-listHeight)

	builder.WriteString(m.pane.RenderList())
	builder.WriteString("\n")

	if m.mode.Current() == Helping {
		builder.WriteString(m.help.View(m.keys))
	} else {
		builder.WriteString(m.pane.RenderDetail(m.width, detailHeight))
	}
	builder.WriteString("\n")

	builder.WriteString(m.statusStyle.Width(m.width).Render(" " + m.pane.StatusLine()))
	builder.WriteString("\n")

	switch {
	case m.mode.Current() == Filtering:
		builder.WriteString(m.filterInput.View())
	case m.err != nil:
		builder.WriteString(m.errStyle.Render(m.err.Error()))
	case m.notice != "":
		builder.WriteString(m.notice)
	default:
		builder.WriteString(m.helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	}

	return builder.String()
}

// Close stops the watcher
func (m *Model) Close() {
	if m.watcher != nil {
		m.watcher.Close()
	}
}
