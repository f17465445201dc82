package ui

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/TimelordUK/logdeck/internal/logger"
)

// FSM states
const (
	Normal    = "normal"
	Filtering = "filtering"
	Helping   = "helping"
)

// FSM events
const (
	OpenFilter = "open_filter"
	OpenHelp   = "open_help"
	Close      = "close"
)

// FSM callbacks
const (
	OnFiltering    = "enter_" + Filtering
	OnLeaveFilter  = "leave_" + Filtering
	OnHelping      = "enter_" + Helping
	OnLeaveHelping = "leave_" + Helping
)

// modeHooks are what the mode machine drives on the model
type modeHooks struct {
	focusFilter func()
	blurFilter  func()
	showHelp    func(bool)
}

// newModeFSM creates the state machine for input modes. Only one popup is
// open at a time, and each returns to Normal.
func newModeFSM(hooks modeHooks, log logger.Logger) *fsm.FSM {
	return fsm.NewFSM(
		Normal,
		fsm.Events{
			{Name: OpenFilter, Src: []string{Normal}, Dst: Filtering},
			{Name: OpenHelp, Src: []string{Normal}, Dst: Helping},
			{Name: Close, Src: []string{Filtering, Helping}, Dst: Normal},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				log.Debug().Msgf("MODE %s → %s (trigger: %s)", e.Src, e.Dst, e.Event)
			},
			OnFiltering: func(ctx context.Context, e *fsm.Event) {
				hooks.focusFilter()
			},
			OnLeaveFilter: func(ctx context.Context, e *fsm.Event) {
				hooks.blurFilter()
			},
			OnHelping: func(ctx context.Context, e *fsm.Event) {
				hooks.showHelp(true)
			},
			OnLeaveHelping: func(ctx context.Context, e *fsm.Event) {
				hooks.showHelp(false)
			},
		},
	)
}
