package ingest

import (
	"fmt"

	"github.com/TimelordUK/logdeck/internal/errors"
	"github.com/TimelordUK/logdeck/internal/logger"
	"github.com/TimelordUK/logdeck/internal/source"
)

// Event describes what a single poll did
type Event struct {
	Changed  bool
	Reloaded bool
	// Gone is set while the file cannot be stat'ed; state is left as it was
	Gone bool
	// Added is the change in entry count, negative after a shrinking reload
	Added int
}

// Controller owns the buffer for one log file and keeps it in step with
// the file on every poll
type Controller struct {
	src    FileSource
	path   string
	buffer *source.Buffer
	size   int64
	gone   bool
	log    logger.Logger
}

// NewController creates a controller with an empty buffer
func NewController(src FileSource, path string, log logger.Logger) *Controller {
	return &Controller{
		src:    src,
		path:   path,
		buffer: source.Empty(),
		log:    log.WithComponent("INGEST"),
	}
}

// Load performs the initial read. Unlike Poll, a file that cannot be
// stat'ed here is an error: there is nothing to show yet.
func (c *Controller) Load() error {
	st, err := c.src.Stat(c.path)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrIngest, err)
	}

	update, err := Reconcile(c.src, c.path, source.Empty(), 0, st)
	if err != nil {
		return err
	}

	c.buffer, c.size = update.Buffer, update.Size
	c.log.Info().Str("path", c.path).Int64("size", c.size).Int("entries", c.buffer.Len()).Msg("Loaded log file")

	return nil
}

// Poll stats the file once and applies whatever changed.
// A failed stat is reported through Event.Gone, not as an error.
func (c *Controller) Poll() (Event, error) {
	st, err := c.src.Stat(c.path)
	if err != nil || !st.Exists {
		if !c.gone {
			c.log.Warn().Err(err).Str("path", c.path).Msg("Log file unavailable, keeping last known content")
		}
		c.gone = true

		return Event{Gone: true}, nil
	}

	if c.gone {
		c.log.Info().Str("path", c.path).Msg("Log file available again")
		c.gone = false
	}

	before := c.buffer.Len()

	update, err := Reconcile(c.src, c.path, c.buffer, c.size, st)
	if err != nil {
		c.log.Error().Err(err).Msg("Failed to ingest log file")
		return Event{}, err
	}

	if !update.Changed {
		c.log.Trace().Msg("No file change")
		return Event{}, nil
	}

	if update.Reloaded {
		c.log.Info().Int64("from", c.size).Int64("to", update.Size).Msg("File shrank, reloaded")
	} else {
		c.log.Debug().Int64("from", c.size).Int64("to", update.Size).Msg("File grew")
	}

	c.buffer, c.size = update.Buffer, update.Size

	return Event{
		Changed:  true,
		Reloaded: update.Reloaded,
		Added:    c.buffer.Len() - before,
	}, nil
}

// Buffer returns the current buffer
func (c *Controller) Buffer() *source.Buffer {
	return c.buffer
}

// Size returns the file size the buffer corresponds to
func (c *Controller) Size() int64 {
	return c.size
}

// Path returns the watched file path
func (c *Controller) Path() string {
	return c.path
}

// Gone reports whether the last poll could not stat the file
func (c *Controller) Gone() bool {
	return c.gone
}
