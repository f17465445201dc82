package view

import (
	"slices"

	"github.com/TimelordUK/logdeck/internal/source"
)

// noSelection marks an index with nothing selected
const noSelection = -1

// Frame is what a render surface receives once per frame
type Frame struct {
	Entries      []source.Entry
	Selected     int
	HasSelection bool
	Following    bool
}

// Index layers cutoff, filtering, selection and follow mode over the
// entries of a Buffer.
//
// The visible list holds the entries, in order, that are at or past the
// cutoff and pass the filter. Selection is a position in that
// visible list, not in the buffer. Every change to buffer, cutoff or filter
// rebuilds the visible list and pulls the selection back into range.
type Index struct {
	buffer  *source.Buffer
	filter  *source.Filter
	cutoff  int
	visible []source.Entry

	selected  int
	following bool
}

// NewIndex creates an index over buf. filter may be nil for no filtering.
func NewIndex(buf *source.Buffer, filter *source.Filter) *Index {
	if buf == nil {
		buf = source.Empty()
	}
	if filter == nil {
		filter = source.NewFilter(nil)
	}

	idx := &Index{
		buffer:   buf,
		filter:   filter,
		selected: noSelection,
	}
	idx.Rebuild()

	return idx
}

// SetBuffer swaps in a buffer that extends the current one and rebuilds.
// The cutoff is kept, clamped to the new length.
func (x *Index) SetBuffer(buf *source.Buffer) {
	if buf == nil {
		buf = source.Empty()
	}
	x.buffer = buf
	x.cutoff = min(x.cutoff, buf.Len())
	x.Rebuild()
}

// Reload swaps in a buffer read from scratch after the file shrank. None of
// its entries have been seen, so the cutoff goes back to 0.
func (x *Index) Reload(buf *source.Buffer) {
	x.cutoff = 0
	x.SetBuffer(buf)
}

// Buffer returns the current buffer
func (x *Index) Buffer() *source.Buffer {
	return x.buffer
}

// Len returns the number of entries in the buffer, hidden ones included
func (x *Index) Len() int {
	return x.buffer.Len()
}

// SetCutoff hides every entry before position c, clamped to [0, Len]
func (x *Index) SetCutoff(c int) {
	x.cutoff = max(0, min(c, x.buffer.Len()))
	x.Rebuild()
}

// Cutoff returns the current cutoff position
func (x *Index) Cutoff() int {
	return x.cutoff
}

// ClearView hides everything known so far. Entries appended later stay visible.
func (x *Index) ClearView() {
	x.SetCutoff(x.buffer.Len())
}

// ResetCutoff shows hidden entries again
func (x *Index) ResetCutoff() {
	x.SetCutoff(0)
}

// Filter returns the filter; call Rebuild after changing it directly
func (x *Index) Filter() *source.Filter {
	return x.filter
}

// SetFilters replaces the text terms every visible body must contain
func (x *Index) SetFilters(terms []string) {
	x.filter.SetTerms(terms)
	x.Rebuild()
}

// Filters returns the active text terms
func (x *Index) Filters() []string {
	return x.filter.Terms()
}

// SetLevelFilter shows only entries at the given levels (empty = all)
func (x *Index) SetLevelFilter(levels map[source.LogLevel]bool) {
	x.filter.SetLevelFilter(levels)
	x.Rebuild()
}

// ToggleLevel toggles a level in the level filter
func (x *Index) ToggleLevel(level source.LogLevel) {
	x.filter.ToggleLevel(level)
	x.Rebuild()
}

// ClearFilters removes text and level filters
func (x *Index) ClearFilters() {
	x.filter.Clear()
	x.Rebuild()
}

// Rebuild recomputes the visible list and clamps the selection into it
func (x *Index) Rebuild() {
	n := x.buffer.Len()
	visible := make([]source.Entry, 0, max(0, n-x.cutoff))
	for i := x.cutoff; i < n; i++ {
		e, _ := x.buffer.Entry(i)
		if x.filter.Match(e) {
			visible = append(visible, e)
		}
	}
	x.visible = visible

	if x.selected == noSelection {
		return
	}
	if len(x.visible) == 0 {
		x.selected = noSelection
		return
	}
	x.selected = min(x.selected, len(x.visible)-1)
}

// VisibleLen returns the number of visible entries
func (x *Index) VisibleLen() int {
	return len(x.visible)
}

// Original maps a visible position to the entry position in the buffer,
// or -1 when out of range
func (x *Index) Original(pos int) int {
	if pos < 0 || pos >= len(x.visible) {
		return -1
	}
	return x.visible[pos].Position()
}

// VisibleAt returns the entry at a visible position
func (x *Index) VisibleAt(pos int) (source.Entry, bool) {
	if pos < 0 || pos >= len(x.visible) {
		return source.Entry{}, false
	}
	return x.visible[pos], true
}

// Visible returns a copy of the visible entries in order
func (x *Index) Visible() []source.Entry {
	return slices.Clone(x.visible)
}

// Select selects a visible position. A negative position clears the
// selection; one past the end selects the last entry.
func (x *Index) Select(pos int) {
	if pos < 0 || len(x.visible) == 0 {
		x.selected = noSelection
		return
	}
	x.selected = min(pos, len(x.visible)-1)
}

// Unselect clears the selection
func (x *Index) Unselect() {
	x.selected = noSelection
}

// Selected returns the selected visible position
func (x *Index) Selected() (int, bool) {
	return x.selected, x.selected != noSelection
}

// SelectedEntry returns the selected entry
func (x *Index) SelectedEntry() (source.Entry, bool) {
	if x.selected == noSelection {
		return source.Entry{}, false
	}
	return x.VisibleAt(x.selected)
}

// Next moves the selection down one entry, wrapping to the top
func (x *Index) Next() {
	n := len(x.visible)
	switch {
	case n == 0:
		x.selected = noSelection
	case x.selected == noSelection, x.selected >= n-1:
		x.selected = 0
	default:
		x.selected++
	}
}

// Previous moves the selection up one entry, wrapping to the bottom
func (x *Index) Previous() {
	n := len(x.visible)
	switch {
	case n == 0:
		x.selected = noSelection
	case x.selected == noSelection:
		x.selected = 0
	case x.selected == 0:
		x.selected = n - 1
	default:
		x.selected--
	}
}

// GotoStart selects the first visible entry
func (x *Index) GotoStart() {
	x.Select(0)
}

// GotoEnd selects the last visible entry
func (x *Index) GotoEnd() {
	x.Select(len(x.visible) - 1)
}

// JumpRelative moves the selection by delta entries without wrapping
func (x *Index) JumpRelative(delta int) {
	n := len(x.visible)
	if n == 0 {
		x.selected = noSelection
		return
	}

	from := x.selected
	if from == noSelection {
		from = 0
	}
	x.selected = max(0, min(from+delta, n-1))
}

// SetFollow turns follow mode on or off
func (x *Index) SetFollow(on bool) {
	x.following = on
}

// ToggleFollow flips follow mode and returns the new state
func (x *Index) ToggleFollow() bool {
	x.following = !x.following
	return x.following
}

// Following reports whether follow mode is on
func (x *Index) Following() bool {
	return x.following
}

// FollowTick selects the last visible entry when following. Call it after
// every ingestion that changed the buffer.
func (x *Index) FollowTick() {
	if x.following {
		x.GotoEnd()
	}
}

// Frame returns the snapshot a render surface draws from. Entries is shared
// with the index and is replaced, never modified, by the next rebuild.
func (x *Index) Frame() Frame {
	sel, ok := x.Selected()
	return Frame{
		Entries:      x.visible,
		Selected:     sel,
		HasSelection: ok,
		Following:    x.following,
	}
}
