package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/logdeck/internal/render"
	"github.com/TimelordUK/logdeck/internal/source"
)

// FrameSource hands out the per-frame snapshot a viewport draws from
type FrameSource interface {
	Frame() Frame
}

// Viewport manages the visible window of the entry list.
// It knows nothing about filters, cutoffs or file sources; it only scrolls
// over the entries of the current Frame and keeps the selection in view.
type Viewport struct {
	list     FrameSource
	renderer render.Renderer

	// Dimensions
	width  int
	height int

	// Scroll position, as a visible position
	scrollOffset int

	// Styling
	positionStyle  lipgloss.Style
	headerStyle    lipgloss.Style
	selectedStyle  lipgloss.Style

	// Options
	labelWidth    int
	showHeader    bool
	showPositions bool
}

// NewViewport creates a new viewport
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:          width,
		height:         height,
		labelWidth:     30,
		showHeader:     true,
		showPositions:  true,
		positionStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		headerStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		selectedStyle:  lipgloss.NewStyle().Reverse(true).Bold(true),
		renderer:       render.NewPlainRenderer(),
	}
}

// SetList sets the entry list and scrolls back to the top
func (v *Viewport) SetList(list FrameSource) {
	v.list = list
	v.scrollOffset = 0
}

// SetRenderer sets the label renderer
func (v *Viewport) SetRenderer(r render.Renderer) {
	v.renderer = r
}

// SetLabelWidth sets how many bytes of each body are shown
func (v *Viewport) SetLabelWidth(n int) {
	v.labelWidth = max(0, n)
}

// SetShowHeader toggles the header column (timestamp, level, separator)
func (v *Viewport) SetShowHeader(show bool) {
	v.showHeader = show
}

// SetShowPositions toggles entry numbers
func (v *Viewport) SetShowPositions(show bool) {
	v.showPositions = show
}

// SetStyles sets the header and selection styles
func (v *Viewport) SetStyles(header, selected lipgloss.Style) {
	v.headerStyle = header
	v.selectedStyle = selected
}

// SetSize updates viewport dimensions
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// Height returns the number of rows
func (v *Viewport) Height() int {
	return v.height
}

// PageSize returns how far a page jump moves the selection
func (v *Viewport) PageSize() int {
	return max(1, v.height-1)
}

// ScrollDown scrolls down by n rows
func (v *Viewport) ScrollDown(n int) {
	v.scrollOffset += n
	v.clampScroll()
}

// ScrollUp scrolls up by n rows
func (v *Viewport) ScrollUp(n int) {
	v.scrollOffset -= n
	v.clampScroll()
}

// Offset returns the visible position of the top row
func (v *Viewport) Offset() int {
	return v.scrollOffset
}

// Sync clamps the scroll offset to the list and scrolls just enough to
// bring the selected entry into view. Call it after every list change.
func (v *Viewport) Sync() {
	v.clampScroll()

	if v.list == nil || v.height <= 0 {
		return
	}
	frame := v.list.Frame()
	if !frame.HasSelection {
		return
	}
	sel := frame.Selected

	if sel < v.scrollOffset {
		v.scrollOffset = sel
	} else if sel >= v.scrollOffset+v.height {
		v.scrollOffset = sel - v.height + 1
	}
}

// clampScroll ensures scroll offset is within valid bounds
func (v *Viewport) clampScroll() {
	if v.list == nil {
		v.scrollOffset = 0
		return
	}

	maxScroll := max(0, len(v.list.Frame().Entries)-v.height)
	v.scrollOffset = max(0, min(v.scrollOffset, maxScroll))
}

// Render returns the viewport content as a string
func (v *Viewport) Render() string {
	if v.list == nil {
		return ""
	}

	var builder strings.Builder
	frame := v.list.Frame()
	rows := min(v.height, max(0, len(frame.Entries)-v.scrollOffset))

	for i := 0; i < rows; i++ {
		if i > 0 {
			builder.WriteString("\n")
		}

		pos := v.scrollOffset + i
		selected := frame.HasSelection && pos == frame.Selected
		builder.WriteString(v.renderRow(frame.Entries[pos], selected))
	}

	// Pad with empty rows if needed
	for i := rows; i < v.height; i++ {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("~")
	}

	return builder.String()
}

func (v *Viewport) renderRow(e source.Entry, selected bool) string {
	var row strings.Builder

	if v.showPositions {
		row.WriteString(v.positionStyle.Render(fmt.Sprintf("%6d ", e.Position()+1)))
	}
	if v.showHeader {
		row.WriteString(v.headerStyle.Render(firstLine(e.Header())))
	}

	label := Label(e, v.labelWidth)
	if selected {
		row.WriteString(v.selectedStyle.Render(label))
	} else {
		row.WriteString(v.renderer.Render(e, label))
	}

	if v.width <= 0 {
		return row.String()
	}
	return lipgloss.NewStyle().MaxWidth(v.width).Render(row.String())
}

// Label returns the single-line list label for an entry
func Label(e source.Entry, width int) string {
	return firstLine(e.Label(width))
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// PercentScrolled returns how far through the list we are
func (v *Viewport) PercentScrolled() float64 {
	if v.list == nil {
		return 0
	}

	total := len(v.list.Frame().Entries)
	if total == 0 {
		return 0
	}
	if total <= v.height {
		return 100
	}

	return float64(v.scrollOffset) / float64(total-v.height) * 100
}
