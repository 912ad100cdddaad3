package client

// Popover layout constants. The panel is centered on its anchor, so
// half the panel width must fit on either side, and enough vertical
// room is reserved below the anchor for the panel body.
const (
	popoverHalfWidth    = 160
	popoverTopMargin    = 90
	popoverBottomMargin = 280
)

// Point is a position in viewport coordinates.
type Point struct {
	X int
	Y int
}

// Viewport is the visible area the popover must stay inside.
type Viewport struct {
	Width  int
	Height int
}

// Popover tracks which source detail panel is open and where it sits.
// The zero value is a closed popover.
type Popover struct {
	open        bool
	sourceIndex int
	// anchor is the raw, unclamped position the popover was opened at,
	// kept so a viewport resize can recompute the clamped position.
	anchor   Point
	position Point
}

// IsOpen reports whether a source panel is currently showing.
func (p *Popover) IsOpen() bool {
	return p.open
}

// SourceIndex returns the open panel's source index, or -1 when closed.
func (p *Popover) SourceIndex() int {
	if !p.open {
		return -1
	}
	return p.sourceIndex
}

// Position returns the clamped position of the open panel.
func (p *Popover) Position() Point {
	return p.position
}

// Toggle handles a click on the citation for sourceIndex. Clicking the
// citation of the open panel closes it; any other citation opens or
// replaces the panel at the clicked anchor.
func (p *Popover) Toggle(sourceIndex int, anchor Point, vp Viewport) {
	if p.open && p.sourceIndex == sourceIndex {
		p.Close()
		return
	}
	p.open = true
	p.sourceIndex = sourceIndex
	p.anchor = anchor
	p.position = clampPosition(anchor, vp)
}

// Close dismisses the panel. Safe to call when already closed.
func (p *Popover) Close() {
	p.open = false
	p.sourceIndex = 0
	p.anchor = Point{}
	p.position = Point{}
}

// Resize re-clamps the open panel against the new viewport using the
// original anchor. A closed popover is unaffected.
func (p *Popover) Resize(vp Viewport) {
	if !p.open {
		return
	}
	p.position = clampPosition(p.anchor, vp)
}

func clampPosition(anchor Point, vp Viewport) Point {
	x := anchor.X
	if x < popoverHalfWidth {
		x = popoverHalfWidth
	}
	if x > vp.Width-popoverHalfWidth {
		x = vp.Width - popoverHalfWidth
	}

	y := anchor.Y
	if y < popoverTopMargin {
		y = popoverTopMargin
	}
	if y > vp.Height-popoverBottomMargin {
		y = vp.Height - popoverBottomMargin
	}
	return Point{X: x, Y: y}
}
