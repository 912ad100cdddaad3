package client

import "testing"

func TestPopoverToggleOpensAndCloses(t *testing.T) {
	var p Popover
	vp := Viewport{Width: 1280, Height: 800}

	p.Toggle(1, Point{X: 400, Y: 300}, vp)
	if !p.IsOpen() || p.SourceIndex() != 1 {
		t.Fatalf("open = %v, index = %d, want open index 1", p.IsOpen(), p.SourceIndex())
	}

	// Same citation again closes.
	p.Toggle(1, Point{X: 400, Y: 300}, vp)
	if p.IsOpen() {
		t.Error("toggling the open citation should close the panel")
	}
	if p.SourceIndex() != -1 {
		t.Errorf("closed SourceIndex = %d, want -1", p.SourceIndex())
	}
}

func TestPopoverToggleReplacesDifferentSource(t *testing.T) {
	var p Popover
	vp := Viewport{Width: 1280, Height: 800}

	p.Toggle(0, Point{X: 400, Y: 300}, vp)
	p.Toggle(2, Point{X: 600, Y: 350}, vp)

	if !p.IsOpen() {
		t.Fatal("panel should stay open when switching citations")
	}
	if p.SourceIndex() != 2 {
		t.Errorf("SourceIndex = %d, want 2", p.SourceIndex())
	}
	if got := p.Position(); got != (Point{X: 600, Y: 350}) {
		t.Errorf("position = %+v, want the new anchor", got)
	}
}

func TestPopoverClampsNarrowViewport(t *testing.T) {
	var p Popover
	vp := Viewport{Width: 375, Height: 800}

	p.Toggle(0, Point{X: 10, Y: 300}, vp)
	if got := p.Position().X; got != 160 {
		t.Errorf("x = %d, want 160", got)
	}

	p.Toggle(1, Point{X: 370, Y: 300}, vp)
	if got := p.Position().X; got != 375-160 {
		t.Errorf("x = %d, want %d", got, 375-160)
	}
}

func TestPopoverClampsVertically(t *testing.T) {
	var p Popover
	vp := Viewport{Width: 1280, Height: 800}

	p.Toggle(0, Point{X: 400, Y: 20}, vp)
	if got := p.Position().Y; got != 90 {
		t.Errorf("y = %d, want 90", got)
	}

	p.Toggle(1, Point{X: 400, Y: 790}, vp)
	if got := p.Position().Y; got != 800-280 {
		t.Errorf("y = %d, want %d", got, 800-280)
	}
}

func TestPopoverResizeReclampsRawAnchor(t *testing.T) {
	var p Popover

	// Wide viewport: the anchor fits as-is.
	p.Toggle(0, Point{X: 200, Y: 300}, Viewport{Width: 1280, Height: 800})
	if got := p.Position(); got != (Point{X: 200, Y: 300}) {
		t.Fatalf("position = %+v, want anchor unchanged", got)
	}

	// Shrink: the same anchor now violates the left margin.
	p.Resize(Viewport{Width: 375, Height: 800})
	if got := p.Position().X; got != 160 {
		t.Errorf("after shrink x = %d, want 160", got)
	}

	// Grow back: the raw anchor is restored, not the clamped value.
	p.Resize(Viewport{Width: 1280, Height: 800})
	if got := p.Position().X; got != 200 {
		t.Errorf("after grow x = %d, want 200", got)
	}
}

func TestPopoverResizeWhenClosedIsNoop(t *testing.T) {
	var p Popover
	p.Resize(Viewport{Width: 375, Height: 800})
	if p.IsOpen() {
		t.Error("resize must not open a closed panel")
	}
}
