package spritedit

// Frame is the read-only snapshot a renderer consumes each frame: the
// document's pixels plus the view state needed to lay them out. The pixel
// slice is a copy; the engine never hands out mutable access.
type Frame struct {
	// Document.
	WidthCells    int
	HeightCells   int
	PixelsPerCell int
	WidthPx       int
	HeightPx      int
	Pixels        []byte // straight-alpha RGBA, row-major

	// View.
	Zoom       float64
	Pan        Vec2
	Projection Projection
	ShowGrid   bool

	// Transform for laying cells out on screen, consistent with the view
	// fields above.
	Transform Transform
}

// Frame captures the current document and view state for rendering.
func (e *Editor) Frame() Frame {
	w, h, pix := e.buf.RGBA()
	return Frame{
		WidthCells:    e.buf.WidthCells(),
		HeightCells:   e.buf.HeightCells(),
		PixelsPerCell: e.buf.PixelsPerCell(),
		WidthPx:       w,
		HeightPx:      h,
		Pixels:        pix,
		Zoom:          e.vp.Zoom,
		Pan:           e.vp.Pan,
		Projection:    e.vp.Projection,
		ShowGrid:      e.showGrid,
		Transform:     e.Transform(),
	}
}

// CellAt returns the cell a frame pixel index belongs to.
func (f Frame) CellAt(px, py int) Cell {
	ppc := f.PixelsPerCell
	if ppc < 1 {
		ppc = 1
	}
	return Cell{X: px / ppc, Y: py / ppc}
}

// PixelColor reads a pixel from the snapshot. Out-of-range coordinates
// return transparent.
func (f Frame) PixelColor(px, py int) Color {
	if px < 0 || py < 0 || px >= f.WidthPx || py >= f.HeightPx {
		return Transparent
	}
	i := (py*f.WidthPx + px) * 4
	return Color{R: f.Pixels[i], G: f.Pixels[i+1], B: f.Pixels[i+2], A: f.Pixels[i+3]}
}
