package spritedit

import (
	"fmt"
	"math"
)

// Transform is the pure, bidirectional mapping between the three coordinate
// spaces of the editor: screen space (raw pointer coordinates), viewport
// space (screen coordinates with pan and zoom undone), and grid-cell space
// (integer cell indices), with an optional finer pixel-within-cell
// resolution.
//
// A Transform is a snapshot value: build one from the current viewport and
// buffer (see [Viewport.Transform] or [Editor.Transform]) and use it for a
// single event or frame.
type Transform struct {
	Zoom       float64
	Pan        Vec2
	Projection Projection

	// CellSize is the flat-projection cell edge in viewport units
	// (pixels per cell at zoom = 1).
	CellSize float64

	// TileWidth and TileHeight are the isometric diamond dimensions in
	// viewport units. Origin is the top vertex of cell (0, 0)'s diamond.
	TileWidth  float64
	TileHeight float64
	Origin     Vec2

	// Canvas extent, for bounds checks.
	Cols, Rows    int
	PixelsPerCell int
}

// ScreenToViewport undoes pan and zoom: (p - pan) / zoom.
func (t Transform) ScreenToViewport(p Vec2) Vec2 {
	return p.Sub(t.Pan).Scale(1 / t.Zoom)
}

// ViewportToScreen is the inverse of ScreenToViewport: v * zoom + pan.
func (t Transform) ViewportToScreen(v Vec2) Vec2 {
	return v.Scale(t.Zoom).Add(t.Pan)
}

// ViewportToCell resolves a viewport-space point to the cell containing it.
// Points exactly on a cell boundary resolve to the lower-index cell (floor
// tie-break, never ambiguous). Returns ErrOutOfCanvas when the resolved
// cell lies outside the grid; callers treat that as a no-op.
func (t Transform) ViewportToCell(v Vec2) (Cell, error) {
	cx, cy := t.cellCoords(v)
	cell := Cell{X: int(math.Floor(cx)), Y: int(math.Floor(cy))}
	if cell.X < 0 || cell.Y < 0 || cell.X >= t.Cols || cell.Y >= t.Rows {
		return Cell{}, fmt.Errorf("%w: cell (%d, %d)", ErrOutOfCanvas, cell.X, cell.Y)
	}
	return cell, nil
}

// cellCoords returns the continuous cell-space coordinates of a viewport
// point: cell (cx, cy) covers [cx, cx+1) x [cy, cy+1) in this space for
// both projections.
func (t Transform) cellCoords(v Vec2) (float64, float64) {
	if t.Projection == ProjectionIsometric {
		rx := (v.X - t.Origin.X) / (t.TileWidth / 2)
		ry := (v.Y - t.Origin.Y) / (t.TileHeight / 2)
		return (rx + ry) / 2, (ry - rx) / 2
	}
	return v.X / t.CellSize, v.Y / t.CellSize
}

// CellToViewport maps a cell to its viewport-space position: the cell
// center in flat projection, the diamond center in isometric projection.
// The inverse of ViewportToCell for every in-bounds cell.
func (t Transform) CellToViewport(c Cell) Vec2 {
	if t.Projection == ProjectionIsometric {
		top := t.diamondTop(c)
		return Vec2{X: top.X, Y: top.Y + t.TileHeight/2}
	}
	return Vec2{
		X: (float64(c.X) + 0.5) * t.CellSize,
		Y: (float64(c.Y) + 0.5) * t.CellSize,
	}
}

// ScreenToCell resolves a raw pointer position to a cell.
func (t Transform) ScreenToCell(p Vec2) (Cell, error) {
	return t.ViewportToCell(t.ScreenToViewport(p))
}

// CellToScreen maps a cell to its screen-space position.
func (t Transform) CellToScreen(c Cell) Vec2 {
	return t.ViewportToScreen(t.CellToViewport(c))
}

// ViewportToPixel resolves a viewport point down to buffer pixel
// coordinates: the containing cell plus the fractional remainder within the
// cell's pixelsPerCell sub-grid.
func (t Transform) ViewportToPixel(v Vec2) (x, y int, err error) {
	cell, err := t.ViewportToCell(v)
	if err != nil {
		return 0, 0, err
	}
	cx, cy := t.cellCoords(v)
	ppc := t.PixelsPerCell
	if ppc < 1 {
		ppc = 1
	}
	sx := int((cx - math.Floor(cx)) * float64(ppc))
	sy := int((cy - math.Floor(cy)) * float64(ppc))
	if sx >= ppc {
		sx = ppc - 1
	}
	if sy >= ppc {
		sy = ppc - 1
	}
	return cell.X*ppc + sx, cell.Y*ppc + sy, nil
}

// ScreenToPixel resolves a raw pointer position to buffer pixel coordinates.
func (t Transform) ScreenToPixel(p Vec2) (x, y int, err error) {
	return t.ViewportToPixel(t.ScreenToViewport(p))
}

// CellRect returns the flat-projection rectangle a cell covers in viewport
// space. Renderers draw flat cells, grid lines, and hover highlights from it.
func (t Transform) CellRect(c Cell) Rect {
	return Rect{
		X:      float64(c.X) * t.CellSize,
		Y:      float64(c.Y) * t.CellSize,
		Width:  t.CellSize,
		Height: t.CellSize,
	}
}

// CellDiamond returns the four isometric diamond vertices of a cell in
// viewport space, in top, right, bottom, left order.
func (t Transform) CellDiamond(c Cell) [4]Vec2 {
	top := t.diamondTop(c)
	halfW := t.TileWidth / 2
	halfH := t.TileHeight / 2
	return [4]Vec2{
		top,
		{X: top.X + halfW, Y: top.Y + halfH},
		{X: top.X, Y: top.Y + t.TileHeight},
		{X: top.X - halfW, Y: top.Y + halfH},
	}
}

// diamondTop returns the top vertex of a cell's diamond in viewport space.
func (t Transform) diamondTop(c Cell) Vec2 {
	return Vec2{
		X: t.Origin.X + float64(c.X-c.Y)*t.TileWidth/2,
		Y: t.Origin.Y + float64(c.X+c.Y)*t.TileHeight/2,
	}
}
