package spritedit

import "testing"

// newTestEngine builds a 4x4 canvas with 20px flat cells at zoom 1, pan 0,
// so screen (x, y) lands in cell (x/20, y/20).
func newTestEngine(t *testing.T) (*Engine, *PixelBuffer) {
	t.Helper()
	buf, err := NewPixelBuffer(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	vp := NewViewport(0.1, 6.4)
	geom := Geometry{CellSize: 20, TileWidth: 20, TileHeight: 10, IsoOrigin: Vec2{X: 40}}
	return NewEngine(buf, vp, geom), buf
}

func cellCenter(c Cell) Vec2 {
	return Vec2{X: (float64(c.X) + 0.5) * 20, Y: (float64(c.Y) + 0.5) * 20}
}

func TestEngineDefaults(t *testing.T) {
	e, _ := newTestEngine(t)
	if e.ActiveTool() != ToolPencil {
		t.Errorf("default tool = %v, want pencil", e.ActiveTool())
	}
	if e.ActiveColor() != (Color{255, 255, 255, 255}) {
		t.Errorf("default color = %v, want opaque white", e.ActiveColor())
	}
	if e.State() != StateIdle {
		t.Errorf("default state = %v, want idle", e.State())
	}
}

func TestPointerDownPaints(t *testing.T) {
	e, buf := newTestEngine(t)
	e.SetActiveColor(red)
	e.PointerDown(cellCenter(Cell{2, 1}), MouseButtonLeft)

	if e.State() != StateStroking {
		t.Fatalf("state = %v, want stroking", e.State())
	}
	if c, _ := buf.CellColor(Cell{2, 1}); c != red {
		t.Errorf("cell (2,1) = %v, want red", c)
	}
	e.PointerUp(cellCenter(Cell{2, 1}), MouseButtonLeft)
	if e.State() != StateIdle {
		t.Errorf("state after up = %v, want idle", e.State())
	}
}

func TestPointerDownOutsideCanvasStaysIdle(t *testing.T) {
	e, buf := newTestEngine(t)
	e.SetActiveColor(red)
	e.PointerDown(Vec2{X: -5, Y: -5}, MouseButtonLeft)
	if e.State() != StateIdle {
		t.Fatalf("state = %v, want idle", e.State())
	}
	// A move after the ignored down must not paint either.
	e.PointerMove(cellCenter(Cell{0, 0}))
	if c, _ := buf.CellColor(Cell{0, 0}); c != Transparent {
		t.Errorf("cell painted without a gesture: %v", c)
	}
}

func TestStrokeInterpolationFillsGaps(t *testing.T) {
	e, buf := newTestEngine(t)
	e.SetActiveColor(red)
	// Down in (0,0), a single move event all the way to (3,0): every cell
	// along the row must be painted despite the sparse sampling.
	e.PointerDown(cellCenter(Cell{0, 0}), MouseButtonLeft)
	e.PointerMove(cellCenter(Cell{3, 0}))
	e.PointerUp(cellCenter(Cell{3, 0}), MouseButtonLeft)

	for x := 0; x < 4; x++ {
		if c, _ := buf.CellColor(Cell{x, 0}); c != red {
			t.Errorf("cell (%d,0) = %v, want red", x, c)
		}
	}
	for x := 0; x < 4; x++ {
		if c, _ := buf.CellColor(Cell{x, 1}); c != Transparent {
			t.Errorf("row 1 painted at x=%d", x)
		}
	}
}

func TestStrokeDiagonalHasNoDiagonalJumps(t *testing.T) {
	e, buf := newTestEngine(t)
	e.SetActiveColor(red)
	e.PointerDown(cellCenter(Cell{0, 0}), MouseButtonLeft)
	e.PointerMove(cellCenter(Cell{3, 3}))

	painted := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if c, _ := buf.CellColor(Cell{x, y}); c == red {
				painted++
			}
		}
	}
	// A 4-connected path from (0,0) to (3,3) visits exactly 7 cells.
	if painted != 7 {
		t.Errorf("painted %d cells, want 7", painted)
	}
}

func TestMoveWithinSameCellNoDuplicateWork(t *testing.T) {
	e, buf := newTestEngine(t)
	e.SelectTool(ToolEraser)
	buf.SetCell(Cell{0, 0}, red)
	e.PointerDown(cellCenter(Cell{0, 0}), MouseButtonLeft)
	// Jitter inside the same cell.
	e.PointerMove(Vec2{X: 11, Y: 9})
	e.PointerMove(Vec2{X: 9, Y: 11})
	if c, _ := buf.CellColor(Cell{0, 0}); c != Transparent {
		t.Errorf("cell (0,0) = %v, want erased", c)
	}
	if e.State() != StateStroking {
		t.Errorf("state = %v, want still stroking", e.State())
	}
}

func TestStrokeLeavesAndReentersCanvas(t *testing.T) {
	e, buf := newTestEngine(t)
	e.SetActiveColor(red)
	e.PointerDown(cellCenter(Cell{0, 0}), MouseButtonLeft)
	// Pointer exits the canvas entirely, then re-enters at (3,0). The
	// stroke resumes interpolation from its last cell, so the whole row
	// gets painted.
	e.PointerMove(Vec2{X: -100, Y: 10})
	if e.State() != StateStroking {
		t.Fatalf("stroke ended by off-canvas move: %v", e.State())
	}
	e.PointerMove(cellCenter(Cell{3, 0}))
	for x := 0; x < 4; x++ {
		if c, _ := buf.CellColor(Cell{x, 0}); c != red {
			t.Errorf("cell (%d,0) = %v after re-entry, want red", x, c)
		}
	}
}

func TestFillActsOncePerPointerDown(t *testing.T) {
	e, buf := newTestEngine(t)
	// A green wall at x=2 isolates two regions.
	for y := 0; y < 4; y++ {
		buf.SetCell(Cell{2, y}, green)
	}
	e.SelectTool(ToolFill)
	e.SetActiveColor(red)

	e.PointerDown(cellCenter(Cell{0, 0}), MouseButtonLeft)
	// Drag across the wall into the right region: no second fill.
	e.PointerMove(cellCenter(Cell{3, 0}))
	e.PointerUp(cellCenter(Cell{3, 0}), MouseButtonLeft)

	if c, _ := buf.CellColor(Cell{0, 3}); c != red {
		t.Errorf("left region = %v, want red", c)
	}
	if c, _ := buf.CellColor(Cell{3, 0}); c != Transparent {
		t.Errorf("right region = %v, want untouched", c)
	}
}

func TestFillStrokePathStaysAdjacent(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SelectTool(ToolFill)

	// Jump diagonally across the canvas in a single move event; the
	// recorded path must still step one cell at a time.
	e.PointerDown(cellCenter(Cell{0, 0}), MouseButtonLeft)
	e.PointerMove(cellCenter(Cell{3, 3}))

	cells := e.stroke.Cells
	if len(cells) < 7 {
		t.Fatalf("path has %d cells, want at least 7", len(cells))
	}
	for i := 1; i < len(cells); i++ {
		dx := abs(cells[i].X - cells[i-1].X)
		dy := abs(cells[i].Y - cells[i-1].Y)
		if dx+dy != 1 {
			t.Errorf("cells[%d]=%v and cells[%d]=%v are not adjacent", i-1, cells[i-1], i, cells[i])
		}
	}
	if got := cells[len(cells)-1]; got != (Cell{3, 3}) {
		t.Errorf("path ends at %v, want {3 3}", got)
	}
	e.PointerUp(cellCenter(Cell{3, 3}), MouseButtonLeft)
}

func TestRightClickPicksRegardlessOfTool(t *testing.T) {
	e, buf := newTestEngine(t)
	buf.SetCell(Cell{1, 1}, blue)
	e.SelectTool(ToolEraser)

	e.PointerDown(cellCenter(Cell{1, 1}), MouseButtonRight)
	if e.State() != StatePicking {
		t.Fatalf("state = %v, want picking", e.State())
	}
	if e.ActiveColor() != blue {
		t.Errorf("active color = %v, want blue", e.ActiveColor())
	}
	// The pick must not erase anything, and the tool stays the eraser.
	if c, _ := buf.CellColor(Cell{1, 1}); c != blue {
		t.Errorf("pick mutated cell: %v", c)
	}
	if e.ActiveTool() != ToolEraser {
		t.Errorf("tool = %v, want eraser", e.ActiveTool())
	}
	e.PointerUp(cellCenter(Cell{1, 1}), MouseButtonRight)
	if e.State() != StateIdle {
		t.Errorf("state after up = %v", e.State())
	}
}

func TestPickerToolRevertsToPencil(t *testing.T) {
	e, buf := newTestEngine(t)
	buf.SetCell(Cell{2, 2}, green)
	e.SelectTool(ToolPicker)

	e.PointerDown(cellCenter(Cell{2, 2}), MouseButtonLeft)
	if e.ActiveColor() != green {
		t.Errorf("active color = %v, want green", e.ActiveColor())
	}
	if e.ActiveTool() != ToolPencil {
		t.Errorf("tool after pick = %v, want pencil", e.ActiveTool())
	}
	e.PointerUp(cellCenter(Cell{2, 2}), MouseButtonLeft)
}

func TestSelectToolMidStrokeTakesEffectNextDown(t *testing.T) {
	e, buf := newTestEngine(t)
	e.SetActiveColor(red)
	e.PointerDown(cellCenter(Cell{0, 0}), MouseButtonLeft)
	e.SelectTool(ToolEraser)
	e.PointerMove(cellCenter(Cell{1, 0}))
	// The in-flight stroke keeps the pencil it started with.
	if c, _ := buf.CellColor(Cell{1, 0}); c != red {
		t.Errorf("cell (1,0) = %v, want red from the captured pencil", c)
	}
	e.PointerUp(cellCenter(Cell{1, 0}), MouseButtonLeft)
	if e.ActiveTool() != ToolEraser {
		t.Errorf("tool = %v, want eraser for the next gesture", e.ActiveTool())
	}
}

func TestImplicitUpOnNestedDown(t *testing.T) {
	e, buf := newTestEngine(t)
	e.SetActiveColor(red)
	e.PointerDown(cellCenter(Cell{0, 0}), MouseButtonLeft)
	// A second down without an up starts a fresh stroke.
	e.PointerDown(cellCenter(Cell{3, 3}), MouseButtonLeft)
	if e.State() != StateStroking {
		t.Fatalf("state = %v, want stroking", e.State())
	}
	// Moving back to (0,0) interpolates from (3,3), not from the old stroke.
	e.PointerMove(cellCenter(Cell{3, 0}))
	if c, _ := buf.CellColor(Cell{3, 1}); c != red {
		t.Errorf("new stroke did not start at (3,3): (3,1) = %v", c)
	}
}

func TestSetBufferAbandonsGesture(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetActiveColor(red)
	e.PointerDown(cellCenter(Cell{0, 0}), MouseButtonLeft)

	next, _ := NewPixelBuffer(4, 4)
	e.SetBuffer(next)
	if e.State() != StateIdle {
		t.Fatalf("state = %v, want idle after buffer swap", e.State())
	}
	e.PointerMove(cellCenter(Cell{3, 0}))
	if c, _ := next.CellColor(Cell{1, 0}); c != Transparent {
		t.Errorf("abandoned stroke painted the new buffer: %v", c)
	}
}

func TestIsometricPainting(t *testing.T) {
	buf, _ := NewPixelBuffer(4, 4)
	vp := NewViewport(0.1, 6.4)
	vp.SetProjection(ProjectionIsometric)
	e := NewEngine(buf, vp, Geometry{CellSize: 20, TileWidth: 20, TileHeight: 10, IsoOrigin: Vec2{X: 40}})
	e.SetActiveColor(red)

	// Click the diamond center of cell (2, 1).
	center := e.Transform().CellToScreen(Cell{2, 1})
	e.PointerDown(center, MouseButtonLeft)
	if c, _ := buf.CellColor(Cell{2, 1}); c != red {
		t.Errorf("iso click missed: cell (2,1) = %v", c)
	}
	e.PointerUp(center, MouseButtonLeft)
}

func TestPickOnEmptyCellReadsTransparent(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetActiveColor(red)
	e.PointerDown(cellCenter(Cell{3, 3}), MouseButtonRight)
	if e.ActiveColor() != Transparent {
		t.Errorf("active color = %v, want transparent", e.ActiveColor())
	}
}
