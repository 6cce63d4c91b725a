package spritedit

import "testing"

// Screen coordinates below assume the test editor's defaults: 20px flat
// cells at zoom 1, pan 0.

func TestInjectClickPaints(t *testing.T) {
	e := newTestEditor(t)
	e.Engine().SetActiveColor(red)
	e.InjectClick(30, 10) // cell (1, 0)
	e.DrainInjected()

	if c, _ := e.Buffer().CellColor(Cell{1, 0}); c != red {
		t.Errorf("cell (1,0) = %v, want red", c)
	}
	if e.Engine().State() != StateIdle {
		t.Errorf("state = %v after click, want idle", e.Engine().State())
	}
}

func TestInjectDragPaintsGapFreeLine(t *testing.T) {
	e := newTestEditor(t)
	e.Engine().SetActiveColor(red)
	// Two samples only: press in cell (0,0), release in cell (3,0). The
	// stroke interpolation must still cover the whole row.
	e.InjectDrag(10, 10, 70, 10, 2)
	e.DrainInjected()

	for x := 0; x < 4; x++ {
		if c, _ := e.Buffer().CellColor(Cell{x, 0}); c != red {
			t.Errorf("cell (%d,0) = %v, want red", x, c)
		}
	}
}

func TestInjectDragInterpolatedSteps(t *testing.T) {
	e := newTestEditor(t)
	e.Engine().SetActiveColor(blue)
	e.InjectDrag(10, 10, 10, 70, 8)
	e.DrainInjected()

	for y := 0; y < 4; y++ {
		if c, _ := e.Buffer().CellColor(Cell{0, y}); c != blue {
			t.Errorf("cell (0,%d) = %v, want blue", y, c)
		}
	}
	if c, _ := e.Buffer().CellColor(Cell{1, 0}); c != Transparent {
		t.Errorf("column 1 painted: %v", c)
	}
}

func TestInjectReleaseExtendsStroke(t *testing.T) {
	e := newTestEditor(t)
	e.Engine().SetActiveColor(red)
	// Press and release in different cells with no move in between: the
	// release position must still be rasterized into the stroke.
	e.InjectPress(10, 10)
	e.InjectRelease(50, 10)
	e.DrainInjected()

	for x := 0; x < 3; x++ {
		if c, _ := e.Buffer().CellColor(Cell{x, 0}); c != red {
			t.Errorf("cell (%d,0) = %v, want red", x, c)
		}
	}
	if e.Engine().State() != StateIdle {
		t.Errorf("state = %v after release, want idle", e.Engine().State())
	}
}

func TestStepConsumesOneEvent(t *testing.T) {
	e := newTestEditor(t)
	e.Engine().SetActiveColor(red)
	e.InjectClick(10, 10)

	if !e.Step() {
		t.Fatal("Step returned false with a queued event")
	}
	if e.Engine().State() != StateStroking {
		t.Errorf("state after press = %v, want stroking", e.Engine().State())
	}
	if !e.Step() {
		t.Fatal("Step returned false with the release still queued")
	}
	if e.Engine().State() != StateIdle {
		t.Errorf("state after release = %v, want idle", e.Engine().State())
	}
	if e.Step() {
		t.Error("Step returned true on an empty queue")
	}
}

func TestInjectFillOnce(t *testing.T) {
	e := newTestEditor(t)
	for y := 0; y < 4; y++ {
		e.Buffer().SetCell(Cell{2, y}, green)
	}
	e.Registry().Invoke("tool.fill")
	e.Engine().SetActiveColor(red)

	e.InjectDrag(10, 10, 70, 10, 4) // drag from left region across the wall
	e.DrainInjected()

	if c, _ := e.Buffer().CellColor(Cell{1, 3}); c != red {
		t.Errorf("left region = %v, want red", c)
	}
	if c, _ := e.Buffer().CellColor(Cell{3, 0}); c != Transparent {
		t.Errorf("right region filled by a drag: %v", c)
	}
}
