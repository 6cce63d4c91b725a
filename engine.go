package spritedit

// EngineState is the pointer state machine's current state.
type EngineState uint8

const (
	StateIdle     EngineState = iota // no gesture in progress
	StateStroking                    // primary button held, stroke committing
	StatePicking                     // color pick held (secondary or picker tool)
)

// Stroke is the ephemeral record of one pointer-down-to-up gesture: the
// tool and color captured at pointer-down and the ordered cells visited.
// Consecutive cells are always identical or 4-connected; interpolation
// guarantees no gaps. Effects are committed to the buffer as the stroke
// grows; the record itself is discarded on pointer-up.
type Stroke struct {
	Tool  Tool
	Color Color
	Cells []Cell
}

// last returns the most recently visited cell.
func (s *Stroke) last() Cell { return s.Cells[len(s.Cells)-1] }

// Engine converts raw pointer events into ordered pixel writes against the
// buffer, resolving positions through the viewport's coordinate transform.
// All methods run synchronously on the caller's event turn.
type Engine struct {
	buf  *PixelBuffer
	vp   *Viewport
	geom Geometry

	tool  Tool
	color Color

	state  EngineState
	stroke *Stroke
}

// NewEngine creates an engine over the given buffer and viewport with the
// pencil selected and an opaque white active color.
func NewEngine(buf *PixelBuffer, vp *Viewport, geom Geometry) *Engine {
	return &Engine{
		buf:   buf,
		vp:    vp,
		geom:  geom,
		tool:  NewTool(ToolPencil),
		color: Color{R: 255, G: 255, B: 255, A: 255},
	}
}

// SetBuffer points the engine at a replacement buffer (new sprite or image
// load). An in-flight gesture is abandoned.
func (e *Engine) SetBuffer(buf *PixelBuffer) {
	e.buf = buf
	e.state = StateIdle
	e.stroke = nil
}

// State returns the current state-machine state.
func (e *Engine) State() EngineState { return e.state }

// ActiveTool returns the selected tool's kind.
func (e *Engine) ActiveTool() ToolKind { return e.tool.Kind() }

// SelectTool switches the active tool. Takes effect on the next
// pointer-down; an in-flight stroke keeps the tool it started with.
func (e *Engine) SelectTool(kind ToolKind) {
	e.tool = NewTool(kind)
}

// ActiveColor returns the current paint color.
func (e *Engine) ActiveColor() Color { return e.color }

// SetActiveColor sets the paint color used by subsequent strokes.
func (e *Engine) SetActiveColor(c Color) { e.color = c }

// Transform returns the coordinate transform for the current viewport and
// buffer state.
func (e *Engine) Transform() Transform {
	return e.vp.Transform(e.buf, e.geom)
}

// PointerDown begins a gesture at a screen position. A down-point outside
// the canvas leaves the engine idle. The secondary button picks the color
// under the pointer regardless of the selected tool. A pointer-down that
// arrives while a stroke is active (which single-pointer input should never
// produce) is treated as an implicit pointer-up followed by this down.
func (e *Engine) PointerDown(screen Vec2, button MouseButton) {
	if e.state != StateIdle {
		e.PointerUp(screen, button)
	}

	cell, err := e.Transform().ScreenToCell(screen)
	if err != nil {
		return // outside canvas: silent no-op
	}

	switch {
	case button == MouseButtonRight:
		e.pickColor(cell)
		e.state = StatePicking

	case button == MouseButtonLeft && e.tool.Kind() == ToolPicker:
		e.pickColor(cell)
		e.tool = NewTool(ToolPencil)
		e.state = StatePicking

	case button == MouseButtonLeft:
		e.stroke = &Stroke{Tool: e.tool, Color: e.color, Cells: []Cell{cell}}
		e.state = StateStroking
		_ = e.stroke.Tool.Apply(e.buf, cell, e.stroke.Color)
	}
}

// PointerMove extends an active stroke. The integer grid-line path from the
// last recorded cell to the new one is rasterized so sparse move events
// cannot skip cells; every path cell gets the tool applied in order, even
// cells the stroke already visited. Positions outside the canvas are
// ignored; the stroke resumes interpolation from its last cell when the
// pointer re-enters.
func (e *Engine) PointerMove(screen Vec2) {
	if e.state != StateStroking {
		return
	}
	cell, err := e.Transform().ScreenToCell(screen)
	if err != nil {
		return
	}
	last := e.stroke.last()
	if cell == last {
		return
	}

	if !e.stroke.Tool.Continuous() {
		// Fill acts once per pointer-down; record the interpolated path
		// without applying the tool so the stroke stays cell-adjacent.
		e.stroke.Cells = append(e.stroke.Cells, LineCells(last, cell)[1:]...)
		return
	}
	for _, c := range LineCells(last, cell)[1:] {
		_ = e.stroke.Tool.Apply(e.buf, c, e.stroke.Color)
		e.stroke.Cells = append(e.stroke.Cells, c)
	}
}

// PointerUp ends the gesture. Stroke effects are already committed; the
// stroke record is discarded.
func (e *Engine) PointerUp(Vec2, MouseButton) {
	e.state = StateIdle
	e.stroke = nil
}

// pickColor reads the cell's color into the active paint color. Never
// mutates the buffer.
func (e *Engine) pickColor(cell Cell) {
	if c, err := e.buf.CellColor(cell); err == nil {
		e.color = c
	}
}
