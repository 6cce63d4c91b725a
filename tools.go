package spritedit

import "errors"

// ToolKind identifies one of the built-in tools.
type ToolKind uint8

const (
	ToolPencil ToolKind = iota // paints the active color
	ToolEraser                 // paints transparent
	ToolFill                   // flood-fills a connected region
	ToolPicker                 // reads a color from the canvas
)

// String returns the tool's display name.
func (k ToolKind) String() string {
	switch k {
	case ToolEraser:
		return "Eraser"
	case ToolFill:
		return "Fill"
	case ToolPicker:
		return "Color Picker"
	default:
		return "Pencil"
	}
}

// Tool is the capability a stroke applies at each visited cell. Exactly one
// tool is active at a time.
type Tool interface {
	// Kind identifies the tool.
	Kind() ToolKind

	// Apply performs the tool's effect at a cell. An ErrOutOfCanvas from
	// the buffer is swallowed by the engine, never surfaced to the user.
	Apply(buf *PixelBuffer, cell Cell, color Color) error

	// Continuous reports whether the tool applies along the whole stroke
	// path. Non-continuous tools (fill, picker) act once per pointer-down.
	Continuous() bool
}

// NewTool returns the built-in tool implementation for a kind.
func NewTool(kind ToolKind) Tool {
	switch kind {
	case ToolEraser:
		return eraserTool{}
	case ToolFill:
		return fillTool{}
	case ToolPicker:
		return pickerTool{}
	default:
		return pencilTool{}
	}
}

type pencilTool struct{}

func (pencilTool) Kind() ToolKind   { return ToolPencil }
func (pencilTool) Continuous() bool { return true }
func (pencilTool) Apply(buf *PixelBuffer, cell Cell, color Color) error {
	return buf.SetCell(cell, color)
}

type eraserTool struct{}

func (eraserTool) Kind() ToolKind   { return ToolEraser }
func (eraserTool) Continuous() bool { return true }
func (eraserTool) Apply(buf *PixelBuffer, cell Cell, _ Color) error {
	return buf.SetCell(cell, Transparent)
}

type fillTool struct{}

func (fillTool) Kind() ToolKind   { return ToolFill }
func (fillTool) Continuous() bool { return false }
func (fillTool) Apply(buf *PixelBuffer, cell Cell, color Color) error {
	return FloodFill(buf, cell, color)
}

// pickerTool never mutates the buffer; the engine intercepts it and reads
// the cell color into the active paint color instead.
type pickerTool struct{}

func (pickerTool) Kind() ToolKind   { return ToolPicker }
func (pickerTool) Continuous() bool { return false }
func (pickerTool) Apply(*PixelBuffer, Cell, Color) error {
	return nil
}

// LineCells rasterizes the grid-line path from a to b, inclusive. The path
// is 4-connected: consecutive cells share an edge, so a fast stroke never
// skips over a cell even when pointer samples arrive far apart. Axis ties
// step horizontally first, deterministically.
func LineCells(a, b Cell) []Cell {
	dx := b.X - a.X
	dy := b.Y - a.Y
	sx, sy := 1, 1
	if dx < 0 {
		dx = -dx
		sx = -1
	}
	if dy < 0 {
		dy = -dy
		sy = -1
	}

	cells := make([]Cell, 0, dx+dy+1)
	x, y := a.X, a.Y
	cells = append(cells, Cell{x, y})
	err := dx - dy
	for x != b.X || y != b.Y {
		if err > 0 || (err == 0 && x != b.X) {
			x += sx
			err -= 2 * dy
		} else {
			y += sy
			err += 2 * dx
		}
		cells = append(cells, Cell{x, y})
	}
	return cells
}

// FloodFill replaces the 4-connected region of cells sharing the seed
// cell's original color with the given color. Iterative with an explicit
// stack, so deep regions cannot blow the call stack; the recolor itself
// marks cells visited, and the work stays bounded by the canvas area.
// Filling with the seed's own color is a no-op.
func FloodFill(buf *PixelBuffer, seed Cell, color Color) error {
	target, err := buf.CellColor(seed)
	if err != nil {
		return err
	}
	if target == color {
		return nil
	}

	stack := []Cell{seed}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		got, err := buf.CellColor(c)
		if err != nil {
			if errors.Is(err, ErrOutOfCanvas) {
				continue
			}
			return err
		}
		if got != target {
			continue
		}
		if err := buf.SetCell(c, color); err != nil {
			return err
		}

		stack = append(stack,
			Cell{c.X - 1, c.Y},
			Cell{c.X + 1, c.Y},
			Cell{c.X, c.Y - 1},
			Cell{c.X, c.Y + 1},
		)
	}
	return nil
}
