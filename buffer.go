package spritedit

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// PixelBuffer owns a sprite's raw pixel data. The sprite is a grid of
// widthCells x heightCells cells, each subdivided into pixelsPerCell x
// pixelsPerCell pixels, stored as one dense straight-alpha RGBA array in
// row-major pixel order. The buffer length is always exactly
// widthCells * heightCells * pixelsPerCell^2 * 4 bytes.
type PixelBuffer struct {
	widthCells    int
	heightCells   int
	pixelsPerCell int
	pix           []byte // RGBA, row-major, 4 bytes per pixel
}

// NewPixelBuffer creates a fully transparent buffer of the given cell
// dimensions with pixelsPerCell = 1.
func NewPixelBuffer(widthCells, heightCells int) (*PixelBuffer, error) {
	if widthCells <= 0 || heightCells <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cells", ErrInvalidDimension, widthCells, heightCells)
	}
	return &PixelBuffer{
		widthCells:    widthCells,
		heightCells:   heightCells,
		pixelsPerCell: 1,
		pix:           make([]byte, widthCells*heightCells*4),
	}, nil
}

// WidthCells returns the grid width in cells.
func (b *PixelBuffer) WidthCells() int { return b.widthCells }

// HeightCells returns the grid height in cells.
func (b *PixelBuffer) HeightCells() int { return b.heightCells }

// PixelsPerCell returns the resolution of one cell's sub-grid.
func (b *PixelBuffer) PixelsPerCell() int { return b.pixelsPerCell }

// WidthPx returns the buffer width in pixels.
func (b *PixelBuffer) WidthPx() int { return b.widthCells * b.pixelsPerCell }

// HeightPx returns the buffer height in pixels.
func (b *PixelBuffer) HeightPx() int { return b.heightCells * b.pixelsPerCell }

// Get returns the color stored at pixel (x, y).
func (b *PixelBuffer) Get(x, y int) (Color, error) {
	if x < 0 || y < 0 || x >= b.WidthPx() || y >= b.HeightPx() {
		return Color{}, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	i := (y*b.WidthPx() + x) * 4
	return Color{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}, nil
}

// Set overwrites pixel (x, y) with c, including its alpha. Painting is a
// direct store, never an over-compositing blend.
func (b *PixelBuffer) Set(x, y int, c Color) error {
	if x < 0 || y < 0 || x >= b.WidthPx() || y >= b.HeightPx() {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	i := (y*b.WidthPx() + x) * 4
	b.pix[i] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = c.A
	return nil
}

// SetCell writes c to every pixel of the given cell's sub-grid.
func (b *PixelBuffer) SetCell(cell Cell, c Color) error {
	if !b.InCanvas(cell) {
		return fmt.Errorf("%w: cell (%d, %d)", ErrOutOfCanvas, cell.X, cell.Y)
	}
	ppc := b.pixelsPerCell
	for dy := 0; dy < ppc; dy++ {
		row := ((cell.Y*ppc+dy)*b.WidthPx() + cell.X*ppc) * 4
		for dx := 0; dx < ppc; dx++ {
			i := row + dx*4
			b.pix[i] = c.R
			b.pix[i+1] = c.G
			b.pix[i+2] = c.B
			b.pix[i+3] = c.A
		}
	}
	return nil
}

// CellColor returns the cell's representative color: the top-left pixel of
// its sub-grid. Tools that compare cells (flood fill, color picker) read
// through this.
func (b *PixelBuffer) CellColor(cell Cell) (Color, error) {
	if !b.InCanvas(cell) {
		return Color{}, fmt.Errorf("%w: cell (%d, %d)", ErrOutOfCanvas, cell.X, cell.Y)
	}
	return b.Get(cell.X*b.pixelsPerCell, cell.Y*b.pixelsPerCell)
}

// InCanvas reports whether the cell lies inside the grid.
func (b *PixelBuffer) InCanvas(cell Cell) bool {
	return cell.X >= 0 && cell.Y >= 0 && cell.X < b.widthCells && cell.Y < b.heightCells
}

// ResizeResolution reallocates the buffer for a new pixelsPerCell value,
// remapping the existing content by nearest-neighbor sampling. Each old
// cell block maps onto the corresponding new block; a lossy downsample is
// allowed. The cell dimensions are unchanged.
func (b *PixelBuffer) ResizeResolution(newPixelsPerCell int) error {
	if newPixelsPerCell <= 0 {
		return fmt.Errorf("%w: %d pixels per cell", ErrInvalidDimension, newPixelsPerCell)
	}
	if newPixelsPerCell == b.pixelsPerCell {
		return nil
	}

	src := &image.NRGBA{
		Pix:    b.pix,
		Stride: b.WidthPx() * 4,
		Rect:   image.Rect(0, 0, b.WidthPx(), b.HeightPx()),
	}
	dstW := b.widthCells * newPixelsPerCell
	dstH := b.heightCells * newPixelsPerCell
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)

	b.pixelsPerCell = newPixelsPerCell
	b.pix = dst.Pix
	return nil
}

// LoadFromImage replaces the buffer wholesale with decoded straight-alpha
// RGBA data at its native size. One image pixel becomes one cell:
// pixelsPerCell resets to 1. On error the previous content is retained.
func (b *PixelBuffer) LoadFromImage(rgba []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if len(rgba) != width*height*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrDimensionMismatch, len(rgba), width, height)
	}
	b.widthCells = width
	b.heightCells = height
	b.pixelsPerCell = 1
	b.pix = append([]byte(nil), rgba...)
	return nil
}

// RGBA returns the buffer's pixel dimensions and a copy of its raw RGBA
// bytes, ready for a save/export collaborator to encode.
func (b *PixelBuffer) RGBA() (widthPx, heightPx int, pix []byte) {
	return b.WidthPx(), b.HeightPx(), append([]byte(nil), b.pix...)
}
