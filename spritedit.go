package spritedit

// Color is a straight-alpha RGBA color with 8-bit channels. The zero value
// is fully transparent. Painting stores colors directly; no premultiplication
// or blending happens inside the engine.
type Color struct {
	R, G, B, A uint8
}

// Transparent is the color an eraser writes and a new buffer starts with.
var Transparent = Color{}

// Vec2 is a 2D vector used for screen and viewport positions, pan offsets,
// and deltas throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Cell is an integer grid-cell coordinate. (0, 0) is the top-left cell.
type Cell struct {
	X, Y int
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Projection selects the screen-layout rule mapping grid cells to viewport
// positions.
type Projection uint8

const (
	ProjectionFlat      Projection = iota // cells are axis-aligned squares
	ProjectionIsometric                   // cells are 2:1 diamonds
)

// String returns the projection name.
func (p Projection) String() string {
	if p == ProjectionIsometric {
		return "Isometric"
	}
	return "Flat"
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (paint) button
	MouseButtonRight                     // secondary button (color pick override)
	MouseButtonMiddle                    // middle button (host pan gesture)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModMeta).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
