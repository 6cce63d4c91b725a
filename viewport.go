package spritedit

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewAnim holds active glide tweens for zoom and pan.
type viewAnim struct {
	tweenZoom *gween.Tween
	tweenX    *gween.Tween
	tweenY    *gween.Tween
	doneZoom  bool
	doneX     bool
	doneY     bool
}

// Viewport tracks the view into the canvas: zoom level, pan offset, and the
// active projection. Pointer and command handlers mutate it; the coordinate
// transform and the renderer consume it.
type Viewport struct {
	// Zoom is the scale factor, always within [MinZoom, MaxZoom].
	Zoom float64
	// Pan is the screen-space offset of the viewport origin. Unbounded:
	// the user may scroll the canvas fully out of view.
	Pan Vec2
	// Projection selects flat or isometric cell layout.
	Projection Projection

	minZoom float64
	maxZoom float64

	anim *viewAnim
}

// NewViewport creates a viewport at the defaults (zoom 1, pan zero, flat
// projection) with the given zoom clamp range.
func NewViewport(minZoom, maxZoom float64) *Viewport {
	return &Viewport{
		Zoom:    clampF(1, minZoom, maxZoom),
		minZoom: minZoom,
		maxZoom: maxZoom,
	}
}

// MinZoom returns the lower zoom clamp bound.
func (v *Viewport) MinZoom() float64 { return v.minZoom }

// MaxZoom returns the upper zoom clamp bound.
func (v *Viewport) MaxZoom() float64 { return v.maxZoom }

// ZoomBy multiplies the zoom by factor, clamped to [MinZoom, MaxZoom], and
// adjusts the pan offset so that anchorScreen maps to the same
// viewport-space point before and after (zoom-to-cursor). A factor that
// would push past a clamp boundary already reached is a no-op.
func (v *Viewport) ZoomBy(factor float64, anchorScreen Vec2) {
	newZoom := clampF(v.Zoom*factor, v.minZoom, v.maxZoom)
	if newZoom == v.Zoom {
		return
	}
	v.anim = nil
	// Keep (anchor - pan) / zoom invariant.
	v.Pan = anchorScreen.Sub(anchorScreen.Sub(v.Pan).Scale(newZoom / v.Zoom))
	v.Zoom = newZoom
}

// PanBy adds a screen-space delta to the pan offset. Unconstrained.
func (v *Viewport) PanBy(delta Vec2) {
	v.anim = nil
	v.Pan = v.Pan.Add(delta)
}

// SetProjection swaps between flat and isometric layout. Zoom and pan are
// untouched.
func (v *Viewport) SetProjection(p Projection) {
	v.Projection = p
}

// Reset snaps back to the defaults: zoom 1, pan zero, flat projection.
// Called on new sprite.
func (v *Viewport) Reset() {
	v.anim = nil
	v.Zoom = clampF(1, v.minZoom, v.maxZoom)
	v.Pan = Vec2{}
	v.Projection = ProjectionFlat
}

// GlideTo animates zoom and pan to the given targets over duration seconds.
// The target zoom is clamped. Call Update each frame to advance; any direct
// ZoomBy/PanBy cancels the glide.
func (v *Viewport) GlideTo(zoom float64, pan Vec2, duration float32, easeFn ease.TweenFunc) {
	zoom = clampF(zoom, v.minZoom, v.maxZoom)
	v.anim = &viewAnim{
		tweenZoom: gween.New(float32(v.Zoom), float32(zoom), duration, easeFn),
		tweenX:    gween.New(float32(v.Pan.X), float32(pan.X), duration, easeFn),
		tweenY:    gween.New(float32(v.Pan.Y), float32(pan.Y), duration, easeFn),
	}
}

// GlideHome animates back to zoom 1 and pan zero (reset view).
func (v *Viewport) GlideHome(duration float32) {
	v.GlideTo(1, Vec2{}, duration, ease.OutQuad)
}

// Update advances an active glide. dt is in seconds.
func (v *Viewport) Update(dt float32) {
	a := v.anim
	if a == nil {
		return
	}
	if !a.doneZoom {
		val, done := a.tweenZoom.Update(dt)
		// The tween runs in float32; rounding can land a hair past the
		// clamp bounds.
		v.Zoom = clampF(float64(val), v.minZoom, v.maxZoom)
		a.doneZoom = done
	}
	if !a.doneX {
		val, done := a.tweenX.Update(dt)
		v.Pan.X = float64(val)
		a.doneX = done
	}
	if !a.doneY {
		val, done := a.tweenY.Update(dt)
		v.Pan.Y = float64(val)
		a.doneY = done
	}
	if a.doneZoom && a.doneX && a.doneY {
		v.anim = nil
	}
}

// Transform builds the coordinate transform for the current viewport state,
// the given buffer, and the projection geometry.
func (v *Viewport) Transform(buf *PixelBuffer, geom Geometry) Transform {
	t := Transform{
		Zoom:       v.Zoom,
		Pan:        v.Pan,
		Projection: v.Projection,
		CellSize:   geom.CellSize,
		TileWidth:  geom.TileWidth,
		TileHeight: geom.TileHeight,
		Origin:     geom.IsoOrigin,
	}
	if buf != nil {
		t.Cols = buf.WidthCells()
		t.Rows = buf.HeightCells()
		t.PixelsPerCell = buf.PixelsPerCell()
	}
	return t
}

// Geometry carries the rendering constants the transform is parameterized
// by: the flat cell edge at zoom 1, the isometric diamond dimensions, and
// the isometric origin (top vertex of cell (0, 0)). These are injected
// config values, not properties of the sprite.
type Geometry struct {
	CellSize   float64
	TileWidth  float64
	TileHeight float64
	IsoOrigin  Vec2
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
