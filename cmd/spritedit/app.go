package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/shreyaspotnis/spritedit"
)

// loadResult carries a decoded image from a background loader back to the
// game loop, tagged with its load generation.
type loadResult struct {
	gen    uint64
	rgba   []byte
	width  int
	height int
	err    error
}

// App is the Ebiten host around the editor core: it feeds pointer and
// keyboard input in, renders frames out, and owns the modal overlays.
type App struct {
	editor  *spritedit.Editor
	palette *Palette
	prompt  *Prompt

	loads   chan loadResult
	configs <-chan spritedit.Config

	canvas     *ebiten.Image // offscreen document image, WritePixels target
	canvasW    int
	canvasH    int
	leftDown   bool
	rightDown  bool
	midPanning bool
	lastCursor spritedit.Vec2

	savePath string
	status   string
}

func newApp(editor *spritedit.Editor) *App {
	a := &App{
		editor:  editor,
		palette: NewPalette(editor.Registry()),
		prompt:  NewPrompt(),
		loads:   make(chan loadResult, 4),
	}
	editor.SetHooks(spritedit.HostHooks{
		RequestNewSprite: a.promptNewSprite,
		OpenFile:         a.promptOpenFile,
		SaveFile:         a.promptSaveFile,
		LoadFromURL:      a.promptLoadURL,
		Generate:         a.promptGenerate,
		ShowPalette:      func() { a.palette.Open() },
	})
	// Start with the canvas centered in the window.
	a.centerView()
	return a
}

func (a *App) centerView() {
	cfg := a.editor.Config()
	buf := a.editor.Buffer()
	vp := a.editor.Viewport()
	w := float64(buf.WidthCells()) * cfg.CellSize
	h := float64(buf.HeightCells()) * cfg.CellSize
	vp.Pan = spritedit.Vec2{X: (screenW - w*vp.Zoom) / 2, Y: (screenH - h*vp.Zoom) / 2}
}

// watchConfig applies hot-reloaded configs. Only the view parameters take
// effect live; document size defaults apply to the next new sprite.
func (a *App) watchConfig(w *spritedit.ConfigWatcher) {
	a.configs = w.Events
	go func() {
		for err := range w.Errors {
			log.Printf("spritedit: config reload: %v", err)
		}
	}()
}

func (a *App) Update() error {
	// Background load results and config reloads first, so a frame never
	// paints onto a document that is about to be replaced.
	a.drainLoads()
	a.drainConfigs()

	// Modal overlays capture all input while open.
	if a.prompt.Update() {
		return nil
	}
	if done, id := a.palette.Update(); done && id != "" {
		if err := a.editor.Registry().Invoke(id); err != nil {
			a.status = err.Error()
		}
	}
	if a.palette.IsOpen() {
		return nil
	}

	a.handleShortcuts()
	a.handlePointer()
	a.editor.Update(1.0 / 60)
	return nil
}

// readModifiers snapshots the held modifier keys.
func readModifiers() spritedit.KeyModifiers {
	var mods spritedit.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= spritedit.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= spritedit.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= spritedit.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= spritedit.ModMeta
	}
	return mods
}

// shortcutKeys maps the physical keys that can appear in a shortcut to
// their canonical names.
var shortcutKeys = func() map[ebiten.Key]string {
	m := make(map[ebiten.Key]string)
	for k := ebiten.KeyA; k <= ebiten.KeyZ; k++ {
		m[k] = string(rune('A' + k - ebiten.KeyA))
	}
	for k := ebiten.KeyDigit0; k <= ebiten.KeyDigit9; k++ {
		m[k] = string(rune('0' + k - ebiten.KeyDigit0))
	}
	m[ebiten.KeyEqual] = "+"
	m[ebiten.KeyKPAdd] = "+"
	m[ebiten.KeyMinus] = "-"
	m[ebiten.KeyKPSubtract] = "-"
	return m
}()

func (a *App) handleShortcuts() {
	mods := readModifiers()
	for key, name := range shortcutKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		combo := spritedit.KeyCombo{Mods: mods, Key: name}
		if name == "+" || name == "-" {
			// "+" usually arrives as Shift+Equal; the shift is part of
			// the key, not a chord.
			combo.Mods &^= spritedit.ModShift
		}
		handled, err := a.editor.HandleKey(combo)
		if err != nil {
			a.status = err.Error()
		}
		if handled {
			return
		}
	}
}

func (a *App) handlePointer() {
	cx, cy := ebiten.CursorPosition()
	cursor := spritedit.Vec2{X: float64(cx), Y: float64(cy)}
	engine := a.editor.Engine()
	vp := a.editor.Viewport()

	// Wheel zoom, anchored at the cursor.
	if _, wy := ebiten.Wheel(); wy != 0 {
		vp.ZoomBy(math.Pow(1.1, wy), cursor)
	}

	// Middle-button drag pans.
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle):
		a.midPanning = true
	case !ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		a.midPanning = false
	}
	if a.midPanning {
		vp.PanBy(cursor.Sub(a.lastCursor))
	}
	a.lastCursor = cursor

	// Primary button paints, secondary picks.
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		a.leftDown = true
		engine.PointerDown(cursor, spritedit.MouseButtonLeft)
	case a.leftDown && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		engine.PointerMove(cursor)
	case a.leftDown:
		a.leftDown = false
		// Feed the release position through before ending the stroke so
		// the final cells of a fast drag get painted.
		engine.PointerMove(cursor)
		engine.PointerUp(cursor, spritedit.MouseButtonLeft)
	}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		a.rightDown = true
		engine.PointerDown(cursor, spritedit.MouseButtonRight)
	case a.rightDown && !ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		a.rightDown = false
		engine.PointerUp(cursor, spritedit.MouseButtonRight)
	}
}

func (a *App) drainLoads() {
	for {
		select {
		case res := <-a.loads:
			if res.err != nil {
				a.status = res.err.Error()
				continue
			}
			applied, err := a.editor.CommitLoad(res.gen, res.rgba, res.width, res.height)
			if err != nil {
				a.status = err.Error()
				continue
			}
			if applied {
				a.centerView()
				a.status = fmt.Sprintf("loaded %dx%d", res.width, res.height)
			}
		default:
			return
		}
	}
}

func (a *App) drainConfigs() {
	if a.configs == nil {
		return
	}
	select {
	case cfg, ok := <-a.configs:
		if ok {
			a.applyConfig(cfg)
		}
	default:
	}
}

func (a *App) applyConfig(cfg spritedit.Config) {
	// Rebuild the editor around the new parameters; the document survives.
	w, h, pix := a.editor.ExportRGBA()
	next, err := spritedit.NewEditor(cfg)
	if err != nil {
		log.Printf("spritedit: config reload rejected: %v", err)
		return
	}
	gen := next.BeginLoad()
	if _, err := next.CommitLoad(gen, pix, w, h); err != nil {
		log.Printf("spritedit: config reload lost document: %v", err)
	}
	a.editor = next
	a.palette = NewPalette(next.Registry())
	next.SetHooks(spritedit.HostHooks{
		RequestNewSprite: a.promptNewSprite,
		OpenFile:         a.promptOpenFile,
		SaveFile:         a.promptSaveFile,
		LoadFromURL:      a.promptLoadURL,
		Generate:         a.promptGenerate,
		ShowPalette:      func() { a.palette.Open() },
	})
	a.centerView()
	a.status = "config reloaded"
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

var (
	checkerLight = color.RGBA{R: 0x3a, G: 0x3a, B: 0x42, A: 0xff}
	checkerDark  = color.RGBA{R: 0x2e, G: 0x2e, B: 0x36, A: 0xff}
	gridColor    = color.RGBA{R: 0x55, G: 0x55, B: 0x60, A: 0xff}
	gridMajor    = color.RGBA{R: 0x80, G: 0x80, B: 0x8c, A: 0xff}
	hoverColor   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb0}
	bgColor      = color.RGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff}
)

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	frame := a.editor.Frame()
	if frame.Projection == spritedit.ProjectionIsometric {
		a.drawIsometric(screen, frame)
	} else {
		a.drawFlat(screen, frame)
	}
	a.drawHover(screen, frame)
	a.drawStatus(screen, frame)

	a.palette.Draw(screen)
	a.prompt.Draw(screen)
}

// drawFlat blits the document once through an offscreen image and scales it
// with nearest-neighbor filtering, then overlays the checkerboard and grid.
func (a *App) drawFlat(screen *ebiten.Image, frame spritedit.Frame) {
	tr := frame.Transform
	cell := float32(tr.CellSize * frame.Zoom)
	originX := float32(frame.Pan.X)
	originY := float32(frame.Pan.Y)

	// Checkerboard shows through transparent pixels.
	for y := 0; y < frame.HeightCells; y++ {
		for x := 0; x < frame.WidthCells; x++ {
			c := checkerLight
			if (x+y)%2 == 1 {
				c = checkerDark
			}
			vector.DrawFilledRect(screen,
				originX+float32(x)*cell, originY+float32(y)*cell,
				cell, cell, c, false)
		}
	}

	if a.canvas == nil || a.canvasW != frame.WidthPx || a.canvasH != frame.HeightPx {
		a.canvas = ebiten.NewImage(frame.WidthPx, frame.HeightPx)
		a.canvasW, a.canvasH = frame.WidthPx, frame.HeightPx
	}
	a.canvas.WritePixels(frame.Pixels)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	scale := frame.Zoom * tr.CellSize / float64(max(frame.PixelsPerCell, 1))
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(frame.Pan.X, frame.Pan.Y)
	screen.DrawImage(a.canvas, op)

	if !frame.ShowGrid {
		return
	}
	w := float32(frame.WidthCells) * cell
	h := float32(frame.HeightCells) * cell
	for x := 0; x <= frame.WidthCells; x++ {
		fx := originX + float32(x)*cell
		vector.StrokeLine(screen, fx, originY, fx, originY+h, 1, gridColor, false)
	}
	for y := 0; y <= frame.HeightCells; y++ {
		fy := originY + float32(y)*cell
		vector.StrokeLine(screen, originX, fy, originX+w, fy, 1, gridColor, false)
	}
	vector.StrokeRect(screen, originX, originY, w, h, 1, gridMajor, false)
}

// drawIsometric draws each cell as a filled diamond. Sub-cell pixel detail
// is collapsed to the cell color in this view.
func (a *App) drawIsometric(screen *ebiten.Image, frame spritedit.Frame) {
	tr := frame.Transform
	ppc := max(frame.PixelsPerCell, 1)
	for y := 0; y < frame.HeightCells; y++ {
		for x := 0; x < frame.WidthCells; x++ {
			cell := spritedit.Cell{X: x, Y: y}
			c := frame.PixelColor(x*ppc, y*ppc)
			d := tr.CellDiamond(cell)
			var pts [4]spritedit.Vec2
			for i, v := range d {
				pts[i] = tr.ViewportToScreen(v)
			}
			if c.A == 0 {
				if frame.ShowGrid {
					strokeDiamond(screen, pts, 1, gridColor)
				}
				continue
			}
			fillDiamond(screen, pts, c)
			if frame.ShowGrid {
				strokeDiamond(screen, pts, 1, gridColor)
			}
		}
	}
}

var whitePixel *ebiten.Image

// ensureWhitePixel returns a 1x1 white subimage of a 3x3 texture; the inset
// keeps linear filtering at triangle edges from sampling outside it.
func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(img.Bounds().Inset(1)).(*ebiten.Image)
	}
	return whitePixel
}

var diamondIndices = []uint16{0, 1, 2, 0, 2, 3}

func fillDiamond(dst *ebiten.Image, pts [4]spritedit.Vec2, c spritedit.Color) {
	white := ensureWhitePixel()
	sx := float32(white.Bounds().Min.X)
	sy := float32(white.Bounds().Min.Y)
	cr := float32(c.R) / 255
	cg := float32(c.G) / 255
	cb := float32(c.B) / 255
	ca := float32(c.A) / 255

	verts := make([]ebiten.Vertex, 4)
	for i, p := range pts {
		verts[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: sx, SrcY: sy,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	dst.DrawTriangles(verts, diamondIndices, white, nil)
}

func strokeDiamond(dst *ebiten.Image, pts [4]spritedit.Vec2, width float32, c color.RGBA) {
	for i := range pts {
		j := (i + 1) % 4
		vector.StrokeLine(dst,
			float32(pts[i].X), float32(pts[i].Y),
			float32(pts[j].X), float32(pts[j].Y),
			width, c, false)
	}
}

func (a *App) drawHover(screen *ebiten.Image, frame spritedit.Frame) {
	cx, cy := ebiten.CursorPosition()
	cursor := spritedit.Vec2{X: float64(cx), Y: float64(cy)}
	cell, err := frame.Transform.ScreenToCell(cursor)
	if err != nil {
		return
	}
	if frame.Projection == spritedit.ProjectionIsometric {
		d := frame.Transform.CellDiamond(cell)
		var pts [4]spritedit.Vec2
		for i, v := range d {
			pts[i] = frame.Transform.ViewportToScreen(v)
		}
		strokeDiamond(screen, pts, 2, hoverColor)
		return
	}
	r := frame.Transform.CellRect(cell)
	tl := frame.Transform.ViewportToScreen(spritedit.Vec2{X: r.X, Y: r.Y})
	size := float32(r.Width * frame.Zoom)
	vector.StrokeRect(screen, float32(tl.X), float32(tl.Y), size, size, 2, hoverColor, false)
}

func (a *App) drawStatus(screen *ebiten.Image, frame spritedit.Frame) {
	engine := a.editor.Engine()
	c := engine.ActiveColor()
	line := fmt.Sprintf("%s  #%02X%02X%02X%02X  %dx%d  zoom %.2f  %s",
		engine.ActiveTool(), c.R, c.G, c.B, c.A,
		frame.WidthCells, frame.HeightCells, frame.Zoom, frame.Projection)
	if a.status != "" {
		line += "  |  " + a.status
	}
	ebitenutil.DebugPrintAt(screen, line, 8, screenH-20)
}
