// Package spritedit is the canvas editing engine behind a pixel-sprite
// editor: a fixed-resolution RGBA pixel buffer, the coordinate transforms
// that map pointer positions onto it in flat or isometric projection, a
// zoom/pan viewport, the tool state machine that turns pointer gestures
// into pixel writes, and a command registry that unifies keyboard
// shortcuts with a searchable command palette.
//
// The engine is headless by design. It never opens windows, decodes
// images, or touches the network; hosts feed it pointer and key events
// and read back frame snapshots to draw. A complete Ebitengine host
// lives in cmd/spritedit.
//
// # Quick start
//
//	ed, err := spritedit.NewEditor(spritedit.DefaultConfig())
//	if err != nil { ... }
//	ed.Engine().SelectTool(spritedit.ToolPencil)
//	ed.Engine().SetActiveColor(spritedit.Color{R: 255, A: 255})
//	ed.Engine().PointerDown(spritedit.Vec2{X: 12, Y: 7}, spritedit.MouseButtonLeft)
//	ed.Engine().PointerMove(spritedit.Vec2{X: 90, Y: 7})
//	ed.Engine().PointerUp(spritedit.Vec2{X: 90, Y: 7}, spritedit.MouseButtonLeft)
//
// # Components
//
// [PixelBuffer] owns the sprite's pixels: a dense straight-alpha RGBA
// array of widthCells x heightCells grid cells, each subdivided into
// pixelsPerCell squared pixels. [Viewport] tracks zoom, pan, and the
// active projection. [Transform] is the pure mapping between screen,
// viewport, and cell space for both projections. [Engine] is the pointer
// state machine driving the [Tool] implementations (pencil, eraser,
// flood fill, color picker) with gap-free stroke interpolation.
// [Registry] holds the command table behind the palette and shortcuts.
// [Editor] wires all of the above together and carries the host hooks
// for file, URL, and generation requests.
//
// Asynchronous work stays outside: a host fetching an image hands the
// decoded RGBA bytes to [Editor.CommitLoad] guarded by the generation
// token from [Editor.BeginLoad], so a stale fetch can never clobber a
// newer document.
package spritedit
