package spritedit

import "fmt"

// HostHooks are the collaborator entry points for everything the core
// refuses to do itself: dialogs, file and network I/O, and the GenAI
// backend. A nil hook disables the corresponding command.
type HostHooks struct {
	RequestNewSprite func() // open the new-sprite dialog
	OpenFile         func() // open a file picker and commit through CommitLoad
	SaveFile         func() // encode ExportRGBA and write it out
	LoadFromURL      func() // open the URL dialog
	Generate         func() // open the GenAI prompt dialog
	ShowPalette      func() // open the command palette overlay
}

// Editor owns one open document and wires the components together: pixel
// buffer, viewport, tool engine, and command registry. All methods are
// synchronous and single-threaded; asynchronous collaborators re-enter
// only through the BeginLoad/CommitLoad generation guard.
type Editor struct {
	cfg    Config
	geom   Geometry
	buf    *PixelBuffer
	vp     *Viewport
	engine *Engine
	reg    *Registry
	hooks  HostHooks

	showGrid bool
	loadGen  uint64

	injectQueue []syntheticPointerEvent
	injectDown  bool
}

// NewEditor creates an editor with a fresh transparent sprite at the
// config's default size and the stock command table (with any key
// overrides from the config applied).
func NewEditor(cfg Config) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	buf, err := NewPixelBuffer(cfg.DefaultWidth, cfg.DefaultHeight)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		cfg:      cfg,
		geom:     cfg.Geometry(),
		buf:      buf,
		vp:       NewViewport(cfg.MinZoom, cfg.MaxZoom),
		showGrid: true,
	}
	e.engine = NewEngine(buf, e.vp, e.geom)
	e.reg = NewRegistry(e.dispatch, e.enabled)
	if err := e.registerDefaults(); err != nil {
		return nil, err
	}
	return e, nil
}

// defaultCommands is the stock command table. IDs are stable; shortcuts may
// be overridden per-command through Config.Keys.
func defaultCommands() []Command {
	mustCombo := func(s string) KeyCombo {
		c, err := ParseKeyCombo(s)
		if err != nil {
			panic(err) // static table, never fails
		}
		return c
	}
	return []Command{
		{ID: "file.new", Name: "New Sprite", Shortcut: mustCombo("Cmd+N"), Action: ActionNewSprite},
		{ID: "file.open", Name: "Open File...", Shortcut: mustCombo("Cmd+O"), Action: ActionOpenFile},
		{ID: "file.save", Name: "Save File", Shortcut: mustCombo("Cmd+S"), Action: ActionSaveFile},
		{ID: "file.load-url", Name: "Load from URL...", Action: ActionLoadURL},
		{ID: "palette.show", Name: "Command Palette", Shortcut: mustCombo("Cmd+Shift+P"), Action: ActionShowPalette},
		{ID: "view.grid", Name: "Toggle Grid", Shortcut: mustCombo("G"), Action: ActionToggleGrid},
		{ID: "view.projection", Name: "Toggle Isometric View", Shortcut: mustCombo("V"), Action: ActionToggleProjection},
		{ID: "tool.pencil", Name: "Pencil Tool", Shortcut: mustCombo("P"), Action: ActionSelectPencil},
		{ID: "tool.eraser", Name: "Eraser Tool", Shortcut: mustCombo("E"), Action: ActionSelectEraser},
		{ID: "tool.fill", Name: "Fill Tool", Shortcut: mustCombo("F"), Action: ActionSelectFill},
		{ID: "tool.picker", Name: "Color Picker Tool", Shortcut: mustCombo("I"), Action: ActionSelectPicker},
		{ID: "view.zoom-in", Name: "Zoom In", Shortcut: mustCombo("+"), Action: ActionZoomIn},
		{ID: "view.zoom-out", Name: "Zoom Out", Shortcut: mustCombo("-"), Action: ActionZoomOut},
		{ID: "view.reset", Name: "Reset View", Shortcut: mustCombo("0"), Action: ActionResetView},
		{ID: "ai.generate", Name: "Generate with AI...", Action: ActionGenerate},
	}
}

func (e *Editor) registerDefaults() error {
	for _, cmd := range defaultCommands() {
		if override, ok := e.cfg.Keys[cmd.ID]; ok {
			combo, err := ParseKeyCombo(override)
			if err != nil {
				return fmt.Errorf("key override for %q: %w", cmd.ID, err)
			}
			cmd.Shortcut = combo
		}
		if err := e.reg.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// dispatch executes a command's tagged effect.
func (e *Editor) dispatch(a Action) error {
	switch a {
	case ActionNewSprite:
		e.hooks.RequestNewSprite()
	case ActionOpenFile:
		e.hooks.OpenFile()
	case ActionSaveFile:
		e.hooks.SaveFile()
	case ActionLoadURL:
		e.hooks.LoadFromURL()
	case ActionGenerate:
		e.hooks.Generate()
	case ActionShowPalette:
		e.hooks.ShowPalette()
	case ActionToggleGrid:
		e.showGrid = !e.showGrid
	case ActionToggleProjection:
		if e.vp.Projection == ProjectionFlat {
			e.vp.SetProjection(ProjectionIsometric)
		} else {
			e.vp.SetProjection(ProjectionFlat)
		}
	case ActionSelectPencil:
		e.engine.SelectTool(ToolPencil)
	case ActionSelectEraser:
		e.engine.SelectTool(ToolEraser)
	case ActionSelectFill:
		e.engine.SelectTool(ToolFill)
	case ActionSelectPicker:
		e.engine.SelectTool(ToolPicker)
	case ActionZoomIn:
		// Anchoring at the pan offset keeps the pan fixed: a bare zoom step.
		e.vp.ZoomBy(e.cfg.ZoomStep, e.vp.Pan)
	case ActionZoomOut:
		e.vp.ZoomBy(1/e.cfg.ZoomStep, e.vp.Pan)
	case ActionResetView:
		e.vp.GlideHome(0.2)
	default:
		return fmt.Errorf("%w: action %d", ErrNotFound, a)
	}
	return nil
}

// enabled is the registry's enablement predicate: host-backed commands need
// their hook, everything else is always available.
func (e *Editor) enabled(a Action) bool {
	switch a {
	case ActionNewSprite:
		return e.hooks.RequestNewSprite != nil
	case ActionOpenFile:
		return e.hooks.OpenFile != nil
	case ActionSaveFile:
		return e.hooks.SaveFile != nil && e.buf != nil
	case ActionLoadURL:
		return e.hooks.LoadFromURL != nil
	case ActionGenerate:
		return e.hooks.Generate != nil
	case ActionShowPalette:
		return e.hooks.ShowPalette != nil
	default:
		return true
	}
}

// SetHooks installs the host collaborator entry points.
func (e *Editor) SetHooks(h HostHooks) { e.hooks = h }

// Buffer returns the open document's pixel buffer.
func (e *Editor) Buffer() *PixelBuffer { return e.buf }

// Viewport returns the view state.
func (e *Editor) Viewport() *Viewport { return e.vp }

// Engine returns the tool engine.
func (e *Editor) Engine() *Engine { return e.engine }

// Registry returns the command table.
func (e *Editor) Registry() *Registry { return e.reg }

// Config returns the editor's configuration.
func (e *Editor) Config() Config { return e.cfg }

// ShowGrid reports whether the grid overlay is on.
func (e *Editor) ShowGrid() bool { return e.showGrid }

// Transform returns the coordinate transform for the current frame.
func (e *Editor) Transform() Transform { return e.engine.Transform() }

// NewSprite replaces the document with a fresh transparent sprite and
// resets the viewport to its defaults.
func (e *Editor) NewSprite(widthCells, heightCells int) error {
	buf, err := NewPixelBuffer(widthCells, heightCells)
	if err != nil {
		return err
	}
	e.buf = buf
	e.engine.SetBuffer(buf)
	e.vp.Reset()
	return nil
}

// HandleKey routes an exact key combo to its command. Returns whether a
// command was bound, plus any invoke error (ErrDisabled is a reportable
// no-op, never fatal).
func (e *Editor) HandleKey(combo KeyCombo) (bool, error) {
	cmd, ok := e.reg.LookupByShortcut(combo)
	if !ok {
		return false, nil
	}
	return true, e.reg.Invoke(cmd.ID)
}

// Update advances time-based view animation. dt is in seconds.
func (e *Editor) Update(dt float32) {
	e.vp.Update(dt)
}

// BeginLoad starts an asynchronous image load and returns its generation
// token. Each call supersedes all earlier tokens: a result that arrives for
// a stale token is ignored, and a load whose result never arrives leaves no
// state behind.
func (e *Editor) BeginLoad() uint64 {
	e.loadGen++
	return e.loadGen
}

// CommitLoad applies the decoded RGBA result of an asynchronous load.
// Returns false (and no error) when the token is stale. On success the pan
// recenters while zoom and projection are kept; on failure the previous
// document is retained untouched.
func (e *Editor) CommitLoad(gen uint64, rgba []byte, width, height int) (bool, error) {
	if gen != e.loadGen {
		return false, nil
	}
	if err := e.buf.LoadFromImage(rgba, width, height); err != nil {
		return false, err
	}
	e.engine.SetBuffer(e.buf)
	e.vp.Pan = Vec2{}
	return true, nil
}

// ExportRGBA returns the document's pixel dimensions and raw straight-alpha
// RGBA bytes for a save/export collaborator to encode as PNG.
func (e *Editor) ExportRGBA() (widthPx, heightPx int, pix []byte) {
	return e.buf.RGBA()
}
