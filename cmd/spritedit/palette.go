package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/shreyaspotnis/spritedit"
)

const paletteMaxRows = 10

// Palette is the command palette overlay: a fuzzy-search box over every
// registered command. Enter invokes the highlighted command, Escape closes.
type Palette struct {
	reg      *spritedit.Registry
	open     bool
	query    string
	selected int
	results  []*spritedit.Command
}

func NewPalette(reg *spritedit.Registry) *Palette {
	return &Palette{reg: reg}
}

func (p *Palette) IsOpen() bool { return p.open }

func (p *Palette) Open() {
	p.open = true
	p.query = ""
	p.selected = 0
	p.results = p.reg.Search("")
}

func (p *Palette) Close() {
	p.open = false
	p.results = nil
}

// Update processes palette input. Returns (true, id) when a command was
// chosen this frame; the id is empty when the palette merely closed.
func (p *Palette) Update() (chosen bool, id string) {
	if !p.open {
		return false, ""
	}

	prev := p.query
	for _, r := range ebiten.AppendInputChars(nil) {
		if r == '\n' || r == '\r' {
			continue
		}
		p.query += string(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		p.query = trimLastRune(p.query)
	}
	if p.query != prev {
		p.results = p.reg.Search(p.query)
		p.selected = 0
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && p.selected < len(p.results)-1 {
		p.selected++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && p.selected > 0 {
		p.selected--
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.Close()
		return true, ""
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if p.selected < len(p.results) {
			cmd := p.results[p.selected]
			p.Close()
			return true, cmd.ID
		}
		p.Close()
		return true, ""
	}
	return false, ""
}

var (
	paletteBack      = color.RGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xf0}
	paletteHighlight = color.RGBA{R: 0x3d, G: 0x59, B: 0x82, A: 0xf0}
	paletteBorder    = color.RGBA{R: 0x60, G: 0x60, B: 0x70, A: 0xff}
)

func (p *Palette) Draw(screen *ebiten.Image) {
	if !p.open {
		return
	}
	const (
		w     = 420
		rowH  = 18
		textX = 12
	)
	rows := len(p.results)
	if rows > paletteMaxRows {
		rows = paletteMaxRows
	}
	h := float32(rowH*(rows+1) + 12)
	x := float32(screen.Bounds().Dx()-w) / 2
	y := float32(48)

	vector.DrawFilledRect(screen, x, y, w, h, paletteBack, false)
	vector.StrokeRect(screen, x, y, w, h, 1, paletteBorder, false)
	ebitenutil.DebugPrintAt(screen, "> "+p.query+"_", int(x)+textX, int(y)+6)

	// Window the list around the selection.
	first := 0
	if p.selected >= paletteMaxRows {
		first = p.selected - paletteMaxRows + 1
	}
	for i := 0; i < rows; i++ {
		cmd := p.results[first+i]
		ry := y + float32(rowH*(i+1)) + 6
		if first+i == p.selected {
			vector.DrawFilledRect(screen, x+2, ry, w-4, rowH, paletteHighlight, false)
		}
		label := cmd.Name
		if !cmd.Shortcut.IsZero() {
			label = fmt.Sprintf("%-32s %s", cmd.Name, cmd.Shortcut)
		}
		if !p.reg.Enabled(cmd) {
			label += "  (unavailable)"
		}
		ebitenutil.DebugPrintAt(screen, label, int(x)+textX, int(ry)+2)
	}
}
