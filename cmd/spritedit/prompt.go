package main

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// trimLastRune drops the final rune, not the final byte; typed input can
// hold multi-byte characters.
func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// Prompt is a one-line modal text input. While open it captures typed
// characters; Enter hands the text to the callback, Escape cancels.
type Prompt struct {
	open    bool
	label   string
	input   string
	onEnter func(string)
}

func NewPrompt() *Prompt { return &Prompt{} }

func (p *Prompt) IsOpen() bool { return p.open }

func (p *Prompt) Open(label, initial string, onEnter func(string)) {
	p.label = label
	p.input = initial
	p.onEnter = onEnter
	p.open = true
}

func (p *Prompt) Close() {
	p.open = false
	p.label = ""
	p.input = ""
	p.onEnter = nil
}

// Update processes prompt input. Returns true while the prompt is open so
// the caller can skip the rest of its input handling.
func (p *Prompt) Update() bool {
	if !p.open {
		return false
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r == '\n' || r == '\r' {
			continue
		}
		p.input += string(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		p.input = trimLastRune(p.input)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		// Close before the callback so a chained prompt can reopen.
		cur := p.input
		cb := p.onEnter
		p.Close()
		if cb != nil {
			cb(cur)
		}
		return p.open
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.Close()
		return false
	}
	return true
}

var (
	promptBack   = color.RGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xf0}
	promptBorder = color.RGBA{R: 0x60, G: 0x60, B: 0x70, A: 0xff}
)

func (p *Prompt) Draw(screen *ebiten.Image) {
	if !p.open {
		return
	}
	w := float32(screen.Bounds().Dx())
	vector.DrawFilledRect(screen, 0, 0, w, 48, promptBack, false)
	vector.StrokeLine(screen, 0, 48, w, 48, 1, promptBorder, false)
	ebitenutil.DebugPrintAt(screen, p.label, 12, 6)
	ebitenutil.DebugPrintAt(screen, p.input+"_", 12, 24)
}
