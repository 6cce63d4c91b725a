package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
)

// promptNewSprite chains two prompts for the new document's dimensions.
func (a *App) promptNewSprite() {
	cfg := a.editor.Config()
	a.prompt.Open("New sprite width (cells):", fmt.Sprint(cfg.DefaultWidth), func(ws string) {
		var w int
		if _, err := fmt.Sscan(ws, &w); err != nil {
			a.status = "invalid width"
			return
		}
		a.prompt.Open("New sprite height (cells):", fmt.Sprint(cfg.DefaultHeight), func(hs string) {
			var h int
			if _, err := fmt.Sscan(hs, &h); err != nil {
				a.status = "invalid height"
				return
			}
			if err := a.editor.NewSprite(w, h); err != nil {
				a.status = err.Error()
				return
			}
			a.centerView()
			a.status = fmt.Sprintf("new %dx%d sprite", w, h)
		})
	})
}

func (a *App) promptOpenFile() {
	a.prompt.Open("Open image file:", a.savePath, func(path string) {
		if strings.TrimSpace(path) == "" {
			return
		}
		a.openPath(path)
	})
}

// openPath starts a background file load; the result lands in Update via
// the loads channel and is committed under a generation token.
func (a *App) openPath(path string) {
	gen := a.editor.BeginLoad()
	a.savePath = path
	go func() {
		f, err := os.Open(path)
		if err != nil {
			a.loads <- loadResult{gen: gen, err: err}
			return
		}
		defer f.Close()
		rgba, w, h, err := decodeImage(f)
		a.loads <- loadResult{gen: gen, rgba: rgba, width: w, height: h, err: err}
	}()
}

func (a *App) promptSaveFile() {
	initial := a.savePath
	if initial == "" {
		initial = "sprite.png"
	}
	a.prompt.Open("Save as PNG:", initial, func(path string) {
		if strings.TrimSpace(path) == "" {
			return
		}
		if err := a.savePNG(path); err != nil {
			a.status = err.Error()
			return
		}
		a.savePath = path
		a.status = "saved " + path
	})
}

func (a *App) savePNG(path string) error {
	w, h, pix := a.editor.ExportRGBA()
	img := &image.NRGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var loadClient = &http.Client{Timeout: 30 * time.Second}

func (a *App) promptLoadURL() {
	a.prompt.Open("Load image from URL:", "https://", func(url string) {
		url = strings.TrimSpace(url)
		if url == "" || url == "https://" {
			return
		}
		gen := a.editor.BeginLoad()
		go func() {
			rgba, w, h, err := fetchImage(url, nil)
			a.loads <- loadResult{gen: gen, rgba: rgba, width: w, height: h, err: err}
		}()
	})
}

// promptGenerate sends the description to the generation backend named by
// SPRITEDIT_GEN_URL and loads the PNG it returns.
func (a *App) promptGenerate() {
	backend := os.Getenv("SPRITEDIT_GEN_URL")
	if backend == "" {
		a.status = "set SPRITEDIT_GEN_URL to enable generation"
		return
	}
	a.prompt.Open("Describe the sprite to generate:", "", func(desc string) {
		desc = strings.TrimSpace(desc)
		if desc == "" {
			return
		}
		gen := a.editor.BeginLoad()
		a.status = "generating..."
		go func() {
			rgba, w, h, err := fetchImage(backend, strings.NewReader(desc))
			a.loads <- loadResult{gen: gen, rgba: rgba, width: w, height: h, err: err}
		}()
	})
}

// fetchImage GETs (or POSTs, when body is non-nil) a URL and decodes the
// image in the response.
func fetchImage(url string, body io.Reader) (rgba []byte, w, h int, err error) {
	var resp *http.Response
	if body != nil {
		resp, err = loadClient.Post(url, "text/plain", body)
	} else {
		resp, err = loadClient.Get(url)
	}
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, 0, 0, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	return decodeImage(resp.Body)
}

// decodeImage decodes any registered format (PNG, JPEG, GIF, BMP) into
// straight-alpha RGBA bytes.
func decodeImage(r io.Reader) (rgba []byte, w, h int, err error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, err
	}
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return img.Pix, b.Dx(), b.Dy(), nil
}
