// Spritedit is a pixel sprite editor with flat and isometric grid views.
//
// Usage:
//
//	spritedit [-config spritedit.yaml] [-open sprite.png] [-size 16x16]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/shreyaspotnis/spritedit"
)

const (
	windowTitle = "Spritedit"
	screenW     = 960
	screenH     = 640
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (watched for changes)")
	openPath := flag.String("open", "", "image file to open on startup")
	size := flag.String("size", "", "initial sprite size as WxH cells, e.g. 16x16")
	flag.Parse()

	cfg := spritedit.DefaultConfig()
	if *configPath != "" {
		loaded, err := spritedit.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("spritedit: %v", err)
		}
		cfg = loaded
	}
	if *size != "" {
		w, h, err := parseSize(*size)
		if err != nil {
			log.Fatalf("spritedit: %v", err)
		}
		cfg.DefaultWidth = w
		cfg.DefaultHeight = h
	}

	editor, err := spritedit.NewEditor(cfg)
	if err != nil {
		log.Fatalf("spritedit: %v", err)
	}

	app := newApp(editor)

	if *configPath != "" {
		watcher, err := spritedit.WatchConfig(*configPath)
		if err != nil {
			log.Printf("spritedit: config watch disabled: %v", err)
		} else {
			defer watcher.Close()
			app.watchConfig(watcher)
		}
	}
	if *openPath != "" {
		app.openPath(*openPath)
	}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}

func parseSize(s string) (w, h int, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	if _, err := fmt.Sscanf(parts[0]+" "+parts[1], "%d %d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return w, h, nil
}

func init() {
	// Keep log output terse; this is an interactive tool.
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}
