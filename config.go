package spritedit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Config carries the injected editor parameters: zoom limits, projection
// geometry, the default document size, and keybinding overrides. Hosts load
// it from a YAML file or start from DefaultConfig.
type Config struct {
	// MinZoom and MaxZoom clamp the viewport zoom factor.
	MinZoom float64 `yaml:"min_zoom"`
	MaxZoom float64 `yaml:"max_zoom"`

	// CellSize is the flat-projection cell edge in pixels at zoom 1.
	CellSize float64 `yaml:"cell_size"`

	// IsoTileWidth and IsoTileHeight are the isometric diamond dimensions
	// in pixels at zoom 1.
	IsoTileWidth  float64 `yaml:"iso_tile_width"`
	IsoTileHeight float64 `yaml:"iso_tile_height"`

	// DefaultWidth and DefaultHeight size the sprite a fresh editor opens
	// with, in cells.
	DefaultWidth  int `yaml:"default_width"`
	DefaultHeight int `yaml:"default_height"`

	// ZoomStep is the factor applied by the Zoom In / Zoom Out commands.
	ZoomStep float64 `yaml:"zoom_step"`

	// Keys overrides command shortcuts: command ID to combo string,
	// e.g. {"tool.pencil": "B"}. Unlisted commands keep their defaults.
	Keys map[string]string `yaml:"keys"`
}

// DefaultConfig returns the stock parameters: a 16x16 document, 20px cells,
// 2:1 isometric diamonds, and a zoom range of 0.1x to 6.4x (2 to 128 screen
// pixels per cell).
func DefaultConfig() Config {
	return Config{
		MinZoom:       0.1,
		MaxZoom:       6.4,
		CellSize:      20,
		IsoTileWidth:  20,
		IsoTileHeight: 10,
		DefaultWidth:  16,
		DefaultHeight: 16,
		ZoomStep:      1.5,
	}
}

// Geometry returns the transform geometry the config describes. The
// isometric origin starts at zero; hosts position the canvas through pan.
func (c Config) Geometry() Geometry {
	return Geometry{
		CellSize:   c.CellSize,
		TileWidth:  c.IsoTileWidth,
		TileHeight: c.IsoTileHeight,
	}
}

// Validate rejects configs the engine cannot run with.
func (c Config) Validate() error {
	if c.MinZoom <= 0 || c.MaxZoom <= 0 {
		return fmt.Errorf("%w: zoom range [%g, %g]", ErrInvalidDimension, c.MinZoom, c.MaxZoom)
	}
	if c.MinZoom > c.MaxZoom {
		return fmt.Errorf("%w: min_zoom %g above max_zoom %g", ErrInvalidDimension, c.MinZoom, c.MaxZoom)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size %g", ErrInvalidDimension, c.CellSize)
	}
	if c.IsoTileWidth <= 0 || c.IsoTileHeight <= 0 {
		return fmt.Errorf("%w: iso tile %gx%g", ErrInvalidDimension, c.IsoTileWidth, c.IsoTileHeight)
	}
	if c.DefaultWidth <= 0 || c.DefaultHeight <= 0 {
		return fmt.Errorf("%w: default sprite %dx%d", ErrInvalidDimension, c.DefaultWidth, c.DefaultHeight)
	}
	if c.ZoomStep <= 1 {
		return fmt.Errorf("%w: zoom_step %g must be above 1", ErrInvalidDimension, c.ZoomStep)
	}
	for id, combo := range c.Keys {
		if _, err := ParseKeyCombo(combo); err != nil {
			return fmt.Errorf("key override for %q: %w", id, err)
		}
	}
	return nil
}

// LoadConfig reads a YAML config file over the defaults and validates it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigWatcher reloads a config file when it changes on disk. Events
// carries each successfully reloaded and validated config; reload failures
// go to Errors and leave the running config untouched.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Events  chan Config
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// WatchConfig starts watching the config file's directory (editors often
// replace rather than rewrite files, so the file itself is a moving target).
func WatchConfig(path string) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		watcher: w,
		path:    filepath.Clean(path),
		Events:  make(chan Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Close stops the watcher and closes its channels.
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.closeCh)
		err = cw.watcher.Close()
		close(cw.Events)
		close(cw.Errors)
	})
	return err
}

func (cw *ConfigWatcher) run() {
	var lastReload time.Time
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Editors fire bursts of writes; collapse them.
			if time.Since(lastReload) < 200*time.Millisecond {
				continue
			}
			lastReload = time.Now()

			cfg, err := LoadConfig(cw.path)
			if err != nil {
				select {
				case cw.Errors <- err:
				case <-cw.closeCh:
					return
				default:
				}
				continue
			}
			select {
			case cw.Events <- cfg:
			case <-cw.closeCh:
				return
			default:
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case cw.Errors <- err:
			case <-cw.closeCh:
				return
			default:
			}
		case <-cw.closeCh:
			return
		}
	}
}
