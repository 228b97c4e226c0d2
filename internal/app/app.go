// Package app wires the window, the GL surface and the terrain scene into
// the main loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/heightscape/internal/assets"
	"github.com/Faultbox/heightscape/internal/config"
	"github.com/Faultbox/heightscape/internal/engine/debug"
	"github.com/Faultbox/heightscape/internal/engine/glsurface"
	"github.com/Faultbox/heightscape/internal/engine/input"
	"github.com/Faultbox/heightscape/internal/engine/scene"
	"github.com/Faultbox/heightscape/internal/engine/terrain"
	"github.com/Faultbox/heightscape/internal/engine/window"
	"github.com/Faultbox/heightscape/internal/logger"
)

// Title is the window title.
const Title = "Heightscape"

// App is the viewer instance.
type App struct {
	config  *config.Config
	running bool
	assets  *assets.Manager
	window  *window.Window
	surface *glsurface.Surface
	scene   *scene.Scene
	events  []input.Event
	log     *zap.Logger

	screenshots    *debug.ScreenshotCapture
	wantScreenshot bool
}

// New loads the heightmap and opens the window.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config:      cfg,
		log:         logger.Named("app"),
		assets:      assets.NewManager(),
		screenshots: debug.NewScreenshotCapture(cfg.Data.ScreenshotDir, "heightscape"),
	}

	for _, dir := range cfg.Data.AssetDirs {
		if err := a.assets.AddDir(dir); err != nil {
			return nil, fmt.Errorf("adding asset dir: %w", err)
		}
	}

	ter, err := a.loadTerrain()
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		GrabMouse:  cfg.Graphics.GrabMouse,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Surface must be created after the GL context exists.
	width, height := a.window.GetSize()
	a.surface, err = glsurface.New(width, height)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create surface: %w", err)
	}

	a.scene, err = scene.New(a.surface, ter, cfg.SceneConfig())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	a.log.Info("viewer initialized",
		zap.Uint32("terrain_width", ter.Width()),
		zap.Uint32("terrain_height", ter.Height()),
		zap.Bool("async", cfg.Terrain.Async),
	)
	return a, nil
}

func (a *App) loadTerrain() (*terrain.Terrain, error) {
	data, err := a.assets.Load(a.config.Terrain.Heightmap)
	if err != nil {
		return nil, fmt.Errorf("loading heightmap: %w", err)
	}

	params := a.config.TerrainParams()
	if a.config.Terrain.Async {
		return terrain.NewAsync(data, params)
	}

	return terrain.New(data, params)
}

// Run starts the main loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		var quit bool
		a.events, quit = a.window.PollEvents(a.events)
		if quit {
			a.running = false
			break
		}
		if err := a.handleEvents(); err != nil {
			return err
		}
		if !a.running {
			break
		}

		if err := a.scene.Frame(dt); err != nil {
			return fmt.Errorf("frame error: %w", err)
		}
		if a.wantScreenshot {
			a.captureScreenshot()
		}

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			eye := a.scene.Camera().Eye
			fields := []zap.Field{
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Float32("ground", a.scene.GroundHeight()),
				zap.Bool("terrain_ready", a.scene.Terrain().Ready()),
				zap.Float32s("eye", eye[:]),
			}
			if target, ok := a.scene.Target(); ok {
				fields = append(fields, zap.Float32s("target", target[:]))
			}
			a.log.Debug("fps", fields...)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() error {
	for _, event := range a.events {
		switch event.Type {
		case input.EventWindowResize:
			if err := a.surface.Resize(event.Width, event.Height); err != nil {
				return fmt.Errorf("resizing surface: %w", err)
			}
			a.scene.Resize(event.Width, event.Height)
		case input.EventKeyDown:
			switch event.Key {
			case input.KeyEscape:
				a.running = false
				return nil
			case input.KeyScreenshot:
				a.wantScreenshot = true
			}
		}
		a.scene.HandleEvent(event)
	}
	return nil
}

func (a *App) captureScreenshot() {
	a.wantScreenshot = false
	pixels, width, height := a.surface.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases everything in reverse creation order.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.surface != nil {
		a.surface.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	if a.assets != nil {
		a.assets.Close()
	}
}
