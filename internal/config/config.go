// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Camera   CameraConfig   `yaml:"camera"`
	Sun      SunConfig      `yaml:"sun"`
	Water    WaterConfig    `yaml:"water"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	GrabMouse  bool `yaml:"grab_mouse"`
}

// TerrainConfig controls how the heightmap is turned into meshes.
type TerrainConfig struct {
	Heightmap        string  `yaml:"heightmap"`         // Asset path of the grayscale image
	Resolution       int     `yaml:"resolution"`        // Pixel stride between vertices
	Size             float32 `yaml:"size"`              // World units per pixel
	Chunks           int     `yaml:"chunks"`            // Chunks per axis
	HeightMultiplier float32 `yaml:"height_multiplier"` // Vertical scale
	GenerateNormals  bool    `yaml:"generate_normals"`
	Async            bool    `yaml:"async"` // Build meshes on a background goroutine
}

// CameraConfig holds player camera settings.
type CameraConfig struct {
	FovY            float32 `yaml:"fovy"` // Degrees
	ZNear           float32 `yaml:"znear"`
	ZFar            float32 `yaml:"zfar"`
	Speed           float32 `yaml:"speed"`            // World units per second
	LookSensitivity float32 `yaml:"look_sensitivity"` // Pixels per radian
}

// SunConfig holds the shadow casting camera settings.
type SunConfig struct {
	Altitude float32 `yaml:"altitude"`
	Offset   float32 `yaml:"offset"` // Fraction of terrain width for the X/Z position
	FovY     float32 `yaml:"fovy"`
	ZNear    float32 `yaml:"znear"`
	ZFar     float32 `yaml:"zfar"`
}

// WaterConfig holds water plane settings.
type WaterConfig struct {
	Enabled bool    `yaml:"enabled"`
	Height  float32 `yaml:"height"`
}

// DataConfig holds asset lookup and output paths.
type DataConfig struct {
	AssetDirs     []string `yaml:"asset_dirs"` // Searched in reverse order before the embedded assets
	ScreenshotDir string   `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:     1280,
			Height:    720,
			VSync:     true,
			GrabMouse: true,
		},
		Terrain: TerrainConfig{
			Heightmap:        "res/height.png",
			Resolution:       2,
			Size:             1.0,
			Chunks:           5,
			HeightMultiplier: 250.0,
			GenerateNormals:  true,
		},
		Camera: CameraConfig{
			FovY:            70.0,
			ZNear:           0.1,
			ZFar:            100.0,
			Speed:           2.0,
			LookSensitivity: 500.0,
		},
		Sun: SunConfig{
			Altitude: 900.0,
			Offset:   1.01,
			FovY:     100.0,
			ZNear:    1.0,
			ZFar:     1000.0,
		},
		Water: WaterConfig{
			Enabled: true,
			Height:  100.0,
		},
		Data: DataConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings that would make mesh generation or projection degenerate.
func (c *Config) Validate() error {
	var errs []error
	if c.Terrain.Resolution < 1 {
		errs = append(errs, fmt.Errorf("terrain.resolution must be >= 1, got %d", c.Terrain.Resolution))
	}
	if c.Terrain.Chunks < 1 {
		errs = append(errs, fmt.Errorf("terrain.chunks must be >= 1, got %d", c.Terrain.Chunks))
	}
	if c.Terrain.Size <= 0 {
		errs = append(errs, fmt.Errorf("terrain.size must be positive, got %g", c.Terrain.Size))
	}
	if c.Terrain.Heightmap == "" {
		errs = append(errs, errors.New("terrain.heightmap is empty"))
	}
	if c.Camera.ZNear <= 0 || c.Camera.ZFar <= c.Camera.ZNear {
		errs = append(errs, fmt.Errorf("camera clip range invalid: znear=%g zfar=%g", c.Camera.ZNear, c.Camera.ZFar))
	}
	if c.Camera.LookSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("camera.look_sensitivity must be positive, got %g", c.Camera.LookSensitivity))
	}
	return errors.Join(errs...)
}
