package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if cfg.Terrain.Resolution != 2 {
		t.Errorf("expected resolution 2, got %d", cfg.Terrain.Resolution)
	}
	if cfg.Terrain.Chunks != 5 {
		t.Errorf("expected 5 chunks, got %d", cfg.Terrain.Chunks)
	}
	if cfg.Terrain.HeightMultiplier != 250 {
		t.Errorf("expected height multiplier 250, got %f", cfg.Terrain.HeightMultiplier)
	}
	if !cfg.Terrain.GenerateNormals {
		t.Error("expected normals to be generated by default")
	}
	if cfg.Terrain.Async {
		t.Error("expected synchronous build by default")
	}

	if cfg.Camera.FovY != 70 {
		t.Errorf("expected fovy 70, got %f", cfg.Camera.FovY)
	}
	if cfg.Camera.LookSensitivity != 500 {
		t.Errorf("expected look sensitivity 500, got %f", cfg.Camera.LookSensitivity)
	}

	if cfg.Sun.Altitude != 900 {
		t.Errorf("expected sun altitude 900, got %f", cfg.Sun.Altitude)
	}
	if cfg.Water.Height != 100 {
		t.Errorf("expected water height 100, got %f", cfg.Water.Height)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true

terrain:
  heightmap: "maps/alps.png"
  resolution: 4
  size: 0.5
  chunks: 8
  height_multiplier: 120
  generate_normals: false
  async: true

camera:
  fovy: 60
  speed: 12

water:
  enabled: false
  height: 30

data:
  asset_dirs: ["./assets", "/opt/maps"]

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}

	if cfg.Terrain.Heightmap != "maps/alps.png" {
		t.Errorf("expected heightmap maps/alps.png, got %s", cfg.Terrain.Heightmap)
	}
	if cfg.Terrain.Resolution != 4 {
		t.Errorf("expected resolution 4, got %d", cfg.Terrain.Resolution)
	}
	if cfg.Terrain.Size != 0.5 {
		t.Errorf("expected size 0.5, got %f", cfg.Terrain.Size)
	}
	if cfg.Terrain.Chunks != 8 {
		t.Errorf("expected 8 chunks, got %d", cfg.Terrain.Chunks)
	}
	if cfg.Terrain.GenerateNormals {
		t.Error("expected generate_normals false")
	}
	if !cfg.Terrain.Async {
		t.Error("expected async true")
	}

	if cfg.Camera.FovY != 60 {
		t.Errorf("expected fovy 60, got %f", cfg.Camera.FovY)
	}
	// Untouched keys keep their defaults.
	if cfg.Camera.ZFar != 100 {
		t.Errorf("expected default zfar 100, got %f", cfg.Camera.ZFar)
	}

	if cfg.Water.Enabled {
		t.Error("expected water disabled")
	}
	if len(cfg.Data.AssetDirs) != 2 || cfg.Data.AssetDirs[1] != "/opt/maps" {
		t.Errorf("unexpected asset dirs %v", cfg.Data.AssetDirs)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
terrain:
  chunks: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero resolution", func(c *Config) { c.Terrain.Resolution = 0 }, "terrain.resolution"},
		{"zero chunks", func(c *Config) { c.Terrain.Chunks = 0 }, "terrain.chunks"},
		{"negative size", func(c *Config) { c.Terrain.Size = -1 }, "terrain.size"},
		{"empty heightmap", func(c *Config) { c.Terrain.Heightmap = "" }, "terrain.heightmap"},
		{"inverted clip range", func(c *Config) { c.Camera.ZFar = 0.01 }, "clip range"},
		{"zero sensitivity", func(c *Config) { c.Camera.LookSensitivity = 0 }, "look_sensitivity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("heightscape.yaml", []byte("terrain:\n  chunks: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find heightscape.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "terrain flags",
			setup: func() {
				*flagHeightmap = "other.png"
				*flagAsync = true
				*flagChunks = 10
				*flagResolution = 1
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Heightmap != "other.png" {
					t.Errorf("expected heightmap other.png, got %s", cfg.Terrain.Heightmap)
				}
				if !cfg.Terrain.Async {
					t.Error("expected async with async flag")
				}
				if cfg.Terrain.Chunks != 10 {
					t.Errorf("expected 10 chunks, got %d", cfg.Terrain.Chunks)
				}
				if cfg.Terrain.Resolution != 1 {
					t.Errorf("expected resolution 1, got %d", cfg.Terrain.Resolution)
				}
			},
			teardown: func() {
				*flagHeightmap = ""
				*flagAsync = false
				*flagChunks = 0
				*flagResolution = 0
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
terrain:
  chunks: 6
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Terrain.Chunks != 6 {
		t.Errorf("expected 6 chunks from file, got %d", cfg.Terrain.Chunks)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  chunks: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for zero chunks")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.yaml")

	cfg := Default()
	cfg.Terrain.Chunks = 9
	cfg.Data.AssetDirs = []string{"maps"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Terrain.Chunks != 9 {
		t.Errorf("expected 9 chunks after reload, got %d", loaded.Terrain.Chunks)
	}
	if len(loaded.Data.AssetDirs) != 1 || loaded.Data.AssetDirs[0] != "maps" {
		t.Errorf("unexpected asset dirs after reload: %v", loaded.Data.AssetDirs)
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  chunks: 7\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Terrain.Chunks != 7 {
		t.Errorf("expected 7 chunks from env config, got %d", cfg.Terrain.Chunks)
	}

	// --config wins over the environment.
	flagPath := filepath.Join(t.TempDir(), "flag.yaml")
	if err := os.WriteFile(flagPath, []byte("terrain:\n  chunks: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	*flagConfig = flagPath
	defer func() { *flagConfig = "" }()

	cfg, err = Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Terrain.Chunks != 2 {
		t.Errorf("expected 2 chunks from --config, got %d", cfg.Terrain.Chunks)
	}
}

func TestLoadResolvesAssetDirs(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "shared")
	configPath := filepath.Join(dir, "config.yaml")
	content := "data:\n  asset_dirs: [\"maps\", \"" + filepath.ToSlash(abs) + "\"]\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if got, want := cfg.Data.AssetDirs[0], filepath.Join(dir, "maps"); got != want {
		t.Errorf("relative asset dir = %s, want %s", got, want)
	}
	if got := cfg.Data.AssetDirs[1]; got != filepath.FromSlash(filepath.ToSlash(abs)) {
		t.Errorf("absolute asset dir changed to %s", got)
	}
}
