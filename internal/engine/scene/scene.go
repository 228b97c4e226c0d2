// Package scene drives the per-frame render of a heightmap terrain: a shadow
// depth pass from the sun, the main color pass and a depth composite.
package scene

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/heightscape/internal/engine/camera"
	"github.com/Faultbox/heightscape/internal/engine/input"
	"github.com/Faultbox/heightscape/internal/engine/render"
	"github.com/Faultbox/heightscape/internal/engine/terrain"
	"github.com/Faultbox/heightscape/internal/engine/water"
	"github.com/Faultbox/heightscape/internal/logger"
)

// Config contains scene configuration options.
type Config struct {
	Player       camera.Params
	Sun          camera.SunParams
	Speed        float32
	Sensitivity  float32
	WaterEnabled bool
	WaterHeight  float32
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Player:       camera.DefaultPlayerParams(),
		Sun:          camera.DefaultSunParams(),
		Speed:        input.DefaultSpeed,
		Sensitivity:  input.DefaultSensitivity,
		WaterEnabled: true,
		WaterHeight:  water.DefaultHeight,
	}
}

// Scene owns the camera, the frame uniforms and the GPU copies of the
// terrain and water. It is used from the render thread only.
type Scene struct {
	config  Config
	surface render.Surface

	terrain         *terrain.Terrain
	terrainRenderer *TerrainRenderer
	waterRenderer   *WaterRenderer
	pipelines       pipelines

	camera   camera.Camera
	controls *input.Controls
	screen   [2]float32

	cameraUniform    *render.Uniform[camera.Uniform]
	sunUniform       *render.Uniform[camera.Uniform]
	cameraPosUniform *render.Uniform[mgl32.Vec4]
	timeUniform      *render.Uniform[float32]
	screenUniform    *render.Uniform[[4]float32]
	shadowTexture    *render.TextureSlot

	start time.Time
	now   func() time.Time
}

// New creates a scene for ter on surface. A ready terrain is uploaded
// immediately; a pending one is uploaded by the first frame that sees it
// delivered.
func New(surface render.Surface, ter *terrain.Terrain, cfg Config) (*Scene, error) {
	sc := surface.Config()
	s := &Scene{
		config:          cfg,
		surface:         surface,
		terrain:         ter,
		terrainRenderer: NewTerrainRenderer(),
		camera:          camera.New(mgl32.Vec3{}, sc.Aspect(), cfg.Player),
		controls:        input.NewControls(int(sc.Width)),
		screen:          [2]float32{float32(sc.Width), float32(sc.Height)},
		now:             time.Now,
	}
	s.controls.Speed = cfg.Speed
	s.controls.Sensitivity = cfg.Sensitivity

	if err := s.init(); err != nil {
		s.Destroy()
		return nil, err
	}

	s.start = s.now()
	return s, nil
}

func (s *Scene) init() error {
	dev := s.surface.Device()
	cfg := s.surface.Config()

	var err error
	if s.pipelines, err = createPipelines(dev); err != nil {
		return err
	}

	if s.cameraUniform, err = render.NewUniform(dev, "camera", s.camera.Uniform()); err != nil {
		return err
	}
	sun := camera.Sun(s.terrain.Width(), s.terrain.Height(), cfg.Aspect(), s.config.Sun)
	if s.sunUniform, err = render.NewUniform(dev, "sun camera", sun.Uniform()); err != nil {
		return err
	}
	if s.cameraPosUniform, err = render.NewUniform(dev, "camera position", s.camera.Eye.Vec4(1)); err != nil {
		return err
	}
	if s.timeUniform, err = render.NewUniform(dev, "time", float32(0)); err != nil {
		return err
	}
	if s.screenUniform, err = render.NewUniform(dev, "screen info", s.screenInfo(0)); err != nil {
		return err
	}

	shadow, err := dev.CreateDepthTarget("shadow depth", cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("creating shadow depth target: %w", err)
	}
	s.shadowTexture = render.NewTextureSlot("shadow texture", shadow)

	if s.config.WaterEnabled {
		plane := water.ForTerrain(s.terrain.Width(), s.terrain.Height(), s.terrain.Params().Size, s.config.WaterHeight)
		if s.waterRenderer, err = NewWaterRenderer(dev, plane); err != nil {
			return err
		}
	}

	if s.terrain.Ready() {
		if err := s.terrainRenderer.Upload(dev, s.terrain.Meshes()); err != nil {
			return err
		}
	}
	return nil
}

// Frame advances the camera by dt seconds and renders one frame.
func (s *Scene) Frame(dt float64) error {
	s.controls.Apply(&s.camera, dt)

	elapsed := s.elapsed()
	sun := camera.Sun(s.terrain.Width(), s.terrain.Height(), s.camera.Aspect, s.config.Sun)

	shadow, err := s.renderShadowPass(sun, elapsed)
	if err != nil {
		return err
	}
	if old := s.shadowTexture.Swap(shadow); old != nil {
		old.Release()
	}

	if err := s.renderMainPass(elapsed); err != nil {
		return err
	}
	return s.renderComposite()
}

func (s *Scene) renderMainPass(elapsed float32) error {
	pass := s.surface.Device().BeginPass(render.PassDesc{Label: "main"})

	if s.terrainRenderer.Ready() {
		if err := s.cameraUniform.Set(s.camera.Uniform()); err != nil {
			pass.End()
			return err
		}
		if err := s.pushFrameUniforms(s.camera.Eye.Vec4(1), elapsed); err != nil {
			pass.End()
			return err
		}

		pass.SetPipeline(s.pipelines.ground)
		pass.SetBinding(groupCamera, s.cameraUniform)
		pass.SetBinding(groupTime, s.timeUniform)
		pass.SetBinding(groupCameraPos, s.cameraPosUniform)
		s.terrainRenderer.Draw(pass)

		if s.waterRenderer != nil {
			pass.SetPipeline(s.pipelines.water)
			s.waterRenderer.Draw(pass)
		}
	} else if err := s.pollTerrain(); err != nil {
		pass.End()
		return err
	}

	if err := pass.End(); err != nil {
		return fmt.Errorf("main pass: %w", err)
	}
	return nil
}

func (s *Scene) renderComposite() error {
	pass := s.surface.Device().BeginPass(render.PassDesc{Label: "composite", Screen: true})
	pass.SetPipeline(s.pipelines.composite)
	pass.SetBinding(groupShadowDepth, s.shadowTexture)
	pass.SetBinding(groupSceneDepth, s.surface.DepthTexture())
	pass.SetBinding(groupScreenInfo, s.screenUniform)
	pass.SetBinding(groupPlayerCam, s.cameraUniform)
	pass.SetBinding(groupSunCam, s.sunUniform)
	pass.SetBinding(groupSceneColor, s.surface.ColorTexture())
	pass.Draw(s.surface.ScreenModel())
	if err := pass.End(); err != nil {
		return fmt.Errorf("composite pass: %w", err)
	}
	return nil
}

// pushFrameUniforms writes the per-pass camera position, time and screen info.
func (s *Scene) pushFrameUniforms(eye mgl32.Vec4, elapsed float32) error {
	if err := s.cameraPosUniform.Set(eye); err != nil {
		return err
	}
	if err := s.timeUniform.Set(elapsed); err != nil {
		return err
	}
	return s.screenUniform.Set(s.screenInfo(elapsed))
}

// pollTerrain checks a background build and uploads its meshes on delivery.
func (s *Scene) pollTerrain() error {
	ready, err := s.terrain.Poll()
	if err != nil {
		return err
	}
	if !ready {
		return nil
	}
	if err := s.terrainRenderer.Upload(s.surface.Device(), s.terrain.Meshes()); err != nil {
		return err
	}
	logger.Info("terrain uploaded", zap.Int("chunks", s.terrainRenderer.ChunkCount()))
	return nil
}

func (s *Scene) screenInfo(elapsed float32) [4]float32 {
	return [4]float32{s.screen[0], s.screen[1], elapsed, 0}
}

func (s *Scene) elapsed() float32 {
	return float32(s.now().Sub(s.start).Seconds())
}

// HandleEvent feeds an input event to the player controls.
func (s *Scene) HandleEvent(e input.Event) {
	s.controls.Handle(e, &s.camera)
}

// Resize updates the camera aspect and the screen size uniforms see.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.camera.Aspect = float32(width) / float32(height)
	s.screen = [2]float32{float32(width), float32(height)}
}

// Camera returns the player camera.
func (s *Scene) Camera() *camera.Camera {
	return &s.camera
}

// Terrain returns the scene terrain.
func (s *Scene) Terrain() *terrain.Terrain {
	return s.terrain
}

// GroundHeight samples the terrain under the player; 0 while it is building.
func (s *Scene) GroundHeight() float32 {
	return s.terrain.HeightAt(s.camera.Eye[0], s.camera.Eye[2])
}

// Destroy releases all GPU resources.
func (s *Scene) Destroy() {
	if s.terrainRenderer != nil {
		s.terrainRenderer.Destroy()
	}
	if s.waterRenderer != nil {
		s.waterRenderer.Destroy()
	}
	if s.shadowTexture != nil {
		s.shadowTexture.Release()
	}
	for _, u := range []interface{ Release() }{s.cameraUniform, s.sunUniform, s.cameraPosUniform, s.timeUniform, s.screenUniform} {
		if u != nil {
			u.Release()
		}
	}
}
