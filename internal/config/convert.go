package config

import (
	"github.com/Faultbox/heightscape/internal/engine/camera"
	"github.com/Faultbox/heightscape/internal/engine/scene"
	"github.com/Faultbox/heightscape/internal/engine/terrain"
)

// TerrainParams returns the mesh generation parameters.
func (c *Config) TerrainParams() terrain.Params {
	return terrain.Params{
		Resolution:       uint32(c.Terrain.Resolution),
		Size:             c.Terrain.Size,
		Chunks:           uint32(c.Terrain.Chunks),
		HeightMultiplier: c.Terrain.HeightMultiplier,
		GenerateNormals:  c.Terrain.GenerateNormals,
	}
}

// SceneConfig returns the camera, sun and water settings for the scene.
func (c *Config) SceneConfig() scene.Config {
	return scene.Config{
		Player: camera.Params{
			FovY:  c.Camera.FovY,
			ZNear: c.Camera.ZNear,
			ZFar:  c.Camera.ZFar,
		},
		Sun: camera.SunParams{
			Altitude: c.Sun.Altitude,
			Offset:   c.Sun.Offset,
			Lens: camera.Params{
				FovY:  c.Sun.FovY,
				ZNear: c.Sun.ZNear,
				ZFar:  c.Sun.ZFar,
			},
		},
		Speed:        c.Camera.Speed,
		Sensitivity:  c.Camera.LookSensitivity,
		WaterEnabled: c.Water.Enabled,
		WaterHeight:  c.Water.Height,
	}
}
