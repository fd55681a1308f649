package scene

import (
	"math/rand"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/geometry"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// NewSimpleLightScene creates two marble spheres lit by a rectangle and a sphere light
func NewSimpleLightScene(random *rand.Rand, options Options) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		LookFrom:    core.NewVec3(26, 3, 6),
		LookAt:      core.NewVec3(0, 2, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
		Time0:       0,
		Time1:       1,
	}
	samplingConfig := DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 400

	s := NewScene(cameraConfig, samplingConfig, core.Vec3{})

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, random))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	diffuseLight := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	s.AddLight(geometry.NewXYRect(3, 5, 1, 3, -2, diffuseLight))
	s.AddLight(geometry.NewSphere(core.NewVec3(0, 7, 0), 2, diffuseLight))

	return s, nil
}

// EmissiveSphereEmission is the radiance of the sphere in the emissive-sphere scene
var EmissiveSphereEmission = core.NewVec3(1.0, 0.6, 0.2)

// NewEmissiveSphereScene creates a single emissive sphere in front of a pinhole camera on black
func NewEmissiveSphereScene(random *rand.Rand, options Options) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: 1,
	}
	samplingConfig := SamplingConfig{
		Width:           64,
		Height:          64,
		SamplesPerPixel: 16,
		MaxDepth:        1,
	}

	s := NewScene(cameraConfig, samplingConfig, core.Vec3{})
	s.AddSphereLight(core.NewVec3(0, 0, -4), 1, EmissiveSphereEmission)

	return s, nil
}
