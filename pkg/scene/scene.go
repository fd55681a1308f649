package scene

import (
	"fmt"
	"math/rand"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/geometry"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	Objects        []geometry.Hittable    // Objects in the scene
	Lights         *geometry.HittableList // Objects importance-sampled as lights
	Background     core.Vec3              // Radiance of rays that escape the scene
	SamplingConfig SamplingConfig
	CameraConfig   geometry.CameraConfig
	World          geometry.Hittable      // Acceleration structure built by Preprocess
	BVHStats       geometry.BVHStats      // Shape of World when it is a BVH
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns a small, quick configuration
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// NewScene creates an empty scene with the given camera and sampling configuration
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig, background core.Vec3) *Scene {
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
		Background:     background,
		Lights:         geometry.NewHittableList(),
	}
}

// Add adds objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// AddLight adds an object to the scene and to the light list
func (s *Scene) AddLight(light geometry.Hittable) {
	s.Objects = append(s.Objects, light)
	s.Lights.Add(light)
}

// AddLightSampler registers a sampling proxy that is not rendered itself,
// such as a plain sphere standing in for a glass ball
func (s *Scene) AddLightSampler(proxy geometry.Hittable) {
	s.Lights.Add(proxy)
}

// AddSphereLight adds a spherical diffuse light to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) *geometry.Sphere {
	light := geometry.NewSphere(center, radius, material.NewDiffuseLight(emission))
	s.AddLight(light)
	return light
}

// SetSamplingConfig replaces the sampling configuration and rebuilds the
// camera so its aspect ratio matches the new image size
func (s *Scene) SetSamplingConfig(config SamplingConfig) {
	s.SamplingConfig = config
	if config.Width > 0 && config.Height > 0 {
		s.CameraConfig.AspectRatio = float64(config.Width) / float64(config.Height)
		s.Camera = geometry.NewCamera(s.CameraConfig)
	}
}

// Preprocess builds the BVH over the scene's objects for the camera's shutter interval.
// An empty scene gets an empty world that every ray misses.
func (s *Scene) Preprocess(random *rand.Rand) error {
	if s.Lights == nil {
		s.Lights = geometry.NewHittableList()
	}
	if s.Camera == nil {
		s.Camera = geometry.NewCamera(s.CameraConfig)
	}

	if len(s.Objects) == 0 {
		s.World = geometry.NewHittableList()
		s.BVHStats = geometry.BVHStats{}
		return nil
	}

	bvh, err := geometry.NewBVH(s.Objects, s.CameraConfig.Time0, s.CameraConfig.Time1, random)
	if err != nil {
		return fmt.Errorf("building scene BVH: %w", err)
	}
	s.World = bvh
	s.BVHStats = bvh.Stats()
	return nil
}

// PrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, object := range s.Objects {
		count += countPrimitives(object)
	}
	return count
}

// countPrimitives counts primitives in a single object, looking through composites
func countPrimitives(object geometry.Hittable) int {
	switch obj := object.(type) {
	case *geometry.TriangleMesh:
		return obj.TriangleCount()
	case *geometry.Box:
		return len(obj.Sides())
	case *geometry.HittableList:
		count := 0
		for _, child := range obj.Objects {
			count += countPrimitives(child)
		}
		return count
	case *geometry.BVHNode:
		if obj.Single() {
			return countPrimitives(obj.Left)
		}
		return countPrimitives(obj.Left) + countPrimitives(obj.Right)
	case *geometry.Translate:
		return countPrimitives(obj.Object)
	case *geometry.RotateY:
		return countPrimitives(obj.Object)
	case *geometry.FlipFace:
		return countPrimitives(obj.Object)
	default:
		return 1
	}
}
