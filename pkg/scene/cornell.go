package scene

import (
	"math/rand"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/geometry"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func cornellCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:    core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
		Time0:       0,
		Time1:       1,
	}
}

func cornellSampling() SamplingConfig {
	return SamplingConfig{
		Width:           600,
		Height:          600,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// addCornellWalls adds the five walls and returns the white material they share
func addCornellWalls(s *Scene) *material.Lambertian {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	s.Add(
		geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green),
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),
		geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white),
		geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white),
	)
	return white
}

// NewCornellScene creates the Cornell box with a tall aluminium block and a glass
// sphere. Both the ceiling light and the glass sphere are sampled as lights.
func NewCornellScene(random *rand.Rand, options Options) (*Scene, error) {
	s := NewScene(cornellCamera(), cornellSampling(), core.Vec3{})
	addCornellWalls(s)

	// Ceiling light faces down into the box
	lightMat := material.NewDiffuseLight(core.NewVec3(15, 15, 15))
	lightMat.FrontFaceOnly = true
	ceilingLight := geometry.NewXZRect(213, 343, 227, 332, 554, lightMat)
	s.Add(geometry.NewFlipFace(ceilingLight))

	aluminum := material.NewMetal(core.NewVec3(0.8, 0.85, 0.88), 0)
	var tallBox geometry.Hittable = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), aluminum)
	tallBox = geometry.NewRotateY(tallBox, 15)
	tallBox = geometry.NewTranslate(tallBox, core.NewVec3(265, 0, 295))
	s.Add(tallBox)

	glassSphere := geometry.NewSphere(core.NewVec3(190, 90, 190), 90, material.NewDielectric(1.5))
	s.Add(glassSphere)

	s.AddLightSampler(ceilingLight)
	s.AddLightSampler(geometry.NewSphere(glassSphere.Center, glassSphere.Radius, nil))

	return s, nil
}

// NewCornellSmokeScene creates the Cornell box with two blocks of dark and light smoke
func NewCornellSmokeScene(random *rand.Rand, options Options) (*Scene, error) {
	s := NewScene(cornellCamera(), cornellSampling(), core.Vec3{})
	white := addCornellWalls(s)

	light := geometry.NewXZRect(113, 443, 127, 432, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7)))
	s.AddLight(light)

	var box1 geometry.Hittable = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	box1 = geometry.NewRotateY(box1, 15)
	box1 = geometry.NewTranslate(box1, core.NewVec3(265, 0, 295))

	var box2 geometry.Hittable = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	box2 = geometry.NewRotateY(box2, -18)
	box2 = geometry.NewTranslate(box2, core.NewVec3(130, 0, 65))

	s.Add(
		geometry.NewConstantMedium(box1, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(box2, 0.01, core.NewVec3(1, 1, 1)),
	)

	return s, nil
}
