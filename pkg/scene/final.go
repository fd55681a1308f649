package scene

import (
	"fmt"
	"math/rand"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/geometry"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// NewFinalScene creates the showcase scene: a field of boxes, a moving sphere,
// glass, metal, two participating media, image and noise textures, and an
// instanced, rotated cluster of small spheres behind its own BVH.
func NewFinalScene(random *rand.Rand, options Options) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		LookFrom:    core.NewVec3(478, 278, -600),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
		Time0:       0,
		Time1:       1,
	}
	samplingConfig := SamplingConfig{
		Width:           800,
		Height:          800,
		SamplesPerPixel: 1000,
		MaxDepth:        50,
	}
	s := NewScene(cameraConfig, samplingConfig, core.Vec3{})

	// Ground: 20x20 boxes of random height, grouped under one BVH
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	boxes := make([]geometry.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := 1 + 100*random.Float64()
			boxes = append(boxes, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	groundBVH, err := geometry.NewBVH(boxes, 0, 1, random)
	if err != nil {
		return nil, fmt.Errorf("ground boxes: %w", err)
	}
	s.Add(groundBVH)

	s.AddLight(geometry.NewXZRect(123, 423, 147, 412, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7))))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	s.Add(geometry.NewMovingSphere(center1, center2, 0, 1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	s.Add(geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)))
	s.Add(geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)))

	// Blue subsurface-looking ball: glass shell filled with dense medium
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(boundary)
	s.Add(geometry.NewConstantMedium(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin global mist
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	s.Add(geometry.NewConstantMedium(mist, 0.0001, core.NewVec3(1, 1, 1)))

	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earthTexture(options))))
	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoiseTexture(0.1, random))))

	// Cluster of small white spheres, instanced with rotation and translation
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const clusterSize = 1000
	cluster := make([]geometry.Hittable, 0, clusterSize)
	for j := 0; j < clusterSize; j++ {
		center := core.NewVec3(165*random.Float64(), 165*random.Float64(), 165*random.Float64())
		cluster = append(cluster, geometry.NewSphere(center, 10, white))
	}
	clusterBVH, err := geometry.NewBVH(cluster, 0, 1, random)
	if err != nil {
		return nil, fmt.Errorf("sphere cluster: %w", err)
	}
	s.Add(geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	return s, nil
}
