package scene

import (
	"math/rand"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/geometry"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

var skyBlue = core.NewVec3(0.70, 0.80, 1.00)

// outdoorCamera is the camera shared by the sphere and texture scenes
func outdoorCamera(aperture float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      aperture,
		FocusDistance: 10,
		Time0:         0,
		Time1:         1,
	}
}

// NewRandomSpheresScene creates a checkered ground covered in small random
// spheres (the diffuse ones bouncing upwards during the shutter interval) around
// three large spheres of glass, diffuse and metal.
func NewRandomSpheresScene(random *rand.Rand, options Options) (*Scene, error) {
	s := NewScene(outdoorCamera(0.1), DefaultSamplingConfig(), skyBlue)

	checker := material.NewCheckerTexture(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	randomColor := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
		)
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := randomColor(0, 1).MultiplyVec(randomColor(0, 1))
				center2 := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				s.Add(geometry.NewMovingSphere(center, center2, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := randomColor(0.5, 1)
				fuzz := 0.5 * random.Float64()
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	s.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	s.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return s, nil
}

// NewTwoPerlinSpheresScene creates a marble ground and a marble sphere
func NewTwoPerlinSpheresScene(random *rand.Rand, options Options) (*Scene, error) {
	s := NewScene(outdoorCamera(0), DefaultSamplingConfig(), skyBlue)

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, random))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	return s, nil
}

// NewEarthScene creates a single image-textured globe
func NewEarthScene(random *rand.Rand, options Options) (*Scene, error) {
	s := NewScene(outdoorCamera(0), DefaultSamplingConfig(), skyBlue)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earthTexture(options))))
	return s, nil
}

// earthTexture returns the supplied globe image or a checker stand-in
func earthTexture(options Options) material.ColorSource {
	if options.EarthTexture != nil {
		return options.EarthTexture
	}
	return material.NewCheckerTexture(core.NewVec3(0.1, 0.3, 0.7), core.NewVec3(0.2, 0.6, 0.2))
}
