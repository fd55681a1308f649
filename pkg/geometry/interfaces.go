package geometry

import (
	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays
type Hittable interface {
	// Hit returns the nearest intersection strictly inside (tMin, tMax).
	// The sampler is only consumed by stochastic objects such as participating
	// media; deterministic shapes ignore it and accept nil.
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)

	// BoundingBox returns a box enclosing the object over [time0, time1].
	// The second result is false for objects without a finite box.
	BoundingBox(time0, time1 float64) (core.AABB, bool)
}

// LightSampler is implemented by hittables that can be importance-sampled as light sources
type LightSampler interface {
	// PDFValue is the solid-angle density of sampling direction from origin
	PDFValue(origin, direction core.Vec3) float64
	// Random draws a direction from origin towards the object
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// PDFValue returns h's light-sampling density, or 0 if h cannot be sampled
func PDFValue(h Hittable, origin, direction core.Vec3) float64 {
	if light, ok := h.(LightSampler); ok {
		return light.PDFValue(origin, direction)
	}
	return 0
}

// RandomDirection samples a direction towards h, or returns the zero vector if h cannot be sampled
func RandomDirection(h Hittable, origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if light, ok := h.(LightSampler); ok {
		return light.Random(origin, sampler)
	}
	return core.Vec3{}
}

// lightSampleEpsilon offsets the probe ray used when evaluating light densities
const lightSampleEpsilon = 0.001

// padDegenerate widens any axis thinner than delta so the BVH never holds a zero-thickness box
func padDegenerate(box core.AABB, delta float64) core.AABB {
	for axis := 0; axis < 3; axis++ {
		if box.Max.Component(axis)-box.Min.Component(axis) >= delta {
			continue
		}
		switch axis {
		case 0:
			box.Min.X -= delta / 2
			box.Max.X += delta / 2
		case 1:
			box.Min.Y -= delta / 2
			box.Max.Y += delta / 2
		case 2:
			box.Min.Z -= delta / 2
			box.Max.Z += delta / 2
		}
	}
	return box
}
