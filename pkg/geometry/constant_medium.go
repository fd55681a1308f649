package geometry

import (
	"math"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// mediumExitOffset separates the search for the exit crossing from the entry crossing
const mediumExitOffset = 0.0001

// ConstantMedium is a homogeneous participating medium filling a convex boundary
type ConstantMedium struct {
	Boundary      Hittable
	Density       float64
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium creates a medium of the given density and color inside boundary
func NewConstantMedium(boundary Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// NewTexturedConstantMedium creates a medium whose scattering albedo is a texture.
// A density that is not positive gives a medium that never scatters.
func NewTexturedConstantMedium(boundary Hittable, density float64, albedo material.ColorSource) *ConstantMedium {
	m := &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
	}
	if density > 0 {
		m.negInvDensity = -1 / density
	}
	return m
}

// Hit samples a free-flight distance through the medium. The sampler is required.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if !(m.Density > 0) {
		return nil, false
	}

	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+mediumExitOffset, math.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	t1 := math.Max(entry.T, tMin)
	t2 := math.Min(exit.T, tMax)
	if t1 >= t2 {
		return nil, false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength

	// 1 - [0,1) keeps U in (0, 1] so the logarithm stays finite
	u := 1 - sampler.Get1D()
	hitDistance := m.negInvDensity * math.Log(u)
	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	t := t1 + hitDistance/rayLength
	return &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,                  // also arbitrary
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}
