package material

import (
	"github.com/pathforge/go-pathtracer/pkg/core"
)

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter decides how an incoming ray leaves the surface. It returns false
	// when the surface absorbs the ray (or only emits).
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterRecord, bool)

	// ScatteringPDF is the solid-angle density of the surface's own BRDF having
	// produced scattered. Purely specular materials return 0.
	ScatteringPDF(rayIn core.Ray, hit HitRecord, scattered core.Ray) float64
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted(rayIn core.Ray, hit HitRecord) core.Vec3
}

// Emitted returns the radiance emitted by m at the hit, or black if m does not emit
func Emitted(m Material, rayIn core.Ray, hit HitRecord) core.Vec3 {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emitted(rayIn, hit)
	}
	return core.Vec3{}
}

// ScatterRecord contains the result of material scattering.
//
// For a specular bounce SpecularRay is the concrete continuation and PDF is
// unused. Otherwise PDF is the material's sampling strategy and the integrator
// chooses the outgoing direction itself.
type ScatterRecord struct {
	SpecularRay core.Ray
	IsSpecular  bool
	Attenuation core.Vec3
	PDF         core.PDF
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always opposing the incoming ray
	T         float64   // Parameter t along the ray
	UV        core.Vec2 // Surface texture coordinates
	FrontFace bool      // Whether ray hit the outward-facing side
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
