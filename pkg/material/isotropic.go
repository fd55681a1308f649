package material

import (
	"github.com/pathforge/go-pathtracer/pkg/core"
)

// Isotropic is the phase function of a homogeneous participating medium
type Isotropic struct {
	Albedo ColorSource
}

// NewIsotropic creates an isotropic phase function with a solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase function with a texture
func NewTexturedIsotropic(albedo ColorSource) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter sends the ray off in a uniformly random direction
func (i *Isotropic) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{
		IsSpecular:  false,
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
		PDF:         core.UniformSpherePDF{},
	}, true
}

// ScatteringPDF is the uniform density 1/(4π) over the sphere
func (i *Isotropic) ScatteringPDF(rayIn core.Ray, hit HitRecord, scattered core.Ray) float64 {
	return core.UniformSphereDensity
}
