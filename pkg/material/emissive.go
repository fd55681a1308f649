package material

import (
	"github.com/pathforge/go-pathtracer/pkg/core"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emit ColorSource // Emitted radiance

	// FrontFaceOnly restricts emission to hits on the outward-facing side.
	// Off by default: emission is unconditional and one-sided lights are
	// built with a FlipFace wrapper instead.
	FrontFaceOnly bool
}

// NewDiffuseLight creates a new emissive material with a solid color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a new emissive material driven by a texture
func NewTexturedDiffuseLight(emit ColorSource) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter never scatters; lights absorb every incoming ray
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

// ScatteringPDF is zero because lights do not scatter
func (e *DiffuseLight) ScatteringPDF(rayIn core.Ray, hit HitRecord, scattered core.Ray) float64 {
	return 0
}

// Emitted returns the emission texture at the hit
func (e *DiffuseLight) Emitted(rayIn core.Ray, hit HitRecord) core.Vec3 {
	if e.FrontFaceOnly && !hit.FrontFace {
		return core.Vec3{}
	}
	return e.Emit.Evaluate(hit.UV, hit.Point)
}
