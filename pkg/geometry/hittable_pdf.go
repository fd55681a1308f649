package geometry

import (
	"github.com/pathforge/go-pathtracer/pkg/core"
)

// HittablePDF samples directions from Origin towards a light-sampling hittable
type HittablePDF struct {
	Objects Hittable
	Origin  core.Vec3
}

// NewHittablePDF creates a PDF aimed at objects from origin
func NewHittablePDF(objects Hittable, origin core.Vec3) *HittablePDF {
	return &HittablePDF{Objects: objects, Origin: origin}
}

// Value delegates to the objects' PDFValue
func (p *HittablePDF) Value(direction core.Vec3) float64 {
	return PDFValue(p.Objects, p.Origin, direction)
}

// Generate delegates to the objects' Random
func (p *HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return RandomDirection(p.Objects, p.Origin, sampler)
}
