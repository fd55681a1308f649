package integrator

import (
	"math"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/geometry"
	"github.com/pathforge/go-pathtracer/pkg/material"
	"github.com/pathforge/go-pathtracer/pkg/scene"
)

// ShadowEpsilon is the lower bound of every intersection query; it keeps a
// bounced ray from re-hitting the surface it leaves
const ShadowEpsilon = 0.0001

// PathTracingIntegrator implements unidirectional path tracing with multiple
// importance sampling of the scene lights and the surface BRDF
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxDepth: config.MaxDepth}
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, s, sampler, pt.maxDepth)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := s.World.Hit(ray, ShadowEpsilon, math.Inf(1), sampler)
	if !isHit {
		return s.Background
	}

	emitted := material.Emitted(hit.Material, ray, *hit)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	if scatter.IsSpecular {
		return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.SpecularRay, s, sampler, depth-1))
	}

	return emitted.Add(pt.calculateDiffuseColor(ray, hit, scatter, s, sampler, depth))
}

// calculateDiffuseColor samples one direction from the light/BRDF mixture and
// weights the recursive estimate by scatteringPDF / mixturePDF
func (pt *PathTracingIntegrator) calculateDiffuseColor(ray core.Ray, hit *material.HitRecord, scatter material.ScatterRecord, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	pdf := scatter.PDF
	if s.Lights != nil && s.Lights.Len() > 0 {
		pdf = core.NewMixturePDF(geometry.NewHittablePDF(s.Lights, hit.Point), scatter.PDF)
	}

	direction := pdf.Generate(sampler)
	scattered := core.NewRayAtTime(hit.Point, direction, ray.Time)

	// A vanishing or undefined density contributes nothing rather than dividing by zero
	pdfValue := pdf.Value(direction)
	if !(pdfValue > 0) || math.IsInf(pdfValue, 1) {
		return core.Vec3{}
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, *hit, scattered)
	if !(scatteringPDF > 0) {
		return core.Vec3{}
	}

	incoming := pt.rayColor(scattered, s, sampler, depth-1)
	return scatter.Attenuation.MultiplyVec(incoming).Multiply(scatteringPDF / pdfValue)
}
