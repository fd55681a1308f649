package core

import "math"

// PDF is a sampling strategy over directions
type PDF interface {
	// Value returns the density of the distribution at direction
	Value(direction Vec3) float64
	// Generate draws a direction from the distribution
	Generate(sampler Sampler) Vec3
}

// CosinePDF samples directions with density proportional to cos θ around a normal
type CosinePDF struct {
	uvw ONB
}

// NewCosinePDF creates a cosine-weighted hemisphere PDF around w
func NewCosinePDF(w Vec3) *CosinePDF {
	return &CosinePDF{uvw: NewONBFromW(w)}
}

// Value returns max(0, cos θ)/π
func (p *CosinePDF) Value(direction Vec3) float64 {
	cosine := direction.Normalize().Dot(p.uvw.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

// Generate draws a cosine-weighted direction in the hemisphere
func (p *CosinePDF) Generate(sampler Sampler) Vec3 {
	return p.uvw.Local(RandomCosineDirection(sampler.Get2D()))
}

// MixturePDF is an equal-weight mixture of two PDFs
type MixturePDF struct {
	p0, p1 PDF
}

// NewMixturePDF creates a 50/50 mixture of p0 and p1
func NewMixturePDF(p0, p1 PDF) *MixturePDF {
	return &MixturePDF{p0: p0, p1: p1}
}

// Value returns the average of both densities
func (m *MixturePDF) Value(direction Vec3) float64 {
	return 0.5*m.p0.Value(direction) + 0.5*m.p1.Value(direction)
}

// Generate samples from one of the two children chosen by a fair coin
func (m *MixturePDF) Generate(sampler Sampler) Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.p0.Generate(sampler)
	}
	return m.p1.Generate(sampler)
}

// NonePDF is the placeholder strategy carried by specular scatter records.
// The integrator never samples it.
type NonePDF struct{}

// Value always returns zero
func (NonePDF) Value(direction Vec3) float64 {
	return 0
}

// Generate always returns the zero vector
func (NonePDF) Generate(sampler Sampler) Vec3 {
	return Vec3{}
}

// UniformSphereDensity is the density of a uniform distribution over all directions
const UniformSphereDensity = 1 / (4 * math.Pi)

// UniformSpherePDF samples directions uniformly over the full sphere
type UniformSpherePDF struct{}

// Value returns 1/(4π) for every direction
func (UniformSpherePDF) Value(direction Vec3) float64 {
	return UniformSphereDensity
}

// Generate draws a uniformly distributed unit direction
func (UniformSpherePDF) Generate(sampler Sampler) Vec3 {
	return SampleOnUnitSphere(sampler.Get2D())
}
