package material

import (
	"math"
	"math/rand"

	"github.com/pathforge/go-pathtracer/pkg/core"
)

// CheckerTexture alternates between two textures in a 3D sine-product pattern
type CheckerTexture struct {
	Even      ColorSource
	Odd       ColorSource
	Frequency float64 // Spatial frequency of the pattern (10 gives cells of ~0.31 units)
}

// NewCheckerTexture creates a checker texture from two solid colors
func NewCheckerTexture(even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTextureFrom(NewSolidColor(even), NewSolidColor(odd), 10.0)
}

// NewCheckerTextureFrom creates a checker texture from two arbitrary textures
func NewCheckerTextureFrom(even, odd ColorSource, frequency float64) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd, Frequency: frequency}
}

// Evaluate picks the odd or even texture depending on the sign of the sine product
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	f := c.Frequency
	sines := math.Sin(f*point.X) * math.Sin(f*point.Y) * math.Sin(f*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}

// NoiseTexture is a marble-like texture driven by Perlin turbulence
type NoiseTexture struct {
	noise *Perlin
	Scale float64
	Color core.Vec3
}

// NewNoiseTexture creates a white marble texture with the given scale
func NewNoiseTexture(scale float64, random *rand.Rand) *NoiseTexture {
	return &NoiseTexture{
		noise: NewPerlin(random),
		Scale: scale,
		Color: core.NewVec3(1, 1, 1),
	}
}

// Evaluate returns Color·0.5·(1 + sin(scale·z + 10·turb(p)))
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	phase := n.Scale*point.Z + 10*n.noise.Turbulence(point, defaultTurbulenceDepth)
	return n.Color.Multiply(0.5 * (1 + math.Sin(phase)))
}
