package renderer

import (
	"image"
	"math"
	"time"

	"github.com/pathforge/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	AverageSamples   float64       // Average samples per pixel
	MinSamples       int           // Minimum samples taken per pixel
	MaxSamplesUsed   int           // Maximum samples actually used by any pixel
	NonFiniteSamples int           // Samples that carried a NaN or infinite component
	Passes           int           // Progressive passes completed
	Elapsed          time.Duration // Wall time spent rendering
}

// PixelStats accumulates the radiance samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
	NonFinite   int       // Samples whose non-finite components were zeroed
}

// AddSample adds a new color sample to the pixel statistics. Non-finite
// components are replaced by zero so a single bad path cannot poison the pixel.
func (ps *PixelStats) AddSample(color core.Vec3) {
	if !color.IsFinite() {
		color = core.NewVec3(finiteOrZero(color.X), finiteOrZero(color.Y), finiteOrZero(color.Z))
		ps.NonFinite++
	}
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// Merge folds the samples of another accumulator into this one
func (ps *PixelStats) Merge(other PixelStats) {
	ps.ColorAccum = ps.ColorAccum.Add(other.ColorAccum)
	ps.SampleCount += other.SampleCount
	ps.NonFinite += other.NonFinite
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CalculateAverageLuminance returns the mean perceptual luminance of an 8-bit image in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Divide(255).Luminance()
		}
	}
	return total / float64(pixels)
}
