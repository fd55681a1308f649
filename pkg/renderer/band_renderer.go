package renderer

import (
	"image"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/integrator"
	"github.com/pathforge/go-pathtracer/pkg/scene"
)

// Band is a contiguous run of full image rows rendered as one unit of work
type Band struct {
	ID     int             // Index of the band from the top of the image
	Bounds image.Rectangle // Pixel bounds; always spans the full image width
}

// NewBandGrid partitions an image into row-bands of at most bandHeight rows
func NewBandGrid(width, height, bandHeight int) []Band {
	if bandHeight <= 0 {
		bandHeight = height
	}

	var bands []Band
	for y0 := 0; y0 < height; y0 += bandHeight {
		y1 := min(y0+bandHeight, height)
		bands = append(bands, Band{ID: len(bands), Bounds: image.Rect(0, y0, width, y1)})
	}
	return bands
}

// BandRenderer samples the pixels of a band. It only reads the scene, so one
// renderer may be shared by every worker.
type BandRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
}

// NewBandRenderer creates a band renderer for an image of the given size
func NewBandRenderer(s *scene.Scene, integratorInst integrator.Integrator, width, height int) *BandRenderer {
	return &BandRenderer{
		scene:      s,
		integrator: integratorInst,
		width:      width,
		height:     height,
	}
}

// RenderBand takes samples jittered camera rays through every pixel of the band
// and returns the band's own pixel buffer in row-major order
func (br *BandRenderer) RenderBand(band Band, samples int, sampler core.Sampler) []PixelStats {
	bounds := band.Bounds
	pixels := make([]PixelStats, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := (y - bounds.Min.Y) * bounds.Dx()
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixels[row+x-bounds.Min.X]
			for n := 0; n < samples; n++ {
				ps.AddSample(br.samplePixel(x, y, sampler))
			}
		}
	}

	return pixels
}

// samplePixel traces one jittered ray through pixel (x, y); image row 0 is the top
func (br *BandRenderer) samplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	jitter := sampler.Get2D()
	s := (float64(x) + jitter.X) / float64(br.width)
	t := (float64(br.height-1-y) + jitter.Y) / float64(br.height)

	ray := br.scene.Camera.GetRay(s, t, sampler)
	return br.integrator.RayColor(ray, br.scene, sampler)
}
