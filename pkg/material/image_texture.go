package material

import (
	"github.com/pathforge/go-pathtracer/pkg/core"
)

// ImageTexture provides color from a decoded 2D raster
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 at the top
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewImageTextureFromRGB creates a texture from packed 8-bit RGB bytes
func NewImageTextureFromRGB(width, height int, data []byte) *ImageTexture {
	const colorScale = 1.0 / 255.0
	pixels := make([]core.Vec3, width*height)
	for i := range pixels {
		if 3*i+2 >= len(data) {
			break
		}
		pixels[i] = core.NewVec3(
			float64(data[3*i])*colorScale,
			float64(data[3*i+1])*colorScale,
			float64(data[3*i+2])*colorScale,
		)
	}
	return NewImageTexture(width, height, pixels)
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor lookup.
// U is clamped to [0,1]; V is flipped to image orientation and clamped.
// A texture with no data evaluates to cyan so missing inputs are visible.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return core.NewVec3(0, 1, 1)
	}

	u := clamp(uv.X, 0, 1)
	v := 1.0 - clamp(uv.Y, 0, 1)

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))

	// Clamp to image bounds (u or v of exactly 1 maps one past the edge)
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	return t.Pixels[y*t.Width+x]
}

// clamp limits x to [lo, hi]; NaN maps to lo
func clamp(x, lo, hi float64) float64 {
	if x > hi {
		return hi
	}
	if x >= lo {
		return x
	}
	return lo
}
