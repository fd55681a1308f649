package material

import (
	"math"
	"testing"

	"github.com/pathforge/go-pathtracer/pkg/core"
)

func TestImageTexture_Evaluate(t *testing.T) {
	// Layout:
	//   white black   (row 0, top of image)
	//   black white   (row 1, bottom of image)
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	pixels := []core.Vec3{
		white, black,
		black, white,
	}
	texture := NewImageTexture(2, 2, pixels)

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom-left", core.NewVec2(0.1, 0.1), black},
		{"bottom-right", core.NewVec2(0.9, 0.1), white},
		{"top-left", core.NewVec2(0.1, 0.9), white},
		{"top-right", core.NewVec2(0.9, 0.9), black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
				t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, got)
			}
		})
	}
}

func TestImageTexture_ClampsOutOfRangeUV(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	// One row, two columns
	texture := NewImageTexture(2, 1, []core.Vec3{red, green})

	tests := []struct {
		uv       core.Vec2
		expected core.Vec3
	}{
		{core.NewVec2(-3, 0.5), red},
		{core.NewVec2(1.0, 0.5), green},
		{core.NewVec2(7.5, -2), green},
		{core.NewVec2(math.NaN(), math.NaN()), red},
	}

	for _, tt := range tests {
		if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
			t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, got)
		}
	}
}

func TestImageTexture_FromRGBAndMissingData(t *testing.T) {
	texture := NewImageTextureFromRGB(1, 1, []byte{255, 0, 51})
	got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{})
	if math.Abs(got.X-1) > 1e-12 || got.Y != 0 || math.Abs(got.Z-0.2) > 1e-12 {
		t.Errorf("Unexpected decoded color %v", got)
	}

	empty := NewImageTexture(0, 0, nil)
	if got := empty.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); got != core.NewVec3(0, 1, 1) {
		t.Errorf("Expected debug cyan for missing data, got %v", got)
	}
}
