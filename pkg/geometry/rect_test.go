package geometry

import (
	"math"
	"testing"

	"github.com/pathforge/go-pathtracer/pkg/core"
)

func TestAARect_Hit(t *testing.T) {
	tests := []struct {
		name    string
		rect    *AARect
		ray     core.Ray
		wantHit bool
		wantT   float64
		wantUV  core.Vec2
	}{
		{
			name:    "xy center",
			rect:    NewXYRect(-1, 1, -1, 1, -2, nil),
			ray:     core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)),
			wantHit: true, wantT: 2, wantUV: core.NewVec2(0.5, 0.5),
		},
		{
			name:    "xz corner",
			rect:    NewXZRect(0, 2, 0, 4, 3, nil),
			ray:     core.NewRay(core.NewVec3(2, 0, 4), core.NewVec3(0, 1, 0)),
			wantHit: true, wantT: 3, wantUV: core.NewVec2(1, 1),
		},
		{
			name:    "yz from behind",
			rect:    NewYZRect(0, 1, 0, 1, 5, nil),
			ray:     core.NewRay(core.NewVec3(10, 0.25, 0.75), core.NewVec3(-1, 0, 0)),
			wantHit: true, wantT: 5, wantUV: core.NewVec2(0.25, 0.75),
		},
		{
			name: "outside bounds",
			rect: NewXYRect(-1, 1, -1, 1, -2, nil),
			ray:  core.NewRay(core.NewVec3(1.5, 0, 0), core.NewVec3(0, 0, -1)),
		},
		{
			name: "parallel to plane",
			rect: NewXYRect(-1, 1, -1, 1, -2, nil),
			ray:  core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)),
		},
		{
			name: "ray inside plane",
			rect: NewXYRect(-1, 1, -1, 1, 0, nil),
			ray:  core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)),
		},
		{
			name: "behind origin",
			rect: NewXYRect(-1, 1, -1, 1, 2, nil),
			ray:  core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.rect.Hit(tt.ray, 0.001, math.Inf(1), nil)
			if ok != tt.wantHit {
				t.Fatalf("expected hit=%v, got %v", tt.wantHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("expected t=%f, got %f", tt.wantT, hit.T)
			}
			if math.Abs(hit.UV.X-tt.wantUV.X) > 1e-9 || math.Abs(hit.UV.Y-tt.wantUV.Y) > 1e-9 {
				t.Errorf("expected uv %v, got %v", tt.wantUV, hit.UV)
			}
			if hit.Normal.Dot(tt.ray.Direction) >= 0 {
				t.Error("normal should oppose the ray")
			}
		})
	}
}

func TestAARect_BoundingBoxPadded(t *testing.T) {
	box, ok := NewXZRect(0, 2, 0, 4, 3, nil).BoundingBox(0, 1)
	if !ok {
		t.Fatal("rect should have a box")
	}
	if box.Max.Y-box.Min.Y <= 0 {
		t.Errorf("flat axis should be padded, got %v", box)
	}
	if box.Min.X != 0 || box.Max.X != 2 || box.Min.Z != 0 || box.Max.Z != 4 {
		t.Errorf("in-plane extent should be exact, got %v", box)
	}
}

func TestAARect_LightSampling(t *testing.T) {
	rect := NewXZRect(-1, 1, -1, 1, 4, nil)
	origin := core.Vec3{}
	sampler := core.NewSeededSampler(3)

	// Straight up: distance² / (cos·area) = 16 / (1·4)
	if got := rect.PDFValue(origin, core.NewVec3(0, 1, 0)); math.Abs(got-4) > 1e-9 {
		t.Errorf("expected pdf 4, got %f", got)
	}

	if got := rect.PDFValue(origin, core.NewVec3(0, -1, 0)); got != 0 {
		t.Errorf("expected zero pdf away from the rect, got %f", got)
	}

	for i := 0; i < 100; i++ {
		dir := rect.Random(origin, sampler)
		if math.Abs(dir.Y-4) > 1e-12 || math.Abs(dir.X) > 1 || math.Abs(dir.Z) > 1 {
			t.Fatalf("sampled point %v is not on the rect", dir)
		}
		if rect.PDFValue(origin, dir) <= 0 {
			t.Fatalf("sampled direction %v should have positive density", dir)
		}
	}
}

func TestAARect_PDFIntegratesToOne(t *testing.T) {
	// E[1/pdf] over light samples equals the solid angle the rect subtends.
	// A centred 2w×2h rect at distance d subtends 4·asin(wh / sqrt((w²+d²)(h²+d²))).
	rect := NewXZRect(-1, 1, -1, 1, 2, nil)
	origin := core.Vec3{}
	sampler := core.NewSeededSampler(11)

	solidAngle := 4 * math.Asin(1/math.Sqrt((1+4)*(1+4)))

	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += 1 / rect.PDFValue(origin, rect.Random(origin, sampler))
	}
	estimate := sum / n

	if math.Abs(estimate-solidAngle)/solidAngle > 0.01 {
		t.Errorf("E[1/pdf]=%f does not match solid angle %f", estimate, solidAngle)
	}
}
