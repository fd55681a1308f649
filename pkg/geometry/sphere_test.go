package geometry

import (
	"math"
	"testing"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

func TestSphere_HitRoundTrip(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sampler := core.NewSeededSampler(42)

	for _, radius := range []float64{0.5, 1, 3.7} {
		sphere := NewSphere(core.Vec3{}, radius, mat)

		for i := 0; i < 100; i++ {
			normal := core.SampleOnUnitSphere(sampler.Get2D())
			origin := normal.Multiply(radius * 3)
			ray := core.NewRay(origin, normal.Negate())

			hit, ok := sphere.Hit(ray, 0.001, math.Inf(1), nil)
			if !ok {
				t.Fatalf("radius %f: expected hit from %v", radius, origin)
			}
			if d := hit.Point.Length(); math.Abs(d-radius) > 1e-9 {
				t.Errorf("radius %f: hit point at distance %f", radius, d)
			}
			if hit.Normal.Dot(ray.Direction) >= 0 {
				t.Errorf("normal %v should oppose ray", hit.Normal)
			}
			if !hit.FrontFace {
				t.Error("expected front face hit from outside")
			}
			if math.Abs(hit.T-2*radius) > 1e-9 {
				t.Errorf("expected t=%f, got %f", 2*radius, hit.T)
			}
			if hit.Material != mat {
				t.Error("hit record should carry the sphere's material")
			}
		}
	}
}

func TestSphere_RootSelection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1, nil)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	tests := []struct {
		name       string
		tMin, tMax float64
		wantHit    bool
		wantT      float64
		frontFace  bool
	}{
		{"near root", 0.001, math.Inf(1), true, 4, true},
		{"far root when near excluded", 4.5, math.Inf(1), true, 6, false},
		{"interval excludes both", 6.5, math.Inf(1), false, 0, false},
		{"interval before sphere", 0.001, 3.5, false, 0, false},
		{"tMin equal to root is excluded", 4, 5.9, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Hit(ray, tt.tMin, tt.tMax, nil)
			if ok != tt.wantHit {
				t.Fatalf("expected hit=%v, got %v", tt.wantHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("expected t=%f, got %f", tt.wantT, hit.T)
			}
			if hit.FrontFace != tt.frontFace {
				t.Errorf("expected frontFace=%v", tt.frontFace)
			}
		})
	}
}

func TestSphere_UV(t *testing.T) {
	tests := []struct {
		name string
		p    core.Vec3
		u, v float64
	}{
		{"+x", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"+y", core.NewVec3(0, 1, 0), 0.5, 1.0},
		{"-y", core.NewVec3(0, -1, 0), 0.5, 0.0},
		{"-x", core.NewVec3(-1, 0, 0), 0.0, 0.5},
		{"+z", core.NewVec3(0, 0, 1), 0.25, 0.5},
		{"-z", core.NewVec3(0, 0, -1), 0.75, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := sphereUV(tt.p)
			// u wraps at the -x seam
			du := math.Min(math.Abs(uv.X-tt.u), math.Abs(math.Abs(uv.X-tt.u)-1))
			if du > 1e-9 || math.Abs(uv.Y-tt.v) > 1e-9 {
				t.Errorf("expected (%f, %f), got (%f, %f)", tt.u, tt.v, uv.X, uv.Y)
			}
		})
	}
}

func TestSphere_LightSampling(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -10), 2, nil)
	origin := core.Vec3{}
	sampler := core.NewSeededSampler(7)

	cosThetaMax := math.Sqrt(1 - 4.0/100.0)
	expected := 1 / (2 * math.Pi * (1 - cosThetaMax))

	for i := 0; i < 200; i++ {
		dir := sphere.Random(origin, sampler)
		if _, ok := sphere.Hit(core.NewRay(origin, dir), 0.001, math.Inf(1), nil); !ok {
			t.Fatalf("sampled direction %v misses the sphere", dir)
		}
		if got := sphere.PDFValue(origin, dir); math.Abs(got-expected) > 1e-9 {
			t.Fatalf("expected pdf %f, got %f", expected, got)
		}
	}

	if got := sphere.PDFValue(origin, core.NewVec3(0, 1, 0)); got != 0 {
		t.Errorf("expected zero density away from the sphere, got %f", got)
	}
}

func TestMovingSphere(t *testing.T) {
	s := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, nil)

	if c := s.Center(0.5); c != core.NewVec3(0, 1, 0) {
		t.Errorf("expected midpoint center, got %v", c)
	}

	box, ok := s.BoundingBox(0, 1)
	if !ok {
		t.Fatal("moving sphere should have a box")
	}
	if box.Min != core.NewVec3(-0.5, -0.5, -0.5) || box.Max != core.NewVec3(0.5, 2.5, 0.5) {
		t.Errorf("unexpected box %v", box)
	}

	// The ray's own time selects the center
	early := core.NewRayAtTime(core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0), 0)
	late := core.NewRayAtTime(core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0), 1)
	if _, ok := s.Hit(early, 0.001, math.Inf(1), nil); ok {
		t.Error("ray at time 0 should miss the sphere at its start position")
	}
	if _, ok := s.Hit(late, 0.001, math.Inf(1), nil); !ok {
		t.Error("ray at time 1 should hit the sphere at its end position")
	}
}
