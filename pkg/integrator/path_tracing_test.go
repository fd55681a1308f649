package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/geometry"
	"github.com/pathforge/go-pathtracer/pkg/material"
	"github.com/pathforge/go-pathtracer/pkg/scene"
)

// fixedPDF reports a constant density and always draws the same direction
type fixedPDF struct {
	value     float64
	direction core.Vec3
}

func (p fixedPDF) Value(direction core.Vec3) float64     { return p.value }
func (p fixedPDF) Generate(sampler core.Sampler) core.Vec3 { return p.direction }

// degenerateMaterial scatters diffusely through a PDF with a broken density
type degenerateMaterial struct {
	pdf core.PDF
}

func (m degenerateMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterRecord, bool) {
	return material.ScatterRecord{Attenuation: core.NewVec3(1, 1, 1), PDF: m.pdf}, true
}

func (m degenerateMaterial) ScatteringPDF(rayIn core.Ray, hit material.HitRecord, scattered core.Ray) float64 {
	return 1
}

// createTestScene preprocesses a scene holding objects, sampling lights, under a constant background
func createTestScene(t *testing.T, background core.Vec3, objects []geometry.Hittable, lights ...geometry.Hittable) *scene.Scene {
	t.Helper()
	s := scene.NewScene(geometry.DefaultCameraConfig(), scene.DefaultSamplingConfig(), background)
	s.Add(objects...)
	for _, light := range lights {
		s.AddLightSampler(light)
	}
	if err := s.Preprocess(rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	return s
}

func TestPathTracing_DepthTermination(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	sc := createTestScene(t, core.NewVec3(1, 1, 1), []geometry.Hittable{sphere})
	sampler := core.NewSeededSampler(42)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	if c := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 0}).RayColor(ray, sc, sampler); c != (core.Vec3{}) {
		t.Errorf("expected black for depth 0, got %v", c)
	}
	// Depth 1 can hit the sphere but gathers nothing from the bounce
	if c := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 1}).RayColor(ray, sc, sampler); c != (core.Vec3{}) {
		t.Errorf("expected black for depth 1 on a non-emissive surface, got %v", c)
	}
	if c := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 3}).RayColor(ray, sc, sampler); c == (core.Vec3{}) {
		t.Error("expected light for depth 3")
	}
}

func TestPathTracing_BackgroundAndEmission(t *testing.T) {
	emission := core.NewVec3(3, 2, 1)
	light := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewDiffuseLight(emission))
	background := core.NewVec3(0.1, 0.2, 0.3)
	sc := createTestScene(t, background, []geometry.Hittable{light}, light)
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 1})
	sampler := core.NewSeededSampler(1)

	if c := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), sc, sampler); c != emission {
		t.Errorf("expected emission %v, got %v", emission, c)
	}
	if c := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), sc, sampler); c != background {
		t.Errorf("expected background %v, got %v", background, c)
	}
}

func TestPathTracing_SpecularBypassesPDF(t *testing.T) {
	// A mirror at z=-2 reflects the camera ray back into a light behind the camera
	emission := core.NewVec3(2, 2, 2)
	albedo := core.NewVec3(0.9, 0.5, 0.25)
	mirror := geometry.NewXYRect(-5, 5, -5, 5, -2, material.NewMetal(albedo, 0))
	light := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, material.NewDiffuseLight(emission))
	sc := createTestScene(t, core.Vec3{}, []geometry.Hittable{mirror, light}, light)

	c := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 2}).
		RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), sc, core.NewSeededSampler(1))

	if want := albedo.MultiplyVec(emission); c.Subtract(want).Length() > 1e-12 {
		t.Errorf("expected %v, got %v", want, c)
	}
}

func TestPathTracing_WhiteFurnace(t *testing.T) {
	// A convex Lambertian object under a uniform sky: every bounce escapes, so
	// radiance is albedo·sky. With cosine sampling alone the weight is exactly 1.
	albedo := core.NewVec3(0.5, 0.6, 0.7)
	sphere := geometry.NewSphere(core.Vec3{}, 1, material.NewLambertian(albedo))
	sc := createTestScene(t, core.NewVec3(1, 1, 1), []geometry.Hittable{sphere})
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 5})
	sampler := core.NewSeededSampler(3)

	for i := 0; i < 100; i++ {
		origin := core.SampleOnUnitSphere(sampler.Get2D()).Multiply(4)
		c := integrator.RayColor(core.NewRay(origin, origin.Negate()), sc, sampler)
		if c.Subtract(albedo).Length() > 1e-9 {
			t.Fatalf("expected exactly %v, got %v", albedo, c)
		}
	}
}

func TestPathTracing_MixtureIsUnbiased(t *testing.T) {
	// Same furnace, but half of the bounces are aimed at a light proxy that is
	// not part of the world. The mixture weights must keep the mean at albedo.
	albedo := core.NewVec3(0.5, 0.5, 0.5)
	sphere := geometry.NewSphere(core.Vec3{}, 1, material.NewLambertian(albedo))
	proxy := geometry.NewXZRect(-2, 2, -2, 2, 3, nil)
	sc := createTestScene(t, core.NewVec3(1, 1, 1), []geometry.Hittable{sphere}, proxy)
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 2})
	sampler := core.NewSeededSampler(5)

	ray := core.NewRay(core.NewVec3(0.3, 5, 0.2), core.NewVec3(0, -1, 0))
	const n = 200000
	sum := core.Vec3{}
	for i := 0; i < n; i++ {
		sum = sum.Add(integrator.RayColor(ray, sc, sampler))
	}
	mean := sum.Divide(n)

	if math.Abs(mean.X-albedo.X) > 0.01 {
		t.Errorf("expected mean radiance %f, got %f", albedo.X, mean.X)
	}
}

func TestPathTracing_DegeneratePDFContributesNothing(t *testing.T) {
	tests := []struct {
		name string
		pdf  core.PDF
	}{
		{"zero density", fixedPDF{value: 0, direction: core.NewVec3(0, 1, 0)}},
		{"NaN density", fixedPDF{value: math.NaN(), direction: core.NewVec3(0, 1, 0)}},
		{"negative density", fixedPDF{value: -1, direction: core.NewVec3(0, 1, 0)}},
		{"infinite density", fixedPDF{value: math.Inf(1), direction: core.NewVec3(0, 1, 0)}},
		{"zero direction", fixedPDF{value: 1, direction: core.Vec3{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			floor := geometry.NewXZRect(-5, 5, -5, 5, 0, degenerateMaterial{pdf: tt.pdf})
			sc := createTestScene(t, core.NewVec3(1, 1, 1), []geometry.Hittable{floor})
			c := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 4}).
				RayColor(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), sc, core.NewSeededSampler(1))

			if !c.IsFinite() || c.X < 0 || c.Y < 0 || c.Z < 0 {
				t.Errorf("expected a finite non-negative color, got %v", c)
			}
		})
	}

	// The zero density is guarded to exactly zero
	floor := geometry.NewXZRect(-5, 5, -5, 5, 0, degenerateMaterial{pdf: fixedPDF{value: 0, direction: core.NewVec3(0, 1, 0)}})
	sc := createTestScene(t, core.NewVec3(1, 1, 1), []geometry.Hittable{floor})
	c := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 4}).
		RayColor(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), sc, core.NewSeededSampler(1))
	if c != (core.Vec3{}) {
		t.Errorf("zero-density bounce should contribute nothing, got %v", c)
	}
}

func TestPathTracing_NonNegativeInCornellBox(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for _, id := range []string{"cornell", "cornell-smoke"} {
		t.Run(id, func(t *testing.T) {
			sc, err := scene.Create(id, random, scene.Options{})
			if err != nil {
				t.Fatal(err)
			}
			if err := sc.Preprocess(random); err != nil {
				t.Fatal(err)
			}
			integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 8})
			sampler := core.NewRandomSampler(random)

			lit := 0
			for i := 0; i < 2000; i++ {
				uv := sampler.Get2D()
				ray := sc.Camera.GetRay(uv.X, uv.Y, sampler)
				c := integrator.RayColor(ray, sc, sampler)
				if !c.IsFinite() || c.X < 0 || c.Y < 0 || c.Z < 0 {
					t.Fatalf("sample %d: invalid radiance %v", i, c)
				}
				if c.Luminance() > 0 {
					lit++
				}
			}
			if lit == 0 {
				t.Error("expected some light to reach the camera")
			}
		})
	}
}
