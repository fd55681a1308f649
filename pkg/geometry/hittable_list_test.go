package geometry

import (
	"math"
	"testing"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

func TestHittableList_ClosestHit(t *testing.T) {
	near := material.NewLambertian(core.NewVec3(1, 0, 0))
	far := material.NewLambertian(core.NewVec3(0, 1, 0))

	list := NewHittableList(
		NewSphere(core.NewVec3(0, 0, -10), 1, far),
		NewSphere(core.NewVec3(0, 0, -4), 1, near),
	)

	hit, ok := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1), nil)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Material != near || math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("expected the near sphere at t=3, got t=%f", hit.T)
	}

	if _, ok := NewHittableList().Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1), nil); ok {
		t.Error("empty list should never be hit")
	}
}

func TestHittableList_BoundingBox(t *testing.T) {
	if _, ok := NewHittableList().BoundingBox(0, 1); ok {
		t.Error("empty list should have no box")
	}

	list := NewHittableList(
		NewSphere(core.NewVec3(-2, 0, 0), 1, nil),
		NewSphere(core.NewVec3(3, 1, 0), 0.5, nil),
	)
	box, ok := list.BoundingBox(0, 1)
	if !ok {
		t.Fatal("expected a box")
	}
	if box.Min != core.NewVec3(-3, -1, -1) || box.Max != core.NewVec3(3.5, 1.5, 1) {
		t.Errorf("unexpected box %v", box)
	}

	list.Add(unboundedPlane{})
	if _, ok := list.BoundingBox(0, 1); ok {
		t.Error("list with an unbounded member should have no box")
	}
}

func TestHittableList_AsLight(t *testing.T) {
	top := NewXZRect(-1, 1, -1, 1, 4, nil)
	side := NewYZRect(-1, 1, -1, 1, 4, nil)
	lights := NewHittableList(top, side)
	origin := core.Vec3{}

	up := core.NewVec3(0, 1, 0)
	if got, want := lights.PDFValue(origin, up), 0.5*top.PDFValue(origin, up); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected averaged density %f, got %f", want, got)
	}

	sampler := core.NewSeededSampler(17)
	towardTop, towardSide := 0, 0
	for i := 0; i < 1000; i++ {
		dir := lights.Random(origin, sampler)
		switch {
		case top.PDFValue(origin, dir) > 0:
			towardTop++
		case side.PDFValue(origin, dir) > 0:
			towardSide++
		default:
			t.Fatalf("direction %v reaches neither light", dir)
		}
	}
	if towardTop < 400 || towardSide < 400 {
		t.Errorf("expected an even split between members, got %d/%d", towardTop, towardSide)
	}

	if NewHittableList().PDFValue(origin, up) != 0 {
		t.Error("empty light list should have zero density")
	}
}

func TestHittablePDF(t *testing.T) {
	light := NewXZRect(-1, 1, -1, 1, 4, nil)
	pdf := NewHittablePDF(light, core.Vec3{})
	sampler := core.NewSeededSampler(2)

	dir := pdf.Generate(sampler)
	if got, want := pdf.Value(dir), light.PDFValue(core.Vec3{}, dir); got != want {
		t.Errorf("expected %f, got %f", want, got)
	}

	// A hittable that cannot be light-sampled yields the zero density and vector
	plain := NewHittablePDF(unboundedPlane{}, core.Vec3{})
	if plain.Value(core.NewVec3(0, 1, 0)) != 0 || plain.Generate(sampler) != (core.Vec3{}) {
		t.Error("non-light hittable should produce zero density and direction")
	}
}
