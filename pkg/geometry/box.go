package geometry

import (
	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// Box is an axis-aligned rectangular prism made of six rectangles
type Box struct {
	Min, Max core.Vec3
	sides    *HittableList
}

// NewBox creates a box spanning the corners p0 and p1 (p0 < p1 component-wise)
func NewBox(p0, p1 core.Vec3, mat material.Material) *Box {
	sides := NewHittableList()

	sides.Add(NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p1.Z, mat))
	sides.Add(NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p0.Z, mat))

	sides.Add(NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p1.Y, mat))
	sides.Add(NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p0.Y, mat))

	sides.Add(NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p1.X, mat))
	sides.Add(NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p0.X, mat))

	return &Box{Min: p0, Max: p1, sides: sides}
}

// Sides returns the six faces
func (b *Box) Sides() []Hittable {
	return b.sides.Objects
}

// Hit delegates to the six faces
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the box's own extent
func (b *Box) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
