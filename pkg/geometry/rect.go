package geometry

import (
	"math"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// rectThickness pads the flat axis of a rectangle's bounding box
const rectThickness = 1e-4

// AARect is an axis-aligned rectangle lying in the plane Axis = K.
// A and B are the two in-plane axes, bounded by [A0, A1] and [B0, B1].
type AARect struct {
	Axis     int // Fixed axis: 0 = X, 1 = Y, 2 = Z
	A, B     int // In-plane axes in (u, v) order
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material material.Material
}

// NewXYRect creates a rectangle in the plane z = k
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *AARect {
	return &AARect{Axis: 2, A: 0, B: 1, A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: mat}
}

// NewXZRect creates a rectangle in the plane y = k
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *AARect {
	return &AARect{Axis: 1, A: 0, B: 2, A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: mat}
}

// NewYZRect creates a rectangle in the plane x = k
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *AARect {
	return &AARect{Axis: 0, A: 1, B: 2, A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: mat}
}

// Normal returns the outward normal, the positive direction of the fixed axis
func (r *AARect) Normal() core.Vec3 {
	return axisPoint(r.Axis, 1, r.A, 0, r.B, 0)
}

// Area returns the rectangle's surface area
func (r *AARect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// Hit tests the ray against the rectangle's plane and in-plane bounds
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	t := (r.K - ray.Origin.Component(r.Axis)) / ray.Direction.Component(r.Axis)
	// Written as a negated conjunction so NaN (ray inside the plane) misses
	if !(t > tMin && t < tMax) {
		return nil, false
	}

	a := ray.Origin.Component(r.A) + t*ray.Direction.Component(r.A)
	b := ray.Origin.Component(r.B) + t*ray.Direction.Component(r.B)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		UV:       core.NewVec2((a-r.A0)/(r.A1-r.A0), (b-r.B0)/(r.B1-r.B0)),
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, r.Normal())

	return hitRecord, true
}

// BoundingBox returns the rectangle's box, padded along the fixed axis
func (r *AARect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	min := axisPoint(r.Axis, r.K-rectThickness, r.A, r.A0, r.B, r.B0)
	max := axisPoint(r.Axis, r.K+rectThickness, r.A, r.A1, r.B, r.B1)
	return core.NewAABB(min, max), true
}

// PDFValue converts the uniform area density to solid angle: distance² / (cos·area)
func (r *AARect) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction), lightSampleEpsilon, math.Inf(1), nil)
	if !ok {
		return 0
	}

	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	cosine := math.Abs(direction.Dot(hit.Normal)) / direction.Length()
	if cosine == 0 {
		return 0
	}
	return distanceSquared / (cosine * r.Area())
}

// Random returns the direction from origin to a uniformly chosen point on the rectangle
func (r *AARect) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	point := axisPoint(r.Axis, r.K,
		r.A, r.A0+sample.X*(r.A1-r.A0),
		r.B, r.B0+sample.Y*(r.B1-r.B0))
	return point.Subtract(origin)
}

// axisPoint assembles a point from three (axis, value) pairs
func axisPoint(axis0 int, v0 float64, axis1 int, v1 float64, axis2 int, v2 float64) core.Vec3 {
	var c [3]float64
	c[axis0] = v0
	c[axis1] = v1
	c[axis2] = v2
	return core.NewVec3(c[0], c[1], c[2])
}
