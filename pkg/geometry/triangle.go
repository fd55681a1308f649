package geometry

import (
	"math"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// barycentricTolerance keeps points that land on an edge inside the triangle
const barycentricTolerance = 1e-9

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle
	edge1      core.Vec3         // V1 - V0
	edge2      core.Vec3         // V2 - V0
	normal     core.Vec3         // Unit face normal
	w          core.Vec3         // n / (n·n), for barycentric coordinates
	area       float64
}

// NewTriangle creates a new triangle from three vertices.
// The face normal follows the right-hand rule over (v0, v1, v2).
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		edge1:    v1.Subtract(v0),
		edge2:    v2.Subtract(v0),
	}

	n := t.edge1.Cross(t.edge2)
	t.normal = n.Normalize()
	t.area = n.Length() / 2
	if nn := n.LengthSquared(); nn > 0 {
		t.w = n.Divide(nn)
	}

	return t
}

// Normal returns the triangle's unit face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Area returns the triangle's surface area
func (t *Triangle) Area() float64 {
	return t.area
}

// Hit intersects the triangle's plane, then tests the barycentric coordinates.
// Points exactly on an edge or vertex count as inside.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if t.area == 0 {
		return nil, false
	}

	denominator := ray.Direction.Dot(t.normal)
	if math.Abs(denominator) < 1e-12 {
		return nil, false
	}

	root := t.V0.Subtract(ray.Origin).Dot(t.normal) / denominator
	if root <= tMin || root >= tMax {
		return nil, false
	}

	point := ray.At(root)
	planar := point.Subtract(t.V0)
	alpha := t.w.Dot(planar.Cross(t.edge2))
	beta := t.w.Dot(t.edge1.Cross(planar))

	if alpha < -barycentricTolerance || beta < -barycentricTolerance || alpha+beta > 1+barycentricTolerance {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    point,
		UV:       core.NewVec2(alpha, beta),
		Material: t.Material,
	}
	hitRecord.SetFaceNormal(ray, t.normal)

	return hitRecord, true
}

// BoundingBox returns the triangle's box, padded on any flat axis
func (t *Triangle) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return padDegenerate(core.NewAABBFromPoints(t.V0, t.V1, t.V2), 2*rectThickness), true
}

// PDFValue converts the uniform area density to solid angle
func (t *Triangle) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := t.Hit(core.NewRay(origin, direction), lightSampleEpsilon, math.Inf(1), nil)
	if !ok {
		return 0
	}

	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	cosine := math.Abs(direction.Dot(t.normal)) / direction.Length()
	if cosine == 0 {
		return 0
	}
	return distanceSquared / (cosine * t.area)
}

// Random returns the direction from origin to a uniformly chosen point on the triangle
func (t *Triangle) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	u, v := sample.X, sample.Y
	// Fold the upper half of the unit square back into the triangle
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	point := t.V0.Add(t.edge1.Multiply(u)).Add(t.edge2.Multiply(v))
	return point.Subtract(origin)
}
