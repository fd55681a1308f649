package geometry

import (
	"math"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// Translate moves a child hittable by Offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
}

// NewTranslate wraps object so it appears displaced by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space, delegates, then moves the hit point back.
// The face is re-derived against the world ray; translation keeps directions,
// so this always agrees with the child's flag.
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, ok := t.Object.Hit(moved, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	outward := hit.Normal
	if !hit.FrontFace {
		outward = outward.Negate()
	}
	hit.SetFaceNormal(ray, outward)
	return hit, true
}

// BoundingBox returns the child's box shifted by the offset
func (t *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := t.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}

// PDFValue forwards to the child with the origin in object space
func (t *Translate) PDFValue(origin, direction core.Vec3) float64 {
	return PDFValue(t.Object, origin.Subtract(t.Offset), direction)
}

// Random forwards to the child with the origin in object space
func (t *Translate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return RandomDirection(t.Object, origin.Subtract(t.Offset), sampler)
}

// RotateY rotates a child hittable about the Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	box      core.AABB
	hasBox   bool
}

// NewRotateY wraps object rotated by angle degrees about +Y.
// The rotated bounding box is computed once over the shutter interval [0, 1].
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}
	r.box, r.hasBox = r.rotatedBox(0, 1)
	return r
}

// toObject applies the inverse rotation
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld applies the rotation
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// rotatedBox encloses the rotated images of the child's eight box corners
func (r *RotateY) rotatedBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := r.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}

	corners := box.Corners()
	for i := range corners {
		corners[i] = r.toWorld(corners[i])
	}
	return core.NewAABBFromPoints(corners[:]...), true
}

// Hit rotates the ray into object space, delegates, then rotates the point and normal back
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(rotated, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the precomputed box for [0, 1] and recomputes it for other intervals
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if time0 == 0 && time1 == 1 {
		return r.box, r.hasBox
	}
	return r.rotatedBox(time0, time1)
}

// PDFValue forwards to the child in object space
func (r *RotateY) PDFValue(origin, direction core.Vec3) float64 {
	return PDFValue(r.Object, r.toObject(origin), r.toObject(direction))
}

// Random samples in object space and rotates the direction back
func (r *RotateY) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return r.toWorld(RandomDirection(r.Object, r.toObject(origin), sampler))
}

// FlipFace inverts the front-face flag of its child's hits
type FlipFace struct {
	Object Hittable
}

// NewFlipFace wraps object with its front-face flag inverted
func NewFlipFace(object Hittable) *FlipFace {
	return &FlipFace{Object: object}
}

// Hit delegates and inverts the front-face flag
func (f *FlipFace) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	hit, ok := f.Object.Hit(ray, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.FrontFace = !hit.FrontFace
	return hit, true
}

// BoundingBox delegates to the child
func (f *FlipFace) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return f.Object.BoundingBox(time0, time1)
}

// PDFValue delegates to the child
func (f *FlipFace) PDFValue(origin, direction core.Vec3) float64 {
	return PDFValue(f.Object, origin, direction)
}

// Random delegates to the child
func (f *FlipFace) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return RandomDirection(f.Object, origin, sampler)
}
