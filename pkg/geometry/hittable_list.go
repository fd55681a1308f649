package geometry

import (
	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// HittableList is an unordered collection of hittables searched linearly
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: append([]Hittable(nil), objects...)}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit among all objects
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar, sampler); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of all member boxes.
// An empty list, or one with an unbounded member, has no box.
func (l *HittableList) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	var result core.AABB
	for i, object := range l.Objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			result = box
		} else {
			result = result.Union(box)
		}
	}
	return result, true
}

// PDFValue averages the members' densities, matching Random's uniform member choice
func (l *HittableList) PDFValue(origin, direction core.Vec3) float64 {
	if len(l.Objects) == 0 {
		return 0
	}

	weight := 1.0 / float64(len(l.Objects))
	sum := 0.0
	for _, object := range l.Objects {
		sum += weight * PDFValue(object, origin, direction)
	}
	return sum
}

// Random samples a direction towards a uniformly chosen member
func (l *HittableList) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	n := len(l.Objects)
	if n == 0 {
		return core.Vec3{}
	}

	index := int(sampler.Get1D() * float64(n))
	if index >= n {
		index = n - 1
	}
	return RandomDirection(l.Objects[index], origin, sampler)
}
