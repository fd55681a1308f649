package geometry

import (
	"fmt"
	"math/rand"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// TriangleMesh is an indexed set of triangles searched through its own BVH
type TriangleMesh struct {
	triangles []*Triangle
	bvh       *BVHNode
}

// NewTriangleMesh creates a mesh from vertices and face indices.
// Each group of three indices forms a triangle. materials is either nil, in
// which case mat is used for every face, or holds one material per face.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, materials []material.Material, random *rand.Rand) (*TriangleMesh, error) {
	if len(faces) == 0 || len(faces)%3 != 0 {
		return nil, fmt.Errorf("triangle mesh: %d face indices is not a positive multiple of 3", len(faces))
	}

	numTriangles := len(faces) / 3
	if materials != nil && len(materials) != numTriangles {
		return nil, fmt.Errorf("triangle mesh: %d materials for %d triangles", len(materials), numTriangles)
	}

	triangles := make([]*Triangle, numTriangles)
	objects := make([]Hittable, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, index := range []int{i0, i1, i2} {
			if index < 0 || index >= len(vertices) {
				return nil, fmt.Errorf("triangle mesh: face %d index %d out of range [0, %d)", i, index, len(vertices))
			}
		}

		faceMaterial := mat
		if materials != nil {
			faceMaterial = materials[i]
		}

		triangles[i] = NewTriangle(vertices[i0], vertices[i1], vertices[i2], faceMaterial)
		objects[i] = triangles[i]
	}

	bvh, err := NewBVH(objects, 0, 1, random)
	if err != nil {
		return nil, fmt.Errorf("triangle mesh: %w", err)
	}

	return &TriangleMesh{triangles: triangles, bvh: bvh}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return tm.bvh.Box, true
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Triangles returns the individual triangles
func (tm *TriangleMesh) Triangles() []*Triangle {
	return tm.triangles
}
