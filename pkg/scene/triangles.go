package scene

import (
	"fmt"
	"math/rand"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/geometry"
	"github.com/pathforge/go-pathtracer/pkg/material"
)

// octahedronMesh returns the vertices and faces of an octahedron of the given radius
func octahedronMesh(center core.Vec3, radius float64) ([]core.Vec3, []int) {
	vertices := []core.Vec3{
		center.Add(core.NewVec3(radius, 0, 0)), center.Add(core.NewVec3(-radius, 0, 0)),
		center.Add(core.NewVec3(0, radius, 0)), center.Add(core.NewVec3(0, -radius, 0)),
		center.Add(core.NewVec3(0, 0, radius)), center.Add(core.NewVec3(0, 0, -radius)),
	}
	faces := []int{
		0, 2, 4, 4, 2, 1, 1, 2, 5, 5, 2, 0,
		4, 3, 0, 1, 3, 4, 5, 3, 1, 0, 3, 5,
	}
	return vertices, faces
}

// NewTrianglesScene creates triangle-mesh octahedra on a checkered floor, lit
// from above by a single triangular light
func NewTrianglesScene(random *rand.Rand, options Options) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		LookFrom:    core.NewVec3(0, 3, 9),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        35,
		AspectRatio: 16.0 / 9.0,
	}
	samplingConfig := DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 200

	s := NewScene(cameraConfig, samplingConfig, core.NewVec3(0.02, 0.02, 0.03))

	checker := material.NewCheckerTexture(core.NewVec3(0.2, 0.2, 0.2), core.NewVec3(0.8, 0.8, 0.8))
	s.Add(geometry.NewXZRect(-20, 20, -20, 20, 0, material.NewTexturedLambertian(checker)))

	meshMaterials := []material.Material{
		material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)),
		material.NewDielectric(1.5),
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.5), 0.1),
	}
	for i, mat := range meshMaterials {
		vertices, faces := octahedronMesh(core.NewVec3(float64(i-1)*2.5, 1, 0), 1)
		mesh, err := geometry.NewTriangleMesh(vertices, faces, mat, nil, random)
		if err != nil {
			return nil, fmt.Errorf("octahedron %d: %w", i, err)
		}
		s.Add(mesh)
	}

	// Light faces down towards the floor
	light := material.NewDiffuseLight(core.NewVec3(12, 12, 12))
	s.AddLight(geometry.NewTriangle(
		core.NewVec3(-1.5, 5, -1),
		core.NewVec3(0, 5, 1.5),
		core.NewVec3(1.5, 5, -1),
		light,
	))

	return s, nil
}
