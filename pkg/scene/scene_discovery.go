package scene

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/pathforge/go-pathtracer/pkg/material"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used on the command line
	DisplayName string `json:"displayName"` // Human-readable name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

// Options carries external inputs some scenes need
type Options struct {
	// EarthTexture is the image wrapped around the globe in the earth and final
	// scenes; a procedural stand-in is used when it is nil.
	EarthTexture material.ColorSource
}

// builder constructs a scene; random drives every procedural choice
type builder func(random *rand.Rand, options Options) (*Scene, error)

type registration struct {
	info  SceneInfo
	build builder
}

var registry = map[string]registration{}

func register(id, description, group string, build builder) {
	registry[id] = registration{
		info: SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: description,
			Group:       group,
		},
		build: build,
	}
}

func init() {
	register("random-spheres", "Random small spheres, some moving, around three large ones", "Materials", NewRandomSpheresScene)
	register("two-perlin-spheres", "Two spheres with marble noise texture", "Textures", NewTwoPerlinSpheresScene)
	register("earth", "Image-textured globe", "Textures", NewEarthScene)
	register("simple-light", "Noise spheres lit by a rectangle and a sphere light", "Lights", NewSimpleLightScene)
	register("cornell", "Cornell box with a metal block and a glass sphere", "Cornell", NewCornellScene)
	register("cornell-smoke", "Cornell box with two blocks of smoke", "Cornell", NewCornellSmokeScene)
	register("final", "Everything: boxes, motion blur, media, textures, instancing", "Showcase", NewFinalScene)
	register("emissive-sphere", "A single glowing sphere on black", "Lights", NewEmissiveSphereScene)
	register("triangles", "Triangle meshes lit by a triangle light", "Showcase", NewTrianglesScene)
}

// ListScenes returns all built-in scenes sorted by group, then ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, r := range registry {
		scenes = append(scenes, r.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		if scenes[i].Group != scenes[j].Group {
			return scenes[i].Group < scenes[j].Group
		}
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// SceneIDs returns the identifiers of all built-in scenes in sorted order
func SceneIDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Create builds the named scene. The scene is not yet preprocessed.
func Create(id string, random *rand.Rand, options Options) (*Scene, error) {
	r, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(SceneIDs(), ", "))
	}
	s, err := r.build(random, options)
	if err != nil {
		return nil, fmt.Errorf("building scene %q: %w", id, err)
	}
	return s, nil
}

// titleCase converts kebab-case or snake_case to Title Case
func titleCase(s string) string {
	if s == "" {
		return ""
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})

	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
