package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/integrator"
	"github.com/pathforge/go-pathtracer/pkg/scene"
)

// ErrSceneNotPreprocessed is returned when rendering a scene whose World has not been built
var ErrSceneNotPreprocessed = errors.New("scene has not been preprocessed")

// Raytracer renders a scene to an 8-bit image
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     ProgressiveConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer; the scene must not be mutated while rendering
func NewRaytracer(s *scene.Scene, integratorInst integrator.Integrator, config ProgressiveConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:      s,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// Render runs every progressive pass and returns the final image. If ctx is
// cancelled between passes, the last completed image is returned with ctx's error.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	sc := rt.scene.SamplingConfig
	if rt.scene.World == nil {
		return nil, RenderStats{}, ErrSceneNotPreprocessed
	}
	if sc.Width <= 0 || sc.Height <= 0 || sc.SamplesPerPixel <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image %dx%d at %d samples per pixel", sc.Width, sc.Height, sc.SamplesPerPixel)
	}

	startTime := time.Now()
	pr := NewProgressiveRaytracer(rt.scene, rt.integrator, rt.config, rt.logger)
	passChan, errChan := pr.RenderProgressive(ctx)

	var last PassResult
	for result := range passChan {
		last = result
	}
	last.Stats.Elapsed = time.Since(startTime)

	if err := <-errChan; err != nil {
		return last.Image, last.Stats, err
	}

	rt.logger.Printf("Render completed in %v: %d samples over %d pixels\n",
		last.Stats.Elapsed, last.Stats.TotalSamples, last.Stats.TotalPixels)
	if last.Stats.NonFiniteSamples > 0 {
		rt.logger.Printf("Replaced non-finite components in %d samples\n", last.Stats.NonFiniteSamples)
	}

	return last.Image, last.Stats, nil
}

// vec3ToColor converts a linear radiance to RGBA with clamping and gamma 2
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Clamp first: negative components have no square root
	colorVec = colorVec.Clamp(0.0, 1.0)
	colorVec = colorVec.GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255.999 * colorVec.X),
		G: uint8(255.999 * colorVec.Y),
		B: uint8(255.999 * colorVec.Z),
		A: 255,
	}
}
