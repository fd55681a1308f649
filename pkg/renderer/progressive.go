package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/integrator"
	"github.com/pathforge/go-pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	BandHeight int   // Rows per band
	MaxPasses  int   // Passes the sample budget is split over
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; every (pass, band) task derives its own generator from it
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		BandHeight: 16,
		MaxPasses:  4,
		NumWorkers: 0,
		Seed:       42,
	}
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// ProgressiveRaytracer splits the per-pixel sample budget over several passes.
// Every pass submits each band once; the collector folds the returned band
// buffers into the shared accumulators by row range.
type ProgressiveRaytracer struct {
	width, height   int
	samplesPerPixel int
	config          ProgressiveConfig
	bands           []Band
	pixelStats      [][]PixelStats // Owned by the collector goroutine
	workerPool      *WorkerPool
	logger          core.Logger
}

// NewProgressiveRaytracer creates a progressive raytracer for a preprocessed scene
func NewProgressiveRaytracer(s *scene.Scene, integratorInst integrator.Integrator, config ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	width := s.SamplingConfig.Width
	height := s.SamplingConfig.Height

	bands := NewBandGrid(width, height, config.BandHeight)

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	renderer := NewBandRenderer(s, integratorInst, width, height)

	return &ProgressiveRaytracer{
		width:           width,
		height:          height,
		samplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		config:          config,
		bands:           bands,
		pixelStats:      pixelStats,
		workerPool:      NewWorkerPool(renderer, config.NumWorkers, len(bands)),
		logger:          logger,
	}
}

// passCount is the number of passes actually run; every pass adds at least one sample
func (pr *ProgressiveRaytracer) passCount() int {
	return max(1, min(pr.config.MaxPasses, pr.samplesPerPixel))
}

// getSamplesForPass calculates the target total samples per pixel after a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	passes := pr.passCount()
	if passNumber >= passes {
		return pr.samplesPerPixel
	}
	return pr.samplesPerPixel * passNumber / passes
}

// taskSeed derives a distinct seed for every (pass, band) pair
func (pr *ProgressiveRaytracer) taskSeed(passNumber int, band Band) int64 {
	return pr.config.Seed + int64(passNumber-1)*int64(len(pr.bands)) + int64(band.ID)
}

// RenderPass renders a single progressive pass using parallel processing.
// The worker pool must have been started.
func (pr *ProgressiveRaytracer) RenderPass(passNumber int) (*image.RGBA, RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)
	samples := targetSamples - pr.getSamplesForPass(passNumber-1)
	if passNumber == 1 {
		samples = targetSamples
	}

	pr.logger.Printf("Pass %d: Target %d samples per pixel (using %d workers)...\n",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	for _, band := range pr.bands {
		pr.workerPool.SubmitTask(BandTask{
			Band:       band,
			PassNumber: passNumber,
			Samples:    samples,
			Seed:       pr.taskSeed(passNumber, band),
		})
	}

	// Bands arrive in any order; the returned bounds place them
	for range pr.bands {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		pr.collectBand(result)
	}

	img, stats := pr.assembleCurrentImage()
	stats.Passes = passNumber
	return img, stats, nil
}

// collectBand folds a band's pixel buffer into the shared accumulators
func (pr *ProgressiveRaytracer) collectBand(result BandResult) {
	bounds := result.Band.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := (y - bounds.Min.Y) * bounds.Dx()
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr.pixelStats[y][x].Merge(result.Pixels[row+x-bounds.Min.X])
		}
	}
}

// RenderProgressive renders every pass on a background goroutine and reports
// each completed pass on the returned channel. Cancellation is observed
// between passes only; a started pass always runs to completion.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		pr.workerPool.Start()
		defer pr.workerPool.Stop()

		passes := pr.passCount()
		pr.logger.Printf("Starting progressive rendering with %d passes of %d bands...\n", passes, len(pr.bands))

		for pass := 1; pass <= passes; pass++ {
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()

			img, stats, err := pr.RenderPass(pass)
			if err != nil {
				errChan <- err
				return
			}

			pr.logger.Printf("Pass %d completed in %v (%.0f samples/pixel)\n",
				pass, time.Since(startTime), stats.AverageSamples)

			select {
			case passChan <- PassResult{PassNumber: pass, Image: img, Stats: stats, IsLast: pass == passes}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, errChan
}

// assembleCurrentImage creates an image from the current state of the shared pixel stats
// and calculates render statistics in a single pass
func (pr *ProgressiveRaytracer) assembleCurrentImage() (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, pr.width, pr.height))

	stats := RenderStats{
		TotalPixels: pr.width * pr.height,
		MinSamples:  pr.samplesPerPixel,
	}

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixelStats[y][x]
			img.SetRGBA(x, y, vec3ToColor(pixel.GetColor()))

			stats.TotalSamples += pixel.SampleCount
			stats.NonFiniteSamples += pixel.NonFinite
			stats.MinSamples = min(stats.MinSamples, pixel.SampleCount)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, pixel.SampleCount)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}

	return img, stats
}
