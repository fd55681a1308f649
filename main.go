package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pathforge/go-pathtracer/pkg/core"
	"github.com/pathforge/go-pathtracer/pkg/integrator"
	"github.com/pathforge/go-pathtracer/pkg/loaders"
	"github.com/pathforge/go-pathtracer/pkg/renderer"
	"github.com/pathforge/go-pathtracer/pkg/scene"
)

// options holds the resolved command line
type options struct {
	sceneID    string
	width      int
	spp        int
	depth      int
	workers    int
	passes     int
	bandHeight int
	seed       int64
	out        string
	configPath string
	texture    string
	list       bool
	override   *loaders.RenderConfig // Sampling overrides from -config
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if opts.list {
		printScenes(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses args and folds in the JSON config; flags given explicitly win over the config file
func parseFlags(args []string, output io.Writer) (options, error) {
	defaults := renderer.DefaultProgressiveConfig()

	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.sceneID, "scene", "cornell", "Scene to render (see -list)")
	fs.IntVar(&opts.width, "width", 0, "Image width; height follows the scene's aspect ratio (0 = scene default)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum ray bounce depth (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", defaults.NumWorkers, "Number of render workers (0 = CPU count)")
	fs.IntVar(&opts.passes, "passes", defaults.MaxPasses, "Progressive passes the sample budget is split over")
	fs.IntVar(&opts.bandHeight, "band", defaults.BandHeight, "Rows per work unit")
	fs.Int64Var(&opts.seed, "seed", defaults.Seed, "Seed for scene generation and sampling")
	fs.StringVar(&opts.out, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.StringVar(&opts.configPath, "config", "", "JSON render config; explicit flags override it")
	fs.StringVar(&opts.texture, "texture", "", "Image wrapped around the globe in the earth and final scenes")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.Usage = func() {
		fmt.Fprintln(output, "Path Tracer")
		fmt.Fprintln(output, "Usage: pathtracer [options]")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(output)
		printScenes(output)
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.configPath == "" {
		return opts, nil
	}

	cfg, err := loaders.LoadRenderConfig(opts.configPath)
	if err != nil {
		return opts, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["scene"] && cfg.Scene != "" {
		opts.sceneID = cfg.Scene
	}
	if !set["workers"] && cfg.Workers > 0 {
		opts.workers = cfg.Workers
	}
	if !set["passes"] && cfg.Passes > 0 {
		opts.passes = cfg.Passes
	}
	if !set["band"] && cfg.BandHeight > 0 {
		opts.bandHeight = cfg.BandHeight
	}
	if !set["seed"] && cfg.Seed != nil {
		opts.seed = *cfg.Seed
	}
	if !set["out"] && cfg.Output != "" {
		opts.out = cfg.Output
	}
	if !set["texture"] && cfg.Texture != "" {
		opts.texture = cfg.Texture
	}
	opts.override = cfg

	return opts, nil
}

// printScenes writes the scene catalogue grouped as ListScenes orders it
func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	group := ""
	for _, info := range scene.ListScenes() {
		if info.Group != group {
			group = info.Group
			fmt.Fprintf(w, "  %s:\n", group)
		}
		fmt.Fprintf(w, "    %-20s %s\n", info.ID, info.Description)
	}
}

// createScene builds and configures the selected scene, ready to preprocess
func createScene(opts options, random *rand.Rand) (*scene.Scene, error) {
	var sceneOptions scene.Options
	if opts.texture != "" {
		texture, err := loaders.LoadImageTexture(opts.texture)
		if err != nil {
			return nil, fmt.Errorf("loading texture: %w", err)
		}
		sceneOptions.EarthTexture = texture
	}

	s, err := scene.Create(opts.sceneID, random, sceneOptions)
	if err != nil {
		return nil, err
	}

	// Preset, then config file, then flags
	var override loaders.RenderConfig
	if opts.override != nil {
		override = *opts.override
	}
	if opts.width > 0 {
		// The flag keeps the preset's aspect ratio
		override.Width, override.Height = opts.width, 0
	}
	if opts.spp > 0 {
		override.SamplesPerPixel = opts.spp
	}
	if opts.depth > 0 {
		override.MaxDepth = opts.depth
	}
	s.SetSamplingConfig(override.ApplySampling(s.SamplingConfig))

	return s, nil
}

// createOutputPath returns the PNG path for a render of the given scene
func createOutputPath(opts options, now time.Time) string {
	if opts.out != "" {
		return opts.out
	}
	return filepath.Join("output", opts.sceneID, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// run renders the selected scene and writes it as a PNG
func run(ctx context.Context, opts options, logger core.Logger) error {
	random := rand.New(rand.NewSource(opts.seed))

	s, err := createScene(opts, random)
	if err != nil {
		return err
	}
	if err := s.Preprocess(random); err != nil {
		return err
	}

	sc := s.SamplingConfig
	logger.Printf("Rendering %s at %dx%d, %d samples per pixel, depth %d (%d primitives)\n",
		opts.sceneID, sc.Width, sc.Height, sc.SamplesPerPixel, sc.MaxDepth, s.PrimitiveCount())
	if s.BVHStats.TotalNodes > 0 {
		logger.Printf("BVH: %d nodes, %d leaves, max depth %d\n",
			s.BVHStats.TotalNodes, s.BVHStats.LeafNodes, s.BVHStats.MaxDepth)
	}

	config := renderer.ProgressiveConfig{
		BandHeight: opts.bandHeight,
		MaxPasses:  opts.passes,
		NumWorkers: opts.workers,
		Seed:       opts.seed,
	}
	rt := renderer.NewRaytracer(s, integrator.NewPathTracingIntegrator(sc), config, logger)

	img, stats, err := rt.Render(ctx)
	if err != nil && img == nil {
		return err
	}
	if err != nil {
		// Keep what the completed passes produced
		logger.Printf("Render interrupted after %d passes: %v\n", stats.Passes, err)
	}

	filename := createOutputPath(opts, time.Now())
	if err := savePNG(filename, img); err != nil {
		return err
	}
	logger.Printf("Average luminance %.3f; render saved as %s\n", renderer.CalculateAverageLuminance(img), filename)

	return err
}

// savePNG writes img to filename, creating parent directories
func savePNG(filename string, img *image.RGBA) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}
