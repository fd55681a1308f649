package main

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pathforge/go-pathtracer/pkg/scene"
)

type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if opts.sceneID != "cornell" || opts.passes != 4 || opts.bandHeight != 16 || opts.seed != 42 {
		t.Errorf("unexpected defaults: %+v", opts)
	}

	opts, err = parseFlags([]string{"-scene", "final", "-width", "120", "-spp", "9", "-seed", "3"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if opts.sceneID != "final" || opts.width != 120 || opts.spp != 9 || opts.seed != 3 {
		t.Errorf("flags not applied: %+v", opts)
	}

	if _, err := parseFlags([]string{"-bogus"}, io.Discard); err == nil {
		t.Error("expected an error for an unknown flag")
	}
	if _, err := parseFlags([]string{"stray"}, io.Discard); err == nil {
		t.Error("expected an error for a positional argument")
	}
}

func TestParseFlags_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.json")
	config := `{"scene": "earth", "samplesPerPixel": 7, "passes": 2, "seed": 0, "output": "from-config.png"}`
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := parseFlags([]string{"-config", path, "-passes", "5"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	if opts.sceneID != "earth" {
		t.Errorf("expected scene from config, got %q", opts.sceneID)
	}
	if opts.passes != 5 {
		t.Errorf("explicit flag should win over config, got %d passes", opts.passes)
	}
	if opts.seed != 0 {
		t.Errorf("expected explicit zero seed from config, got %d", opts.seed)
	}
	if opts.out != "from-config.png" {
		t.Errorf("expected output from config, got %q", opts.out)
	}
	if opts.override == nil || opts.override.SamplesPerPixel != 7 {
		t.Errorf("expected sampling override from config, got %+v", opts.override)
	}

	if _, err := parseFlags([]string{"-config", filepath.Join(t.TempDir(), "missing.json")}, io.Discard); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		opts        options
		expectError bool
		check       func(t *testing.T, s *scene.Scene)
	}{
		{
			name: "preset sampling",
			opts: options{sceneID: "emissive-sphere"},
			check: func(t *testing.T, s *scene.Scene) {
				if s.SamplingConfig.Width != 64 || s.SamplingConfig.Height != 64 {
					t.Errorf("expected the preset 64x64, got %+v", s.SamplingConfig)
				}
			},
		},
		{
			name: "flags override",
			opts: options{sceneID: "emissive-sphere", width: 32, spp: 3, depth: 2},
			check: func(t *testing.T, s *scene.Scene) {
				want := scene.SamplingConfig{Width: 32, Height: 32, SamplesPerPixel: 3, MaxDepth: 2}
				if s.SamplingConfig != want {
					t.Errorf("expected %+v, got %+v", want, s.SamplingConfig)
				}
			},
		},
		{"unknown scene", options{sceneID: "nonexistent"}, true, nil},
		{"empty scene name", options{sceneID: ""}, true, nil},
		{"missing texture", options{sceneID: "earth", texture: "nonexistent.png"}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.opts, rand.New(rand.NewSource(1)))
			if tt.expectError {
				if err == nil {
					t.Errorf("expected an error, got scene %v", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, s)
		})
	}
}

func TestCreateOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

	if got := createOutputPath(options{sceneID: "cornell"}, now); got != filepath.Join("output", "cornell", "render_20240309_140506.png") {
		t.Errorf("unexpected default path %q", got)
	}
	if got := createOutputPath(options{sceneID: "cornell", out: "x.png"}, now); got != "x.png" {
		t.Errorf("expected explicit path, got %q", got)
	}
}

func TestPrintScenes(t *testing.T) {
	var buf bytes.Buffer
	printScenes(&buf)
	for _, id := range scene.SceneIDs() {
		if !strings.Contains(buf.String(), id) {
			t.Errorf("scene %q missing from listing", id)
		}
	}
}

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "render.png")
	opts := options{
		sceneID:    "emissive-sphere",
		width:      16,
		spp:        2,
		passes:     2,
		bandHeight: 4,
		workers:    2,
		seed:       5,
		out:        out,
	}

	if err := run(context.Background(), opts, discardLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("expected 16x16 output, got %v", img.Bounds())
	}
}
