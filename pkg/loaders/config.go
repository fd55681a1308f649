package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pathforge/go-pathtracer/pkg/scene"
)

// RenderConfig is the JSON render configuration. Zero or empty fields keep
// the value chosen by the scene preset or the command line.
type RenderConfig struct {
	Scene           string `json:"scene,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	SamplesPerPixel int    `json:"samplesPerPixel,omitempty"`
	MaxDepth        int    `json:"maxDepth,omitempty"`
	Passes          int    `json:"passes,omitempty"`
	BandHeight      int    `json:"bandHeight,omitempty"`
	Workers         int    `json:"workers,omitempty"`
	Seed            *int64 `json:"seed,omitempty"`
	Texture         string `json:"texture,omitempty"`
	Output          string `json:"output,omitempty"`
}

// LoadRenderConfig reads and validates a JSON render configuration
func LoadRenderConfig(path string) (*RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read render config: %w", err)
	}

	var cfg RenderConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse render config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects negative sizes and counts
func (c *RenderConfig) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"samplesPerPixel", c.SamplesPerPixel},
		{"maxDepth", c.MaxDepth},
		{"passes", c.Passes},
		{"bandHeight", c.BandHeight},
		{"workers", c.Workers},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", f.name, f.value)
		}
	}
	return nil
}

// ApplySampling overrides the non-zero fields of a preset's sampling config.
// A width without a height keeps the preset's aspect ratio.
func (c *RenderConfig) ApplySampling(sc scene.SamplingConfig) scene.SamplingConfig {
	if c.Width > 0 {
		if c.Height == 0 && sc.Width > 0 {
			sc.Height = max(1, c.Width*sc.Height/sc.Width)
		}
		sc.Width = c.Width
	}
	if c.Height > 0 {
		sc.Height = c.Height
	}
	if c.SamplesPerPixel > 0 {
		sc.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.MaxDepth > 0 {
		sc.MaxDepth = c.MaxDepth
	}
	return sc
}
