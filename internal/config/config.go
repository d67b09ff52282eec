package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/palette"
	"github.com/san-kum/sortviz/internal/render"
)

const (
	DefaultDataSize       = 64
	DefaultAnimationSpeed = 1.0
	DefaultFrameRate      = 60
)

type Config struct {
	Algorithm      string  `yaml:"algorithm"`
	DataSize       int     `yaml:"data_size"`
	DataType       string  `yaml:"data_type"`
	Seed           int64   `yaml:"seed"`
	RenderMode     string  `yaml:"render_mode"`
	ColorScheme    string  `yaml:"color_scheme"`
	Easing         string  `yaml:"easing"`
	Theme          string  `yaml:"theme"`
	AnimationSpeed float64 `yaml:"animation_speed"`
	FrameRate      int     `yaml:"frame_rate"`
	Sound          bool    `yaml:"sound"`

	Tuning TuningConfig `yaml:"tuning"`
}

// TuningConfig holds the engine knobs that change how an algorithm
// runs without changing what it computes.
type TuningConfig struct {
	PivotPolicy     string `yaml:"pivot_policy"`
	InsertionCutoff int    `yaml:"insertion_cutoff"`
	MaxIterations   int    `yaml:"max_iterations"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:      "quick",
		DataSize:       DefaultDataSize,
		DataType:       string(dataset.KindRandom),
		RenderMode:     string(render.ModeAuto),
		ColorScheme:    string(palette.SchemeRainbow),
		Easing:         palette.DefaultEasing,
		Theme:          "cyberpunk",
		AnimationSpeed: DefaultAnimationSpeed,
		FrameRate:      DefaultFrameRate,
		Tuning: TuningConfig{
			PivotPolicy:     string(algo.PivotMedian3),
			InsertionCutoff: algo.DefaultInsertionCutoff,
			MaxIterations:   algo.DefaultMaxIterations,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := algo.NewRegistry().Get(c.Algorithm); err != nil {
		return err
	}
	if c.DataSize < 0 {
		return fmt.Errorf("data_size must be non-negative, got %d", c.DataSize)
	}
	if c.AnimationSpeed <= 0 {
		return fmt.Errorf("animation_speed must be positive, got %g", c.AnimationSpeed)
	}
	if c.FrameRate < 1 {
		return fmt.Errorf("frame_rate must be at least 1, got %d", c.FrameRate)
	}
	switch render.Mode(c.RenderMode) {
	case render.ModeAuto, render.ModeCanvas, render.ModeGL, render.ModeScene3D:
	default:
		return fmt.Errorf("unknown render_mode %q", c.RenderMode)
	}
	found := false
	for _, k := range dataset.Kinds() {
		if string(k) == c.DataType {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown data_type %q", c.DataType)
	}
	return nil
}

// EngineOptions translates the tuning block into engine options.
func (c *Config) EngineOptions() algo.Options {
	return algo.Options{
		Seed:            c.Seed,
		PivotPolicy:     algo.PivotPolicy(c.Tuning.PivotPolicy),
		InsertionCutoff: c.Tuning.InsertionCutoff,
		MaxIterations:   c.Tuning.MaxIterations,
	}
}

// RenderConfig translates the display block into a driver config.
func (c *Config) RenderConfig() render.Config {
	return render.Config{
		Mode:           render.Mode(c.RenderMode),
		Scheme:         palette.Scheme(c.ColorScheme),
		Easing:         c.Easing,
		AnimationSpeed: c.AnimationSpeed,
	}
}
