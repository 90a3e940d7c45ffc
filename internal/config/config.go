package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfiguration is wrapped by every setup failure
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config is the root configuration structure
type Config struct {
	Seed    int64        `yaml:"seed"`
	World   WorldConfig  `yaml:"world"`
	GA      GAConfig     `yaml:"ga"`
	Eval    EvalConfig   `yaml:"eval"`
	Logging LogConfig    `yaml:"logging"`
	Render  RenderConfig `yaml:"render"`
}

// Point is a world coordinate as written in config files
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Rect is an obstacle rectangle given by two corners
type Rect struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

// WorldConfig defines the maze the dots move through
type WorldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Start         Point   `yaml:"start"`
	Goal          Point   `yaml:"goal"`
	CaptureRadius float64 `yaml:"capture_radius"` // per axis
	StepSize      float64 `yaml:"step_size"`
	Obstacles     []Rect  `yaml:"obstacles"`
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	Population   int     `yaml:"population"`
	MaxSteps     int     `yaml:"max_steps"`
	MutationRate float64 `yaml:"mutation_rate"`
	Generations  int     `yaml:"generations"`
}

// EvalConfig defines evaluation parameters
type EvalConfig struct {
	Workers int `yaml:"workers"` // <=0 means runtime.NumCPU
}

// LogConfig defines logging parameters
type LogConfig struct {
	EveryGenSummary bool   `yaml:"every_gen_summary"`
	CSVPath         string `yaml:"csv_path"`
	JSONPath        string `yaml:"json_path"`
	ChampionPath    string `yaml:"champion_path"`
	MetricsAddr     string `yaml:"metrics_addr"`
}

// RenderConfig defines terminal playback pacing
type RenderConfig struct {
	FrameDelayMs      int `yaml:"frame_delay_ms"`
	GenerationDelayMs int `yaml:"generation_delay_ms"`
	FrameStride       int `yaml:"frame_stride"` // draw every Nth frame
}

// Default returns the reference maze and GA constants
func Default() *Config {
	return &Config{
		Seed: 1337,
		World: WorldConfig{
			Width:         600,
			Height:        600,
			Start:         Point{X: 30, Y: 30},
			Goal:          Point{X: 570, Y: 570},
			CaptureRadius: 10,
			StepSize:      10,
			Obstacles: []Rect{
				{X1: 200, Y1: 100, X2: 400, Y2: 120},
				{X1: 100, Y1: 300, X2: 300, Y2: 320},
				{X1: 350, Y1: 450, X2: 550, Y2: 470},
			},
		},
		GA: GAConfig{
			Population:   100,
			MaxSteps:     1000,
			MutationRate: 0.001,
			Generations:  100,
		},
		Logging: LogConfig{
			EveryGenSummary: true,
			CSVPath:         "runs/run.csv",
			JSONPath:        "runs/run.jsonl",
			ChampionPath:    "artifacts/champion_final.json",
		},
		Render: RenderConfig{
			GenerationDelayMs: 100,
			FrameStride:       1,
		},
	}
}

// Load reads a YAML config file and returns a Config.
// Keys missing from the file keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfiguration}, args...)...))
	}

	w := c.World
	if w.Width <= 0 || w.Height <= 0 {
		bad("world size must be positive, got %gx%g", w.Width, w.Height)
	}
	if w.StepSize <= 0 {
		bad("step_size must be positive, got %g", w.StepSize)
	}
	if w.CaptureRadius <= 0 {
		bad("capture_radius must be positive, got %g", w.CaptureRadius)
	}
	if w.Start.X < 0 || w.Start.X > w.Width || w.Start.Y < 0 || w.Start.Y > w.Height {
		bad("start (%g,%g) outside world", w.Start.X, w.Start.Y)
	}
	for i, r := range w.Obstacles {
		if r.X1 > r.X2 || r.Y1 > r.Y2 {
			bad("obstacle %d has inverted corners (%g,%g)-(%g,%g)", i, r.X1, r.Y1, r.X2, r.Y2)
		}
	}

	if c.GA.Population <= 0 {
		bad("population must be positive, got %d", c.GA.Population)
	}
	if c.GA.MaxSteps <= 0 {
		bad("max_steps must be positive, got %d", c.GA.MaxSteps)
	}
	if c.GA.MutationRate < 0 || c.GA.MutationRate > 1 {
		bad("mutation_rate must be in [0,1], got %g", c.GA.MutationRate)
	}
	if c.GA.Generations < 0 {
		bad("generations must not be negative, got %d", c.GA.Generations)
	}

	return errors.Join(errs...)
}
