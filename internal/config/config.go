package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds the simulation settings.
type Config struct {
	Workers int `json:"workers"`
	// Epsilon is the geometric tolerance, 0 derives it from the meshes
	Epsilon float64 `json:"epsilon"`

	// Hinge
	Axis   [3]float64 `json:"axis"`
	Origin [3]float64 `json:"origin"`

	// Sweep settings, in degrees
	StepDeg float64 `json:"step_deg"`
	MaxDeg  float64 `json:"max_deg"`
	Refine  int     `json:"refine"`

	ViewCollision bool `json:"view_collision"`
}

// Flags carries the command line overrides. Zero values leave the config untouched.
type Flags struct {
	Workers int
	Epsilon float64
	Axis    []float64
	Origin  []float64
	StepDeg float64
	MaxDeg  float64
	Refine  int
}

// Default returns the settings used without a config file: flexion about the X axis
// through the origin, 1 degree steps up to 30 degrees.
func Default() Config {
	return Config{
		Workers: runtime.NumCPU(),
		Axis:    [3]float64{1, 0, 0},
		StepDeg: 1,
		MaxDeg:  30,
		Refine:  8,
	}
}

// Load reads a JSON config file over the defaults.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies CLI flags, which take priority when non-zero.
func (c *Config) Resolve(flags Flags) error {
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Epsilon > 0 {
		c.Epsilon = flags.Epsilon
	}
	if flags.StepDeg > 0 {
		c.StepDeg = flags.StepDeg
	}
	if flags.MaxDeg > 0 {
		c.MaxDeg = flags.MaxDeg
	}
	if flags.Refine > 0 {
		c.Refine = flags.Refine
	}
	if err := setVec(&c.Axis, flags.Axis, "axis"); err != nil {
		return err
	}
	if err := setVec(&c.Origin, flags.Origin, "origin"); err != nil {
		return err
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

func setVec(dst *[3]float64, src []float64, name string) error {
	if len(src) == 0 {
		return nil
	}
	if len(src) != 3 {
		return fmt.Errorf("config: %s needs 3 components, got %d", name, len(src))
	}
	copy(dst[:], src)
	return nil
}
