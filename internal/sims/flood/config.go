package flood

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the grid size and physical constants of a flood run.
type Config struct {
	N int `toml:"n"`

	DX float64 `toml:"dx"`
	DY float64 `toml:"dy"`
	DT float64 `toml:"dt"`

	Gravity  float64 `toml:"gravity"`
	Friction float64 `toml:"friction"`

	InitialWaterDepth float64 `toml:"initial_water_depth"`

	Boundary      BoundaryMode `toml:"boundary"`
	SinkElevation float64      `toml:"sink_elevation"`

	// StepInterval is the auto-stepping period in seconds.
	StepInterval float64 `toml:"step_interval"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		N:                 10,
		DX:                1,
		DY:                1,
		DT:                1,
		Gravity:           9.81,
		Friction:          0.02,
		InitialWaterDepth: 0.1,
		Boundary:          BoundaryClosed,
		StepInterval:      0.1,
	}
}

// Validate reports the first value outside its allowed range.
func (c Config) Validate() error {
	if c.N <= 0 {
		return fmt.Errorf("%w: n=%d", ErrInvalidSize, c.N)
	}
	positive := []struct {
		name string
		v    float64
	}{{"dx", c.DX}, {"dy", c.DY}, {"dt", c.DT}}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	if !(c.Gravity >= 0) || math.IsInf(c.Gravity, 0) {
		return fmt.Errorf("%w: gravity must be >= 0, got %v", ErrInvalidConfig, c.Gravity)
	}
	if !(c.Friction >= 0 && c.Friction <= 1) {
		return fmt.Errorf("%w: friction must be in [0,1], got %v", ErrInvalidConfig, c.Friction)
	}
	if !(c.InitialWaterDepth >= 0) || math.IsInf(c.InitialWaterDepth, 0) {
		return fmt.Errorf("%w: initial_water_depth must be >= 0, got %v", ErrInvalidConfig, c.InitialWaterDepth)
	}
	if c.Boundary != BoundaryClosed && c.Boundary != BoundarySink {
		return fmt.Errorf("%w: boundary %v", ErrInvalidConfig, c.Boundary)
	}
	if math.IsNaN(c.SinkElevation) || math.IsInf(c.SinkElevation, 0) {
		return fmt.Errorf("%w: sink_elevation must be finite", ErrInvalidConfig)
	}
	if !(c.StepInterval >= 0) {
		return fmt.Errorf("%w: step_interval must be >= 0, got %v", ErrInvalidConfig, c.StepInterval)
	}
	return nil
}

// StepDuration converts StepInterval to a time.Duration.
func (c Config) StepDuration() time.Duration {
	return time.Duration(math.Round(c.StepInterval * float64(time.Second)))
}

func (c Config) boundary() Boundary {
	return Boundary{Mode: c.Boundary, SinkElevation: c.SinkElevation}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["n"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.N = parsed
		}
	}
	setPositive := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	setPositive("dx", &c.DX)
	setPositive("dy", &c.DY)
	setPositive("dt", &c.DT)
	if v, ok := cfg["gravity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Gravity = parsed
		}
	}
	if v, ok := cfg["friction"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Friction = parsed
		}
	}
	if v, ok := cfg["initial_water_depth"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.InitialWaterDepth = parsed
		}
	}
	if v, ok := cfg["boundary"]; ok {
		if parsed, err := ParseBoundaryMode(v); err == nil {
			c.Boundary = parsed
		}
	}
	if v, ok := cfg["sink_elevation"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.SinkElevation = parsed
		}
	}
	if v, ok := cfg["step_interval"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.StepInterval = parsed
		}
	}
	return c
}

// LoadConfig decodes a TOML file over DefaultConfig and validates the result.
// Keys the file sets that Config does not know are reported as errors.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
