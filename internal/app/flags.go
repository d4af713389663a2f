package app

import (
	"flag"
	"time"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	ConfigPath string

	N        int
	Boundary string

	Terrain string
	Seed    int64

	Blanket      string
	BlanketDepth float64

	Scale    int
	TPS      int
	Panel    int
	Interval time.Duration
	Paused   bool
	Verbose  bool
}

// NewConfig returns a Config populated with sensible defaults. Zero-valued
// simulation fields defer to the TOML file or the flood defaults.
func NewConfig() *Config {
	return &Config{
		Terrain: "noise",
		Seed:    42,
		Scale:   8,
		TPS:     60,
		Panel:   260,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "TOML file with flood parameters")
	fs.IntVar(&c.N, "n", c.N, "interior grid size (overrides the config file)")
	fs.StringVar(&c.Boundary, "boundary", c.Boundary, "boundary mode: closed or sink")
	fs.StringVar(&c.Terrain, "terrain", c.Terrain, "terrain generator: noise, scatter, ramp or flat")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for terrain generation")
	fs.StringVar(&c.Blanket, "blanket", c.Blanket, "initial water layout: full, edges or corners (empty uses the uniform depth)")
	fs.Float64Var(&c.BlanketDepth, "blanket-depth", c.BlanketDepth, "depth used with -blanket")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.Panel, "panel", c.Panel, "HUD panel width in pixels (0 hides it)")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "auto-step interval (overrides the config file)")
	fs.BoolVar(&c.Paused, "paused", c.Paused, "start with auto-stepping off")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "debug logging")
}
