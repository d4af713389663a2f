package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"floodgrid/internal/core"
	"floodgrid/internal/sims/flood"
	"floodgrid/internal/terrain"
)

// Session wires a flood driver to its monitor and terrain for a host.
type Session struct {
	Driver  *flood.Driver
	Monitor *flood.Monitor

	logger *slog.Logger
	cfg    flood.Config
	alert  *flood.Alert
}

// NewSession resolves the flood configuration, builds terrain and initializes
// a driver. Flags in c override values read from c.ConfigPath.
func NewSession(c *Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fc, err := resolveConfig(c)
	if err != nil {
		return nil, err
	}
	src, err := buildTerrain(c.Terrain, fc.N, c.Seed)
	if err != nil {
		return nil, err
	}
	var opts []flood.InitOption
	if c.Blanket != "" {
		b, err := flood.ParseBlanket(c.Blanket)
		if err != nil {
			return nil, err
		}
		depth := c.BlanketDepth
		if depth <= 0 {
			depth = fc.InitialWaterDepth
		}
		opts = append(opts, flood.WithBlanket(b, depth))
	}

	d := flood.NewDriver(fc, flood.WithLogger(logger))
	if err := d.Initialize(src, opts...); err != nil {
		return nil, err
	}
	s := &Session{Driver: d, logger: logger, cfg: fc}
	s.Monitor = flood.NewMonitor(d, flood.DefaultMonitorConfig())
	s.Monitor.OnAlert(func(a flood.Alert) { s.alert = &a })
	d.OnInitialized(func() {
		s.alert = nil
		s.Monitor.ResetAlert()
	})
	if !c.Paused {
		d.StartAutoStepping(0)
	}
	return s, nil
}

func resolveConfig(c *Config) (flood.Config, error) {
	fc := flood.DefaultConfig()
	if c.ConfigPath != "" {
		loaded, err := flood.LoadConfig(c.ConfigPath)
		if err != nil {
			return flood.Config{}, err
		}
		fc = loaded
	}
	if c.N > 0 {
		fc.N = c.N
	}
	if c.Boundary != "" {
		mode, err := flood.ParseBoundaryMode(c.Boundary)
		if err != nil {
			return flood.Config{}, err
		}
		fc.Boundary = mode
	}
	if c.Interval > 0 {
		fc.StepInterval = c.Interval.Seconds()
	}
	return fc, fc.Validate()
}

func buildTerrain(kind string, n int, seed int64) (flood.Elevation, error) {
	switch strings.ToLower(kind) {
	case "", "noise":
		cfg := terrain.DefaultNoiseConfig()
		cfg.Seed = seed
		return terrain.Noise(n, cfg), nil
	case "scatter":
		cfg := terrain.DefaultScatterConfig()
		cfg.Seed = seed
		return terrain.Scatter(n, cfg), nil
	case "ramp":
		return terrain.Ramp(n, 2/float64(n)), nil
	case "flat":
		return terrain.Flat(n, 0), nil
	default:
		return nil, fmt.Errorf("%w: unknown terrain %q", flood.ErrInvalidConfig, kind)
	}
}

// Close detaches the monitor from the driver.
func (s *Session) Close() { s.Monitor.Close() }

// Name returns the simulation name.
func (s *Session) Name() string { return s.Driver.Name() }

// Size returns the logical grid size.
func (s *Session) Size() core.Size { return s.Driver.Size() }

// Parameters forwards the driver's parameter snapshot.
func (s *Session) Parameters() core.ParameterSnapshot { return s.Driver.Parameters() }

// ParameterControls forwards the driver's adjustable controls.
func (s *Session) ParameterControls() []core.ParameterControl {
	return s.Driver.ParameterControls()
}

// SetFloatParameter forwards HUD adjustments to the driver.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	return s.Driver.SetFloatParameter(key, value)
}

// ElevationField forwards the interior terrain.
func (s *Session) ElevationField() []float64 { return s.Driver.ElevationField() }

// DepthField forwards the interior water depth.
func (s *Session) DepthField() []float64 { return s.Driver.DepthField() }

// MaxDepth returns the deepest interior water, or 0 before Initialize.
func (s *Session) MaxDepth() float64 {
	g := s.Driver.Grid()
	if g == nil {
		return 0
	}
	return g.MaxDepth()
}

// TogglePause flips auto-stepping.
func (s *Session) TogglePause() {
	if s.Driver.AutoStepping() {
		s.Driver.StopAutoStepping()
		return
	}
	s.Driver.StartAutoStepping(0)
}

// PlaceWall raises the cell under pixel (px, py) of a view drawn at scale.
func (s *Session) PlaceWall(px, py, scale int) error {
	if scale <= 0 {
		scale = 1
	}
	return s.Driver.PlaceDefense(px/scale, py/scale, flood.ToolWall)
}

// Run steps the driver n times and returns the final statistics.
func (s *Session) Run(n int) flood.Stats {
	for i := 0; i < n; i++ {
		s.Driver.Step()
	}
	return s.Monitor.Stats()
}

// Alert returns the most recent threshold alert, if any. A critical alert
// replaces an earlier warning.
func (s *Session) Alert() (flood.Alert, bool) {
	if s.alert == nil {
		return flood.Alert{}, false
	}
	return *s.alert, true
}

// StatusLines summarises the run for the HUD.
func (s *Session) StatusLines() []string {
	st := s.Monitor.Stats()
	state := "running"
	if !s.Driver.AutoStepping() {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("tick %s (%s)", humanize.Comma(int64(st.Tick)), state),
		fmt.Sprintf("flooded %s/%s (%.0f%% of dry land)",
			humanize.Comma(int64(st.FloodedCells)), humanize.Comma(int64(st.TotalCells)), st.FloodedFraction*100),
		"volume " + humanize.FtoaWithDigits(st.TotalVolume, 4),
		"max depth " + humanize.FtoaWithDigits(st.MaxDepth, 3),
	}
	if a, ok := s.Alert(); ok {
		lines = append(lines, fmt.Sprintf("ALERT %s at tick %s", a.Level, humanize.Comma(int64(a.Tick))))
	}
	return lines
}
