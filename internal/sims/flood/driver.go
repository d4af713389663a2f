package flood

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"floodgrid/internal/core"
)

// Listener is notified after the driver finishes initializing or stepping.
// It receives no payload; listeners re-read the grid themselves.
type Listener func()

type listenerList struct {
	nextID  int
	entries []listenerEntry
}

type listenerEntry struct {
	id int
	fn Listener
}

func (l *listenerList) add(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listenerEntry{id: id, fn: fn})
	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

func (l *listenerList) fire() {
	// Snapshot so listeners may cancel themselves while firing.
	entries := append([]listenerEntry(nil), l.entries...)
	for _, e := range entries {
		e.fn()
	}
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithLogger routes driver diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithSolver replaces the default FlowSolver. The driver still enforces the
// boundary after every step.
func WithSolver(s Solver) Option {
	return func(d *Driver) {
		if s != nil {
			d.solver = s
			d.customSolver = true
		}
	}
}

// Driver owns a flood grid and its lifecycle: initialization from an
// elevation source, stepping, cooperative auto-stepping and notifications.
// A Driver is not safe for concurrent use; it is the only writer of its grid.
type Driver struct {
	cfg    Config
	logger *slog.Logger

	solver       Solver
	customSolver bool
	boundary     Boundary

	grid        *Grid
	initialized bool
	tick        uint64

	source   Elevation
	initOpts []InitOption

	auto  bool
	timer *core.FixedStep

	onInit listenerList
	onStep listenerList

	display []uint8
}

// NewDriver returns an uninitialized driver for cfg. The config is validated
// by Initialize.
func NewDriver(cfg Config, opts ...Option) *Driver {
	d := &Driver{
		cfg:    cfg,
		logger: slog.Default(),
		timer:  core.NewFixedStep(cfg.StepDuration()),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("sim", d.Name())
	return d
}

// Name returns the simulation identifier.
func (d *Driver) Name() string { return "flood" }

// Config returns the active configuration.
func (d *Driver) Config() Config { return d.cfg }

// Initialized reports whether Initialize has succeeded.
func (d *Driver) Initialized() bool { return d.initialized }

// Tick returns the number of steps taken since the last Initialize.
func (d *Driver) Tick() uint64 { return d.tick }

// Grid exposes the live grid for read-only use between steps. It is nil
// until Initialize succeeds.
func (d *Driver) Grid() *Grid { return d.grid }

// Size reports the logical (interior) grid dimensions.
func (d *Driver) Size() core.Size {
	if d.grid == nil {
		return core.Size{W: d.cfg.N, H: d.cfg.N}
	}
	return core.Size{W: d.grid.n, H: d.grid.n}
}

// OnInitialized registers fn to run after every successful Initialize. The
// returned function unregisters it.
func (d *Driver) OnInitialized(fn Listener) func() { return d.onInit.add(fn) }

// OnStep registers fn to run after every completed step and once after each
// Initialize. The returned function unregisters it.
func (d *Driver) OnStep(fn Listener) func() { return d.onStep.add(fn) }

// Initialize allocates a grid sized to src, copies its elevation into the
// interior, seeds the water layer and applies the boundary. A nil src yields
// flat terrain of size cfg.N. On error the driver state is left untouched.
func (d *Driver) Initialize(src Elevation, opts ...InitOption) error {
	if err := d.cfg.Validate(); err != nil {
		d.logger.Error("initialize rejected", "error", err)
		return err
	}
	if src == nil {
		src = flatElevation(d.cfg.N)
	}
	if eg, ok := src.(ElevationGrid); ok {
		if err := eg.Validate(); err != nil {
			d.logger.Error("initialize rejected", "error", err)
			return err
		}
	}
	n := src.Size()
	grid, err := NewGrid(n)
	if err != nil {
		d.logger.Error("initialize rejected", "error", err)
		return err
	}

	var state initState
	for _, opt := range opts {
		if err := opt(&state); err != nil {
			d.logger.Error("initialize rejected", "error", err)
			return err
		}
	}
	if state.depth != nil && state.depth.Size() != n {
		err := fmt.Errorf("%w: initial depth is %d×%d, terrain is %d×%d", ErrSizeMismatch,
			state.depth.Size(), state.depth.Size(), n, n)
		d.logger.Error("initialize rejected", "error", err)
		return err
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			grid.terrain.Set(x+1, y+1, src.At(x, y))
			grid.water.Set(x+1, y+1, state.depthAt(x, y, n, d.cfg.InitialWaterDepth))
		}
	}

	d.boundary = d.cfg.boundary()
	if !d.customSolver {
		d.solver = NewFlowSolver(d.cfg)
	}
	d.boundary.Prepare(grid)
	d.boundary.Apply(grid)

	d.grid = grid
	d.tick = 0
	d.initialized = true
	d.source = src
	d.initOpts = opts
	d.timer.Reset()
	d.rebuildDisplay()

	d.logger.Info("flood initialized",
		"n", n,
		"boundary", d.boundary.Mode,
		"volume", grid.TotalVolume(),
	)
	d.onInit.fire()
	d.onStep.fire()
	return nil
}

func (s *initState) depthAt(x, y, n int, uniform float64) float64 {
	switch {
	case s.depth != nil:
		return s.depth[y][x]
	case s.blanketSet:
		if s.blanket.Covers(x, y, n) {
			return s.blanketDeep
		}
		return 0
	default:
		return uniform
	}
}

// Reset discards the grid and re-runs Initialize with the last elevation
// source and options.
func (d *Driver) Reset() error {
	d.grid = nil
	d.initialized = false
	d.display = nil
	return d.Initialize(d.source, d.initOpts...)
}

// Step advances the simulation by the configured dt. Before Initialize it
// logs a warning and does nothing.
func (d *Driver) Step() {
	if !d.initialized {
		d.logger.Warn("step ignored", "error", ErrNotInitialized)
		return
	}
	d.advance(d.cfg.DT)
}

// StepBy advances the simulation by an explicit dt.
func (d *Driver) StepBy(dt float64) error {
	if !d.initialized {
		d.logger.Warn("step ignored", "error", ErrNotInitialized)
		return ErrNotInitialized
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		err := fmt.Errorf("%w: dt must be > 0, got %v", ErrInvalidConfig, dt)
		d.logger.Warn("step ignored", "error", err)
		return err
	}
	d.advance(dt)
	return nil
}

func (d *Driver) advance(dt float64) {
	d.solver.Step(d.grid, dt)
	// Enforced here as well so any Solver leaves the halo in its fixed state.
	d.boundary.Apply(d.grid)
	d.tick++
	d.rebuildDisplay()
	d.onStep.fire()
}

// StartAutoStepping enables cooperative auto-stepping. A positive interval
// replaces the configured one.
func (d *Driver) StartAutoStepping(interval time.Duration) {
	if interval > 0 {
		d.timer.SetInterval(interval)
	}
	d.timer.Reset()
	d.auto = true
}

// StopAutoStepping prevents future scheduled steps.
func (d *Driver) StopAutoStepping() { d.auto = false }

// AutoStepping reports whether auto-stepping is enabled.
func (d *Driver) AutoStepping() bool { return d.auto }

// SetStepInterval changes the auto-stepping period. Intervals shorter than
// core.MinStepInterval are raised to it.
func (d *Driver) SetStepInterval(interval time.Duration) {
	d.timer.SetInterval(interval)
}

// StepInterval returns the auto-stepping period.
func (d *Driver) StepInterval() time.Duration { return d.timer.Interval() }

// Update feeds elapsed host time to the auto-stepper and runs at most one
// step. It reports whether a step ran. Hosts call it once per frame.
func (d *Driver) Update(elapsed time.Duration) bool {
	if !d.auto || !d.initialized {
		return false
	}
	if !d.timer.Advance(elapsed) {
		return false
	}
	d.Step()
	return true
}

// Poll is Update driven by the wall clock: the elapsed time is measured
// since the previous Poll (or StartAutoStepping). The first poll after
// starting never steps.
func (d *Driver) Poll() bool {
	if !d.auto || !d.initialized {
		return false
	}
	if !d.timer.ShouldStep() {
		return false
	}
	d.Step()
	return true
}

// Water returns the depth at physical cell (x, y). Bad access is logged and
// reads as 0.
func (d *Driver) Water(x, y int) float64 {
	return d.read("water", x, y, func(g *Grid) (float64, error) { return g.Water(x, y) })
}

// Terrain returns the elevation at physical cell (x, y). Bad access is logged
// and reads as 0.
func (d *Driver) Terrain(x, y int) float64 {
	return d.read("terrain", x, y, func(g *Grid) (float64, error) { return g.Terrain(x, y) })
}

func (d *Driver) read(field string, x, y int, get func(*Grid) (float64, error)) float64 {
	if !d.initialized {
		d.logger.Warn("read ignored", "field", field, "error", ErrNotInitialized)
		return 0
	}
	v, err := get(d.grid)
	if err != nil {
		d.logger.Warn("read ignored", "field", field, "x", x, "y", y, "error", err)
		return 0
	}
	return v
}
