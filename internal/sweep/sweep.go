// Package sweep runs many flood scenarios in parallel and ranks how far
// water spreads under each parameter set.
package sweep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"floodgrid/internal/sims/flood"
)

// Scenario is one point in the parameter grid.
type Scenario struct {
	Friction float64
	DT       float64
	Gravity  float64
}

func (s Scenario) String() string {
	return fmt.Sprintf("friction=%.3f dt=%.3f gravity=%.2f", s.Friction, s.DT, s.Gravity)
}

// Result summarises one scenario run.
type Result struct {
	Scenario Scenario

	Final       flood.Stats
	PeakFlooded float64
	WarningTick uint64 // 0 when the warning threshold was never reached
	AlertTick   uint64 // 0 when the critical threshold was never reached
	Retained    float64
}

// Grid expands the option lists into every combination. Empty lists fall back
// to the value in base.
func Grid(base flood.Config, frictions, dts, gravities []float64) []Scenario {
	if len(frictions) == 0 {
		frictions = []float64{base.Friction}
	}
	if len(dts) == 0 {
		dts = []float64{base.DT}
	}
	if len(gravities) == 0 {
		gravities = []float64{base.Gravity}
	}
	var out []Scenario
	for _, f := range frictions {
		for _, dt := range dts {
			for _, g := range gravities {
				out = append(out, Scenario{Friction: f, DT: dt, Gravity: g})
			}
		}
	}
	return out
}

// Options controls a sweep.
type Options struct {
	Steps   int
	Workers int
	Monitor flood.MonitorConfig
	Init    []flood.InitOption
}

// Run evaluates every scenario against src. Each worker owns its own driver;
// src is only read. Results come back in scenario order.
func Run(ctx context.Context, base flood.Config, src flood.Elevation, scenarios []Scenario, opts Options) ([]Result, error) {
	results := make([]Result, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runScenario(base, src, sc, opts)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runScenario(base flood.Config, src flood.Elevation, sc Scenario, opts Options) (Result, error) {
	cfg := base
	cfg.Friction = sc.Friction
	cfg.DT = sc.DT
	cfg.Gravity = sc.Gravity

	d := flood.NewDriver(cfg, flood.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err := d.Initialize(src, opts.Init...); err != nil {
		return Result{}, err
	}
	mon := flood.NewMonitor(d, opts.Monitor)
	defer mon.Close()

	res := Result{Scenario: sc}
	mon.OnAlert(func(a flood.Alert) {
		switch {
		case a.Level == flood.AlertCritical && res.AlertTick == 0:
			res.AlertTick = a.Tick
		case a.Level == flood.AlertWarning && res.WarningTick == 0:
			res.WarningTick = a.Tick
		}
	})
	start := mon.Stats().TotalVolume
	res.PeakFlooded = mon.Stats().FloodedFraction
	for step := 0; step < opts.Steps; step++ {
		d.Step()
		if f := mon.Stats().FloodedFraction; f > res.PeakFlooded {
			res.PeakFlooded = f
		}
	}
	res.Final = mon.Stats()
	if start > 0 {
		res.Retained = res.Final.TotalVolume / start
	}
	return res, nil
}

// Rank sorts results by peak flooded fraction, then by earliest alert.
func Rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.PeakFlooded != b.PeakFlooded {
			return a.PeakFlooded > b.PeakFlooded
		}
		return alertOrder(a.AlertTick) < alertOrder(b.AlertTick)
	})
}

func alertOrder(tick uint64) uint64 {
	if tick == 0 {
		return ^uint64(0)
	}
	return tick
}
