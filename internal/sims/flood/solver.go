package flood

import "math"

// Solver advances a grid by one timestep.
type Solver interface {
	Step(g *Grid, dt float64)
}

// FlowSolver is an explicit momentum-based shallow-water update over the
// staggered flux fields. It performs no stability check; callers choose dt,
// spacing and gravity that stay stable for their grid.
type FlowSolver struct {
	Gravity  float64
	DX, DY   float64
	Friction float64
	Boundary Boundary

	scale []float64
}

// NewFlowSolver builds a solver from the physical constants in cfg.
func NewFlowSolver(cfg Config) *FlowSolver {
	return &FlowSolver{
		Gravity:  cfg.Gravity,
		DX:       cfg.DX,
		DY:       cfg.DY,
		Friction: cfg.Friction,
		Boundary: cfg.boundary(),
	}
}

// Step runs accelerate, clamp and integrate, then reapplies the boundary.
func (s *FlowSolver) Step(g *Grid, dt float64) {
	s.accelerate(g, dt)
	s.clampOutflow(g, dt)
	s.integrate(g, dt)
	s.Boundary.Apply(g)
}

// faceRange returns the first and last face index accelerated along an axis.
// Face i separates cells i-1 and i. Closed mode skips the two faces that touch
// the halo; sink mode includes them so the halo can receive water.
func (s *FlowSolver) faceRange(n int) (int, int) {
	if s.Boundary.Mode == BoundarySink {
		return 1, n + 1
	}
	return 2, n
}

func (s *FlowSolver) accelerate(g *Grid, dt float64) {
	n := g.n
	stride := n + 2
	water := g.water.Cells()
	terrain := g.terrain.Cells()
	flowX := g.flowX.Cells()
	flowY := g.flowY.Cells()

	damp := math.Pow(1-s.Friction, dt)
	ax := s.Gravity * dt / s.DX
	ay := s.Gravity * dt / s.DY
	lo, hi := s.faceRange(n)

	for y := 1; y <= n; y++ {
		row := y * stride
		for x := lo; x <= hi; x++ {
			i := row + x
			west := water[i-1] + terrain[i-1]
			here := water[i] + terrain[i]
			flowX[i] = flowX[i]*damp + ax*(west-here)
		}
	}
	for y := lo; y <= hi; y++ {
		row := y * stride
		for x := 1; x <= n; x++ {
			i := row + x
			south := water[i-stride] + terrain[i-stride]
			here := water[i] + terrain[i]
			flowY[i] = flowY[i]*damp + ay*(south-here)
		}
	}
}

// clampOutflow limits what each cell can lose in one step to the water it
// holds. Every cell's scale factor is computed from the unscaled fluxes first;
// each face is then multiplied exactly once, by the scale of the cell the flux
// leaves. The result does not depend on iteration order, and a face is never
// rescaled from its receiving side.
func (s *FlowSolver) clampOutflow(g *Grid, dt float64) {
	n := g.n
	stride := n + 2
	water := g.water.Cells()
	flowX := g.flowX.Cells()
	flowY := g.flowY.Cells()

	if cap(s.scale) < len(water) {
		s.scale = make([]float64, len(water))
	}
	scale := s.scale[:len(water)]
	// Halo cells hold no water, so nothing may leave them.
	for i := range scale {
		scale[i] = 0
	}

	budget := s.DX * s.DY / dt
	for y := 1; y <= n; y++ {
		row := y * stride
		for x := 1; x <= n; x++ {
			i := row + x
			out := math.Max(0, -flowX[i]) +
				math.Max(0, -flowY[i]) +
				math.Max(0, flowX[i+1]) +
				math.Max(0, flowY[i+stride])
			maxOut := water[i] * budget
			if out > maxOut {
				scale[i] = maxOut / out
			} else {
				scale[i] = 1
			}
		}
	}

	lo, hi := s.faceRange(n)
	for y := 1; y <= n; y++ {
		row := y * stride
		for x := lo; x <= hi; x++ {
			i := row + x
			switch f := flowX[i]; {
			case f > 0:
				flowX[i] = f * scale[i-1]
			case f < 0:
				flowX[i] = f * scale[i]
			}
		}
	}
	for y := lo; y <= hi; y++ {
		row := y * stride
		for x := 1; x <= n; x++ {
			i := row + x
			switch f := flowY[i]; {
			case f > 0:
				flowY[i] = f * scale[i-stride]
			case f < 0:
				flowY[i] = f * scale[i]
			}
		}
	}
}

func (s *FlowSolver) integrate(g *Grid, dt float64) {
	n := g.n
	stride := n + 2
	water := g.water.Cells()
	flowX := g.flowX.Cells()
	flowY := g.flowY.Cells()

	k := dt / (s.DX * s.DY)
	for y := 1; y <= n; y++ {
		row := y * stride
		for x := 1; x <= n; x++ {
			i := row + x
			water[i] += k * (flowX[i] + flowY[i] - flowX[i+1] - flowY[i+stride])
			if water[i] < 0 {
				water[i] = 0
			}
		}
	}
}
