package flood

import (
	"fmt"
	"strings"
)

// BoundaryMode selects how the halo ring takes part in a step.
type BoundaryMode uint8

const (
	// BoundaryClosed never moves water across the halo ring. Volume is conserved.
	BoundaryClosed BoundaryMode = iota
	// BoundarySink lets interior cells drain into the halo, which discards
	// whatever it receives at the end of the step.
	BoundarySink
)

func (m BoundaryMode) String() string {
	switch m {
	case BoundaryClosed:
		return "closed"
	case BoundarySink:
		return "sink"
	default:
		return fmt.Sprintf("BoundaryMode(%d)", uint8(m))
	}
}

// ParseBoundaryMode maps "closed" or "sink" to a BoundaryMode.
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "closed", "wall":
		return BoundaryClosed, nil
	case "sink", "open":
		return BoundarySink, nil
	default:
		return BoundaryClosed, fmt.Errorf("%w: unknown boundary mode %q", ErrInvalidConfig, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m BoundaryMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler so TOML files can name the mode.
func (m *BoundaryMode) UnmarshalText(text []byte) error {
	parsed, err := ParseBoundaryMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Boundary enforces the fixed halo condition: zero water on every halo cell
// and zero flux on every face that touches the halo.
type Boundary struct {
	Mode          BoundaryMode
	SinkElevation float64
}

// Prepare writes the halo terrain used by sink mode. It runs once after the
// grid is populated.
func (b Boundary) Prepare(g *Grid) {
	if b.Mode != BoundarySink {
		return
	}
	n := g.n
	terrain := g.terrain
	for i := 0; i <= n+1; i++ {
		terrain.Set(i, 0, b.SinkElevation)
		terrain.Set(i, n+1, b.SinkElevation)
		terrain.Set(0, i, b.SinkElevation)
		terrain.Set(n+1, i, b.SinkElevation)
	}
}

// Apply zeroes halo water and halo-adjacent flux. It is unconditional: every
// call leaves the ring in the same state regardless of the grid contents.
func (b Boundary) Apply(g *Grid) {
	n := g.n
	water, flowX, flowY := g.water, g.flowX, g.flowY
	for i := 0; i <= n+1; i++ {
		water.Set(i, 0, 0)
		water.Set(i, n+1, 0)
		water.Set(0, i, 0)
		water.Set(n+1, i, 0)

		// x faces 0, 1 and N+1 touch the west/east halo columns.
		flowX.Set(0, i, 0)
		flowX.Set(1, i, 0)
		flowX.Set(n+1, i, 0)
		// y faces 0, 1 and N+1 touch the south/north halo rows.
		flowY.Set(i, 0, 0)
		flowY.Set(i, 1, 0)
		flowY.Set(i, n+1, 0)
	}
	// Faces along the halo rows/columns connect two halo cells.
	for i := 0; i <= n+1; i++ {
		flowX.Set(i, 0, 0)
		flowX.Set(i, n+1, 0)
		flowY.Set(0, i, 0)
		flowY.Set(n+1, i, 0)
	}
}
