package flood

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"floodgrid/internal/core"
)

// Grid owns the terrain, water and staggered flow fields of an N×N domain
// surrounded by a one-cell halo. All fields are (N+2)×(N+2); interior cells
// use indices 1..N and the halo uses 0 and N+1.
//
// flowX[x,y] is the flux across the face between (x-1,y) and (x,y); positive
// values move water toward +x. flowY is the same along y.
type Grid struct {
	n       int
	terrain *core.Field
	water   *core.Field
	flowX   *core.Field
	flowY   *core.Field
}

// NewGrid allocates a zeroed grid with n interior cells per side.
func NewGrid(n int) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidSize, n)
	}
	side := n + 2
	return &Grid{
		n:       n,
		terrain: core.NewField(side, side),
		water:   core.NewField(side, side),
		flowX:   core.NewField(side, side),
		flowY:   core.NewField(side, side),
	}, nil
}

// N returns the interior size.
func (g *Grid) N() int { return g.n }

// Stride returns the physical row length (N+2).
func (g *Grid) Stride() int { return g.n + 2 }

// Size reports the physical dimensions including the halo.
func (g *Grid) Size() core.Size { return core.Size{W: g.n + 2, H: g.n + 2} }

// InBounds reports whether (x, y) lies within [0, N+1] on both axes.
func (g *Grid) InBounds(x, y int) bool { return g.water.InBounds(x, y) }

// Interior reports whether (x, y) is an interior cell.
func (g *Grid) Interior(x, y int) bool {
	return x >= 1 && x <= g.n && y >= 1 && y <= g.n
}

func (g *Grid) check(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside [0,%d]", ErrOutOfRange, x, y, g.n+1)
	}
	return nil
}

func (g *Grid) get(f *core.Field, x, y int) (float64, error) {
	if err := g.check(x, y); err != nil {
		return 0, err
	}
	return f.At(x, y), nil
}

func (g *Grid) set(f *core.Field, x, y int, v float64) error {
	if err := g.check(x, y); err != nil {
		return err
	}
	f.Set(x, y, v)
	return nil
}

// Water returns the water depth at (x, y).
func (g *Grid) Water(x, y int) (float64, error) { return g.get(g.water, x, y) }

// SetWater writes the water depth at (x, y).
func (g *Grid) SetWater(x, y int, v float64) error { return g.set(g.water, x, y, v) }

// Terrain returns the terrain elevation at (x, y).
func (g *Grid) Terrain(x, y int) (float64, error) { return g.get(g.terrain, x, y) }

// SetTerrain writes the terrain elevation at (x, y).
func (g *Grid) SetTerrain(x, y int, v float64) error { return g.set(g.terrain, x, y, v) }

// FlowX returns the x-face flux west of (x, y).
func (g *Grid) FlowX(x, y int) (float64, error) { return g.get(g.flowX, x, y) }

// SetFlowX writes the x-face flux west of (x, y).
func (g *Grid) SetFlowX(x, y int, v float64) error { return g.set(g.flowX, x, y, v) }

// FlowY returns the y-face flux south of (x, y).
func (g *Grid) FlowY(x, y int) (float64, error) { return g.get(g.flowY, x, y) }

// SetFlowY writes the y-face flux south of (x, y).
func (g *Grid) SetFlowY(x, y int, v float64) error { return g.set(g.flowY, x, y, v) }

// WaterCells exposes the raw water slice in row-major order with stride N+2.
func (g *Grid) WaterCells() []float64 { return g.water.Cells() }

// TerrainCells exposes the raw terrain slice in row-major order with stride N+2.
func (g *Grid) TerrainCells() []float64 { return g.terrain.Cells() }

// interior copies the interior of f into a dense N*N slice.
func (g *Grid) interior(f *core.Field) []float64 {
	out := make([]float64, 0, g.n*g.n)
	stride := g.Stride()
	cells := f.Cells()
	for y := 1; y <= g.n; y++ {
		row := y * stride
		out = append(out, cells[row+1:row+1+g.n]...)
	}
	return out
}

func (g *Grid) interiorWater() []float64 { return g.interior(g.water) }

// TotalVolume returns the interior water volume in depth units (sum of depths).
// Multiply by dx*dy for physical volume.
func (g *Grid) TotalVolume() float64 {
	return floats.Sum(g.interiorWater())
}

// MaxDepth returns the deepest interior water column.
func (g *Grid) MaxDepth() float64 {
	return floats.Max(g.interiorWater())
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		n:       g.n,
		terrain: g.terrain.Clone(),
		water:   g.water.Clone(),
		flowX:   g.flowX.Clone(),
		flowY:   g.flowY.Clone(),
	}
}

// Equal reports whether both grids hold bit-identical fields.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.n != other.n {
		return false
	}
	return bitsEqual(g.terrain.Cells(), other.terrain.Cells()) &&
		bitsEqual(g.water.Cells(), other.water.Cells()) &&
		bitsEqual(g.flowX.Cells(), other.flowX.Cells()) &&
		bitsEqual(g.flowY.Cells(), other.flowY.Cells())
}

func bitsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}
