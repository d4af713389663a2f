package flood

import (
	"fmt"
	"strings"
)

// Elevation is an N×N terrain source supplied by the terrain-loading
// collaborator. Coordinates are logical, 0..Size()-1.
type Elevation interface {
	Size() int
	At(x, y int) float64
}

// ElevationGrid is a square elevation array indexed [y][x].
type ElevationGrid [][]float64

// NewElevationGrid allocates a flat n×n elevation grid.
func NewElevationGrid(n int) ElevationGrid {
	if n < 0 {
		n = 0
	}
	rows := make(ElevationGrid, n)
	for y := range rows {
		rows[y] = make([]float64, n)
	}
	return rows
}

// Size returns the side length.
func (e ElevationGrid) Size() int { return len(e) }

// At returns the elevation at (x, y).
func (e ElevationGrid) At(x, y int) float64 { return e[y][x] }

// Validate checks that the grid is square and non-empty.
func (e ElevationGrid) Validate() error {
	n := len(e)
	if n == 0 {
		return fmt.Errorf("%w: empty elevation grid", ErrInvalidSize)
	}
	for y, row := range e {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrSizeMismatch, y, len(row), n)
		}
	}
	return nil
}

type flatElevation int

func (f flatElevation) Size() int { return int(f) }

func (f flatElevation) At(int, int) float64 { return 0 }

// Blanket selects which interior cells receive an initial water layer.
type Blanket uint8

const (
	// BlanketFull covers every interior cell.
	BlanketFull Blanket = iota
	// BlanketEdges covers the outermost interior ring.
	BlanketEdges
	// BlanketCorners covers the four corner cells.
	BlanketCorners
)

func (b Blanket) String() string {
	switch b {
	case BlanketFull:
		return "full"
	case BlanketEdges:
		return "edges"
	case BlanketCorners:
		return "corners"
	default:
		return fmt.Sprintf("Blanket(%d)", uint8(b))
	}
}

// ParseBlanket maps "full", "edges" or "corners" to a Blanket.
func ParseBlanket(s string) (Blanket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "":
		return BlanketFull, nil
	case "edges":
		return BlanketEdges, nil
	case "corners":
		return BlanketCorners, nil
	default:
		return BlanketFull, fmt.Errorf("%w: unknown blanket %q", ErrInvalidConfig, s)
	}
}

// Covers reports whether the logical cell (x, y) of an n×n grid is covered.
func (b Blanket) Covers(x, y, n int) bool {
	last := n - 1
	switch b {
	case BlanketEdges:
		return x == 0 || y == 0 || x == last || y == last
	case BlanketCorners:
		return (x == 0 || x == last) && (y == 0 || y == last)
	default:
		return true
	}
}

// InitOption adjusts how Initialize seeds the water field.
type InitOption func(*initState) error

type initState struct {
	depth       ElevationGrid
	blanket     Blanket
	blanketSet  bool
	blanketDeep float64
}

// WithInitialDepth seeds water from a caller-supplied N×N depth field instead
// of the configured uniform depth. Negative depths are rejected.
func WithInitialDepth(depth ElevationGrid) InitOption {
	return func(s *initState) error {
		if err := depth.Validate(); err != nil {
			return err
		}
		for y, row := range depth {
			for x, v := range row {
				if !(v >= 0) {
					return fmt.Errorf("%w: initial depth at (%d,%d) is %v", ErrInvalidConfig, x, y, v)
				}
			}
		}
		s.depth = depth
		return nil
	}
}

// WithBlanket seeds depth on the cells selected by b and leaves the rest dry.
func WithBlanket(b Blanket, depth float64) InitOption {
	return func(s *initState) error {
		if !(depth >= 0) {
			return fmt.Errorf("%w: blanket depth %v", ErrInvalidConfig, depth)
		}
		s.blanket = b
		s.blanketSet = true
		s.blanketDeep = depth
		return nil
	}
}
