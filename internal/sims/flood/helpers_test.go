package flood

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"floodgrid/pkg/core"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(n int) Config {
	cfg := DefaultConfig()
	cfg.N = n
	return cfg
}

// randomTerrain builds a reproducible bumpy elevation grid.
func randomTerrain(n int, seed int64) ElevationGrid {
	rng := core.NewRNG(seed)
	e := NewElevationGrid(n)
	for y := range e {
		for x := range e[y] {
			e[y][x] = rng.Float64() * 2
		}
	}
	return e
}

func newInitializedDriver(t *testing.T, cfg Config, src Elevation, opts ...InitOption) *Driver {
	t.Helper()
	d := NewDriver(cfg, WithLogger(quietLogger()))
	require.NoError(t, d.Initialize(src, opts...))
	return d
}

func requireHaloDry(t *testing.T, g *Grid) {
	t.Helper()
	n := g.N()
	for i := 0; i <= n+1; i++ {
		for _, c := range [][2]int{{i, 0}, {i, n + 1}, {0, i}, {n + 1, i}} {
			w, err := g.Water(c[0], c[1])
			require.NoError(t, err)
			require.Zerof(t, w, "halo cell (%d,%d) holds water", c[0], c[1])
		}
	}
}
