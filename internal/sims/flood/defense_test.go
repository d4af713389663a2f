package flood

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceDefenseRaisesTerrain(t *testing.T) {
	d := newInitializedDriver(t, testConfig(4), nil)

	require.NoError(t, d.PlaceDefense(0, 3, ToolWall))
	require.Equal(t, 2.0, d.Terrain(1, 4))

	require.NoError(t, d.PlaceDefense(0, 3, ToolTrench))
	require.Equal(t, 1.5, d.Terrain(1, 4))

	require.ErrorIs(t, d.PlaceDefense(4, 0, ToolSandbag), ErrOutOfRange)
	require.ErrorIs(t, d.PlaceDefense(-1, 0, ToolSandbag), ErrOutOfRange)
	require.ErrorIs(t, d.PlaceDefense(1, 1, Tool{Name: "bad", ElevationAdd: math.NaN()}), ErrInvalidConfig)
}

func TestPlaceDefenseRefreshesDisplay(t *testing.T) {
	d := newInitializedDriver(t, testConfig(3), nil)
	center := 1*3 + 1
	before := d.Cells()[center]
	require.Equal(t, encodeDisplayValue(BandLight, 0), before)

	require.NoError(t, d.PlaceDefense(1, 1, ToolWall))
	require.Equal(t, uint64(0), d.Tick())
	require.Equal(t, encodeDisplayValue(BandLight, 3), d.Cells()[center])
	require.Equal(t, before, d.Cells()[0], "untouched cells keep their value")
}

func TestDefenseDivertsWater(t *testing.T) {
	cfg := testConfig(5)
	cfg.InitialWaterDepth = 0
	cfg.DT = 0.05
	depth := NewElevationGrid(5)
	for y := range depth {
		depth[y][0] = 1
	}
	d := newInitializedDriver(t, cfg, nil, WithInitialDepth(depth))
	for y := 0; y < 5; y++ {
		require.NoError(t, d.PlaceDefense(1, y, ToolWall))
	}

	for i := 0; i < 40; i++ {
		d.Step()
	}
	for y := 1; y <= 5; y++ {
		for x := 3; x <= 5; x++ {
			require.Zerof(t, d.Water(x, y), "water crossed the wall at (%d,%d)", x, y)
		}
	}
}
