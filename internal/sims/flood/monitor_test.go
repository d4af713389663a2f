package flood

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	g, err := NewGrid(2)
	require.NoError(t, err)
	require.NoError(t, g.SetWater(1, 1, 0.5))
	require.NoError(t, g.SetWater(2, 1, 0.01)) // at the threshold, not flooded
	require.NoError(t, g.SetWater(2, 2, 0.2))

	s := Measure(g, 0.01)
	require.Equal(t, 2, s.FloodedCells)
	require.Equal(t, 4, s.TotalCells)
	require.Equal(t, 0.5, s.FloodedFraction)
	require.Equal(t, 0.5, s.MaxDepth)
	require.InDelta(t, 0.71, s.TotalVolume, 1e-12)
}

// columnFloodDriver holds water in the left column of a flat 5×5 grid so the
// flood advances one column at a time.
func columnFloodDriver(t *testing.T) *Driver {
	t.Helper()
	cfg := testConfig(5)
	cfg.InitialWaterDepth = 0
	cfg.DT = 0.05
	depth := NewElevationGrid(5)
	for y := range depth {
		depth[y][0] = 1
	}
	return newInitializedDriver(t, cfg, nil, WithInitialDepth(depth))
}

func TestMonitorWarningPrecedesCritical(t *testing.T) {
	d := columnFloodDriver(t)
	m := NewMonitor(d, DefaultMonitorConfig())
	defer m.Close()

	st := m.Stats()
	require.Equal(t, 5, st.InitialWet)
	require.Equal(t, 20, st.InitialDry)
	require.Zero(t, st.FloodedFraction)

	var alerts []Alert
	m.OnAlert(func(a Alert) { alerts = append(alerts, a) })
	for i := 0; i < 400 && !m.Fired(); i++ {
		d.Step()
	}
	require.True(t, m.WarningFired())
	require.True(t, m.Fired())
	require.Len(t, alerts, 2)

	warn, crit := alerts[0], alerts[1]
	require.Equal(t, AlertWarning, warn.Level)
	require.Equal(t, 0.2, warn.Threshold)
	require.Equal(t, AlertCritical, crit.Level)
	require.Equal(t, 0.6, crit.Threshold)
	require.Less(t, warn.Tick, crit.Tick)
	require.GreaterOrEqual(t, crit.Fraction, 0.6)
	require.Equal(t, d.Tick(), crit.Tick)
	require.NotEqual(t, warn.ID, crit.ID)
	require.NotEqual(t, uuid.Nil, warn.ID)

	d.Step()
	require.Len(t, alerts, 2, "alerts must not repeat while armed")

	for i := 0; i < 400 && m.Stats().FloodedFraction < 1; i++ {
		d.Step()
	}
	require.Equal(t, 1.0, m.Stats().FloodedFraction)
	m.ResetAlert()
	require.False(t, m.Fired())
	require.False(t, m.WarningFired())
	d.Step()
	require.Len(t, alerts, 4)
	require.Equal(t, AlertWarning, alerts[2].Level)
	require.Equal(t, AlertCritical, alerts[3].Level)
}

func TestMonitorFullBlanketDoesNotAlert(t *testing.T) {
	d := newInitializedDriver(t, testConfig(4), nil)
	m := NewMonitor(d, DefaultMonitorConfig())
	defer m.Close()

	fired := 0
	m.OnAlert(func(Alert) { fired++ })
	for i := 0; i < 10; i++ {
		d.Step()
	}
	st := m.Stats()
	require.Equal(t, 16, st.InitialWet)
	require.Zero(t, st.InitialDry)
	require.Equal(t, 16, st.FloodedCells)
	require.Zero(t, st.FloodedFraction)
	require.Zero(t, fired)
}

func TestMonitorRebaselinesOnReset(t *testing.T) {
	d := columnFloodDriver(t)
	m := NewMonitor(d, MonitorConfig{MinFloodDepth: 0.01, Threshold: 0.6})
	defer m.Close()

	for i := 0; i < 400 && !m.Fired(); i++ {
		d.Step()
	}
	require.True(t, m.Fired())
	require.False(t, m.WarningFired(), "zero warning threshold disables the tier")

	require.NoError(t, d.Reset())
	st := m.Stats()
	require.Zero(t, st.Tick)
	require.Equal(t, 5, st.InitialWet)
	require.Equal(t, 20, st.InitialDry)
	require.Zero(t, st.FloodedFraction)
}

func TestRelativeFraction(t *testing.T) {
	require.Equal(t, 0.5, relativeFraction(15, 5, 20))
	require.Zero(t, relativeFraction(3, 5, 20), "drying below the baseline clamps at zero")
	require.Equal(t, 1.0, relativeFraction(30, 5, 20))
	require.Zero(t, relativeFraction(9, 9, 0))
}

func TestMonitorCloseStopsUpdates(t *testing.T) {
	d := newInitializedDriver(t, testConfig(3), nil)
	m := NewMonitor(d, DefaultMonitorConfig())
	require.Equal(t, uint64(0), m.Stats().Tick)

	d.Step()
	require.Equal(t, uint64(1), m.Stats().Tick)

	m.Close()
	m.Close()
	d.Step()
	require.Equal(t, uint64(1), m.Stats().Tick)
}

func TestMonitorBeforeInitialize(t *testing.T) {
	d := NewDriver(testConfig(3), WithLogger(quietLogger()))
	m := NewMonitor(d, DefaultMonitorConfig())
	require.Zero(t, m.Stats().TotalCells)

	fired := 0
	m.OnAlert(func(Alert) { fired++ })
	require.NoError(t, d.Initialize(nil))
	// Uniform 0.1 depth wets every cell, so there is no dry land to flood.
	require.Zero(t, fired)
	st := m.Stats()
	require.Equal(t, 9, st.FloodedCells)
	require.Equal(t, 9, st.InitialWet)
	require.Zero(t, st.FloodedFraction)
}
