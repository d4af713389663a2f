package flood

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingSolver struct {
	steps int
	dts   []float64
}

func (s *countingSolver) Step(g *Grid, dt float64) {
	s.steps++
	s.dts = append(s.dts, dt)
	// Write garbage into the halo; the driver must still clear it.
	_ = g.SetWater(0, 0, 3)
	_ = g.SetFlowX(1, 1, 3)
}

func TestStepBeforeInitializeIsNoop(t *testing.T) {
	solver := &countingSolver{}
	d := NewDriver(testConfig(3), WithLogger(quietLogger()), WithSolver(solver))

	steps := 0
	d.OnStep(func() { steps++ })

	d.Step()
	require.False(t, d.Initialized())
	require.Nil(t, d.Grid())
	require.Zero(t, d.Tick())
	require.Zero(t, steps)
	require.Zero(t, solver.steps)
	require.ErrorIs(t, d.StepBy(0.1), ErrNotInitialized)
	require.ErrorIs(t, d.PlaceDefense(0, 0, ToolWall), ErrNotInitialized)
	require.Zero(t, d.Water(1, 1))
	require.Nil(t, d.Cells())
}

func TestInitializeCopiesTerrainAndWater(t *testing.T) {
	cfg := testConfig(4)
	cfg.InitialWaterDepth = 0.3
	terrain := randomTerrain(4, 11)
	d := newInitializedDriver(t, cfg, terrain)

	require.True(t, d.Initialized())
	require.Equal(t, 4, d.Size().W)
	require.Equal(t, 6, d.Grid().Stride())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.Equal(t, terrain[y][x], d.Terrain(x+1, y+1))
			require.Equal(t, 0.3, d.Water(x+1, y+1))
		}
	}
	requireHaloDry(t, d.Grid())
	require.Len(t, d.Cells(), 16)
}

func TestInitializeUsesTerrainSizeOverConfig(t *testing.T) {
	d := newInitializedDriver(t, testConfig(10), NewElevationGrid(5))
	require.Equal(t, 5, d.Grid().N())
}

func TestInitializeErrorsLeaveDriverUntouched(t *testing.T) {
	bad := testConfig(3)
	bad.DT = 0
	d := NewDriver(bad, WithLogger(quietLogger()))
	require.ErrorIs(t, d.Initialize(nil), ErrInvalidConfig)
	require.False(t, d.Initialized())

	zero := testConfig(0)
	d = NewDriver(zero, WithLogger(quietLogger()))
	require.ErrorIs(t, d.Initialize(nil), ErrInvalidSize)

	d = newInitializedDriver(t, testConfig(3), nil)
	before := d.Grid().Clone()

	ragged := ElevationGrid{{0, 0}, {0}}
	require.ErrorIs(t, d.Initialize(ragged), ErrSizeMismatch)
	require.ErrorIs(t, d.Initialize(ElevationGrid{}), ErrInvalidSize)
	require.ErrorIs(t, d.Initialize(nil, WithInitialDepth(NewElevationGrid(4))), ErrSizeMismatch)

	negative := NewElevationGrid(3)
	negative[0][0] = -1
	require.ErrorIs(t, d.Initialize(nil, WithInitialDepth(negative)), ErrInvalidConfig)

	require.True(t, d.Initialized())
	require.True(t, before.Equal(d.Grid()))
}

func TestHaloStaysDryAfterSteps(t *testing.T) {
	for _, mode := range []BoundaryMode{BoundaryClosed, BoundarySink} {
		cfg := testConfig(6)
		cfg.Boundary = mode
		cfg.DT = 0.2
		d := newInitializedDriver(t, cfg, randomTerrain(6, 5))
		for i := 0; i < 6; i++ {
			d.Step()
		}
		requireHaloDry(t, d.Grid())
	}
}

func TestDriverReappliesBoundaryAfterCustomSolver(t *testing.T) {
	solver := &countingSolver{}
	d := NewDriver(testConfig(3), WithLogger(quietLogger()), WithSolver(solver))
	require.NoError(t, d.Initialize(nil))

	d.Step()
	require.NoError(t, d.StepBy(0.25))

	require.Equal(t, 2, solver.steps)
	require.Equal(t, []float64{1, 0.25}, solver.dts)
	requireHaloDry(t, d.Grid())
	f, _ := d.Grid().FlowX(1, 1)
	require.Zero(t, f)
	require.Equal(t, uint64(2), d.Tick())
}

func TestStepByRejectsBadDT(t *testing.T) {
	d := newInitializedDriver(t, testConfig(3), nil)
	require.ErrorIs(t, d.StepBy(0), ErrInvalidConfig)
	require.ErrorIs(t, d.StepBy(-1), ErrInvalidConfig)
	require.Zero(t, d.Tick())
}

func TestDeterministicRuns(t *testing.T) {
	cfg := testConfig(12)
	cfg.DT = 0.1
	terrain := randomTerrain(12, 21)

	a := newInitializedDriver(t, cfg, terrain)
	b := newInitializedDriver(t, cfg, terrain)
	for i := 0; i < 50; i++ {
		a.Step()
		b.Step()
	}
	require.True(t, a.Grid().Equal(b.Grid()))
}

func TestListenersFireInOrderAndCancel(t *testing.T) {
	d := NewDriver(testConfig(3), WithLogger(quietLogger()))

	var events []string
	cancelInit := d.OnInitialized(func() { events = append(events, "init") })
	cancelStep := d.OnStep(func() { events = append(events, "step") })

	require.NoError(t, d.Initialize(nil))
	require.Equal(t, []string{"init", "step"}, events)

	d.Step()
	require.Equal(t, []string{"init", "step", "step"}, events)

	cancelStep()
	cancelStep()
	d.Step()
	require.Len(t, events, 3)

	cancelInit()
	require.NoError(t, d.Reset())
	require.Len(t, events, 3)
}

func TestListenerCanCancelItselfWhileFiring(t *testing.T) {
	d := newInitializedDriver(t, testConfig(3), nil)

	calls := 0
	var cancel func()
	cancel = d.OnStep(func() {
		calls++
		cancel()
	})
	other := 0
	d.OnStep(func() { other++ })

	d.Step()
	d.Step()
	require.Equal(t, 1, calls)
	require.Equal(t, 2, other)
}

func TestResetRestoresInitialState(t *testing.T) {
	cfg := testConfig(5)
	cfg.DT = 0.1
	d := newInitializedDriver(t, cfg, randomTerrain(5, 9), WithBlanket(BlanketCorners, 1))
	initial := d.Grid().Clone()

	for i := 0; i < 10; i++ {
		d.Step()
	}
	require.False(t, initial.Equal(d.Grid()))

	require.NoError(t, d.Reset())
	require.Zero(t, d.Tick())
	require.True(t, initial.Equal(d.Grid()))
}

func TestResetBeforeInitializeUsesFlatTerrain(t *testing.T) {
	d := NewDriver(testConfig(4), WithLogger(quietLogger()))
	require.NoError(t, d.Reset())
	require.Equal(t, 4, d.Grid().N())
	require.InDelta(t, 1.6, d.Grid().TotalVolume(), 1e-12)
}

func TestAutoSteppingReleasesOneStepPerUpdate(t *testing.T) {
	cfg := testConfig(3)
	cfg.StepInterval = 0.1
	d := newInitializedDriver(t, cfg, nil)

	require.False(t, d.Update(time.Second), "auto-stepping is off by default")

	d.StartAutoStepping(0)
	require.True(t, d.AutoStepping())
	require.Equal(t, 100*time.Millisecond, d.StepInterval())

	require.False(t, d.Update(60*time.Millisecond))
	require.True(t, d.Update(60*time.Millisecond))
	require.Equal(t, uint64(1), d.Tick())

	// A long frame still runs a single step; the backlog drains on later polls.
	require.True(t, d.Update(time.Second))
	require.Equal(t, uint64(2), d.Tick())
	require.True(t, d.Update(0))
	require.Equal(t, uint64(3), d.Tick())

	d.StopAutoStepping()
	require.False(t, d.Update(time.Second))
	require.Equal(t, uint64(3), d.Tick())
}

func TestPollUsesWallClock(t *testing.T) {
	d := newInitializedDriver(t, testConfig(3), nil)
	require.False(t, d.Poll(), "auto-stepping is off by default")

	d.StartAutoStepping(10 * time.Millisecond)
	require.False(t, d.Poll(), "the first sample only starts the clock")
	time.Sleep(20 * time.Millisecond)
	require.True(t, d.Poll())
	require.Equal(t, uint64(1), d.Tick())

	d.StopAutoStepping()
	time.Sleep(20 * time.Millisecond)
	require.False(t, d.Poll())
	require.Equal(t, uint64(1), d.Tick())
}

func TestAutoSteppingRequiresInitialize(t *testing.T) {
	d := NewDriver(testConfig(3), WithLogger(quietLogger()))
	d.StartAutoStepping(20 * time.Millisecond)
	require.False(t, d.Update(time.Second))
	require.Equal(t, 20*time.Millisecond, d.StepInterval())

	d.SetStepInterval(time.Millisecond)
	require.Equal(t, 10*time.Millisecond, d.StepInterval())
}

func TestBlanketSeeding(t *testing.T) {
	d := newInitializedDriver(t, testConfig(4), nil, WithBlanket(BlanketEdges, 0.4))
	require.Equal(t, 0.4, d.Water(1, 1))
	require.Equal(t, 0.4, d.Water(4, 2))
	require.Zero(t, d.Water(2, 2))
	require.Zero(t, d.Water(3, 3))

	d = newInitializedDriver(t, testConfig(4), nil, WithBlanket(BlanketCorners, 2))
	require.Equal(t, 2.0, d.Water(1, 1))
	require.Equal(t, 2.0, d.Water(4, 4))
	require.Zero(t, d.Water(1, 2))
	require.InDelta(t, 8, d.Grid().TotalVolume(), 1e-12)

	_, err := ParseBlanket("ring")
	require.ErrorIs(t, err, ErrInvalidConfig)
	b, err := ParseBlanket("Edges")
	require.NoError(t, err)
	require.Equal(t, BlanketEdges, b)
}

func TestInitialDepthOverridesUniformDepth(t *testing.T) {
	depth := NewElevationGrid(3)
	depth[2][0] = 1.5
	d := newInitializedDriver(t, testConfig(3), nil, WithInitialDepth(depth))
	require.Equal(t, 1.5, d.Water(1, 3))
	require.Zero(t, d.Water(2, 2))
}

func TestOutOfRangeReadsReturnZero(t *testing.T) {
	d := newInitializedDriver(t, testConfig(3), nil)
	require.Zero(t, d.Water(-1, 0))
	require.Zero(t, d.Terrain(9, 9))
}
