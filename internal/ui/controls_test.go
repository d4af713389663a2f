package ui

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"floodgrid/internal/core"
)

type recordingSetter struct {
	accept bool
	calls  map[string]float64
}

func (r *recordingSetter) SetFloatParameter(key string, value float64) bool {
	if r.calls == nil {
		r.calls = map[string]float64{}
	}
	r.calls[key] = value
	return r.accept
}

func snapshot(params ...core.Parameter) core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{Name: "test", Params: params}}}
}

func TestRefreshControls(t *testing.T) {
	states := newControlStates([]core.ParameterControl{
		{Key: "friction", Step: 0.01},
		{Key: "n", Step: 1},
		{Key: "missing", Step: 1},
	})
	refreshControls(states, snapshot(
		core.Parameter{Key: "friction", Type: core.ParamTypeFloat, Value: "0.02"},
		core.Parameter{Key: "n", Type: core.ParamTypeInt, Value: "10"},
	))

	require.True(t, states[0].hasValue)
	require.Equal(t, 0.02, states[0].floatValue)
	require.Equal(t, "0.02", states[0].value)
	require.False(t, states[1].hasValue, "only float parameters are adjustable")
	require.False(t, states[2].hasValue)
	require.Equal(t, "--", states[2].value)
}

func TestControlTargetClampsToBounds(t *testing.T) {
	s := controlState{
		control:    core.ParameterControl{Key: "friction", Step: 0.25, Min: 0, Max: 1, HasMin: true, HasMax: true},
		floatValue: 0.9,
		hasValue:   true,
	}
	v, ok := s.target(1)
	require.True(t, ok)
	require.Equal(t, 1.0, v)

	s.floatValue = 1
	require.False(t, s.canAdjust(1))
	require.True(t, s.canAdjust(-1))

	s.floatValue = 0
	require.False(t, s.canAdjust(-1))

	s.hasValue = false
	require.False(t, s.canAdjust(1))
}

func TestControlApply(t *testing.T) {
	s := controlState{
		control:    core.ParameterControl{Key: "gravity", Step: 0.5},
		floatValue: 9.5,
		hasValue:   true,
	}
	rejecting := &recordingSetter{}
	require.False(t, s.apply(rejecting, 1))
	require.Equal(t, 10.0, rejecting.calls["gravity"])
	require.Equal(t, 9.5, s.floatValue)

	accepting := &recordingSetter{accept: true}
	require.True(t, s.apply(accepting, 1))
	require.Equal(t, 10.0, s.floatValue)
	require.Equal(t, "10.0", s.value)

	require.False(t, s.apply(nil, 1))
}

func TestLayoutControls(t *testing.T) {
	states := newControlStates([]core.ParameterControl{{Key: "a"}, {Key: "b"}})
	layoutControls(states, 200, 50)

	require.Equal(t, 50, states[0].top)
	require.Equal(t, 50+lineHeight, states[1].top)
	require.Equal(t, 200-panelPadding, states[0].plusRect.Max.X)
	require.Less(t, states[0].minusRect.Max.X, states[0].plusRect.Min.X)
	require.True(t, pointInRect(states[1].plusRect.Min.X, states[1].plusRect.Min.Y, states[1].plusRect))
	require.False(t, pointInRect(0, 0, image.Rect(1, 1, 2, 2)))
}

func TestFormatFloatPrecision(t *testing.T) {
	require.Equal(t, "0.0200", formatFloat(core.ParameterControl{Step: 0.0005}, 0.02))
	require.Equal(t, "0.020", formatFloat(core.ParameterControl{Step: 0.005}, 0.02))
	require.Equal(t, "0.02", formatFloat(core.ParameterControl{Step: 0.01}, 0.02))
	require.Equal(t, "9.8", formatFloat(core.ParameterControl{Step: 0.5}, 9.81))
	require.Equal(t, "0.10", formatFloat(core.ParameterControl{}, 0.1))
}
