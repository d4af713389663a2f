package ui

import (
	"image"
	"math"
	"strconv"

	"floodgrid/internal/core"
)

// Sim is what the HUD needs from a running simulation.
type Sim interface {
	Name() string
	Size() core.Size
	Parameters() core.ParameterSnapshot
}

// StatusProvider supplies free-form status lines drawn above the controls.
type StatusProvider interface {
	StatusLines() []string
}

type controlState struct {
	control core.ParameterControl
	value   string

	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func newControlStates(controls []core.ParameterControl) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	return states
}

// refreshControls copies current values from snap into the control states.
func refreshControls(states []controlState, snap core.ParameterSnapshot) {
	for i := range states {
		state := &states[i]
		param, ok := snap.Lookup(state.control.Key)
		if !ok || param.Type != core.ParamTypeFloat {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.floatValue = parsed
		state.value = formatFloat(state.control, parsed)
		state.hasValue = true
	}
}

func (s *controlState) step() float64 {
	if s.control.Step <= 0 {
		return 0.05
	}
	return s.control.Step
}

// target returns the value one step in direction, clamped to the control's
// bounds. ok is false when the value would not change.
func (s *controlState) target(direction int) (float64, bool) {
	if !s.hasValue || direction == 0 {
		return s.floatValue, false
	}
	v := s.floatValue + float64(direction)*s.step()
	if s.control.HasMin && v < s.control.Min {
		v = s.control.Min
	}
	if s.control.HasMax && v > s.control.Max {
		v = s.control.Max
	}
	if math.Abs(v-s.floatValue) < 1e-9 {
		return s.floatValue, false
	}
	return v, true
}

func (s *controlState) canAdjust(direction int) bool {
	_, ok := s.target(direction)
	return ok
}

func (s *controlState) apply(setter core.FloatParameterSetter, direction int) bool {
	if setter == nil {
		return false
	}
	v, ok := s.target(direction)
	if !ok || !setter.SetFloatParameter(s.control.Key, v) {
		return false
	}
	s.floatValue = v
	s.value = formatFloat(s.control, v)
	return true
}

// layoutControls positions one row per control starting at top.
func layoutControls(states []controlState, width, top int) {
	for i := range states {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plusRect := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		states[i].top = rowTop
		states[i].minusRect = minusRect
		states[i].plusRect = plusRect
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 36
	statusHeight   = 16
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
