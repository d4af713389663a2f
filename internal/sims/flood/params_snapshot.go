package flood

import (
	"strconv"

	"floodgrid/internal/core"
)

// Parameters reports the active configuration for the HUD.
func (d *Driver) Parameters() core.ParameterSnapshot {
	c := d.cfg
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("n", "Size", c.N),
				floatParam("dx", "Cell width", c.DX),
				floatParam("dy", "Cell height", c.DY),
				stringParam("boundary", "Boundary", c.Boundary.String()),
				floatParam("sink_elevation", "Sink elevation", c.SinkElevation),
			},
		},
		{
			Name: "Flow",
			Params: []core.Parameter{
				floatParam("dt", "Timestep", c.DT),
				floatParam("gravity", "Gravity", c.Gravity),
				floatParam("friction", "Friction", c.Friction),
				floatParam("step_interval", "Step interval (s)", d.StepInterval().Seconds()),
			},
		},
		{
			Name: "Water",
			Params: []core.Parameter{
				floatParam("initial_water_depth", "Initial depth", c.InitialWaterDepth),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust while running.
func (d *Driver) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "friction", Label: "Friction", Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "gravity", Label: "Gravity", Step: 0.5, Min: 0, HasMin: true},
		{Key: "dt", Label: "Timestep", Step: 0.01, Min: 0.01, HasMin: true},
		{Key: "initial_water_depth", Label: "Initial depth", Step: 0.05, Min: 0, HasMin: true},
	}
}

// SetFloatParameter updates a tunable. Changes to friction and gravity apply
// from the next step; initial_water_depth applies on the next Reset.
func (d *Driver) SetFloatParameter(key string, value float64) bool {
	next := d.cfg
	switch key {
	case "friction":
		next.Friction = clamp(value, 0, 1)
	case "gravity":
		next.Gravity = value
	case "dt":
		next.DT = value
	case "initial_water_depth":
		next.InitialWaterDepth = value
	case "step_interval":
		next.StepInterval = value
	default:
		return false
	}
	if err := next.Validate(); err != nil {
		d.logger.Warn("parameter rejected", "key", key, "value", value, "error", err)
		return false
	}
	d.cfg = next
	if key == "step_interval" {
		d.SetStepInterval(next.StepDuration())
	}
	if fs, ok := d.solver.(*FlowSolver); ok && !d.customSolver {
		fs.Friction = next.Friction
		fs.Gravity = next.Gravity
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
