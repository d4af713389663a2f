package flood

import (
	"fmt"
	"math"
)

// Tool describes a placeable defense and how it changes the terrain under it.
type Tool struct {
	Name         string
	ElevationAdd float64
}

// Stock tools offered by hosts.
var (
	ToolSandbag = Tool{Name: "sandbag", ElevationAdd: 0.5}
	ToolWall    = Tool{Name: "wall", ElevationAdd: 2}
	ToolTrench  = Tool{Name: "trench", ElevationAdd: -0.5}
)

// PlaceDefense applies tool to the logical cell (x, y), 0 <= x,y < N. The
// raised (or lowered) cell takes part in the next step like any other
// terrain. Placement is rejected before Initialize and outside the interior.
func (d *Driver) PlaceDefense(x, y int, tool Tool) error {
	if !d.initialized {
		d.logger.Warn("defense ignored", "tool", tool.Name, "error", ErrNotInitialized)
		return ErrNotInitialized
	}
	if math.IsNaN(tool.ElevationAdd) || math.IsInf(tool.ElevationAdd, 0) {
		err := fmt.Errorf("%w: tool %q elevation change %v", ErrInvalidConfig, tool.Name, tool.ElevationAdd)
		d.logger.Warn("defense ignored", "tool", tool.Name, "error", err)
		return err
	}
	px, py := x+1, y+1
	if !d.grid.Interior(px, py) {
		err := fmt.Errorf("%w: defense at (%d,%d) outside [0,%d)", ErrOutOfRange, x, y, d.grid.n)
		d.logger.Warn("defense ignored", "tool", tool.Name, "error", err)
		return err
	}
	h := d.grid.terrain.At(px, py) + tool.ElevationAdd
	d.grid.terrain.Set(px, py, h)
	d.rebuildDisplay()
	d.logger.Info("defense placed", "tool", tool.Name, "x", x, "y", y, "elevation", h)
	return nil
}
