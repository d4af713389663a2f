package sweep

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// series groups results that share friction and gravity, ordered by dt.
func series(results []Result) ([]string, map[string]plotter.XYs) {
	byKey := map[string]plotter.XYs{}
	for _, r := range results {
		key := fmt.Sprintf("f=%.3f g=%.2f", r.Scenario.Friction, r.Scenario.Gravity)
		byKey[key] = append(byKey[key], plotter.XY{X: r.Scenario.DT, Y: r.PeakFlooded * 100})
	}
	keys := make([]string, 0, len(byKey))
	for k, xys := range byKey {
		sort.Slice(xys, func(i, j int) bool { return xys[i].X < xys[j].X })
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, byKey
}

// WritePlot renders peak flooded percentage against dt, one line per
// friction/gravity pair, as a PNG.
func WritePlot(w io.Writer, results []Result) error {
	if len(results) == 0 {
		return fmt.Errorf("sweep: no results to plot")
	}
	p := plot.New()
	p.Title.Text = "Peak flooded area"
	p.X.Label.Text = "dt"
	p.Y.Label.Text = "flooded (%)"
	p.Y.Min = 0

	keys, byKey := series(results)
	args := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, k, byKey[k])
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return err
	}
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
