package flood

import (
	"fmt"

	"github.com/google/uuid"
)

// MonitorConfig tunes flood accounting.
type MonitorConfig struct {
	// MinFloodDepth ignores puddles at or below this depth when counting
	// flooded cells.
	MinFloodDepth float64
	// WarningThreshold is the flooded fraction in (0,1] that raises the
	// warning alert. Zero disables the tier.
	WarningThreshold float64
	// Threshold is the flooded fraction in (0,1] that raises the critical
	// alert. Zero disables the tier.
	Threshold float64
}

// DefaultMonitorConfig returns the standard alert settings.
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{MinFloodDepth: 0.01, WarningThreshold: 0.2, Threshold: 0.6}
}

// Stats summarises the grid after a step. In Monitor stats FloodedFraction
// is the share of the land that was dry at the baseline which is now
// flooded, clamped to [0,1].
type Stats struct {
	Tick            uint64
	FloodedCells    int
	TotalCells      int
	InitialWet      int
	InitialDry      int
	FloodedFraction float64
	TotalVolume     float64
	MaxDepth        float64
}

// AlertLevel ranks alerts.
type AlertLevel uint8

const (
	AlertWarning AlertLevel = iota
	AlertCritical
)

func (l AlertLevel) String() string {
	switch l {
	case AlertWarning:
		return "warning"
	case AlertCritical:
		return "critical"
	default:
		return fmt.Sprintf("AlertLevel(%d)", uint8(l))
	}
}

// Alert is raised once per level when the flooded fraction crosses that
// level's threshold.
type Alert struct {
	ID        uuid.UUID
	Level     AlertLevel
	Tick      uint64
	Fraction  float64
	Threshold float64
}

type tier struct {
	level     AlertLevel
	threshold float64
	fired     bool
}

// Monitor recomputes flood statistics after every driver step and raises a
// warning and a critical alert, each at most once until ResetAlert.
//
// The first observation of an initialized grid records how many cells were
// wet and dry; later fractions count newly flooded cells against the
// initially dry ones. Every Initialize (and Reset) takes a fresh baseline.
type Monitor struct {
	driver *Driver
	cfg    MonitorConfig

	stats    Stats
	baseline bool
	tiers    [2]tier

	alerts  []func(Alert)
	cancels []func()
}

// NewMonitor subscribes to d's notifications. Statistics are available
// immediately; alerts are only raised by later notifications.
func NewMonitor(d *Driver, cfg MonitorConfig) *Monitor {
	m := &Monitor{
		driver: d,
		cfg:    cfg,
		tiers: [2]tier{
			{level: AlertWarning, threshold: cfg.WarningThreshold},
			{level: AlertCritical, threshold: cfg.Threshold},
		},
	}
	// Init listeners run before step listeners, so the step notification
	// that follows Initialize sees the new grid as its baseline.
	m.cancels = append(m.cancels,
		d.OnInitialized(func() { m.baseline = false }),
		d.OnStep(m.observe),
	)
	m.refresh()
	return m
}

// OnAlert registers fn to receive threshold alerts.
func (m *Monitor) OnAlert(fn func(Alert)) {
	if fn != nil {
		m.alerts = append(m.alerts, fn)
	}
}

// Stats returns the latest statistics.
func (m *Monitor) Stats() Stats { return m.stats }

// Fired reports whether the critical alert has been raised since the last
// ResetAlert.
func (m *Monitor) Fired() bool { return m.tiers[AlertCritical].fired }

// WarningFired reports whether the warning alert has been raised since the
// last ResetAlert.
func (m *Monitor) WarningFired() bool { return m.tiers[AlertWarning].fired }

// ResetAlert re-arms both alert levels. The baseline is kept.
func (m *Monitor) ResetAlert() {
	for i := range m.tiers {
		m.tiers[i].fired = false
	}
}

// Close stops observing the driver.
func (m *Monitor) Close() {
	for _, cancel := range m.cancels {
		cancel()
	}
	m.cancels = nil
}

func (m *Monitor) refresh() bool {
	g := m.driver.Grid()
	if g == nil {
		m.stats = Stats{}
		return false
	}
	s := Measure(g, m.cfg.MinFloodDepth)
	if !m.baseline {
		m.baseline = true
		m.stats.InitialWet = s.FloodedCells
		m.stats.InitialDry = s.TotalCells - s.FloodedCells
	}
	s.InitialWet, s.InitialDry = m.stats.InitialWet, m.stats.InitialDry
	s.FloodedFraction = relativeFraction(s.FloodedCells, s.InitialWet, s.InitialDry)
	s.Tick = m.driver.Tick()
	m.stats = s
	return true
}

// relativeFraction is (flooded-wet)/dry clamped to [0,1]. A grid with no
// dry land at the baseline has nothing left to flood and reports zero.
func relativeFraction(flooded, wet, dry int) float64 {
	if dry <= 0 {
		return 0
	}
	f := float64(flooded-wet) / float64(dry)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

func (m *Monitor) observe() {
	if !m.refresh() {
		return
	}
	for i := range m.tiers {
		t := &m.tiers[i]
		if t.fired || t.threshold <= 0 || m.stats.FloodedFraction < t.threshold {
			continue
		}
		t.fired = true
		m.raise(Alert{
			ID:        uuid.New(),
			Level:     t.level,
			Tick:      m.stats.Tick,
			Fraction:  m.stats.FloodedFraction,
			Threshold: t.threshold,
		})
	}
}

func (m *Monitor) raise(alert Alert) {
	m.driver.logger.Warn("flood threshold reached",
		"alert", alert.ID,
		"level", alert.Level,
		"tick", alert.Tick,
		"fraction", alert.Fraction,
		"threshold", alert.Threshold,
	)
	for _, fn := range m.alerts {
		fn(alert)
	}
}

// Measure computes flood statistics over the interior of g. FloodedFraction
// is the plain flooded share of the interior; Monitor replaces it with the
// fraction relative to its baseline.
func Measure(g *Grid, minDepth float64) Stats {
	water := g.interiorWater()
	flooded := 0
	for _, v := range water {
		if v > minDepth {
			flooded++
		}
	}
	s := Stats{
		FloodedCells: flooded,
		TotalCells:   len(water),
		TotalVolume:  g.TotalVolume(),
		MaxDepth:     g.MaxDepth(),
	}
	if s.TotalCells > 0 {
		s.FloodedFraction = float64(flooded) / float64(s.TotalCells)
	}
	return s
}
