package core

import "time"

// MinStepInterval is the shortest interval FixedStep accepts.
const MinStepInterval = 10 * time.Millisecond

// FixedStep accumulates elapsed time and reports when a simulation update is due.
// At most one step is released per poll; any surplus stays in the accumulator.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller firing once per interval.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{}
	fs.SetInterval(interval)
	return fs
}

// SetInterval changes the step interval. It is safe to call from the main loop.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval < MinStepInterval {
		interval = MinStepInterval
	}
	f.step = interval
}

// Interval returns the configured step interval.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Reset drops any accumulated time and forgets the last wall-clock sample.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// Advance adds elapsed time and reports whether one step is due.
func (f *FixedStep) Advance(elapsed time.Duration) bool {
	if elapsed > 0 {
		f.accumulator += elapsed
	}
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// ShouldStep samples the wall clock and reports whether the simulation should
// advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	return f.Advance(delta)
}
