package components

import "time"

// Timer is a pausable countdown advanced once per tick.
type Timer struct {
	Duration time.Duration
	Elapsed  time.Duration
	Paused   bool
}

func NewTimer(d time.Duration) Timer {
	return Timer{Duration: d}
}

// Tick advances the timer by dt unless it is paused. It returns true only on
// the tick the timer finishes.
func (t *Timer) Tick(dt time.Duration) bool {
	if t.Paused || t.Finished() {
		return false
	}
	t.Elapsed += dt
	return t.Finished()
}

func (t *Timer) Finished() bool {
	return t.Elapsed >= t.Duration
}

// Pause freezes the timer without touching the elapsed time.
func (t *Timer) Pause() { t.Paused = true }

func (t *Timer) Resume() { t.Paused = false }

func (t *Timer) Reset() { t.Elapsed = 0 }

func (t *Timer) Remaining() time.Duration {
	if t.Finished() {
		return 0
	}
	return t.Duration - t.Elapsed
}

// Fraction is the elapsed share of the duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.Duration <= 0 {
		return 1
	}
	f := float64(t.Elapsed) / float64(t.Duration)
	if f > 1 {
		return 1
	}
	return f
}
