package controller

// Timer accumulates elapsed time while running and stops itself once the
// bound is reached. Elapsed is always 0 when the timer is not running.
type Timer struct {
	running bool
	elapsed float64
}

func (t *Timer) Start() {
	t.running = true
	t.elapsed = 0
}

func (t *Timer) Running() bool { return t.running }

func (t *Timer) Elapsed() float64 { return t.elapsed }

// Advance adds dt and reports whether the timer expired on this call.
func (t *Timer) Advance(dt, bound float64) bool {
	if !t.running {
		return false
	}
	t.elapsed += dt
	if t.elapsed >= bound {
		t.running = false
		t.elapsed = 0
		return true
	}
	return false
}
