package galaxy

// Clock accumulates simulated time. It freezes while paused; rendering is
// unaffected because the frame loop never reads it for drawing.
type Clock struct {
	elapsed float64 // simulated seconds
	paused  bool
}

// Advance accumulates dt simulated seconds unless paused.
func (c *Clock) Advance(dt float64) {
	if c.paused {
		return
	}
	c.elapsed += dt
}

// SetPaused stops or resumes time accumulation.
func (c *Clock) SetPaused(paused bool) {
	c.paused = paused
}

// Elapsed returns the accumulated simulated seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
