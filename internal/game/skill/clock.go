package skill

// Clock reports simulation time in seconds.
type Clock interface {
	Now() float64
}

// ManualClock is a Clock advanced explicitly by the frame driver.
type ManualClock struct {
	now float64
}

// NewManualClock creates a clock reading start.
func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() float64 { return c.now }

// Advance moves the clock forward by dt. Negative steps are ignored.
func (c *ManualClock) Advance(dt float64) {
	if dt > 0 {
		c.now += dt
	}
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t float64) { c.now = t }
