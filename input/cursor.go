package input

// Cursor is the pointer state for the desktop shell. Movement comes from the
// directional buttons; speed drops near small interactive targets so they
// can be hit reliably on a small panel.
type Cursor struct {
	X, Y    int
	Visible bool

	screenW int
	screenH int

	speed     int
	slowSpeed int
	slow      bool
}

func NewCursor(screenW, screenH int) *Cursor {
	return &Cursor{
		X:         screenW / 2,
		Y:         screenH / 2,
		Visible:   true,
		screenW:   screenW,
		screenH:   screenH,
		speed:     4,
		slowSpeed: 1,
	}
}

// SetSlow switches to fine movement. The shell sets it while the cursor is
// over window chrome (close, resize grip) or other small targets.
func (c *Cursor) SetSlow(slow bool) { c.slow = slow }

func (c *Cursor) Speed() int {
	if c.slow {
		return c.slowSpeed
	}
	return c.speed
}

// Move shifts the cursor by one step per axis direction, clamped to screen.
func (c *Cursor) Move(dx, dy int) {
	step := c.Speed()
	c.X = clamp(c.X+dx*step, 0, c.screenW-1)
	c.Y = clamp(c.Y+dy*step, 0, c.screenH-1)
}

// Center re-homes the cursor, used when entering the desktop.
func (c *Cursor) Center() {
	c.X = c.screenW / 2
	c.Y = c.screenH / 2
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
