package wm

// DragMode is the interactive transform session kind.
type DragMode uint8

const (
	DragNone DragMode = iota
	DragMove
	DragResize
)

// Dragger runs move and resize sessions. Sessions use toggle semantics: the
// hardware gives no usable release edge while the pointer is in motion, so a
// session ends on the next confirmed click anywhere, never on release.
type Dragger struct {
	mode DragMode
	win  ID

	// Cursor-to-origin offset captured when the session started.
	offX, offY int
}

func (d *Dragger) Mode() DragMode { return d.mode }
func (d *Dragger) Active() bool   { return d.mode != DragNone }
func (d *Dragger) Target() ID {
	if d.mode == DragNone {
		return None
	}
	return d.win
}

// StartMove begins a drag session from a title-bar click. Maximized and
// fullscreen windows do not move.
func (d *Dragger) StartMove(reg *Registry, id ID, cx, cy int) bool {
	w := reg.Window(id)
	if w == nil || w.Maximized || w.Fullscreen {
		return false
	}
	d.mode = DragMove
	d.win = id
	d.offX = cx - w.Rect.X
	d.offY = cy - w.Rect.Y
	return true
}

// StartResize begins a resize session from a grip click.
func (d *Dragger) StartResize(reg *Registry, id ID, cx, cy int) bool {
	w := reg.Window(id)
	if w == nil || w.Maximized || w.Fullscreen {
		return false
	}
	d.mode = DragResize
	d.win = id
	d.offX = cx - (w.Rect.X + w.Rect.W)
	d.offY = cy - (w.Rect.Y + w.Rect.H)
	return true
}

// Stop ends the session. The caller invokes it on the next confirmed click.
func (d *Dragger) Stop() {
	d.mode = DragNone
	d.win = None
}

// Track recomputes the window's rect from the current cursor position.
// Moving keeps the horizontal extent fully on-screen and the top edge at or
// below zero; the bottom may overlap the taskbar band. Resizing clamps to
// the declared minimum and to the screen.
func (d *Dragger) Track(reg *Registry, cx, cy int) {
	w := reg.Window(d.win)
	if w == nil {
		d.Stop()
		return
	}
	screen := reg.Screen()

	switch d.mode {
	case DragMove:
		x := cx - d.offX
		y := cy - d.offY
		x = clamp(x, 0, screen.W-w.Rect.W)
		y = clamp(y, 0, screen.H-TitleH)
		w.Rect.X = x
		w.Rect.Y = y

	case DragResize:
		wd := cx - d.offX - w.Rect.X
		ht := cy - d.offY - w.Rect.Y
		wd = clamp(wd, w.MinW, screen.W-w.Rect.X)
		ht = clamp(ht, w.MinH, screen.H-w.Rect.Y)
		w.Rect.W = wd
		w.Rect.H = ht
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
