package shell

import (
	"wristos/apphost"
	"wristos/gfx"
	"wristos/hal"
	"wristos/input"
	"wristos/wm"
)

// startMenuItems is the fixed launcher list.
var startMenuItems = []apphost.ContentType{
	apphost.ContentCalculator,
	apphost.ContentTimer,
	apphost.ContentTodo,
	apphost.ContentNotes,
	apphost.ContentPaint,
	apphost.ContentFiles,
	apphost.ContentSettings,
	apphost.ContentAbout,
}

// Desktop is the pointer-driven multi-window shell: it routes confirmed
// clicks to windows and chrome, runs drag/resize sessions, and composes the
// whole scene once per tick.
type Desktop struct {
	surf   *gfx.Surface
	reg    *wm.Registry
	router *wm.Router
	cursor *input.Cursor
	drag   wm.Dragger

	menuOpen bool

	// barShown is the sticky auto-hide state: once the bottom strip has
	// revealed the taskbar, the whole band keeps it up until the cursor
	// leaves it.
	barShown bool

	// Wallpaper pixels generated by cmd/mkwall; nil means the flat fill.
	wallPix  []byte
	wallW    int
	wallH    int

	modalActive bool
	modalText   string

	// RedrawAll is set by outside events (storage reload, mode entry) and
	// consumed by Compose; movement frames redraw fully anyway.
	RedrawAll bool
}

func NewDesktop(surf *gfx.Surface, reg *wm.Registry, cursor *input.Cursor) *Desktop {
	return &Desktop{
		surf:   surf,
		reg:    reg,
		router: wm.NewRouter(reg),
		cursor: cursor,
	}
}

func (d *Desktop) Registry() *wm.Registry { return d.reg }
func (d *Desktop) Router() *wm.Router    { return d.router }
func (d *Desktop) Dragging() bool        { return d.drag.Active() }
func (d *Desktop) MenuOpen() bool        { return d.menuOpen }

// ShowNotice raises the modal notification box.
func (d *Desktop) ShowNotice(text string) {
	d.modalActive = true
	d.modalText = text
}

func (d *Desktop) ModalActive() bool { return d.modalActive }

// SetWallpaper installs an RGB565 little-endian pixel block as the desktop
// background. A short or nil slice reverts to the flat fill.
func (d *Desktop) SetWallpaper(pix []byte, w, h int) {
	if len(pix) < w*h*2 {
		pix = nil
	}
	d.wallPix = pix
	d.wallW = w
	d.wallH = h
}

// TaskbarVisible applies the auto-hide rule: hidden while any window bleeds
// into the taskbar band, unless the cursor sits in the trigger region or a
// taskbar-anchored menu is open.
func (d *Desktop) TaskbarVisible() bool {
	band := d.router.TaskbarRect()
	if !d.reg.AnyFullBleed(band) || d.menuOpen {
		d.barShown = true
		return true
	}
	d.barShown = d.router.TriggerRect(d.barShown).Contains(d.cursor.X, d.cursor.Y)
	return d.barShown
}

// HandleEvents applies one tick's events: cursor movement from directional
// buttons, click dispatch from the OK button, menu toggle from the menu
// button. Movement tracks an active drag session.
func (d *Desktop) HandleEvents(ev input.Events) {
	moved := d.moveCursor(ev)

	if moved && d.drag.Active() {
		d.drag.Track(d.reg, d.cursor.X, d.cursor.Y)
	}

	d.cursor.SetSlow(d.overFineTarget())

	if ev.Has(hal.BtnMenu) {
		if d.TaskbarVisible() {
			d.menuOpen = !d.menuOpen
		}
	}
	if ev.Has(hal.BtnBack) {
		if d.menuOpen {
			d.menuOpen = false
		} else if id := d.reg.Focus(); id != wm.None {
			d.reg.Close(id)
		}
	}
	if ev.Pressed&(1<<uint(hal.BtnOK)) != 0 {
		d.click(d.cursor.X, d.cursor.Y)
	}
}

func (d *Desktop) moveCursor(ev input.Events) bool {
	dx, dy := 0, 0
	if ev.Has(hal.BtnLeft) {
		dx--
	}
	if ev.Has(hal.BtnRight) {
		dx++
	}
	if ev.Has(hal.BtnUp) {
		dy--
	}
	if ev.Has(hal.BtnDown) {
		dy++
	}
	if dx == 0 && dy == 0 {
		return false
	}
	d.cursor.Move(dx, dy)
	return true
}

// overFineTarget reports the cursor hovering a small interactive element.
func (d *Desktop) overFineTarget() bool {
	x, y := d.cursor.X, d.cursor.Y
	if id, ok := d.router.HitWindow(x, y); ok {
		switch d.router.HitChrome(id, x, y) {
		case wm.TargetClose, wm.TargetMaximize, wm.TargetResize:
			return true
		}
	}
	if d.TaskbarVisible() && d.router.TaskbarRect().Contains(x, y) {
		return true
	}
	return false
}

// click dispatches one confirmed click in fixed precedence. An active
// drag/resize session consumes the click as its end toggle. An active modal
// blocks everything else for the tick.
func (d *Desktop) click(x, y int) {
	if d.drag.Active() {
		d.drag.Stop()
		return
	}

	if d.modalActive {
		d.modalActive = false
		return
	}

	visible := d.TaskbarVisible()

	if d.menuOpen {
		if n, ok := d.router.HitStartMenuItem(x, y, len(startMenuItems)); ok {
			d.reg.Open(startMenuItems[n], "")
			d.menuOpen = false
			return
		}
		if d.router.HitStart(x, y, visible) {
			d.menuOpen = false
			return
		}
		d.menuOpen = false
		// Fall through: the click still lands on whatever is below.
	}

	if d.router.HitStart(x, y, visible) {
		d.menuOpen = true
		return
	}
	if n, ok := d.router.HitTaskbarButton(x, y, visible); ok {
		var z [wm.MaxWindows]wm.ID
		order := d.reg.ZOrder(z[:0])
		if n < len(order) {
			d.reg.BringToFront(order[n])
		}
		return
	}

	id, ok := d.router.HitWindow(x, y)
	if !ok {
		return
	}
	d.reg.BringToFront(id)

	switch d.router.HitChrome(id, x, y) {
	case wm.TargetClose:
		d.reg.Close(id)
	case wm.TargetMaximize:
		w := d.reg.Window(id)
		if w != nil {
			w.Maximized = !w.Maximized
		}
	case wm.TargetResize:
		d.drag.StartResize(d.reg, id, x, y)
	case wm.TargetTitle:
		d.drag.StartMove(d.reg, id, x, y)
	case wm.TargetContent:
		w := d.reg.Window(id)
		if w == nil || w.App == nil {
			return
		}
		content := d.contentRect(id)
		if content.Contains(x, y) {
			w.App.HandleClick(x-content.X, y-content.Y)
		}
		if f, ok := w.App.(apphost.Fullscreener); ok {
			d.reg.SetFullscreen(id, f.Fullscreen())
		}
	}
}

// contentRect is the window rect minus title bar and border.
func (d *Desktop) contentRect(id wm.ID) gfx.Rect {
	r := d.reg.EffectiveRect(id)
	w := d.reg.Window(id)
	top := wm.TitleH
	if w != nil && w.Fullscreen {
		top = 0
	}
	return gfx.Rect{X: r.X + 1, Y: r.Y + top, W: r.W - 2, H: r.H - top - 1}
}
