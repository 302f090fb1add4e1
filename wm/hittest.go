package wm

import "wristos/gfx"

// Chrome geometry. Fixed for the whole shell; hit tests and the compositor
// share these so the pixels and the click targets cannot drift apart.
const (
	TitleH     = 13
	ChromeBtnW = 11
	GripSize   = 7

	// GripOverhang extends the resize grip past the window's own bounds.
	GripOverhang = 2

	TaskbarH    = 18
	TaskbarBtnW = 34
	StartBtnW   = 26
	MenuItemH   = 14
	MenuW       = 92

	// HideTriggerH is the thin reveal strip at the very bottom while the
	// taskbar is hidden.
	HideTriggerH = 3

	// HitTol widens every test around the cursor hotspot. Precision aid for
	// a small panel.
	HitTol = 2
)

// Target is the semantic element under the cursor.
type Target uint8

const (
	TargetNone Target = iota
	TargetClose
	TargetMaximize
	TargetResize
	TargetTitle
	TargetContent
)

func (t Target) String() string {
	switch t {
	case TargetClose:
		return "close"
	case TargetMaximize:
		return "maximize"
	case TargetResize:
		return "resize"
	case TargetTitle:
		return "title"
	case TargetContent:
		return "content"
	default:
		return "none"
	}
}

// Router resolves cursor positions against the z-order and window chrome.
type Router struct {
	reg *Registry
}

func NewRouter(reg *Registry) *Router {
	return &Router{reg: reg}
}

func within(r gfx.Rect, x, y, tol int) bool {
	return x >= r.X-tol && x < r.X+r.W+tol && y >= r.Y-tol && y < r.Y+r.H+tol
}

// HitWindow scans front-to-back and returns the first window containing the
// point (with tolerance).
func (rt *Router) HitWindow(x, y int) (ID, bool) {
	var z [MaxWindows]ID
	for _, id := range rt.reg.ZOrder(z[:0]) {
		if within(rt.reg.EffectiveRect(id), x, y, HitTol) {
			return id, true
		}
	}
	return None, false
}

// CloseRect returns the close button rectangle for a window.
func (rt *Router) CloseRect(id ID) gfx.Rect {
	r := rt.reg.EffectiveRect(id)
	return gfx.Rect{X: r.X + r.W - ChromeBtnW - 1, Y: r.Y + 1, W: ChromeBtnW, H: TitleH - 2}
}

// MaximizeRect returns the maximize button rectangle.
func (rt *Router) MaximizeRect(id ID) gfx.Rect {
	r := rt.reg.EffectiveRect(id)
	return gfx.Rect{X: r.X + r.W - 2*ChromeBtnW - 2, Y: r.Y + 1, W: ChromeBtnW, H: TitleH - 2}
}

// GripRect returns the resize grip, anchored bottom-right and deliberately
// overhanging the window bounds.
func (rt *Router) GripRect(id ID) gfx.Rect {
	r := rt.reg.EffectiveRect(id)
	return gfx.Rect{
		X: r.X + r.W - GripSize + GripOverhang,
		Y: r.Y + r.H - GripSize + GripOverhang,
		W: GripSize,
		H: GripSize,
	}
}

// TitleRect returns the drag handle band (whole title bar minus buttons).
func (rt *Router) TitleRect(id ID) gfx.Rect {
	r := rt.reg.EffectiveRect(id)
	return gfx.Rect{X: r.X, Y: r.Y, W: r.W - 2*ChromeBtnW - 2, H: TitleH}
}

// HitChrome resolves a point inside a hit window to its chrome target, in
// fixed precedence: close, maximize, resize grip, title bar, content. The
// title bar is absent in fullscreen.
func (rt *Router) HitChrome(id ID, x, y int) Target {
	w := rt.reg.Window(id)
	if w == nil {
		return TargetNone
	}

	if within(rt.CloseRect(id), x, y, HitTol) {
		return TargetClose
	}
	if within(rt.MaximizeRect(id), x, y, HitTol) {
		return TargetMaximize
	}
	if !w.Maximized && !w.Fullscreen && within(rt.GripRect(id), x, y, HitTol) {
		return TargetResize
	}
	if !w.Fullscreen && within(rt.TitleRect(id), x, y, HitTol) {
		return TargetTitle
	}
	return TargetContent
}

// TaskbarRect is the taskbar band at the bottom of the screen.
func (rt *Router) TaskbarRect() gfx.Rect {
	s := rt.reg.Screen()
	return gfx.Rect{X: 0, Y: s.H - TaskbarH, W: s.W, H: TaskbarH}
}

// TriggerRect is the region that forces the taskbar visible: the thin bottom
// strip while hidden, the full band while shown.
func (rt *Router) TriggerRect(visible bool) gfx.Rect {
	s := rt.reg.Screen()
	if visible {
		return rt.TaskbarRect()
	}
	return gfx.Rect{X: 0, Y: s.H - HideTriggerH, W: s.W, H: HideTriggerH}
}

// StartRect is the start button inside the taskbar.
func (rt *Router) StartRect() gfx.Rect {
	tb := rt.TaskbarRect()
	return gfx.Rect{X: tb.X + 1, Y: tb.Y + 1, W: StartBtnW, H: tb.H - 2}
}

// HitStart tests the start button; only meaningful while the taskbar shows.
func (rt *Router) HitStart(x, y int, taskbarVisible bool) bool {
	return taskbarVisible && within(rt.StartRect(), x, y, HitTol)
}

// TaskbarButtonRect is the n-th window button on the taskbar.
func (rt *Router) TaskbarButtonRect(n int) gfx.Rect {
	tb := rt.TaskbarRect()
	x := tb.X + StartBtnW + 3 + n*(TaskbarBtnW+2)
	return gfx.Rect{X: x, Y: tb.Y + 1, W: TaskbarBtnW, H: tb.H - 2}
}

// HitTaskbarButton resolves a point to a taskbar button ordinal.
func (rt *Router) HitTaskbarButton(x, y int, taskbarVisible bool) (int, bool) {
	if !taskbarVisible {
		return 0, false
	}
	for n := 0; n < rt.reg.OpenCount(); n++ {
		if within(rt.TaskbarButtonRect(n), x, y, HitTol) {
			return n, true
		}
	}
	return 0, false
}

// MenuRect is the start menu panel, anchored above the taskbar.
func (rt *Router) MenuRect(items int) gfx.Rect {
	tb := rt.TaskbarRect()
	h := items*MenuItemH + 2
	return gfx.Rect{X: tb.X + 1, Y: tb.Y - h, W: MenuW, H: h}
}

// HitStartMenuItem resolves a point to a menu item ordinal.
func (rt *Router) HitStartMenuItem(x, y int, items int) (int, bool) {
	m := rt.MenuRect(items)
	if !within(m, x, y, HitTol) {
		return 0, false
	}
	n := (y - (m.Y + 1)) / MenuItemH
	if n < 0 {
		n = 0
	}
	if n >= items {
		n = items - 1
	}
	return n, true
}
