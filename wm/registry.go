package wm

import (
	"wristos/apphost"
	"wristos/gfx"
)

// MaxWindows bounds the window pool. Slots are fixed; ids are stable slot
// handles and never shift on close.
const MaxWindows = 8

// ID is a stable window handle.
type ID uint8

// None is the absent-window sentinel.
const None ID = 0xFF

// Window is one pool slot. Owned exclusively by the Registry; other
// components read it through Registry accessors.
type Window struct {
	Rect       gfx.Rect
	MinW, MinH int
	Content    apphost.ContentType
	Title      string
	Open       bool
	Maximized  bool
	Fullscreen bool
	App        apphost.App
}

// Registry owns the window pool, the z-order and focus.
type Registry struct {
	screen gfx.Rect

	slots [MaxWindows]Window

	// zbuf front-to-back; always exactly the set of open ids.
	zbuf  [MaxWindows]ID
	zlen  int
	focus ID

	// OnClose runs once per window teardown, after the app's close hook so
	// state the app commits while closing is visible to it. The assembly
	// points it at the deferred-save path.
	OnClose func(ID)
}

func NewRegistry(screenW, screenH int) *Registry {
	return &Registry{
		screen: gfx.Rect{W: screenW, H: screenH},
		focus:  None,
	}
}

// Open claims the first free slot for the content type, placing the new
// window at the front of the z-order with focus. Returns None when the pool
// is exhausted; by design that is silent, not an error.
func (r *Registry) Open(t apphost.ContentType, title string) ID {
	slot := ID(None)
	for i := range r.slots {
		if !r.slots[i].Open {
			slot = ID(i)
			break
		}
	}
	if slot == None {
		return None
	}

	spec := apphost.SpecFor(t)
	if title == "" {
		title = spec.Title
	}

	r.slots[slot] = Window{
		Rect:    spec.Default,
		MinW:    spec.MinW,
		MinH:    spec.MinH,
		Content: t,
		Title:   title,
		Open:    true,
		App:     apphost.NewApp(t),
	}

	// Insert at the front.
	copy(r.zbuf[1:r.zlen+1], r.zbuf[:r.zlen])
	r.zbuf[0] = slot
	r.zlen++
	r.focus = slot
	return slot
}

// Close tears the window down: app hook first, then slot and z-order. Focus
// moves to the new front, or clears when nothing remains.
func (r *Registry) Close(id ID) {
	w := r.window(id)
	if w == nil || !w.Open {
		return
	}

	if c, ok := w.App.(apphost.Closer); ok {
		c.OnClose()
	}
	if r.OnClose != nil {
		r.OnClose(id)
	}

	w.Open = false
	w.App = nil

	for i := 0; i < r.zlen; i++ {
		if r.zbuf[i] == id {
			copy(r.zbuf[i:], r.zbuf[i+1:r.zlen])
			r.zlen--
			break
		}
	}

	if r.zlen > 0 {
		r.focus = r.zbuf[0]
	} else {
		r.focus = None
	}
}

// CloseAll force-closes every open window, front to back.
func (r *Registry) CloseAll() {
	for r.zlen > 0 {
		r.Close(r.zbuf[0])
	}
}

// BringToFront rotates id to the front of the z-order and focuses it.
// Idempotent when already front.
func (r *Registry) BringToFront(id ID) {
	w := r.window(id)
	if w == nil || !w.Open {
		return
	}
	r.focus = id
	if r.zlen > 0 && r.zbuf[0] == id {
		return
	}
	for i := 0; i < r.zlen; i++ {
		if r.zbuf[i] == id {
			copy(r.zbuf[1:i+1], r.zbuf[:i])
			r.zbuf[0] = id
			return
		}
	}
}

// Focus returns the focused window id, or None.
func (r *Registry) Focus() ID { return r.focus }

// ZOrder appends the open ids front-to-back to dst.
func (r *Registry) ZOrder(dst []ID) []ID {
	return append(dst, r.zbuf[:r.zlen]...)
}

// OpenCount reports how many windows are open.
func (r *Registry) OpenCount() int { return r.zlen }

// Window returns the record for an open id, nil otherwise.
func (r *Registry) Window(id ID) *Window {
	w := r.window(id)
	if w == nil || !w.Open {
		return nil
	}
	return w
}

func (r *Registry) window(id ID) *Window {
	if id >= MaxWindows {
		return nil
	}
	return &r.slots[id]
}

// EffectiveRect is the window's actual on-screen rectangle: the stored rect,
// overridden by full-screen bounds when maximized or fullscreen.
func (r *Registry) EffectiveRect(id ID) gfx.Rect {
	w := r.Window(id)
	if w == nil {
		return gfx.Rect{}
	}
	if w.Maximized || w.Fullscreen {
		return r.screen
	}
	return w.Rect
}

// SetMaximized toggles the maximize override; the stored rect is untouched so
// restore returns to it.
func (r *Registry) SetMaximized(id ID, on bool) {
	if w := r.Window(id); w != nil {
		w.Maximized = on
	}
}

func (r *Registry) SetFullscreen(id ID, on bool) {
	if w := r.Window(id); w != nil {
		w.Fullscreen = on
	}
}

// AnyFullBleed reports whether an open window is maximized, fullscreen, or
// extends into the given screen band. The taskbar auto-hide rule keys off it.
func (r *Registry) AnyFullBleed(band gfx.Rect) bool {
	for i := 0; i < r.zlen; i++ {
		id := r.zbuf[i]
		w := r.Window(id)
		if w == nil {
			continue
		}
		if w.Maximized || w.Fullscreen {
			return true
		}
		if r.EffectiveRect(id).Intersects(band) {
			return true
		}
	}
	return false
}

// Screen returns the screen bounds the registry was built with.
func (r *Registry) Screen() gfx.Rect { return r.screen }
