package wm

import (
	"testing"

	"wristos/gfx"
)

func TestMoveSessionFollowsCursor(t *testing.T) {
	r := newTestRegistry()
	id := openAt(t, r, gfx.Rect{X: 40, Y: 40, W: 100, H: 80})

	var d Dragger
	if !d.StartMove(r, id, 50, 45) {
		t.Fatal("StartMove refused a plain window")
	}
	if d.Mode() != DragMove || d.Target() != id {
		t.Fatalf("session = %v target %d", d.Mode(), d.Target())
	}

	d.Track(r, 90, 85)
	got := r.Window(id).Rect
	if got.X != 80 || got.Y != 80 {
		t.Fatalf("rect after move = %+v, want origin (80,80)", got)
	}
	if got.W != 100 || got.H != 80 {
		t.Fatalf("move changed size: %+v", got)
	}

	d.Stop()
	if d.Active() || d.Target() != None {
		t.Fatal("session alive after Stop")
	}
}

func TestMoveClamps(t *testing.T) {
	r := newTestRegistry()
	id := openAt(t, r, gfx.Rect{X: 40, Y: 40, W: 100, H: 80})

	var d Dragger
	d.StartMove(r, id, 40, 40)

	d.Track(r, -500, -500)
	got := r.Window(id).Rect
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("rect = %+v, want clamp at (0,0)", got)
	}

	d.Track(r, 500, 500)
	got = r.Window(id).Rect
	if got.X != 240-100 {
		t.Fatalf("x = %d, want right clamp %d", got.X, 240-100)
	}
	// The title bar must stay reachable; the body may hang off the bottom.
	if got.Y != 240-TitleH {
		t.Fatalf("y = %d, want bottom clamp %d", got.Y, 240-TitleH)
	}
}

func TestResizeClamps(t *testing.T) {
	r := newTestRegistry()
	id := openAt(t, r, gfx.Rect{X: 40, Y: 40, W: 170, H: 160})
	w := r.Window(id)

	var d Dragger
	// Grab exactly the bottom-right corner.
	if !d.StartResize(r, id, 40+170, 40+160) {
		t.Fatal("StartResize refused")
	}

	d.Track(r, 0, 0)
	if w.Rect.W != w.MinW || w.Rect.H != w.MinH {
		t.Fatalf("rect = %+v, want minimum %dx%d", w.Rect, w.MinW, w.MinH)
	}

	d.Track(r, 1000, 1000)
	if w.Rect.W != 240-40 || w.Rect.H != 240-40 {
		t.Fatalf("rect = %+v, want screen clamp", w.Rect)
	}
	if w.Rect.X != 40 || w.Rect.Y != 40 {
		t.Fatalf("resize moved the origin: %+v", w.Rect)
	}
}

func TestSessionsRejectMaximizedAndFullscreen(t *testing.T) {
	r := newTestRegistry()
	id := openAt(t, r, gfx.Rect{X: 40, Y: 40, W: 100, H: 80})

	var d Dragger
	r.SetMaximized(id, true)
	if d.StartMove(r, id, 50, 45) || d.StartResize(r, id, 140, 120) {
		t.Fatal("session started on a maximized window")
	}
	r.SetMaximized(id, false)
	r.SetFullscreen(id, true)
	if d.StartMove(r, id, 50, 45) {
		t.Fatal("session started on a fullscreen window")
	}
}

func TestTrackOnClosedWindowEndsSession(t *testing.T) {
	r := newTestRegistry()
	id := openAt(t, r, gfx.Rect{X: 40, Y: 40, W: 100, H: 80})

	var d Dragger
	d.StartMove(r, id, 50, 45)
	r.Close(id)

	d.Track(r, 90, 85)
	if d.Active() {
		t.Fatal("session survived the window closing")
	}
}
