package shell

import (
	"testing"

	"wristos/apphost"
	"wristos/gfx"
	"wristos/hal"
	"wristos/input"
	"wristos/wm"
)

type testPort struct {
	w, h   int
	claims int
	blits  int
	fills  int
}

func (p *testPort) Width() int                            { return p.w }
func (p *testPort) Height() int                           { return p.h }
func (p *testPort) ClaimBus()                             { p.claims++ }
func (p *testPort) RestoreConfig()                        {}
func (p *testPort) Blit(x, y, w, h int, pix []byte) error { p.blits++; return nil }
func (p *testPort) Fill(x, y, w, h int, c uint16) error   { p.fills++; return nil }
func (p *testPort) Power(on bool) error                   { return nil }

type failPool struct{}

func (failPool) Alloc(n int) []byte { return nil }

func newTestDesktop(t *testing.T) (*Desktop, *testPort) {
	t.Helper()
	port := &testPort{w: 240, h: 240}
	surf := gfx.NewSurface(port)
	if !surf.Allocate() {
		t.Fatal("surface allocation failed")
	}
	reg := wm.NewRegistry(240, 240)
	cursor := input.NewCursor(240, 240)
	return NewDesktop(surf, reg, cursor), port
}

func pressOK() input.Events {
	return input.Events{Pressed: 1 << uint(hal.BtnOK)}
}

func clickAt(d *Desktop, x, y int) {
	d.cursor.X, d.cursor.Y = x, y
	d.HandleEvents(pressOK())
}

func TestStartMenuOpensWindows(t *testing.T) {
	d, _ := newTestDesktop(t)

	start := d.Router().StartRect()
	clickAt(d, start.X+2, start.Y+2)
	if !d.MenuOpen() {
		t.Fatal("start click did not open the menu")
	}

	// First menu item is the calculator.
	m := d.Router().MenuRect(len(startMenuItems))
	clickAt(d, m.X+10, m.Y+1+wm.MenuItemH/2)
	if d.MenuOpen() {
		t.Fatal("menu still open after launching")
	}
	if d.Registry().OpenCount() != 1 {
		t.Fatalf("open count = %d, want 1", d.Registry().OpenCount())
	}
	w := d.Registry().Window(d.Registry().Focus())
	if w == nil || w.Content != apphost.ContentCalculator {
		t.Fatalf("front window = %+v, want calculator", w)
	}
}

func TestClickFocusAndClose(t *testing.T) {
	d, _ := newTestDesktop(t)
	reg := d.Registry()

	calc := reg.Open(apphost.ContentCalculator, "")
	notes := reg.Open(apphost.ContentNotes, "")
	if reg.Focus() != notes {
		t.Fatal("newest window not focused")
	}

	// Click the sliver of the calculator left of the notes window.
	clickAt(d, 21, 100)
	if reg.Focus() != calc {
		t.Fatalf("focus = %d after body click, want %d", reg.Focus(), calc)
	}

	// Close via the chrome button.
	cr := d.Router().CloseRect(calc)
	clickAt(d, cr.X+2, cr.Y+2)
	if reg.Window(calc) != nil {
		t.Fatal("calculator still open after close click")
	}
	if reg.Focus() != notes {
		t.Fatalf("focus = %d after close, want %d", reg.Focus(), notes)
	}
}

func TestMaximizeToggleByClick(t *testing.T) {
	d, _ := newTestDesktop(t)
	reg := d.Registry()
	id := reg.Open(apphost.ContentNotes, "")
	stored := reg.Window(id).Rect

	mr := d.Router().MaximizeRect(id)
	clickAt(d, mr.X+2, mr.Y+2)
	if !reg.Window(id).Maximized {
		t.Fatal("maximize click had no effect")
	}
	if reg.EffectiveRect(id) != reg.Screen() {
		t.Fatal("maximized window not screen sized")
	}

	// The button moved with the effective rect; click it again to restore.
	mr = d.Router().MaximizeRect(id)
	clickAt(d, mr.X+2, mr.Y+2)
	if reg.Window(id).Maximized {
		t.Fatal("restore click had no effect")
	}
	if reg.Window(id).Rect != stored {
		t.Fatal("restore lost the stored rect")
	}
}

func TestDragSessionTogglesOffOnNextClick(t *testing.T) {
	d, _ := newTestDesktop(t)
	reg := d.Registry()
	id := reg.Open(apphost.ContentNotes, "")
	origin := reg.Window(id).Rect

	// Click the title bar: session starts.
	tr := d.Router().TitleRect(id)
	clickAt(d, tr.X+8, tr.Y+6)
	if !d.Dragging() {
		t.Fatal("title click did not start a move session")
	}

	// Movement tracks the window.
	d.HandleEvents(input.Events{Pressed: 1 << uint(hal.BtnRight)})
	moved := reg.Window(id).Rect
	if moved.X <= origin.X {
		t.Fatalf("window did not follow: %+v from %+v", moved, origin)
	}

	// The next click only ends the session, even over the close button.
	cr := d.Router().CloseRect(id)
	clickAt(d, cr.X+2, cr.Y+2)
	if d.Dragging() {
		t.Fatal("session survived the end click")
	}
	if reg.Window(id) == nil {
		t.Fatal("end click leaked through to the close button")
	}

	// A further click acts normally again.
	cr = d.Router().CloseRect(id)
	clickAt(d, cr.X+2, cr.Y+2)
	if reg.Window(id) != nil {
		t.Fatal("close click after session end had no effect")
	}
}

func TestResizeSessionFromGrip(t *testing.T) {
	d, _ := newTestDesktop(t)
	reg := d.Registry()
	id := reg.Open(apphost.ContentNotes, "")

	g := d.Router().GripRect(id)
	clickAt(d, g.X+g.W-2, g.Y+g.H-2)
	if !d.Dragging() {
		t.Fatal("grip click did not start a resize session")
	}

	w0 := reg.Window(id).Rect.W
	d.HandleEvents(input.Events{Pressed: 1 << uint(hal.BtnRight)})
	if reg.Window(id).Rect.W <= w0 {
		t.Fatal("resize session did not grow the window")
	}

	clickAt(d, 200, 200)
	if d.Dragging() {
		t.Fatal("resize session survived the end click")
	}
}

func TestModalConsumesOneClick(t *testing.T) {
	d, _ := newTestDesktop(t)
	reg := d.Registry()
	id := reg.Open(apphost.ContentNotes, "")

	d.ShowNotice("media removed")
	if !d.ModalActive() {
		t.Fatal("notice not active")
	}

	// The dismissing click must not leak through to the chrome below.
	cr := d.Router().CloseRect(id)
	clickAt(d, cr.X+2, cr.Y+2)
	if d.ModalActive() {
		t.Fatal("modal survived its click")
	}
	if reg.Window(id) == nil {
		t.Fatal("modal click leaked to the window below")
	}
}

func TestMenuButtonTogglesStartMenu(t *testing.T) {
	d, _ := newTestDesktop(t)

	ev := input.Events{Pressed: 1 << uint(hal.BtnMenu)}
	d.HandleEvents(ev)
	if !d.MenuOpen() {
		t.Fatal("menu button did not open the menu")
	}
	d.HandleEvents(ev)
	if d.MenuOpen() {
		t.Fatal("menu button did not close the menu")
	}
}

func TestBackButtonClosesFocusedWindow(t *testing.T) {
	d, _ := newTestDesktop(t)
	reg := d.Registry()
	reg.Open(apphost.ContentCalculator, "")
	notes := reg.Open(apphost.ContentNotes, "")

	d.HandleEvents(input.Events{Pressed: 1 << uint(hal.BtnBack)})
	if reg.Window(notes) != nil {
		t.Fatal("back did not close the focused window")
	}
	if reg.OpenCount() != 1 {
		t.Fatalf("open count = %d, want 1", reg.OpenCount())
	}
}

func TestTaskbarAutoHide(t *testing.T) {
	d, _ := newTestDesktop(t)
	reg := d.Registry()

	if !d.TaskbarVisible() {
		t.Fatal("taskbar hidden on an empty desktop")
	}

	id := reg.Open(apphost.ContentNotes, "")
	reg.SetMaximized(id, true)
	d.cursor.X, d.cursor.Y = 120, 120
	if d.TaskbarVisible() {
		t.Fatal("taskbar visible under a maximized window")
	}

	// Cursor in the bottom trigger strip reveals it.
	d.cursor.Y = 239
	if !d.TaskbarVisible() {
		t.Fatal("trigger strip did not reveal the taskbar")
	}

	// An open start menu pins it regardless of cursor.
	d.cursor.Y = 120
	d.menuOpen = true
	if !d.TaskbarVisible() {
		t.Fatal("open menu did not pin the taskbar")
	}
}

func TestTaskbarStaysUpInsideShownBand(t *testing.T) {
	// Once the strip reveals the taskbar, the whole band keeps it up; it
	// hides again only when the cursor leaves the band.
	d, _ := newTestDesktop(t)
	reg := d.Registry()

	id := reg.Open(apphost.ContentNotes, "")
	reg.SetMaximized(id, true)

	d.cursor.X, d.cursor.Y = 120, 239
	if !d.TaskbarVisible() {
		t.Fatal("trigger strip did not reveal the taskbar")
	}

	// Inside the band but above the strip: must stay up.
	d.cursor.Y = 240 - wm.TaskbarH + 1
	if !d.TaskbarVisible() {
		t.Fatal("taskbar hid while the cursor was inside the shown band")
	}

	// Above the band: hides.
	d.cursor.Y = 240 - wm.TaskbarH - 1
	if d.TaskbarVisible() {
		t.Fatal("taskbar still up with the cursor above the band")
	}

	// Back inside the band while hidden: the strip is the only trigger.
	d.cursor.Y = 240 - wm.TaskbarH + 1
	if d.TaskbarVisible() {
		t.Fatal("hidden taskbar revealed outside the trigger strip")
	}
}

type fullscreenApp struct{ fs bool }

func (a *fullscreenApp) Render(s *gfx.Surface, content gfx.Rect) {}
func (a *fullscreenApp) HandleClick(x, y int)                    { a.fs = !a.fs }
func (a *fullscreenApp) Fullscreen() bool                        { return a.fs }

func TestAppInitiatedFullscreen(t *testing.T) {
	d, _ := newTestDesktop(t)
	reg := d.Registry()
	id := reg.Open(apphost.ContentPaint, "")
	reg.Window(id).App = &fullscreenApp{}

	// A content click flips the app's desire; the shell applies it.
	clickAt(d, 120, 120)
	if !reg.Window(id).Fullscreen {
		t.Fatal("fullscreen request not applied after click")
	}
	if reg.EffectiveRect(id) != reg.Screen() {
		t.Fatal("fullscreen window not panel sized")
	}

	// The next content click releases it.
	clickAt(d, 120, 120)
	if reg.Window(id).Fullscreen {
		t.Fatal("fullscreen release not applied after click")
	}
}

func TestTaskbarButtonRaisesWindow(t *testing.T) {
	d, _ := newTestDesktop(t)
	reg := d.Registry()
	calc := reg.Open(apphost.ContentCalculator, "")
	notes := reg.Open(apphost.ContentNotes, "")

	// Button 1 is the second z-order entry, the calculator.
	btn := d.Router().TaskbarButtonRect(1)
	clickAt(d, btn.X+2, btn.Y+2)
	if reg.Focus() != calc {
		t.Fatalf("focus = %d after taskbar click, want %d", reg.Focus(), calc)
	}
	z := reg.ZOrder(nil)
	if z[0] != calc || z[1] != notes {
		t.Fatalf("z-order = %v after taskbar raise", z)
	}
}

func TestComposeFlushesOnce(t *testing.T) {
	d, port := newTestDesktop(t)
	d.Registry().Open(apphost.ContentNotes, "")

	if err := d.Compose(); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if port.blits != 1 {
		t.Fatalf("blits = %d, want one full-frame flush", port.blits)
	}
	if port.claims != 1 {
		t.Fatalf("claims = %d, want 1", port.claims)
	}
}

func TestWallpaperCoversDesktop(t *testing.T) {
	d, _ := newTestDesktop(t)

	pix := make([]byte, 240*240*2)
	for i := 0; i < len(pix); i += 2 {
		pix[i] = 0x34
		pix[i+1] = 0x12
	}
	d.SetWallpaper(pix, 240, 240)

	if err := d.Compose(); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := d.surf.Pixel(5, 5); got != 0x1234 {
		t.Fatalf("desktop pixel = %#04x, want wallpaper", got)
	}

	// A short slice reverts to the flat fill.
	d.SetWallpaper(pix[:10], 240, 240)
	if err := d.Compose(); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := d.surf.Pixel(5, 5); got != colDesktop {
		t.Fatalf("desktop pixel = %#04x, want flat fill", got)
	}
}

func TestComposeDegradedPathUsesDirectFills(t *testing.T) {
	port := &testPort{w: 240, h: 240}
	surf := gfx.NewSurface(port, failPool{})
	if surf.Allocate() {
		t.Fatal("allocation unexpectedly succeeded")
	}
	reg := wm.NewRegistry(240, 240)
	d := NewDesktop(surf, reg, input.NewCursor(240, 240))
	reg.Open(apphost.ContentNotes, "")

	if err := d.Compose(); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if port.blits != 0 {
		t.Fatalf("degraded path blitted %d times", port.blits)
	}
	if port.fills == 0 {
		t.Fatal("degraded path drew nothing")
	}
}
