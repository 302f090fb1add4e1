package shell

import (
	"tinygo.org/x/tinyfont"

	"wristos/apphost"
	"wristos/gfx"
	"wristos/wm"
)

// Compose redraws the full scene and flushes it in one bulk transfer.
// Movement-only frames take this same path: one flicker-free flush is
// cheaper than partial-update bookkeeping next to the bus transfer cost.
func (d *Desktop) Compose() error {
	if !d.surf.Ready() {
		return d.composeDirect()
	}

	d.RedrawAll = false
	visible := d.TaskbarVisible()

	// Background. Covers the taskbar band too when the bar is hidden.
	d.surf.FillScreen(colDesktop)
	if d.wallPix != nil {
		d.surf.DrawRGB565(0, 0, d.wallW, d.wallH, d.wallPix)
	}

	// Windows, back to front, so the focused window lands on top undamaged.
	var z [wm.MaxWindows]wm.ID
	order := d.reg.ZOrder(z[:0])
	for i := len(order) - 1; i >= 0; i-- {
		d.drawWindow(order[i])
	}

	if visible {
		d.drawTaskbar()
		if d.menuOpen {
			d.drawMenu()
		}
	}

	if d.modalActive {
		d.drawModal()
	}

	if d.cursor.Visible {
		d.drawCursor()
	}

	return d.surf.FlushAll()
}

// composeDirect is the degraded unbuffered path: flat fills straight to the
// panel, no text, no cursor glyph detail. Never an error the caller must
// handle; the panel stays legible enough to recover.
func (d *Desktop) composeDirect() error {
	screen := gfx.Rect{W: d.surf.Width(), H: d.surf.Height()}
	if err := d.surf.DirectFill(screen, colDesktop); err != nil {
		return nil
	}

	var z [wm.MaxWindows]wm.ID
	order := d.reg.ZOrder(z[:0])
	for i := len(order) - 1; i >= 0; i-- {
		r := d.reg.EffectiveRect(order[i])
		_ = d.surf.DirectFill(r, colWindowFace)
		_ = d.surf.DirectFill(gfx.Rect{X: r.X, Y: r.Y, W: r.W, H: wm.TitleH}, colTitleIdle)
	}

	if d.TaskbarVisible() {
		_ = d.surf.DirectFill(d.router.TaskbarRect(), colTaskbar)
	}

	c := gfx.Rect{X: d.cursor.X, Y: d.cursor.Y, W: 3, H: 3}
	_ = d.surf.DirectFill(c, colCursorFill)
	return nil
}

func (d *Desktop) drawWindow(id wm.ID) {
	w := d.reg.Window(id)
	if w == nil {
		return
	}
	r := d.reg.EffectiveRect(id)

	d.surf.FillRect(r, colWindowFace)
	d.surf.StrokeRect(r, colWindowEdge)

	if !w.Fullscreen {
		title := colTitleIdle
		if id == d.reg.Focus() {
			title = colTitleActive
		}
		bar := gfx.Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: wm.TitleH - 1}
		d.surf.FillRect(bar, title)
		tinyfont.WriteLine(d.surf.Displayer(), &tinyfont.TomThumb,
			int16(r.X+4), int16(r.Y+wm.TitleH-4), w.Title, colTitleText)

		d.drawChromeButton(d.router.CloseRect(id), 'x')
		d.drawChromeButton(d.router.MaximizeRect(id), '^')

		if !w.Maximized {
			d.drawGrip(id)
		}
	}

	if w.App != nil {
		content := d.contentRect(id)
		if !content.Empty() {
			w.App.Render(d.surf, content)
		}
	}
}

func (d *Desktop) drawChromeButton(r gfx.Rect, glyph rune) {
	d.surf.FillRect(r, colWindowFace)
	d.surf.StrokeRect(r, colWindowEdge)
	tinyfont.WriteLine(d.surf.Displayer(), &tinyfont.TomThumb,
		int16(r.X+3), int16(r.Y+r.H-3), string(glyph), colBodyText)
}

func (d *Desktop) drawGrip(id wm.ID) {
	g := d.router.GripRect(id)
	// Three diagonal ticks.
	for i := 0; i < 3; i++ {
		x := g.X + g.W - 2 - i*2
		d.surf.VLine(x, g.Y+g.H-3, 2, colGrip)
	}
}

func (d *Desktop) drawTaskbar() {
	tb := d.router.TaskbarRect()
	d.surf.FillRect(tb, colTaskbar)
	d.surf.HLine(tb.X, tb.Y, tb.W, colTaskbarEdge)

	start := d.router.StartRect()
	d.surf.StrokeRect(start, colWindowEdge)
	tinyfont.WriteLine(d.surf.Displayer(), &tinyfont.TomThumb,
		int16(start.X+3), int16(start.Y+start.H-3), "Go", colBodyText)

	var z [wm.MaxWindows]wm.ID
	order := d.reg.ZOrder(z[:0])
	for n, id := range order {
		w := d.reg.Window(id)
		if w == nil {
			continue
		}
		btn := d.router.TaskbarButtonRect(n)
		d.surf.StrokeRect(btn, colWindowEdge)
		if id == d.reg.Focus() {
			d.surf.FillRect(gfx.Rect{X: btn.X + 1, Y: btn.Y + 1, W: btn.W - 2, H: btn.H - 2}, colTaskbarEdge)
		}
		tinyfont.WriteLine(d.surf.Displayer(), &tinyfont.TomThumb,
			int16(btn.X+2), int16(btn.Y+btn.H-3), clipTitle(w.Title, 7), colBodyText)
	}
}

func (d *Desktop) drawMenu() {
	m := d.router.MenuRect(len(startMenuItems))
	d.surf.FillRect(m, colMenuFace)
	d.surf.StrokeRect(m, colWindowEdge)

	for n, t := range startMenuItems {
		y := m.Y + 1 + n*wm.MenuItemH
		item := gfx.Rect{X: m.X + 1, Y: y, W: m.W - 2, H: wm.MenuItemH}
		if item.Contains(d.cursor.X, d.cursor.Y) {
			d.surf.FillRect(item, colMenuHot)
			tinyfont.WriteLine(d.surf.Displayer(), &tinyfont.TomThumb,
				int16(item.X+3), int16(y+wm.MenuItemH-5), apphost.SpecFor(t).Title, colTitleText)
			continue
		}
		tinyfont.WriteLine(d.surf.Displayer(), &tinyfont.TomThumb,
			int16(item.X+3), int16(y+wm.MenuItemH-5), apphost.SpecFor(t).Title, colBodyText)
	}
}

func (d *Desktop) drawModal() {
	screen := d.surf.Bounds()
	w := 160
	h := 56
	box := gfx.Rect{X: (screen.W - w) / 2, Y: (screen.H - h) / 2, W: w, H: h}
	d.surf.FillRect(box, colModalFace)
	d.surf.StrokeRect(box, colWindowEdge)
	d.surf.FillRect(gfx.Rect{X: box.X + 1, Y: box.Y + 1, W: box.W - 2, H: wm.TitleH - 1}, colTitleActive)
	tinyfont.WriteLine(d.surf.Displayer(), &tinyfont.TomThumb,
		int16(box.X+4), int16(box.Y+wm.TitleH-4), "Notice", colTitleText)
	tinyfont.WriteLine(d.surf.Displayer(), &tinyfont.TomThumb,
		int16(box.X+6), int16(box.Y+wm.TitleH+14), d.modalText, colBodyText)

	ok := gfx.Rect{X: box.X + box.W/2 - 14, Y: box.Y + box.H - 16, W: 28, H: 12}
	d.surf.StrokeRect(ok, colWindowEdge)
	tinyfont.WriteLine(d.surf.Displayer(), &tinyfont.TomThumb,
		int16(ok.X+10), int16(ok.Y+9), "OK", colBodyText)
}

// drawCursor draws the arrow glyph, or the grab form during drag/resize.
func (d *Desktop) drawCursor() {
	x, y := d.cursor.X, d.cursor.Y

	if d.drag.Active() {
		// Grab form: small open square.
		d.surf.StrokeRect(gfx.Rect{X: x - 3, Y: y - 3, W: 7, H: 7}, colCursor)
		d.surf.FillRect(gfx.Rect{X: x - 1, Y: y - 1, W: 3, H: 3}, colCursorFill)
		return
	}

	// Arrow form: filled wedge with outline.
	for row := 0; row < 8; row++ {
		w := row + 1
		if w > 5 {
			w = 5
		}
		d.surf.HLine(x, y+row, w, colCursorFill)
		d.surf.SetPixel(x, y+row, colCursor)
	}
	d.surf.HLine(x, y+8, 3, colCursor)
}

func clipTitle(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
