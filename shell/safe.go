package shell

import (
	"tinygo.org/x/tinyfont"

	"wristos/gfx"
	"wristos/hal"
)

// DrawSafeScreen renders the restricted safe-mode message. It works in both
// the buffered and the degraded path, since safe mode may well coincide with
// a failed buffer.
func DrawSafeScreen(s *gfx.Surface, line1, line2 string) {
	bg := hal.RGB565(128, 0, 0)

	if !s.Ready() {
		_ = s.DirectFill(s.Bounds(), bg)
		return
	}

	s.FillScreen(bg)

	w := 180
	h := 50
	box := gfx.Rect{X: (s.Width() - w) / 2, Y: (s.Height() - h) / 2, W: w, H: h}
	s.FillRect(box, colModalFace)
	s.StrokeRect(box, colWindowEdge)

	tinyfont.WriteLine(s.Displayer(), &tinyfont.TomThumb,
		int16(box.X+8), int16(box.Y+18), line1, colBodyText)
	tinyfont.WriteLine(s.Displayer(), &tinyfont.TomThumb,
		int16(box.X+8), int16(box.Y+34), line2, colBodyText)

	_ = s.FlushAll()
}
