package shell

import (
	"image/color"

	"tinygo.org/x/tinyfont"

	"wristos/gfx"
	"wristos/hal"
)

// Watch is the minimal home face: time on black, no pointer, no windows.
// Wall-clock time is uptime plus an offset set by the external time-sync
// collaborator; until a sync happens it counts from midnight.
type Watch struct {
	surf *gfx.Surface
	now  func() uint32 // millis

	offsetSecs uint32
}

func NewWatch(surf *gfx.Surface, nowMillis func() uint32) *Watch {
	return &Watch{surf: surf, now: nowMillis}
}

// SetTime installs the synced wall-clock time as seconds since midnight.
func (w *Watch) SetTime(secsSinceMidnight uint32) {
	w.offsetSecs = secsSinceMidnight - w.now()/1000
}

func (w *Watch) clock() (h, m, s int) {
	total := (w.offsetSecs + w.now()/1000) % 86400
	return int(total / 3600), int(total / 60 % 60), int(total % 60)
}

// Compose draws the face and flushes. Falls back to a plain direct clear
// when no buffer exists; the time is simply absent in that degraded state.
func (w *Watch) Compose() error {
	if !w.surf.Ready() {
		return w.surf.DirectFill(w.surf.Bounds(), colWatchBG)
	}

	w.surf.FillScreen(colWatchBG)

	h, m, s := w.clock()
	text := pad2(h) + ":" + pad2(m) + ":" + pad2(s)

	// TomThumb is tiny; scale by drawing each glyph run at 4x via blocks.
	drawBigText(w.surf, text, 36, w.surf.Height()/2-10, 4, colWatchText)

	tinyfont.WriteLine(w.surf.Displayer(), &tinyfont.TomThumb,
		12, int16(w.surf.Height()-14), "hold back+menu for desktop", colWatchText)

	return w.surf.FlushAll()
}

// drawBigText renders the clock digits from 4x6 stamps scaled by an integer
// factor.
func drawBigText(s *gfx.Surface, text string, x, y, scale int, c color.RGBA) {
	col := hal.RGB565(c.R, c.G, c.B)
	for i, ch := range text {
		drawBigGlyph(s, ch, x+i*5*scale, y, scale, col)
	}
}

// 4x6 digit/colon stamps; enough for a clock face.
var bigGlyphs = map[rune][6]uint8{
	'0': {0b0110, 0b1001, 0b1001, 0b1001, 0b1001, 0b0110},
	'1': {0b0010, 0b0110, 0b0010, 0b0010, 0b0010, 0b0111},
	'2': {0b0110, 0b1001, 0b0001, 0b0110, 0b1000, 0b1111},
	'3': {0b0110, 0b1001, 0b0010, 0b0001, 0b1001, 0b0110},
	'4': {0b0010, 0b0110, 0b1010, 0b1111, 0b0010, 0b0010},
	'5': {0b1111, 0b1000, 0b1110, 0b0001, 0b1001, 0b0110},
	'6': {0b0110, 0b1000, 0b1110, 0b1001, 0b1001, 0b0110},
	'7': {0b1111, 0b0001, 0b0010, 0b0010, 0b0100, 0b0100},
	'8': {0b0110, 0b1001, 0b0110, 0b1001, 0b1001, 0b0110},
	'9': {0b0110, 0b1001, 0b1001, 0b0111, 0b0001, 0b0110},
	':': {0b0000, 0b0010, 0b0000, 0b0000, 0b0010, 0b0000},
}

func drawBigGlyph(s *gfx.Surface, ch rune, x, y, scale int, col uint16) {
	rows, ok := bigGlyphs[ch]
	if !ok {
		return
	}
	for row, bits := range rows {
		for colIdx := 0; colIdx < 4; colIdx++ {
			if bits&(0b1000>>uint(colIdx)) == 0 {
				continue
			}
			s.FillRect(gfx.Rect{
				X: x + colIdx*scale,
				Y: y + row*scale,
				W: scale,
				H: scale,
			}, col)
		}
	}
}

func pad2(v int) string {
	return string([]byte{byte('0' + v/10%10), byte('0' + v%10)})
}
