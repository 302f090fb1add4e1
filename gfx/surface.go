package gfx

import (
	"errors"
	"image/color"

	"tinygo.org/x/drivers"

	"wristos/hal"
)

var ErrNoBuffer = errors.New("gfx: no frame buffer")

// Pool allocates pixel memory. Alloc returns nil on failure instead of an
// error; allocation failure is an expected condition, not an exception.
type Pool interface {
	Alloc(n int) []byte
}

// HeapPool allocates from the default heap. A recover guard turns an
// out-of-memory panic into a nil return, which callers treat as "try the
// next pool".
type HeapPool struct{}

func (HeapPool) Alloc(n int) (buf []byte) {
	defer func() {
		if recover() != nil {
			buf = nil
		}
	}()
	return make([]byte, n)
}

// Surface owns the single full-screen pixel buffer and all access to it.
// Pixels are RGB565 little-endian.
type Surface struct {
	port  hal.DisplayPort
	w, h  int
	buf   []byte
	ready bool
	pools []Pool

	scratch []byte // row staging for partial flushes
}

// NewSurface creates an unallocated surface. pools are tried in order on
// Allocate; when none is given the default heap is used.
func NewSurface(port hal.DisplayPort, pools ...Pool) *Surface {
	if len(pools) == 0 {
		pools = []Pool{HeapPool{}}
	}
	return &Surface{
		port:  port,
		w:     port.Width(),
		h:     port.Height(),
		pools: pools,
	}
}

// Allocate claims the pixel buffer. Idempotent: once a buffer exists the call
// is a no-op reporting success. On failure the surface stays unready and the
// caller must draw through the direct path instead.
func (s *Surface) Allocate() bool {
	if s.ready {
		return true
	}
	n := s.w * s.h * 2
	for _, p := range s.pools {
		if buf := p.Alloc(n); len(buf) >= n {
			for i := range buf {
				buf[i] = 0
			}
			s.buf = buf[:n]
			s.ready = true
			return true
		}
	}
	return false
}

// Release drops the buffer. Only the explicit failure-recovery path calls
// this; normal operation keeps the buffer for the whole session.
func (s *Surface) Release() {
	s.buf = nil
	s.ready = false
}

func (s *Surface) Ready() bool  { return s.ready }
func (s *Surface) Width() int   { return s.w }
func (s *Surface) Height() int  { return s.h }
func (s *Surface) Bounds() Rect { return Rect{W: s.w, H: s.h} }

func (s *Surface) SetPixel(x, y int, c uint16) {
	if !s.ready || x < 0 || x >= s.w || y < 0 || y >= s.h {
		return
	}
	off := (y*s.w + x) * 2
	s.buf[off] = byte(c)
	s.buf[off+1] = byte(c >> 8)
}

// Pixel reads a pixel back; zero when unready or out of bounds.
func (s *Surface) Pixel(x, y int) uint16 {
	if !s.ready || x < 0 || x >= s.w || y < 0 || y >= s.h {
		return 0
	}
	off := (y*s.w + x) * 2
	return uint16(s.buf[off]) | uint16(s.buf[off+1])<<8
}

func (s *Surface) FillRect(r Rect, c uint16) {
	if !s.ready {
		return
	}
	r = r.Clip(s.Bounds())
	if r.Empty() {
		return
	}
	lo := byte(c)
	hi := byte(c >> 8)
	for y := r.Y; y < r.Y+r.H; y++ {
		off := (y*s.w + r.X) * 2
		for x := 0; x < r.W; x++ {
			s.buf[off] = lo
			s.buf[off+1] = hi
			off += 2
		}
	}
}

func (s *Surface) FillScreen(c uint16) {
	s.FillRect(s.Bounds(), c)
}

// DrawRGB565 copies a pre-rendered RGB565 little-endian pixel block (wallpaper,
// embedded assets) into the buffer, clipped to the screen.
func (s *Surface) DrawRGB565(x, y, w, h int, pix []byte) {
	if !s.ready || len(pix) < w*h*2 {
		return
	}
	r := Rect{X: x, Y: y, W: w, H: h}.Clip(s.Bounds())
	if r.Empty() {
		return
	}
	for row := 0; row < r.H; row++ {
		src := ((r.Y-y+row)*w + (r.X - x)) * 2
		dst := ((r.Y+row)*s.w + r.X) * 2
		copy(s.buf[dst:dst+r.W*2], pix[src:src+r.W*2])
	}
}

func (s *Surface) HLine(x, y, w int, c uint16) {
	s.FillRect(Rect{X: x, Y: y, W: w, H: 1}, c)
}

func (s *Surface) VLine(x, y, h int, c uint16) {
	s.FillRect(Rect{X: x, Y: y, W: 1, H: h}, c)
}

// StrokeRect draws a one-pixel outline.
func (s *Surface) StrokeRect(r Rect, c uint16) {
	s.HLine(r.X, r.Y, r.W, c)
	s.HLine(r.X, r.Y+r.H-1, r.W, c)
	s.VLine(r.X, r.Y, r.H, c)
	s.VLine(r.X+r.W-1, r.Y, r.H, c)
}

// Flush transfers the region to the panel in one bulk blit. The bus is
// re-claimed first: the storage peripheral may have been the last user and
// blitting without the handover corrupts the panel. No-op without a buffer.
func (s *Surface) Flush(r Rect) error {
	if !s.ready {
		return nil
	}
	r = r.Clip(s.Bounds())
	if r.Empty() {
		return nil
	}

	s.port.ClaimBus()

	if r.X == 0 && r.W == s.w {
		// Full-width band: rows are already contiguous.
		off := r.Y * s.w * 2
		return s.port.Blit(r.X, r.Y, r.W, r.H, s.buf[off:off+r.W*r.H*2])
	}

	n := r.W * r.H * 2
	if cap(s.scratch) < n {
		s.scratch = make([]byte, n)
	}
	dst := s.scratch[:n]
	for row := 0; row < r.H; row++ {
		src := ((r.Y+row)*s.w + r.X) * 2
		copy(dst[row*r.W*2:(row+1)*r.W*2], s.buf[src:src+r.W*2])
	}
	return s.port.Blit(r.X, r.Y, r.W, r.H, dst)
}

// FlushAll transfers the whole screen.
func (s *Surface) FlushAll() error {
	return s.Flush(s.Bounds())
}

// DirectFill draws straight to the panel, for the degraded unbuffered path.
func (s *Surface) DirectFill(r Rect, c uint16) error {
	r = r.Clip(s.Bounds())
	if r.Empty() {
		return nil
	}
	s.port.ClaimBus()
	return s.port.Fill(r.X, r.Y, r.W, r.H, c)
}

// Displayer adapts the surface to the tinyfont/drivers text target.
func (s *Surface) Displayer() drivers.Displayer {
	return displayerAdapter{s: s}
}

type displayerAdapter struct {
	s *Surface
}

func (d displayerAdapter) Size() (int16, int16) {
	return int16(d.s.w), int16(d.s.h)
}

func (d displayerAdapter) SetPixel(x, y int16, c color.RGBA) {
	d.s.SetPixel(int(x), int(y), hal.RGB565(c.R, c.G, c.B))
}

func (d displayerAdapter) Display() error { return nil }
