//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type hostHAL struct {
	logger  *hostLogger
	clock   *hostClock
	buttons *hostButtons
	panel   *hostPanel
	storage *hostStorage
	tone    Tone
	wdt     *hostWatchdog
}

// New returns a host HAL implementation backed by an in-memory panel and
// virtual peripherals. The ebiten window runner and the headless runner both
// drive it.
func New() HAL {
	logger := &hostLogger{w: os.Stdout}
	return &hostHAL{
		logger:  logger,
		clock:   newHostClock(),
		buttons: &hostButtons{},
		panel:   newHostPanel(240, 240),
		storage: newHostStorage(),
		tone:    newHostTone(),
		wdt:     &hostWatchdog{},
	}
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) Clock() Clock         { return h.clock }
func (h *hostHAL) Buttons() Buttons     { return h.buttons }
func (h *hostHAL) Display() DisplayPort { return h.panel }
func (h *hostHAL) Storage() Storage     { return h.storage }
func (h *hostHAL) Tone() Tone           { return h.tone }
func (h *hostHAL) Watchdog() Watchdog   { return h.wdt }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostClock struct {
	start time.Time
}

func newHostClock() *hostClock {
	return &hostClock{start: time.Now()}
}

func (c *hostClock) Millis() uint32 {
	return uint32(time.Since(c.start) / time.Millisecond)
}

type hostButtons struct {
	mask uint32
}

func (b *hostButtons) Read() uint8 { return uint8(atomic.LoadUint32(&b.mask)) }

// SetMask replaces the raw line state. Used by the window runner each frame.
func (b *hostButtons) SetMask(mask uint8) { atomic.StoreUint32(&b.mask, uint32(mask)) }

// hostPanel emulates the SPI panel plus the shared-bus discipline: a blit or
// fill without bus ownership scrambles state the way the real panel would.
type hostPanel struct {
	mu     sync.Mutex
	w, h   int
	pix    []byte // RGB565 little-endian
	owned  bool   // panel currently owns the bus
	on     bool
	claims int
}

func newHostPanel(w, h int) *hostPanel {
	return &hostPanel{
		w:   w,
		h:   h,
		pix: make([]byte, w*h*2),
		on:  true,
	}
}

func (p *hostPanel) Width() int  { return p.w }
func (p *hostPanel) Height() int { return p.h }

func (p *hostPanel) ClaimBus() {
	p.mu.Lock()
	p.owned = true
	p.claims++
	p.mu.Unlock()
}

// ReleaseBus simulates the storage peripheral taking over the bus.
func (p *hostPanel) ReleaseBus() {
	p.mu.Lock()
	p.owned = false
	p.mu.Unlock()
}

func (p *hostPanel) RestoreConfig() {
	p.mu.Lock()
	p.owned = true
	p.mu.Unlock()
}

func (p *hostPanel) Blit(x, y, w, h int, pix []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.owned {
		return fmt.Errorf("panel: blit without bus ownership")
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > p.w || y+h > p.h {
		return fmt.Errorf("panel: blit region %d,%d %dx%d out of bounds", x, y, w, h)
	}
	if len(pix) < w*h*2 {
		return fmt.Errorf("panel: blit short pixel run: %d < %d", len(pix), w*h*2)
	}
	for row := 0; row < h; row++ {
		dst := ((y+row)*p.w + x) * 2
		src := row * w * 2
		copy(p.pix[dst:dst+w*2], pix[src:src+w*2])
	}
	return nil
}

func (p *hostPanel) Fill(x, y, w, h int, rgb565 uint16) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.owned {
		return fmt.Errorf("panel: fill without bus ownership")
	}
	lo := byte(rgb565)
	hi := byte(rgb565 >> 8)
	for row := y; row < y+h; row++ {
		if row < 0 || row >= p.h {
			continue
		}
		for col := x; col < x+w; col++ {
			if col < 0 || col >= p.w {
				continue
			}
			off := (row*p.w + col) * 2
			p.pix[off] = lo
			p.pix[off+1] = hi
		}
	}
	return nil
}

func (p *hostPanel) Power(on bool) error {
	p.mu.Lock()
	p.on = on
	p.mu.Unlock()
	return nil
}

func (p *hostPanel) snapshotRGB565(dst []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	copy(dst, p.pix)
}

type hostStorage struct {
	mu      sync.Mutex
	present bool
	files   map[string][]byte
}

func newHostStorage() *hostStorage {
	return &hostStorage{
		present: true,
		files:   map[string][]byte{},
	}
}

func (s *hostStorage) Probe() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.present
}

// SetPresent simulates removal and reinsertion of the media.
func (s *hostStorage) SetPresent(present bool) {
	s.mu.Lock()
	s.present = present
	s.mu.Unlock()
}

func (s *hostStorage) ReadFile(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return nil, ErrNoMedia
	}
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("storage read %q: %w", name, os.ErrNotExist)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *hostStorage) WriteFile(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return ErrNoMedia
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.files[name] = cp
	return nil
}

type hostWatchdog struct {
	feeds uint64
}

func (w *hostWatchdog) Feed() { atomic.AddUint64(&w.feeds, 1) }
