//go:build !tinygo && cgo

package hal

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const hostToneSampleRate = 44100

// hostTone plays a square wave through Ebiten's audio package and emulates
// the hardware cutoff timer with time.AfterFunc. The cutoff path touches only
// the player and the done flag, mirroring the register-plus-flag restriction
// on the device.
type hostTone struct {
	mu     sync.Mutex
	ctx    *audio.Context
	player *audio.Player
	cutoff *time.Timer
	done   uint32
}

func newHostTone() Tone {
	return &hostTone{}
}

func (t *hostTone) Start(freqHz uint32, limitMillis uint32) error {
	if freqHz == 0 {
		return errors.New("host tone: zero frequency")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctx == nil {
		t.ctx = audio.NewContext(hostToneSampleRate)
	}
	t.stopLocked()

	p, err := t.ctx.NewPlayer(&squareWave{period: hostToneSampleRate / int(freqHz)})
	if err != nil {
		return err
	}
	p.SetBufferSize(50 * time.Millisecond)
	p.Play()
	t.player = p
	atomic.StoreUint32(&t.done, 0)

	if limitMillis > 0 {
		t.cutoff = time.AfterFunc(time.Duration(limitMillis)*time.Millisecond, func() {
			t.mu.Lock()
			if t.player == p {
				_ = p.Close()
				t.player = nil
			}
			t.mu.Unlock()
			atomic.StoreUint32(&t.done, 1)
		})
	}
	return nil
}

func (t *hostTone) Stop() {
	t.mu.Lock()
	t.stopLocked()
	t.mu.Unlock()
}

func (t *hostTone) stopLocked() {
	if t.cutoff != nil {
		t.cutoff.Stop()
		t.cutoff = nil
	}
	if t.player != nil {
		_ = t.player.Close()
		t.player = nil
	}
}

func (t *hostTone) Done() bool {
	return atomic.SwapUint32(&t.done, 0) != 0
}

type squareWave struct {
	period int
	pos    int
}

func (w *squareWave) Read(p []byte) (int, error) {
	if w.period < 2 {
		w.period = 2
	}
	// 16-bit little-endian stereo.
	for i := 0; i+3 < len(p); i += 4 {
		var s int16 = 8000
		if w.pos >= w.period/2 {
			s = -8000
		}
		w.pos++
		if w.pos >= w.period {
			w.pos = 0
		}
		p[i+0] = byte(s)
		p[i+1] = byte(s >> 8)
		p[i+2] = byte(s)
		p[i+3] = byte(s >> 8)
	}
	return len(p), nil
}
