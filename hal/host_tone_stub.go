//go:build !tinygo && !cgo

package hal

import (
	"sync"
	"sync/atomic"
	"time"
)

// hostTone without cgo: silent, but the cutoff semantics still hold so the
// core behaves identically in headless CI.
type hostTone struct {
	mu     sync.Mutex
	cutoff *time.Timer
	done   uint32
}

func newHostTone() Tone {
	return &hostTone{}
}

func (t *hostTone) Start(freqHz uint32, limitMillis uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cutoff != nil {
		t.cutoff.Stop()
		t.cutoff = nil
	}
	atomic.StoreUint32(&t.done, 0)
	if limitMillis > 0 {
		t.cutoff = time.AfterFunc(time.Duration(limitMillis)*time.Millisecond, func() {
			atomic.StoreUint32(&t.done, 1)
		})
	}
	return nil
}

func (t *hostTone) Stop() {
	t.mu.Lock()
	if t.cutoff != nil {
		t.cutoff.Stop()
		t.cutoff = nil
	}
	t.mu.Unlock()
}

func (t *hostTone) Done() bool {
	return atomic.SwapUint32(&t.done, 0) != 0
}
