//go:build tinygo && baremetal && watchrp2

package hal

import (
	"errors"
	"machine"
	"time"
)

const (
	watchPanelW = 240
	watchPanelH = 240

	panelSPIFreq = 40_000_000
)

// watchPanel drives an ST7789 240x240 panel on SPI1. The SD card sits on the
// same bus; every transfer starts by forcing the card's chip select high and
// re-applying the panel's SPI parameters, because the last bus user may have
// reconfigured clock or mode.
type watchPanel struct {
	spi   machine.SPI
	cs    machine.Pin
	dc    machine.Pin
	rst   machine.Pin
	sdCS  machine.Pin
	txBuf []byte
}

func newWatchPanel() (*watchPanel, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: panelSPIFreq,
	})

	p := &watchPanel{
		spi:   *machine.SPI1,
		cs:    machine.GP13,
		dc:    machine.GP14,
		rst:   machine.GP15,
		sdCS:  machine.GP9,
		txBuf: make([]byte, 4096),
	}

	p.cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.dc.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.rst.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.sdCS.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.cs.High()
	p.dc.High()
	p.rst.High()
	p.sdCS.High()

	p.reset()
	p.initRegs()

	return p, nil
}

func (p *watchPanel) Width() int  { return watchPanelW }
func (p *watchPanel) Height() int { return watchPanelH }

func (p *watchPanel) reset() {
	p.rst.Low()
	time.Sleep(64 * time.Millisecond)
	p.rst.High()
	time.Sleep(140 * time.Millisecond)
}

func (p *watchPanel) initRegs() {
	p.cmd(0x3A, 0x55) // COLMOD: 16bpp
	p.cmd(0x36, 0x00) // MADCTL
	p.cmd(0x21)       // INVON: this panel needs inversion
	p.cmd(0x13)       // NORON
	p.cmd(0x11)       // SLPOUT
	time.Sleep(120 * time.Millisecond)
	p.cmd(0x29) // DISPON
}

// ClaimBus implements the shared-bus handover. The settle delay lets the SD
// card finish releasing MISO before the panel clocks data.
func (p *watchPanel) ClaimBus() {
	p.sdCS.High()
	time.Sleep(10 * time.Microsecond)
	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: panelSPIFreq,
	})
}

func (p *watchPanel) RestoreConfig() {
	p.ClaimBus()
	p.cmd(0x3A, 0x55)
	p.cmd(0x36, 0x00)
	p.cmd(0x21)
}

func (p *watchPanel) cmd(cmd byte, data ...byte) {
	p.cs.Low()
	p.dc.Low()
	p.spi.Tx([]byte{cmd}, nil)
	p.dc.High()
	if len(data) > 0 {
		p.spi.Tx(data, nil)
	}
	p.cs.High()
}

func (p *watchPanel) setWindow(x0, y0, x1, y1 uint16) {
	p.cmd(
		0x2A,
		byte(x0>>8), byte(x0),
		byte(x1>>8), byte(x1),
	)
	p.cmd(
		0x2B,
		byte(y0>>8), byte(y0),
		byte(y1>>8), byte(y1),
	)
	p.cmd(0x2C)
}

func (p *watchPanel) Blit(x, y, w, h int, pix []byte) error {
	if w <= 0 || h <= 0 || len(pix) < w*h*2 {
		return errors.New("invalid blit region")
	}
	if x < 0 || y < 0 || x+w > watchPanelW || y+h > watchPanelH {
		return errors.New("blit out of bounds")
	}

	p.setWindow(uint16(x), uint16(y), uint16(x+w-1), uint16(y+h-1))

	p.cs.Low()
	p.dc.High()

	chunk := p.txBuf
	if len(chunk)%2 != 0 {
		chunk = chunk[:len(chunk)-1]
	}

	total := w * h * 2
	for off := 0; off < total; {
		n := len(chunk)
		remain := total - off
		if n > remain {
			n = remain
			n &^= 1
		}
		src := pix[off : off+n]

		for i := 0; i < n; i += 2 {
			// Core stores RGB565 little-endian; the panel expects big-endian.
			chunk[i] = src[i+1]
			chunk[i+1] = src[i]
		}
		p.spi.Tx(chunk[:n], nil)
		off += n
	}

	p.cs.High()
	return nil
}

func (p *watchPanel) Fill(x, y, w, h int, rgb565 uint16) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > watchPanelW {
		w = watchPanelW - x
	}
	if y+h > watchPanelH {
		h = watchPanelH - y
	}
	if w <= 0 || h <= 0 {
		return nil
	}

	p.setWindow(uint16(x), uint16(y), uint16(x+w-1), uint16(y+h-1))

	p.cs.Low()
	p.dc.High()

	hi := byte(rgb565 >> 8)
	lo := byte(rgb565)
	chunk := p.txBuf
	for i := 0; i+1 < len(chunk); i += 2 {
		chunk[i] = hi
		chunk[i+1] = lo
	}

	total := w * h * 2
	for off := 0; off < total; {
		n := len(chunk)
		if n > total-off {
			n = total - off
			n &^= 1
		}
		p.spi.Tx(chunk[:n], nil)
		off += n
	}

	p.cs.High()
	return nil
}

func (p *watchPanel) Power(on bool) error {
	if on {
		p.cmd(0x11) // SLPOUT
		time.Sleep(120 * time.Millisecond)
		p.cmd(0x29) // DISPON
	} else {
		p.cmd(0x28) // DISPOFF
		p.cmd(0x10) // SLPIN
	}
	return nil
}
