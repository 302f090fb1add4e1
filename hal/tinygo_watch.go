//go:build tinygo && baremetal && watchrp2

package hal

import (
	"machine"
	"sync/atomic"
	"time"
)

type watchHAL struct {
	logger  *uartLogger
	clock   *machineClock
	buttons *pinButtons
	panel   DisplayPort
	storage Storage
	tone    *pwmTone
	wdt     *machineWatchdog
}

// New returns the RP2040 watch carrier HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// SPI1 is shared between the panel (CS GP13) and the SD card (CS GP9).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	panel, err := newWatchPanel()
	if err != nil {
		panel = nil
	}

	var port DisplayPort
	if panel != nil {
		port = panel
	} else {
		port = nullPanel{}
	}

	var store Storage
	if panel != nil {
		store = newSDStorage(panel)
	} else {
		store = nullStorage{}
	}

	return &watchHAL{
		logger:  &uartLogger{uart: uart},
		clock:   newMachineClock(),
		buttons: newPinButtons(),
		panel:   port,
		storage: store,
		tone:    newPWMTone(machine.GP2),
		wdt:     newMachineWatchdog(),
	}
}

func (h *watchHAL) Logger() Logger       { return h.logger }
func (h *watchHAL) Clock() Clock         { return h.clock }
func (h *watchHAL) Buttons() Buttons     { return h.buttons }
func (h *watchHAL) Display() DisplayPort { return h.panel }
func (h *watchHAL) Storage() Storage     { return h.storage }
func (h *watchHAL) Tone() Tone           { return h.tone }
func (h *watchHAL) Watchdog() Watchdog   { return h.wdt }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type machineClock struct {
	start time.Time
}

func newMachineClock() *machineClock {
	return &machineClock{start: time.Now()}
}

func (c *machineClock) Millis() uint32 {
	return uint32(time.Since(c.start) / time.Millisecond)
}

var buttonPins = [ButtonCount]machine.Pin{
	BtnUp:    machine.GP3,
	BtnDown:  machine.GP4,
	BtnLeft:  machine.GP5,
	BtnRight: machine.GP6,
	BtnOK:    machine.GP7,
	BtnBack:  machine.GP8,
	BtnMenu:  machine.GP22,
}

// pinButtons reads the seven lines. Wired active-low with pull-ups.
type pinButtons struct{}

func newPinButtons() *pinButtons {
	for _, pin := range buttonPins {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return &pinButtons{}
}

func (b *pinButtons) Read() uint8 {
	var mask uint8
	for i, pin := range buttonPins {
		if !pin.Get() {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

type machineWatchdog struct{}

func newMachineWatchdog() *machineWatchdog {
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 2000})
	machine.Watchdog.Start()
	return &machineWatchdog{}
}

func (w *machineWatchdog) Feed() { machine.Watchdog.Update() }

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

type pwmTone struct {
	pin  machine.Pin
	pwm  pwmDevice
	ch   uint8
	live bool
	done uint32
}

func newPWMTone(pin machine.Pin) *pwmTone {
	return &pwmTone{pin: pin}
}

func (t *pwmTone) Start(freqHz uint32, limitMillis uint32) error {
	if freqHz == 0 {
		return ErrNotImplemented
	}
	slice, err := machine.PWMPeripheral(t.pin)
	if err != nil {
		return err
	}
	pwm := pwmForSlice(slice)
	if pwm == nil {
		return ErrNotImplemented
	}
	if err := pwm.Configure(machine.PWMConfig{Period: uint64(1e9) / uint64(freqHz)}); err != nil {
		return err
	}
	ch, err := pwm.Channel(t.pin)
	if err != nil {
		return err
	}
	pwm.Set(ch, pwm.Top()/2)
	pwm.Enable(true)

	t.pwm = pwm
	t.ch = ch
	t.live = true
	atomic.StoreUint32(&t.done, 0)

	if limitMillis > 0 {
		// Cutoff path: one peripheral write plus one flag, nothing else.
		p := pwm
		time.AfterFunc(time.Duration(limitMillis)*time.Millisecond, func() {
			p.Enable(false)
			atomic.StoreUint32(&t.done, 1)
		})
	}
	return nil
}

func (t *pwmTone) Stop() {
	if t.pwm != nil && t.live {
		t.pwm.Enable(false)
		t.live = false
	}
}

func (t *pwmTone) Done() bool {
	return atomic.SwapUint32(&t.done, 0) != 0
}

func pwmForSlice(slice uint8) pwmDevice {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

type nullPanel struct{}

func (nullPanel) Width() int                          { return 240 }
func (nullPanel) Height() int                         { return 240 }
func (nullPanel) ClaimBus()                           {}
func (nullPanel) RestoreConfig()                      {}
func (nullPanel) Blit(x, y, w, h int, p []byte) error { return ErrNotImplemented }
func (nullPanel) Fill(x, y, w, h int, c uint16) error { return ErrNotImplemented }
func (nullPanel) Power(on bool) error                 { return ErrNotImplemented }

type nullStorage struct{}

func (nullStorage) Probe() bool                         { return false }
func (nullStorage) ReadFile(string) ([]byte, error)     { return nil, ErrNoMedia }
func (nullStorage) WriteFile(string, []byte) error      { return ErrNoMedia }
