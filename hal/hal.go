package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Clock is a monotonic millisecond counter.
//
// The counter may wrap; consumers must compare with subtraction, never with <.
type Clock interface {
	Millis() uint32
}

// ButtonCount is the number of physical input lines on the device.
const ButtonCount = 7

// Button identifies one physical input line.
type Button uint8

const (
	BtnUp Button = iota
	BtnDown
	BtnLeft
	BtnRight
	BtnOK
	BtnBack
	BtnMenu
)

func (b Button) String() string {
	switch b {
	case BtnUp:
		return "up"
	case BtnDown:
		return "down"
	case BtnLeft:
		return "left"
	case BtnRight:
		return "right"
	case BtnOK:
		return "ok"
	case BtnBack:
		return "back"
	case BtnMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// ButtonFromName is the inverse of String. Returns false for unknown names.
func ButtonFromName(name string) (Button, bool) {
	for b := Button(0); b < ButtonCount; b++ {
		if b.String() == name {
			return b, true
		}
	}
	return 0, false
}

// Buttons samples the raw digital input lines.
//
// Bit i of the returned mask is set when line i reads at its active level.
// The mask is raw hardware state: bouncy, unfiltered.
type Buttons interface {
	Read() uint8
}

// DisplayPort is the bus-level display primitive.
//
// The panel shares its bus with the storage peripheral. Blit and Fill must be
// preceded by ClaimBus whenever storage may have been the last bus user; the
// port does not track that itself.
type DisplayPort interface {
	Width() int
	Height() int

	// ClaimBus deselects the storage peripheral, waits for the bus to
	// settle, and restores the panel's transfer parameters.
	ClaimBus()

	// RestoreConfig re-applies controller registers that drift under bus
	// sharing (chip select, clock rate, inversion). Lightweight: no reset,
	// no visible flash.
	RestoreConfig()

	// Blit pushes RGB565 little-endian pixels for the given region in one
	// bulk transfer.
	Blit(x, y, w, h int, pix []byte) error

	// Fill draws a solid region directly, bypassing any buffer. Degraded
	// path for when no frame buffer could be allocated.
	Fill(x, y, w, h int, rgb565 uint16) error

	// Power switches the panel on or off (sleep support).
	Power(on bool) error
}

// Storage is the removable-media peripheral.
type Storage interface {
	// Probe reports whether the media is present and responding. Cheap
	// enough to call on a supervision cadence.
	Probe() bool

	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

var ErrNoMedia = errors.New("storage: no media")

// Tone is the tone-generator peripheral.
//
// Start arms a hardware cutoff after limitMillis; the cutoff fires outside
// the cooperative loop and touches only the output register plus the flag
// reported by Done. Composite reactions to the cutoff happen on the next tick.
type Tone interface {
	Start(freqHz uint32, limitMillis uint32) error
	Stop()
	Done() bool
}

// Watchdog is the liveness watchdog. Feed must be called at least once per
// tick or the hardware resets the device.
type Watchdog interface {
	Feed()
}

// HAL provides the only contact point between the core and the outside world.
type HAL interface {
	Logger() Logger
	Clock() Clock
	Buttons() Buttons
	Display() DisplayPort
	Storage() Storage
	Tone() Tone
	Watchdog() Watchdog
}
