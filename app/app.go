// Package app assembles the firmware: HAL in, one step function out.
package app

import (
	"wristos/apps/about"
	"wristos/gfx"
	"wristos/hal"
	"wristos/input"
	"wristos/sched"
	"wristos/shell"
	"wristos/store"
	"wristos/wm"
)

// Config carries host-side overrides; zero value is the device default.
type Config struct {
	Policy *sched.Policy
}

// System is the assembled core. Step drives one cooperative tick.
type System struct {
	Sched *sched.Scheduler
	Store *store.Store
}

// New wires everything and returns the per-tick step function.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	sys := NewSystem(h, cfg)
	return sys.Step
}

func NewSystem(h hal.HAL, cfg Config) *System {
	registerApps()

	port := h.Display()
	surf := gfx.NewSurface(port)
	sampler := input.NewSampler(h.Buttons(), h.Clock())
	cursor := input.NewCursor(port.Width(), port.Height())

	reg := wm.NewRegistry(port.Width(), port.Height())
	desktop := shell.NewDesktop(surf, reg, cursor)
	watch := shell.NewWatch(surf, h.Clock().Millis)

	st := store.New(h.Storage(), h.Logger())

	policy := sched.DefaultPolicy()
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}

	s := sched.New(h, surf, sampler, cursor, desktop, watch, st, policy)

	// Loaded settings feed the collaborators; reloads after a storage swap
	// take the same path.
	st.OnLoad = func(v store.Settings) {
		watch.SetTime(v.TimeSecs)
		s.SetBeepHz(v.BeepHz)
	}

	// Closing a window flushes pending settings; a clean store makes this a
	// no-op.
	reg.OnClose = func(wm.ID) {
		if err := st.Save(); err != nil {
			h.Logger().WriteLineString("persist: save (close): " + err.Error())
		}
	}

	return &System{Sched: s, Store: st}
}

// Run blocks forever driving the scheduler (TinyGo entrypoint).
func Run(h hal.HAL) {
	sys := NewSystem(h, Config{})
	for {
		if err := sys.Sched.Tick(); err != nil {
			// Restart request: the watchdog stops being fed and the
			// hardware resets us. The only deliberate exit.
			for {
			}
		}
	}
}

func (s *System) Step() error {
	return s.Sched.Tick()
}

func registerApps() {
	about.Register()
}
