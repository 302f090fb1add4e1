package sched

import (
	"errors"

	"wristos/apphost"
	"wristos/gfx"
	"wristos/hal"
	"wristos/input"
	"wristos/shell"
	"wristos/wm"
)

// Mode is the top-level system state.
type Mode uint8

const (
	ModeBoot Mode = iota
	ModeHome
	ModeAppRunning
	ModeDesktop
	ModeSafe
	ModeSleeping
)

func (m Mode) String() string {
	switch m {
	case ModeBoot:
		return "boot"
	case ModeHome:
		return "home"
	case ModeAppRunning:
		return "app"
	case ModeDesktop:
		return "desktop"
	case ModeSafe:
		return "safe"
	case ModeSleeping:
		return "sleeping"
	default:
		return "unknown"
	}
}

// ErrRestart is returned from Tick when the user requested a restart. It is
// the only path out of the loop; every other condition recovers in place.
var ErrRestart = errors.New("sched: user restart")

// Policy holds the supervision cadences and the storage requirement.
type Policy struct {
	TickMS         uint32
	RestoreMS      uint32
	ProbeMS        uint32
	ReinsertMS     uint32
	ProbeFailLimit int
	// RequireStorage makes media loss enter safe mode; otherwise loss is
	// logged and ignored.
	RequireStorage bool
	// IdleSaveMS is the deferred-save cadence while idle; 0 disables.
	IdleSaveMS uint32
}

// DefaultPolicy matches the hardware nominals.
func DefaultPolicy() Policy {
	return Policy{
		TickMS:         33,
		RestoreMS:      200,
		ProbeMS:        2000,
		ReinsertMS:     5000,
		ProbeFailLimit: 2,
		RequireStorage: true,
		IdleSaveMS:     30000,
	}
}

// Scheduler owns the whole mutable core state and drives one cooperative
// tick at a time. Nothing in the core runs outside Tick; the single hardware
// exception is the tone cutoff, which only flips a flag read here.
type Scheduler struct {
	log     hal.Logger
	clock   hal.Clock
	port    hal.DisplayPort
	storage hal.Storage
	tone    hal.Tone
	wdt     hal.Watchdog

	surf    *gfx.Surface
	sampler *input.Sampler
	cursor  *input.Cursor
	desktop *shell.Desktop
	watch   *shell.Watch
	persist apphost.Persister

	policy Policy

	mode   Mode
	resume Mode // mode to return to when safe mode or sleep ends

	beepHz uint32

	booted      bool
	lastTick    uint32
	lastRestore uint32
	lastProbe   uint32
	lastSave    uint32
	probeFails  int
	toneLive    bool
	restartReq  bool

	async AsyncSet
}

// New wires the scheduler. persist may be nil.
func New(h hal.HAL, surf *gfx.Surface, sampler *input.Sampler, cursor *input.Cursor,
	desktop *shell.Desktop, watch *shell.Watch, persist apphost.Persister, policy Policy) *Scheduler {
	return &Scheduler{
		log:     h.Logger(),
		clock:   h.Clock(),
		port:    h.Display(),
		storage: h.Storage(),
		tone:    h.Tone(),
		wdt:     h.Watchdog(),
		surf:    surf,
		sampler: sampler,
		cursor:  cursor,
		desktop: desktop,
		watch:   watch,
		persist: persist,
		policy:  policy,
		beepHz:  1200,
		mode:    ModeBoot,
		resume:  ModeHome,
	}
}

// SetBeepHz adjusts the UI feedback tone; 0 silences it.
func (s *Scheduler) SetBeepHz(hz uint32) { s.beepHz = hz }

func (s *Scheduler) Mode() Mode { return s.mode }

// Desktop exposes the shell for host-side tooling.
func (s *Scheduler) Desktop() *shell.Desktop { return s.desktop }

// RequestRestart arms the only deliberate exit. Settings exposes it.
func (s *Scheduler) RequestRestart() { s.restartReq = true }

// StartAsync registers a pending external operation (connect, scan, sync).
func (s *Scheduler) StartAsync(name string, timeoutMS uint32, poll PollFunc, done DoneFunc) bool {
	return s.async.Start(name, s.clock.Millis(), timeoutMS, poll, done)
}

// Beep starts a bounded tone; the hardware cutoff stops it even if the core
// stalls.
func (s *Scheduler) Beep(freqHz, limitMS uint32) {
	if freqHz == 0 {
		return
	}
	if err := s.tone.Start(freqHz, limitMS); err == nil {
		s.toneLive = true
	}
}

// Tick runs one cooperative step. Call it as fast as the platform likes;
// calls arriving before the minimum period return immediately after the
// unconditional obligations, bounding hardware polling cost.
func (s *Scheduler) Tick() error {
	now := s.clock.Millis()

	// Unconditional, every call: the watchdog must see liveness even in
	// skipped, sleeping and safe ticks.
	s.wdt.Feed()

	if s.booted && now-s.lastTick < s.policy.TickMS {
		return nil
	}
	s.lastTick = now

	if s.restartReq {
		s.saveNow("restart")
		return ErrRestart
	}

	// Periodic display-controller restore: bus sharing lets panel config
	// drift silently; re-assert it on a cadence instead of reinitializing.
	if now-s.lastRestore >= s.policy.RestoreMS {
		s.lastRestore = now
		s.port.RestoreConfig()
	}

	// Tone cutoff happened in interrupt context; finish the transition here.
	if s.toneLive && s.tone.Done() {
		s.toneLive = false
	}

	switch s.mode {
	case ModeBoot:
		s.boot(now)
		return nil
	case ModeSleeping:
		s.tickSleeping()
		return nil
	case ModeSafe:
		s.tickSafe(now)
		return nil
	}

	ev := s.sampler.Poll()

	// A chord being timed preempts all other work for the tick, storage
	// supervision included.
	if s.sampler.ChordPending() {
		return nil
	}

	if ev.Chord {
		s.toggleDesktop()
		return nil
	}

	s.superviseStorage(now)
	if s.mode == ModeSafe {
		return nil
	}

	switch s.mode {
	case ModeHome:
		_ = s.watch.Compose()
	case ModeDesktop, ModeAppRunning:
		s.desktop.HandleEvents(ev)
		s.mode = s.desktopMode()
		_ = s.desktop.Compose()
	}

	s.async.PollAll(now)

	if s.policy.IdleSaveMS > 0 && ev.Empty() && now-s.lastSave >= s.policy.IdleSaveMS {
		s.saveNow("idle")
	}

	return nil
}

func (s *Scheduler) boot(now uint32) {
	// Lazy buffer allocation with graceful fallback: a failed allocation
	// drops the shell to direct drawing, never aborts boot.
	if !s.surf.Allocate() {
		s.log.WriteLineString("gfx: frame buffer unavailable, direct drawing")
	}

	if s.persist != nil {
		if err := s.persist.Load(); err != nil {
			s.log.WriteLineString("persist: load: " + err.Error())
		}
	}

	s.booted = true
	s.lastTick = now
	s.lastSave = now
	s.mode = ModeHome
	s.log.WriteLineString("sched: boot -> home")
}

// Sleep powers the panel down. Input keeps being sampled for wake.
func (s *Scheduler) Sleep() {
	if s.mode == ModeSleeping {
		return
	}
	s.saveNow("sleep")
	s.resume = s.mode
	s.mode = ModeSleeping
	s.sampler.Reset()
	_ = s.port.Power(false)
	s.log.WriteLineString("sched: sleep")
}

func (s *Scheduler) tickSleeping() {
	ev := s.sampler.Poll()
	if ev.Pressed == 0 {
		return
	}
	_ = s.port.Power(true)
	s.mode = s.resume
	if s.mode == ModeSleeping || s.mode == ModeBoot {
		s.mode = ModeHome
	}
	s.desktop.RedrawAll = true
	s.log.WriteLineString("sched: wake -> " + s.mode.String())
}

func (s *Scheduler) superviseStorage(now uint32) {
	if now-s.lastProbe < s.policy.ProbeMS {
		return
	}
	s.lastProbe = now

	if s.storage.Probe() {
		s.probeFails = 0
		return
	}

	s.probeFails++
	if s.probeFails < s.policy.ProbeFailLimit {
		return
	}

	s.log.WriteLineString("storage: media lost")
	if !s.policy.RequireStorage {
		// Optional media: tell the user once, keep running.
		if s.probeFails == s.policy.ProbeFailLimit {
			s.desktop.ShowNotice("storage removed")
		}
		return
	}
	s.resume = s.mode
	s.mode = ModeSafe
	s.sampler.Reset()
	s.log.WriteLineString("sched: safe mode")
}

func (s *Scheduler) tickSafe(now uint32) {
	shell.DrawSafeScreen(s.surf, "storage removed", "reinsert media")

	if now-s.lastProbe < s.policy.ReinsertMS {
		return
	}
	s.lastProbe = now

	if !s.storage.Probe() {
		return
	}

	s.probeFails = 0
	s.mode = s.resume
	if s.mode == ModeSafe || s.mode == ModeBoot {
		s.mode = ModeHome
	}
	if s.persist != nil {
		if err := s.persist.Load(); err != nil {
			s.log.WriteLineString("persist: reload: " + err.Error())
		}
	}
	s.desktop.RedrawAll = true
	s.log.WriteLineString("sched: safe mode exit -> " + s.mode.String())
}

func (s *Scheduler) toggleDesktop() {
	switch s.mode {
	case ModeHome:
		s.mode = ModeDesktop
		s.cursor.Center()
		s.desktop.RedrawAll = true
	case ModeDesktop, ModeAppRunning:
		s.mode = ModeHome
	}
	s.sampler.Reset()
	s.Beep(s.beepHz, 60)
	s.log.WriteLineString("sched: mode -> " + s.mode.String())
}

// desktopMode distinguishes a plain desktop from one owned by a fullscreen
// app, which is the APP_RUNNING top-level state.
func (s *Scheduler) desktopMode() Mode {
	reg := s.desktop.Registry()
	if id := reg.Focus(); id != wm.None {
		if w := reg.Window(id); w != nil && w.Fullscreen {
			return ModeAppRunning
		}
	}
	return ModeDesktop
}

func (s *Scheduler) saveNow(reason string) {
	s.lastSave = s.clock.Millis()
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(); err != nil {
		s.log.WriteLineString("persist: save (" + reason + "): " + err.Error())
	}
}
