package input

import "wristos/hal"

// Timing holds the debounce and repeat nominals in milliseconds. Contexts
// with a different cadence (text editing) swap the whole set.
type Timing struct {
	DebounceMS  uint32
	HoldDelayMS uint32
	RepeatMS    uint32
	ChordHoldMS uint32
}

// DefaultTiming is the desktop cadence.
func DefaultTiming() Timing {
	return Timing{DebounceMS: 50, HoldDelayMS: 400, RepeatMS: 150, ChordHoldMS: 600}
}

// TextTiming repeats faster, for character cycling in text fields.
func TextTiming() Timing {
	t := DefaultTiming()
	t.RepeatMS = 75
	return t
}

// Events is the per-tick output of the sampler. Bit i refers to hal.Button i.
// A button never has both its Pressed and Repeated bit set in the same tick.
type Events struct {
	Pressed  uint8
	Repeated uint8
	Chord    bool
}

func (e Events) Empty() bool {
	return e.Pressed == 0 && e.Repeated == 0 && !e.Chord
}

func (e Events) Has(b hal.Button) bool {
	return (e.Pressed|e.Repeated)&(1<<uint(b)) != 0
}

type buttonPhase uint8

const (
	phaseIdle buttonPhase = iota
	phaseDebouncing
	phaseConfirmed
	phaseRepeating
)

type buttonState struct {
	phase      buttonPhase
	edgeAt     uint32 // when the raw level went active
	holdSince  uint32 // when the press was confirmed
	lastRepeat uint32
	suppressed bool // consumed by a chord; no further actions until full release
}

type chordState struct {
	active bool
	since  uint32
	used   bool
}

// Sampler turns raw button lines into confirmed press, hold-repeat and chord
// events. Poll must be called exactly once per scheduler tick; it is the only
// place the hardware lines are read.
type Sampler struct {
	src    hal.Buttons
	now    func() uint32
	timing Timing

	// chordMask is the designated two-button combination. Its members
	// dispatch their single action on release, so a fired chord can
	// swallow them without ghost events.
	chordMask uint8

	btns  [hal.ButtonCount]buttonState
	chord chordState
}

// NewSampler wires the sampler to the raw lines and a millisecond clock.
func NewSampler(src hal.Buttons, clock hal.Clock) *Sampler {
	return &Sampler{
		src:       src,
		now:       clock.Millis,
		timing:    DefaultTiming(),
		chordMask: 1<<uint(hal.BtnBack) | 1<<uint(hal.BtnMenu),
	}
}

// SetTiming installs a new cadence and resets hold/repeat bookkeeping, since
// in-flight hold state is meaningless under a different cadence.
func (s *Sampler) SetTiming(t Timing) {
	s.timing = t
	for i := range s.btns {
		if s.btns[i].phase == phaseRepeating {
			s.btns[i].phase = phaseConfirmed
		}
	}
}

func (s *Sampler) Timing() Timing { return s.timing }

// SetChord changes the designated chord combination.
func (s *Sampler) SetChord(a, b hal.Button) {
	s.chordMask = 1<<uint(a) | 1<<uint(b)
}

// Reset drops all in-flight input state. Called on mode transitions that
// redefine what the buttons mean.
func (s *Sampler) Reset() {
	s.btns = [hal.ButtonCount]buttonState{}
	s.chord = chordState{}
}

// ChordPending reports a chord being held that has not fired yet. The
// scheduler gates other per-tick work while this is true.
func (s *Sampler) ChordPending() bool {
	return s.chord.active && !s.chord.used
}

// Held reports whether a button is confirmed down.
func (s *Sampler) Held(b hal.Button) bool {
	p := s.btns[b].phase
	return p == phaseConfirmed || p == phaseRepeating
}

// Poll samples the lines once and advances every state machine one step.
func (s *Sampler) Poll() Events {
	raw := s.src.Read()
	now := s.now()

	var ev Events
	ev.Chord = s.pollChord(raw, now)

	for i := range s.btns {
		bit := uint8(1) << uint(i)
		down := raw&bit != 0
		st := &s.btns[i]

		switch st.phase {
		case phaseIdle:
			if down {
				st.phase = phaseDebouncing
				st.edgeAt = now
			}

		case phaseDebouncing:
			if !down {
				st.phase = phaseIdle
				break
			}
			if now-st.edgeAt >= s.timing.DebounceMS {
				st.phase = phaseConfirmed
				st.holdSince = now
				if !st.suppressed && s.chordMask&bit == 0 {
					ev.Pressed |= bit
				}
			}

		case phaseConfirmed:
			if !down {
				s.release(st, bit, &ev)
				break
			}
			if now-st.holdSince >= s.timing.HoldDelayMS {
				// Entering the repeat phase arms the cadence; the first
				// repeat fires one full interval later.
				st.phase = phaseRepeating
				st.lastRepeat = now
			}

		case phaseRepeating:
			if !down {
				s.release(st, bit, &ev)
				break
			}
			if now-st.lastRepeat >= s.timing.RepeatMS {
				st.lastRepeat = now
				if !st.suppressed && s.chordMask&bit == 0 {
					ev.Repeated |= bit
				}
			}
		}
	}

	// The used flag holds until every chord member is observed released in
	// the same sample; only then may singles fire again.
	if s.chord.used && raw&s.chordMask == 0 {
		s.chord.used = false
		for i := range s.btns {
			s.btns[i].suppressed = false
		}
	}

	return ev
}

// release finishes a press. Chord members deliver their single action here,
// on the release edge, unless a chord consumed them.
func (s *Sampler) release(st *buttonState, bit uint8, ev *Events) {
	if s.chordMask&bit != 0 && !st.suppressed {
		ev.Pressed |= bit
	}
	st.phase = phaseIdle
}

// pollChord runs before single dispatch each tick and has precedence.
func (s *Sampler) pollChord(raw uint8, now uint32) bool {
	bothDown := raw&s.chordMask == s.chordMask

	if !bothDown {
		s.chord.active = false
		return false
	}
	if s.chord.used {
		return false
	}
	if !s.chord.active {
		s.chord.active = true
		s.chord.since = now
		return false
	}
	if now-s.chord.since < s.timing.ChordHoldMS {
		return false
	}

	s.chord.used = true
	for i := range s.btns {
		if s.chordMask&(1<<uint(i)) != 0 {
			s.btns[i].suppressed = true
		}
	}
	return true
}
