// Package store is the persistence collaborator: it owns the settings file
// on removable media and exposes the save/load hook the scheduler invokes.
// The core never sees the layout.
package store

import (
	"fmt"
	"strconv"
	"strings"

	"wristos/hal"
)

const settingsFile = "wristos.cfg"

// Settings is the durable device state.
type Settings struct {
	// TimeSecs is seconds since midnight at the last time sync.
	TimeSecs uint32
	// BeepHz is the UI click frequency; 0 silences the UI.
	BeepHz uint32
	// RequireStorage mirrors the safe-mode policy so it survives restarts.
	RequireStorage bool
}

func defaults() Settings {
	return Settings{BeepHz: 1200, RequireStorage: true}
}

// Store binds settings to the storage peripheral.
type Store struct {
	storage hal.Storage
	log     hal.Logger

	Settings Settings
	dirty    bool

	// OnLoad runs after every successful Load with the fresh settings, so
	// collaborators (watch time, beep frequency) pick up reloads too.
	OnLoad func(Settings)
}

func New(storage hal.Storage, log hal.Logger) *Store {
	return &Store{
		storage:  storage,
		log:      log,
		Settings: defaults(),
	}
}

// MarkDirty schedules the next deferred save to actually write.
func (s *Store) MarkDirty() { s.dirty = true }

// Load reads and decodes the settings file. A missing or unreadable file
// falls back to defaults without error: first boot looks exactly like this.
func (s *Store) Load() error {
	data, err := s.storage.ReadFile(settingsFile)
	if err != nil {
		s.Settings = defaults()
	} else {
		s.Settings = Decode(data)
		s.dirty = false
	}
	if s.OnLoad != nil {
		s.OnLoad(s.Settings)
	}
	return nil
}

// Save writes the settings when dirty. Clean saves are free no-ops so the
// idle cadence costs nothing.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	if err := s.storage.WriteFile(settingsFile, Encode(s.Settings)); err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	s.dirty = false
	return nil
}

// Encode renders settings as newline-delimited key=value pairs.
func Encode(v Settings) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "time=%d\n", v.TimeSecs)
	fmt.Fprintf(&b, "beep=%d\n", v.BeepHz)
	fmt.Fprintf(&b, "require_storage=%t\n", v.RequireStorage)
	return []byte(b.String())
}

// Decode parses the settings format, ignoring unknown keys and bad lines so
// older firmware files still load.
func Decode(data []byte) Settings {
	v := defaults()
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "time":
			if n, err := strconv.ParseUint(val, 10, 32); err == nil {
				v.TimeSecs = uint32(n)
			}
		case "beep":
			if n, err := strconv.ParseUint(val, 10, 32); err == nil {
				v.BeepHz = uint32(n)
			}
		case "require_storage":
			if b, err := strconv.ParseBool(val); err == nil {
				v.RequireStorage = b
			}
		}
	}
	return v
}
