package store

import (
	"testing"

	"wristos/hal"
)

type memStorage struct {
	files  map[string][]byte
	absent bool
	writes int
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (m *memStorage) Probe() bool { return !m.absent }

func (m *memStorage) ReadFile(name string) ([]byte, error) {
	if m.absent {
		return nil, hal.ErrNoMedia
	}
	data, ok := m.files[name]
	if !ok {
		return nil, hal.ErrNoMedia
	}
	return data, nil
}

func (m *memStorage) WriteFile(name string, data []byte) error {
	if m.absent {
		return hal.ErrNoMedia
	}
	m.writes++
	m.files[name] = append([]byte(nil), data...)
	return nil
}

type nullLogger struct{}

func (nullLogger) WriteLineString(string) {}
func (nullLogger) WriteLineBytes([]byte)  {}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s := New(newMemStorage(), nullLogger{})
	s.Settings.BeepHz = 9999

	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Settings.BeepHz != 1200 || !s.Settings.RequireStorage {
		t.Fatalf("settings = %+v, want defaults", s.Settings)
	}
}

func TestSaveIsDirtyGated(t *testing.T) {
	m := newMemStorage()
	s := New(m, nullLogger{})

	if err := s.Save(); err != nil {
		t.Fatalf("clean Save: %v", err)
	}
	if m.writes != 0 {
		t.Fatal("clean save wrote")
	}

	s.Settings.TimeSecs = 12345
	s.MarkDirty()
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if m.writes != 1 {
		t.Fatalf("writes = %d, want 1", m.writes)
	}

	// Saving again without changes is free.
	if err := s.Save(); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if m.writes != 1 {
		t.Fatal("clean second save wrote")
	}
}

func TestSaveThenLoadRestoresSettings(t *testing.T) {
	m := newMemStorage()
	s := New(m, nullLogger{})
	s.Settings = Settings{TimeSecs: 47130, BeepHz: 880, RequireStorage: false}
	s.MarkDirty()
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s2 := New(m, nullLogger{})
	if err := s2.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s2.Settings != s.Settings {
		t.Fatalf("loaded %+v, want %+v", s2.Settings, s.Settings)
	}
}

func TestSaveFailsWithoutMedia(t *testing.T) {
	m := newMemStorage()
	m.absent = true
	s := New(m, nullLogger{})
	s.MarkDirty()

	if err := s.Save(); err == nil {
		t.Fatal("Save succeeded without media")
	}
}

func TestDecodeTolerance(t *testing.T) {
	v := Decode([]byte("# comment\n\ntime=100\nbogus\nunknown=1\nbeep=abc\nrequire_storage=false\n"))
	if v.TimeSecs != 100 {
		t.Errorf("TimeSecs = %d, want 100", v.TimeSecs)
	}
	if v.BeepHz != 1200 {
		t.Errorf("BeepHz = %d, want default after bad value", v.BeepHz)
	}
	if v.RequireStorage {
		t.Error("RequireStorage not parsed")
	}
}
