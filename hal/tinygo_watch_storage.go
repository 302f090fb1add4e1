//go:build tinygo && baremetal && watchrp2

package hal

import (
	"errors"
	"fmt"
	"io"
	"machine"
	"os"
	"time"

	"tinygo.org/x/drivers/sdcard"
	"tinygo.org/x/tinyfs/fatfs"
)

// sdStorage mounts a FAT filesystem from the SD card on the shared SPI bus.
// Every operation deselects the panel first; the supervisor re-claims the bus
// for the panel afterwards via DisplayPort.ClaimBus.
type sdStorage struct {
	panel *watchPanel
	sd    sdcard.Device
	fat   *fatfs.FATFS
	ready bool
}

func newSDStorage(panel *watchPanel) *sdStorage {
	s := &sdStorage{panel: panel}
	s.mount()
	return s
}

func (s *sdStorage) mount() {
	s.claimForCard()
	sd := sdcard.New(machine.SPI1, machine.GP10, machine.GP11, machine.GP12, machine.GP9)
	if err := sd.Configure(); err != nil {
		s.ready = false
		return
	}
	fat := fatfs.New(&sd).Configure(&fatfs.Config{SectorSize: fatfs.SectorSize})
	if err := fat.Mount(); err != nil {
		// Never auto-format removable media.
		s.ready = false
		return
	}
	s.sd = sd
	s.fat = fat
	s.ready = true
}

// claimForCard hands the bus to the card: panel deselected, settle pause.
func (s *sdStorage) claimForCard() {
	if s.panel != nil {
		s.panel.cs.High()
	}
	time.Sleep(10 * time.Microsecond)
}

func (s *sdStorage) Probe() bool {
	s.claimForCard()
	if !s.ready {
		s.mount()
		return s.ready
	}
	if _, err := s.fat.Stat("/"); err != nil {
		s.ready = false
		return false
	}
	return true
}

func (s *sdStorage) ReadFile(name string) ([]byte, error) {
	if !s.ready {
		return nil, ErrNoMedia
	}
	s.claimForCard()

	f, err := s.fat.OpenFile(name, os.O_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("sd open %q: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	var out []byte
	buf := make([]byte, 512)
	for {
		n, err := f.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("sd read %q: %w", name, err)
		}
		if n == 0 {
			return out, nil
		}
	}
}

func (s *sdStorage) WriteFile(name string, data []byte) error {
	if !s.ready {
		return ErrNoMedia
	}
	s.claimForCard()

	f, err := s.fat.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("sd open writer %q: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("sd write %q: %w", name, err)
	}
	return f.Close()
}
