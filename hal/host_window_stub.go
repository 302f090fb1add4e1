//go:build !tinygo && !cgo

package hal

import "errors"

type WindowConfig struct {
	Scale int
	Keys  map[string]string
}

func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	return errors.New("window runner requires cgo; use the headless runner")
}
