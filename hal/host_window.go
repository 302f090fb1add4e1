//go:build !tinygo && cgo

package hal

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wristos/internal/buildinfo"
)

// WindowConfig controls the desktop simulator window.
type WindowConfig struct {
	Scale int
	// Keys maps button names ("up", "ok", ...) to ebiten key names
	// ("ArrowUp", "Z", ...). Unset buttons keep their default binding.
	Keys map[string]string
}

var defaultKeys = [ButtonCount]ebiten.Key{
	BtnUp:    ebiten.KeyArrowUp,
	BtnDown:  ebiten.KeyArrowDown,
	BtnLeft:  ebiten.KeyArrowLeft,
	BtnRight: ebiten.KeyArrowRight,
	BtnOK:    ebiten.KeyZ,
	BtnBack:  ebiten.KeyX,
	BtnMenu:  ebiten.KeyC,
}

// KeyFromName resolves a key by its ebiten name ("ArrowUp", "Z", ...).
func KeyFromName(name string) (ebiten.Key, bool) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, false
	}
	return k, true
}

// RunWindow opens a desktop window that mirrors the panel and forwards held
// keys as raw button lines. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	h := New().(*hostHAL)
	step := newApp(h)

	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	keys := defaultKeys
	for btnName, keyName := range cfg.Keys {
		btn, ok := ButtonFromName(btnName)
		if !ok {
			return fmt.Errorf("hal: unknown button %q", btnName)
		}
		key, ok := KeyFromName(keyName)
		if !ok {
			return fmt.Errorf("hal: unknown key %q for button %q", keyName, btnName)
		}
		keys[btn] = key
	}

	g := &hostGame{h: h, step: step, keys: keys}
	ebiten.SetWindowTitle("WristOS (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.panel.w*cfg.Scale, h.panel.h*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	keys    [ButtonCount]ebiten.Key
	step    func() error
}

func (g *hostGame) Update() error {
	var mask uint8
	for btn, key := range g.keys {
		if ebiten.IsKeyPressed(key) {
			mask |= 1 << uint(btn)
		}
	}
	g.h.buttons.SetMask(mask)

	// F5 yanks/reinserts the virtual media for hot-swap testing.
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.h.storage.SetPresent(!g.h.storage.Probe())
	}

	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	p := g.h.panel
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, p.w, p.h))
		g.scratch = make([]byte, len(p.pix))
		g.fbImg = ebiten.NewImage(p.w, p.h)
	}

	p.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := RGB888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.panel.w, g.h.panel.h
}
