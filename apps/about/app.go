// Package about is the reference hosted app: small, stateful, and using the
// whole host contract (render, click handling, teardown).
package about

import (
	"image/color"
	"strconv"

	"tinygo.org/x/tinyfont"

	"wristos/apphost"
	"wristos/gfx"
	"wristos/internal/buildinfo"
)

var ink = color.RGBA{A: 255}

type App struct {
	clicks int
	closed bool
}

func New() apphost.App {
	return &App{}
}

// Register installs the factory for the about content type.
func Register() {
	apphost.Register(apphost.ContentAbout, New)
}

func (a *App) Render(s *gfx.Surface, content gfx.Rect) {
	tinyfont.WriteLine(s.Displayer(), &tinyfont.TomThumb,
		int16(content.X+4), int16(content.Y+10), "WristOS "+buildinfo.Short(), ink)
	tinyfont.WriteLine(s.Displayer(), &tinyfont.TomThumb,
		int16(content.X+4), int16(content.Y+22), "clicks: "+strconv.Itoa(a.clicks), ink)
	tinyfont.WriteLine(s.Displayer(), &tinyfont.TomThumb,
		int16(content.X+4), int16(content.Y+34), "no OS under here", ink)
}

func (a *App) HandleClick(x, y int) {
	a.clicks++
}

func (a *App) OnClose() {
	a.closed = true
}
