package apphost

import "wristos/gfx"

// ContentType tags what a window hosts. A closed set: the window manager
// dispatches through the App interface and never branches on the tag itself;
// the tag exists for slot bookkeeping and the open-size table.
type ContentType uint8

const (
	ContentNone ContentType = iota
	ContentCalculator
	ContentTimer
	ContentTodo
	ContentNotes
	ContentMusic
	ContentPaint
	ContentFiles
	ContentSnake
	ContentBricks
	ContentSettings
	ContentAbout

	contentCount
)

func (t ContentType) String() string {
	switch t {
	case ContentCalculator:
		return "calculator"
	case ContentTimer:
		return "timer"
	case ContentTodo:
		return "todo"
	case ContentNotes:
		return "notes"
	case ContentMusic:
		return "music"
	case ContentPaint:
		return "paint"
	case ContentFiles:
		return "files"
	case ContentSnake:
		return "snake"
	case ContentBricks:
		return "bricks"
	case ContentSettings:
		return "settings"
	case ContentAbout:
		return "about"
	default:
		return "none"
	}
}

// WindowSpec is the registered default and minimum geometry for a content type.
type WindowSpec struct {
	Title      string
	Default    gfx.Rect
	MinW, MinH int
}

var specs = [contentCount]WindowSpec{
	ContentCalculator: {Title: "Calc", Default: gfx.Rect{X: 20, Y: 20, W: 120, H: 140}, MinW: 90, MinH: 110},
	ContentTimer:      {Title: "Timer", Default: gfx.Rect{X: 40, Y: 30, W: 130, H: 90}, MinW: 100, MinH: 70},
	ContentTodo:       {Title: "To-Do", Default: gfx.Rect{X: 30, Y: 24, W: 150, H: 150}, MinW: 110, MinH: 90},
	ContentNotes:      {Title: "Notes", Default: gfx.Rect{X: 26, Y: 20, W: 170, H: 160}, MinW: 120, MinH: 90},
	ContentMusic:      {Title: "Music", Default: gfx.Rect{X: 36, Y: 40, W: 160, H: 120}, MinW: 120, MinH: 90},
	ContentPaint:      {Title: "Paint", Default: gfx.Rect{X: 16, Y: 16, W: 180, H: 170}, MinW: 120, MinH: 110},
	ContentFiles:      {Title: "Files", Default: gfx.Rect{X: 24, Y: 28, W: 170, H: 160}, MinW: 130, MinH: 100},
	ContentSnake:      {Title: "Snake", Default: gfx.Rect{X: 20, Y: 20, W: 160, H: 160}, MinW: 140, MinH: 140},
	ContentBricks:     {Title: "Bricks", Default: gfx.Rect{X: 20, Y: 20, W: 170, H: 150}, MinW: 140, MinH: 130},
	ContentSettings:   {Title: "Settings", Default: gfx.Rect{X: 34, Y: 30, W: 160, H: 150}, MinW: 120, MinH: 100},
	ContentAbout:      {Title: "About", Default: gfx.Rect{X: 44, Y: 60, W: 150, H: 100}, MinW: 120, MinH: 80},
}

// SpecFor looks up the registered geometry for a content type.
func SpecFor(t ContentType) WindowSpec {
	if t >= contentCount {
		return WindowSpec{}
	}
	return specs[t]
}

// App is the contract every hosted app implements. The core calls Render
// with the window's content sub-rectangle each composited frame, and
// HandleClick with content-local coordinates for clicks the chrome did not
// consume. App values own their state.
type App interface {
	Render(s *gfx.Surface, content gfx.Rect)
	HandleClick(x, y int)
}

// Closer is the optional teardown hook, invoked before the hosting window is
// removed.
type Closer interface {
	OnClose()
}

// Fullscreener lets an app claim or release the whole panel. The shell reads
// the desire after every click it forwards; a fullscreen focused window puts
// the system in its app-running state.
type Fullscreener interface {
	Fullscreen() bool
}

// Factory builds a fresh app instance for a newly opened window.
type Factory func() App

var factories [contentCount]Factory

// Register installs the factory for a content type. The launcher calls the
// table through NewApp; unregistered types open an empty window.
func Register(t ContentType, f Factory) {
	if t < contentCount {
		factories[t] = f
	}
}

// NewApp instantiates the registered app for a content type, or nil.
func NewApp(t ContentType) App {
	if t >= contentCount || factories[t] == nil {
		return nil
	}
	return factories[t]()
}

// Persister is the persistence collaborator. The core invokes it at its
// defined moments (idle deferred save, pre-sleep, pre-restart, and before a
// dirty window closes) and knows nothing about the on-media layout.
type Persister interface {
	Save() error
	Load() error
}
