package shell

import (
	"image/color"

	"wristos/hal"
)

// Palette, classic office-OS look.
var (
	colDesktop     = hal.RGB565(0, 128, 128)
	colWindowFace  = hal.RGB565(192, 192, 192)
	colWindowEdge  = hal.RGB565(0, 0, 0)
	colTitleActive = hal.RGB565(0, 0, 128)
	colTitleIdle   = hal.RGB565(128, 128, 128)
	colTitleText   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colBodyText    = color.RGBA{A: 255}
	colTaskbar     = hal.RGB565(192, 192, 192)
	colTaskbarEdge = hal.RGB565(255, 255, 255)
	colMenuFace    = hal.RGB565(192, 192, 192)
	colMenuHot     = hal.RGB565(0, 0, 128)
	colModalFace   = hal.RGB565(192, 192, 192)
	colCursor      = hal.RGB565(0, 0, 0)
	colCursorFill  = hal.RGB565(255, 255, 255)
	colGrip        = hal.RGB565(64, 64, 64)
	colWatchBG     = hal.RGB565(0, 0, 0)
	colWatchText   = color.RGBA{R: 0, G: 255, B: 128, A: 255}
)
