//go:build tinygo

package main

import (
	"wristos/app"
	"wristos/hal"
)

func main() {
	app.Run(hal.New())
}
