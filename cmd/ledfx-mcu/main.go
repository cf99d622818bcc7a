//go:build tinygo

// Command ledfx-mcu runs the pulse effect on a WS2812 strip wired to a
// microcontroller, restarting it whenever it finishes.
package main

import (
	"machine"
	"time"

	"github.com/coreman2200/arcaluminis-fx/internal/catalog"
	"github.com/coreman2200/arcaluminis-fx/internal/mcu"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

const (
	numLEDs = 60
	frame   = 25 * time.Millisecond
)

func main() {
	strip := mcu.NewWS2812(machine.GPIO27, numLEDs)
	buf := make([]pixel.Pixel, numLEDs)

	boot := time.Now()
	now := func() uint32 { return uint32(time.Since(boot).Milliseconds()) }
	fx := catalog.Pulse(now(), numLEDs)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	for range ticker.C {
		t := now()
		if !fx.Alive(t) {
			fx = catalog.Pulse(t, numLEDs)
		}
		fx.Generate(buf, t)
		if err := strip.Write(0, pixel.Bytes(buf)); err != nil {
			println("write:", err.Error())
		}
	}
}
