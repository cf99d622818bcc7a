//go:build tinygo

// Package mcu drives a WS2812 strip straight from a microcontroller pin.
package mcu

import (
	"fmt"
	"image/color"
	"machine"
	"runtime/interrupt"

	"tinygo.org/x/drivers/ws2812"
)

// WS2812 bit-bangs frames out of a single GPIO pin. It satisfies the host
// sink interface so effects can target it unchanged.
type WS2812 struct {
	dev    ws2812.Device
	colors []color.RGBA
}

func NewWS2812(pin machine.Pin, count int) *WS2812 {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &WS2812{dev: ws2812.New(pin), colors: make([]color.RGBA, count)}
}

func (s *WS2812) Write(_ uint8, rgb []byte) error {
	if len(rgb) != len(s.colors)*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), len(s.colors))
	}
	for i := range s.colors {
		s.colors[i] = color.RGBA{R: rgb[i*3], G: rgb[i*3+1], B: rgb[i*3+2], A: 0xff}
	}
	return s.flush()
}

// Close blanks the strip.
func (s *WS2812) Close() error {
	clear(s.colors)
	return s.flush()
}

func (s *WS2812) flush() error {
	var err error
	critical(func() { err = s.dev.WriteColors(s.colors) })
	if err != nil {
		return fmt.Errorf("ws2812 write: %w", err)
	}
	return nil
}

// critical runs f with interrupts off; the WS2812 timing cannot survive
// being preempted mid-frame.
func critical(f func()) {
	state := interrupt.Disable()
	f()
	interrupt.Restore(state)
}
