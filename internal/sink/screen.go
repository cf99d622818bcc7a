package sink

import (
	"fmt"
	"image"
	"sync"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/arcaluminis-fx/pixel"
)

// Display renders frames onto any periph display, the ANSI console screen
// being the usual one on a desktop.
type Display struct {
	mu    sync.Mutex
	d     display.Drawer
	count int
}

// NewScreen prints the strip as a row of colored blocks on the terminal.
func NewScreen(count int) *Display {
	return NewDisplay(screen.New(count), count)
}

func NewDisplay(d display.Drawer, count int) *Display {
	return &Display{d: d, count: count}
}

func (s *Display) Write(_ uint8, rgb []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.d == nil {
		return ErrClosed
	}
	if err := checkFrame(rgb, s.count); err != nil {
		return err
	}
	strip := pixel.Strip(pixel.FromBytes(rgb))
	if err := s.d.Draw(s.d.Bounds(), strip, image.Point{}); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}

func (s *Display) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.d == nil {
		return nil
	}
	err := s.d.Halt()
	s.d = nil
	return err
}
