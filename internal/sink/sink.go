// Package sink delivers packed RGB frames to LED hardware and to the
// desktop stand-ins used when no strip is attached.
package sink

import (
	"errors"
	"fmt"
)

// Sink abstracts an LED output.
type Sink interface {
	// Write pushes one frame for channel. len(rgb) must be 3*N.
	Write(channel uint8, rgb []byte) error
	// Close releases resources.
	Close() error
}

var (
	ErrClosed         = errors.New("sink closed")
	ErrUnknownChannel = errors.New("unknown channel")
)

func checkFrame(rgb []byte, count int) error {
	if len(rgb) != count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), count)
	}
	return nil
}

// Mux routes each channel to its own sink.
type Mux map[uint8]Sink

func (m Mux) Write(channel uint8, rgb []byte) error {
	s, ok := m[channel]
	if !ok {
		return fmt.Errorf("channel %d: %w", channel, ErrUnknownChannel)
	}
	return s.Write(channel, rgb)
}

func (m Mux) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

// Tee copies every frame to all of its sinks. A failing sink does not stop
// the others from receiving the frame.
type Tee []Sink

func (t Tee) Write(channel uint8, rgb []byte) error {
	var errs []error
	for _, s := range t {
		if err := s.Write(channel, rgb); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t Tee) Close() error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
