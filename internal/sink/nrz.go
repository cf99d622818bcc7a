package sink

import (
	"fmt"
	"io"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// DefaultFreq clocks three SPI bits per NRZ bit for an 800kHz WS2812 line.
const DefaultFreq = 2500 * physic.KiloHertz

// NRZ drives a WS2812-style strip through an SPI port, letting nrzled do
// the bit expansion and GRB reordering.
type NRZ struct {
	mu    sync.Mutex
	dev   *nrzled.Dev
	port  io.Closer
	count int
}

// NewNRZ wraps an already open port. If p is also an io.Closer it is closed
// with the sink.
func NewNRZ(p spi.Port, count int, freq physic.Frequency) (*NRZ, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	if freq == 0 {
		freq = DefaultFreq
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: count, Channels: 3, Freq: freq})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	s := &NRZ{dev: d, count: count}
	if c, ok := p.(io.Closer); ok {
		s.port = c
	}
	return s, nil
}

// OpenNRZ initialises the host drivers and opens the named SPI port. An
// empty name picks the first port found.
func OpenNRZ(name string, count int, freq physic.Frequency) (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", name, err)
	}
	s, err := NewNRZ(p, count, freq)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return s, nil
}

func (s *NRZ) String() string { return s.dev.String() }

func (s *NRZ) Write(_ uint8, rgb []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return ErrClosed
	}
	if err := checkFrame(rgb, s.count); err != nil {
		return err
	}
	if _, err := s.dev.Write(rgb); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}
	return nil
}

// Close blanks the strip and releases the port.
func (s *NRZ) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	err := s.dev.Halt()
	s.dev = nil
	if s.port != nil {
		if cerr := s.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
