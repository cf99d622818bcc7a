package sink

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/coreman2200/arcaluminis-fx/pixel"
)

// Sim stands in for hardware: it counts frames and logs a short summary of
// every Every-th one at debug level.
type Sim struct {
	mu     sync.Mutex
	log    zerolog.Logger
	every  int
	frames uint64
}

func NewSim(log zerolog.Logger, every int) *Sim {
	if every <= 0 {
		every = 40
	}
	return &Sim{log: log, every: every}
}

func (s *Sim) Write(channel uint8, rgb []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	if s.frames%uint64(s.every) != 0 {
		return nil
	}
	px := pixel.FromBytes(rgb)
	lit, sum := 0, 0
	for _, p := range px {
		if p != pixel.Black {
			lit++
		}
		sum += int(p.R) + int(p.G) + int(p.B)
	}
	avg := 0
	if len(px) > 0 {
		avg = sum / (3 * len(px))
	}
	s.log.Debug().
		Uint8("channel", channel).
		Uint64("frame", s.frames).
		Int("pixels", len(px)).
		Int("lit", lit).
		Int("avg", avg).
		Msg("sim frame")
	return nil
}

// Frames reports how many frames have been written.
func (s *Sim) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func (s *Sim) Close() error { return nil }
