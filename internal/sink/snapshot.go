package sink

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"slices"
	"sync"

	"golang.org/x/image/draw"

	"github.com/coreman2200/arcaluminis-fx/pixel"
)

// Snapshot keeps the latest frame of every channel so it can be served as
// an image.
type Snapshot struct {
	mu     sync.RWMutex
	frames map[uint8][]pixel.Pixel
}

func NewSnapshot() *Snapshot {
	return &Snapshot{frames: map[uint8][]pixel.Pixel{}}
}

func (s *Snapshot) Write(channel uint8, rgb []byte) error {
	px := pixel.FromBytes(rgb)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[channel] = append(s.frames[channel][:0], px...)
	return nil
}

// Frame returns a copy of the last frame seen on channel.
func (s *Snapshot) Frame(channel uint8) ([]pixel.Pixel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.frames[channel]
	return slices.Clone(f), ok
}

// Image renders the last frame as a strip of scale×scale squares.
func (s *Snapshot) Image(channel uint8, scale int) (*image.NRGBA, error) {
	f, ok := s.Frame(channel)
	if !ok {
		return nil, fmt.Errorf("channel %d: %w", channel, ErrUnknownChannel)
	}
	if scale < 1 {
		scale = 1
	}
	src := pixel.Strip(f)
	dst := image.NewNRGBA(image.Rect(0, 0, len(f)*scale, scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// EncodePNG writes Image(channel, scale) to w.
func (s *Snapshot) EncodePNG(w io.Writer, channel uint8, scale int) error {
	img, err := s.Image(channel, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func (s *Snapshot) Close() error { return nil }
