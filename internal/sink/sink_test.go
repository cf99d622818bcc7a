package sink_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/coreman2200/arcaluminis-fx/internal/sink"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

func TestNRZ(t *testing.T) {
	buf := bytes.Buffer{}
	s, err := sink.NewNRZ(spitest.NewRecordRaw(&buf), 2, sink.DefaultFreq)
	require.NoError(t, err)
	assert.Equal(t, "nrzled{recordraw}", s.String())

	frame := pixel.Bytes([]pixel.Pixel{pixel.Red, pixel.Blue})
	require.NoError(t, s.Write(0, frame))
	written := buf.Len()
	assert.Greater(t, written, len(frame), "NRZ expands every bit")

	assert.Error(t, s.Write(0, frame[:3]), "short frame")

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Write(0, frame), sink.ErrClosed)
	assert.NoError(t, s.Close(), "second close is a no-op")
}

func TestNRZRejectsEmptyStrip(t *testing.T) {
	_, err := sink.NewNRZ(spitest.NewRecordRaw(&bytes.Buffer{}), 0, 0)
	assert.Error(t, err)
}

type recorder struct {
	frames [][]byte
	fail   error
	closed bool
}

func (r *recorder) Write(_ uint8, rgb []byte) error {
	r.frames = append(r.frames, bytes.Clone(rgb))
	return r.fail
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

func TestMux(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := sink.Mux{0: a, 3: b}

	require.NoError(t, m.Write(3, []byte{1, 2, 3}))
	assert.Empty(t, a.frames)
	assert.Equal(t, [][]byte{{1, 2, 3}}, b.frames)

	assert.ErrorIs(t, m.Write(1, []byte{1, 2, 3}), sink.ErrUnknownChannel)

	require.NoError(t, m.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestTee(t *testing.T) {
	boom := errors.New("boom")
	a, b := &recorder{fail: boom}, &recorder{}
	tee := sink.Tee{a, b}

	err := tee.Write(0, []byte{9, 9, 9})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, b.frames, 1, "later sinks still get the frame")
	require.NoError(t, tee.Close())
	assert.True(t, a.closed && b.closed)
}

func TestSim(t *testing.T) {
	var out bytes.Buffer
	s := sink.NewSim(zerolog.New(&out).Level(zerolog.DebugLevel), 2)

	frame := pixel.Bytes([]pixel.Pixel{pixel.White, pixel.Black})
	require.NoError(t, s.Write(1, frame))
	assert.Zero(t, out.Len())
	require.NoError(t, s.Write(1, frame))
	assert.Equal(t, uint64(2), s.Frames())
	assert.Contains(t, out.String(), `"message":"sim frame"`)
	assert.Contains(t, out.String(), `"lit":1`)
	assert.Contains(t, out.String(), `"avg":127`)
}

func TestSnapshot(t *testing.T) {
	s := sink.NewSnapshot()
	_, err := s.Image(0, 4)
	assert.ErrorIs(t, err, sink.ErrUnknownChannel)

	in := []pixel.Pixel{pixel.Red, pixel.Green, pixel.Blue}
	require.NoError(t, s.Write(0, pixel.Bytes(in)))
	in[0] = pixel.White
	f, ok := s.Frame(0)
	require.True(t, ok)
	assert.Equal(t, pixel.Red, f[0], "frames are copied on write")

	img, err := s.Image(0, 4)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 4), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(3, 3))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.NRGBAAt(4, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(11, 2))

	var enc bytes.Buffer
	require.NoError(t, s.EncodePNG(&enc, 0, 2))
	dec, err := png.Decode(&enc)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 2), dec.Bounds())
}

type fakeDrawer struct {
	last   image.Image
	halted bool
	bounds image.Rectangle
}

func (f *fakeDrawer) String() string          { return "fake" }
func (f *fakeDrawer) Halt() error             { f.halted = true; return nil }
func (f *fakeDrawer) ColorModel() color.Model { return color.NRGBAModel }
func (f *fakeDrawer) Bounds() image.Rectangle { return f.bounds }
func (f *fakeDrawer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	f.last = src
	return nil
}

func TestDisplay(t *testing.T) {
	fd := &fakeDrawer{bounds: image.Rect(0, 0, 2, 1)}
	d := sink.NewDisplay(fd, 2)

	require.NoError(t, d.Write(0, pixel.Bytes([]pixel.Pixel{pixel.Red, pixel.Blue})))
	require.NotNil(t, fd.last)
	r, _, _, _ := fd.last.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	_, _, b, _ := fd.last.At(1, 0).RGBA()
	assert.Equal(t, uint32(0xffff), b)

	assert.Error(t, d.Write(0, []byte{1, 2, 3}))
	require.NoError(t, d.Close())
	assert.True(t, fd.halted)
	assert.ErrorIs(t, d.Write(0, make([]byte, 6)), sink.ErrClosed)
}
