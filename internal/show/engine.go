package show

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coreman2200/arcaluminis-fx/generator"
	"github.com/coreman2200/arcaluminis-fx/modifier"
	"github.com/coreman2200/arcaluminis-fx/param"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

// Output receives finished frames. sink.Sink satisfies it.
type Output interface {
	Write(channel uint8, rgb []byte) error
}

// Policy says what the engine does once an effect is no longer alive.
type Policy int

const (
	// Restart rebuilds the effect with its clock starting now.
	Restart Policy = iota
	// Hold keeps showing the last frame the effect produced.
	Hold
	// Blank shows black.
	Blank
)

func (p Policy) String() string {
	switch p {
	case Restart:
		return "restart"
	case Hold:
		return "hold"
	case Blank:
		return "blank"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "restart":
		return Restart, nil
	case "hold":
		return Hold, nil
	case "blank":
		return Blank, nil
	}
	return Restart, fmt.Errorf("unknown expiry policy %q", s)
}

type slot struct {
	name string
	gen  generator.Generator
	buf  []pixel.Pixel
}

func (s *slot) set(name string, g generator.Generator) {
	s.name, s.gen = name, g
	pixel.Fill(s.buf, pixel.Black)
}

func (s *slot) clear() {
	s.name, s.gen = "", nil
}

// Engine renders the active effect, crossfades into an armed next effect
// and writes the result to an Output. It is not safe for concurrent use;
// one render loop owns it.
type Engine struct {
	Registry *Registry
	Out      Output
	Channel  uint8
	Policy   Policy
	// ClearEachFrame blacks out the buffers before every generate. Leave it
	// off for effects that build trails on the previous frame.
	ClearEachFrame bool
	// Gamma corrects the mixed frame on its way out. The effect buffers are
	// left linear.
	Gamma bool
	// Limit caps the power draw of the final frame. The zero value passes
	// frames through.
	Limit modifier.Limiter
	Log   zerolog.Logger

	active, next slot
	out          []pixel.Pixel

	alpha  uint8
	fading bool

	master  uint8
	frameID uint64
}

func NewEngine(n int, reg *Registry, out Output, channel uint8) (*Engine, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", n)
	}
	if reg == nil {
		return nil, errors.New("registry is nil")
	}
	return &Engine{
		Registry: reg,
		Out:      out,
		Channel:  channel,
		Log:      zerolog.Nop(),
		active:   slot{buf: make([]pixel.Pixel, n)},
		next:     slot{buf: make([]pixel.Pixel, n)},
		out:      make([]pixel.Pixel, n),
		master:   255,
	}, nil
}

// Len is the strip length.
func (e *Engine) Len() int { return len(e.out) }

// SetEffect makes name the active effect immediately, started at now, and
// cancels any crossfade.
func (e *Engine) SetEffect(name string, now uint32) error {
	g, err := e.Registry.Build(name, now, len(e.out))
	if err != nil {
		return err
	}
	e.active.set(name, g)
	e.next.clear()
	e.alpha, e.fading = 0, false
	return nil
}

// ArmNext prepares name, started at now, as the crossfade target.
func (e *Engine) ArmNext(name string, now uint32) error {
	g, err := e.Registry.Build(name, now, len(e.out))
	if err != nil {
		return err
	}
	e.next.set(name, g)
	return nil
}

// SetCrossfade sets the mix toward the armed effect. 0 shows only the
// active effect; 255 promotes the armed effect to active.
func (e *Engine) SetCrossfade(alpha uint8) {
	switch {
	case alpha == 0:
		e.alpha, e.fading = 0, false
	case alpha == 255:
		e.alpha, e.fading = 0, false
		if e.next.gen != nil {
			e.active, e.next = e.next, e.active
			e.next.clear()
		}
	default:
		e.alpha, e.fading = alpha, e.next.gen != nil
	}
}

// SetBrightness sets the master level applied after mixing.
func (e *Engine) SetBrightness(level uint8) { e.master = level }

func (e *Engine) Active() string { return e.active.name }

func (e *Engine) Armed() string { return e.next.name }

func (e *Engine) FrameID() uint64 { return e.frameID }

// Frame is the last rendered frame. It is reused by the next Render.
func (e *Engine) Frame() []pixel.Pixel { return e.out }

func (e *Engine) run(s *slot, now uint32) {
	if s.gen == nil {
		pixel.Fill(s.buf, pixel.Black)
		return
	}
	if !s.gen.Alive(now) {
		switch e.Policy {
		case Hold:
			return
		case Blank:
			pixel.Fill(s.buf, pixel.Black)
			return
		case Restart:
			g, err := e.Registry.Build(s.name, now, len(s.buf))
			if err != nil {
				pixel.Fill(s.buf, pixel.Black)
				return
			}
			s.gen = g
		}
	}
	if e.ClearEachFrame {
		pixel.Fill(s.buf, pixel.Black)
	}
	s.gen.Generate(s.buf, now)
}

// Render produces the frame for now and writes it out.
func (e *Engine) Render(now uint32) error {
	e.run(&e.active, now)
	if e.fading {
		e.run(&e.next, now)
		for i := range e.out {
			e.out[i] = e.active.buf[i].Lerp(e.next.buf[i], e.alpha)
		}
	} else {
		copy(e.out, e.active.buf)
	}
	modifier.Brightness{Factor: param.Of(e.master)}.Modify(e.out, now)
	if e.Gamma {
		modifier.GammaCorrection{}.Modify(e.out, now)
	}
	e.Limit.Modify(e.out, now)

	e.frameID++
	if e.Out == nil {
		return nil
	}
	if err := e.Out.Write(e.Channel, pixel.Bytes(e.out)); err != nil {
		return fmt.Errorf("frame %d: %w", e.frameID, err)
	}
	return nil
}

// Hooks adapts the engine for a Player. clock supplies the start time for
// effects the player switches to.
func (e *Engine) Hooks(clock func() uint32) Hooks {
	return Hooks{
		SetEffect: func(name string) {
			if err := e.SetEffect(name, clock()); err != nil {
				e.Log.Warn().Err(err).Str("effect", name).Msg("set effect")
			}
		},
		ArmNext: func(name string) {
			if err := e.ArmNext(name, clock()); err != nil {
				e.Log.Warn().Err(err).Str("effect", name).Msg("arm next")
			}
		},
		SetCrossfade:  e.SetCrossfade,
		SetBrightness: e.SetBrightness,
	}
}
