// Package show runs named effects on a strip: it owns the frame buffers,
// crossfades between effects and plays timed programs of clips.
package show

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/arcaluminis-fx/ease"
	"github.com/coreman2200/arcaluminis-fx/envelope"
	"github.com/coreman2200/arcaluminis-fx/generator"
)

var (
	ErrUnknownEffect = errors.New("unknown effect")
	ErrEmptyProgram  = errors.New("program has no clips")
)

// Factory builds a fresh instance of an effect whose clock starts at start,
// sized for an n-pixel strip.
type Factory func(start uint32, n int) generator.Generator

// Registry maps effect names to factories.
type Registry struct{ m map[string]Factory }

func NewRegistry() *Registry { return &Registry{m: map[string]Factory{}} }

func (r *Registry) Register(name string, f Factory) {
	if f == nil {
		return
	}
	r.m[name] = f
}

func (r *Registry) Get(name string) (Factory, bool) {
	f, ok := r.m[name]
	return f, ok
}

// Build looks up name and instantiates it.
func (r *Registry) Build(name string, start uint32, n int) (generator.Generator, error) {
	f, ok := r.m[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownEffect)
	}
	return f(start, n), nil
}

// List returns the registered names in order.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Keyframe is one point of a clip's brightness automation. Ease shapes the
// segment starting here.
type Keyframe struct {
	AtMs  uint32 `yaml:"at_ms"`
	Level uint8  `yaml:"level"`
	Ease  string `yaml:"ease,omitempty"`
}

// Clip plays one effect for DurationMs, optionally crossfading into the next
// clip over its last XFadeMs.
type Clip struct {
	Name       string     `yaml:"name"`
	Effect     string     `yaml:"effect"`
	DurationMs uint32     `yaml:"duration_ms"`
	XFadeMs    uint32     `yaml:"xfade_ms,omitempty"`
	Brightness []Keyframe `yaml:"brightness,omitempty"`
}

// Program is a full sequence of clips.
type Program struct {
	Version string `yaml:"version"`
	Loop    bool   `yaml:"loop,omitempty"`
	Clips   []Clip `yaml:"clips"`
}

// Validate checks that the program can be played against reg. A nil reg
// skips the effect lookup.
func (p *Program) Validate(reg *Registry) error {
	if len(p.Clips) == 0 {
		return ErrEmptyProgram
	}
	for i, c := range p.Clips {
		if c.DurationMs == 0 {
			return fmt.Errorf("clip %d (%s): zero duration", i, c.Name)
		}
		if c.XFadeMs > c.DurationMs {
			return fmt.Errorf("clip %d (%s): crossfade %dms longer than clip", i, c.Name, c.XFadeMs)
		}
		if reg != nil {
			if _, ok := reg.Get(c.Effect); !ok {
				return fmt.Errorf("clip %d (%s): %q: %w", i, c.Name, c.Effect, ErrUnknownEffect)
			}
		}
		for j := 1; j < len(c.Brightness); j++ {
			if c.Brightness[j].AtMs < c.Brightness[j-1].AtMs {
				return fmt.Errorf("clip %d (%s): brightness keys out of order", i, c.Name)
			}
		}
	}
	return nil
}

// TotalMs is the length of one pass through the program.
func (p *Program) TotalMs() uint64 {
	var t uint64
	for _, c := range p.Clips {
		t += uint64(c.DurationMs)
	}
	return t
}

func (c Clip) brightness() envelope.Keyframes[envelope.U8] {
	keys := make([]envelope.Key[envelope.U8], len(c.Brightness))
	for i, k := range c.Brightness {
		keys[i] = envelope.Key[envelope.U8]{At: k.AtMs, Value: envelope.U8(k.Level)}
		if k.Ease != "" {
			keys[i].Curve = ease.ByName(ease.Name(k.Ease))
		}
	}
	return envelope.Keyframes[envelope.U8]{Keys: keys}
}

func LoadProgram(path string) (*Program, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Program
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &p, nil
}

func SaveProgram(path string, p *Program) error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
