// Package builder decorates a generator with an ordered chain of modifiers.
//
// Two forms are offered. WithModifier nests concrete types, so the whole
// effect is one value with no interface indirection per frame:
//
//	fx := builder.WithModifier(builder.WithModifier(grad, modifier.Reverse{}), dim)
//
// New(...).With(...).Build() collects modifiers at runtime for effects that
// are assembled from configuration. Either way the chain is built once and
// reused every frame.
package builder

import (
	"slices"

	"github.com/coreman2200/arcaluminis-fx/generator"
	"github.com/coreman2200/arcaluminis-fx/modifier"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

// Composite runs Inner then Mod. Its lifetime is Inner's.
type Composite[G generator.Generator, M modifier.Modifier] struct {
	Inner G
	Mod   M
}

// WithModifier wraps g so that m runs after it.
func WithModifier[G generator.Generator, M modifier.Modifier](g G, m M) Composite[G, M] {
	return Composite[G, M]{Inner: g, Mod: m}
}

func (c Composite[G, M]) Generate(buf []pixel.Pixel, now uint32) {
	c.Inner.Generate(buf, now)
	c.Mod.Modify(buf, now)
}

func (c Composite[G, M]) Alive(now uint32) bool { return c.Inner.Alive(now) }

// Builder accumulates modifiers for a generator.
type Builder struct {
	gen  generator.Generator
	mods []modifier.Modifier
}

func New(g generator.Generator) Builder {
	return Builder{gen: g}
}

// With returns a builder that also applies m, after every modifier already
// added. The receiver is left unchanged.
func (b Builder) With(m modifier.Modifier) Builder {
	return Builder{gen: b.gen, mods: append(slices.Clip(b.mods), m)}
}

// Build yields the composed generator. A builder with no modifiers yields
// the generator itself.
func (b Builder) Build() generator.Generator {
	if len(b.mods) == 0 {
		return b.gen
	}
	return &Chain{Inner: b.gen, Mods: slices.Clone(b.mods)}
}

// Chain applies Mods in order after Inner.
type Chain struct {
	Inner generator.Generator
	Mods  []modifier.Modifier
}

func (c *Chain) Generate(buf []pixel.Pixel, now uint32) {
	c.Inner.Generate(buf, now)
	for _, m := range c.Mods {
		m.Modify(buf, now)
	}
}

func (c *Chain) Alive(now uint32) bool { return c.Inner.Alive(now) }
