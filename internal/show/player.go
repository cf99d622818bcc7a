package show

import (
	"sync"

	"github.com/coreman2200/arcaluminis-fx/envelope"
)

// PlayerState enumerates sequencer states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are the callbacks a Player drives. Any of them may be nil.
type Hooks struct {
	// SetEffect switches the active effect immediately.
	SetEffect func(name string)
	// ArmNext prepares the effect the running clip fades into.
	ArmNext func(name string)
	// SetCrossfade mixes between active and armed; 255 completes the fade.
	SetCrossfade func(alpha uint8)
	// SetBrightness applies the clip's brightness automation.
	SetBrightness func(level uint8)
}

// Player owns a Program timeline and steps it in milliseconds.
type Player struct {
	State PlayerState

	prog  Program
	curve []envelope.Keyframes[envelope.U8]
	nowMs uint64 // position within one pass of the program
	idx   int

	armed      bool
	armedIndex int
	lastAlpha  uint8
	lastLevel  int

	hooks Hooks
}

func NewPlayer(h Hooks) *Player {
	return &Player{State: Idle, hooks: h, armedIndex: -1, lastLevel: -1}
}

// Load replaces the current program and resets to Idle.
func (p *Player) Load(prog Program) error {
	if err := prog.Validate(nil); err != nil {
		return err
	}
	p.prog = prog
	p.curve = make([]envelope.Keyframes[envelope.U8], len(prog.Clips))
	for i, c := range prog.Clips {
		p.curve[i] = c.brightness()
	}
	p.nowMs = 0
	p.idx = 0
	p.State = Idle
	p.resetFade()
	return nil
}

func (p *Player) resetFade() {
	p.armed = false
	p.armedIndex = -1
	p.lastAlpha = 0
}

// Start moves to Running and primes the current clip.
func (p *Player) Start() {
	if p.State == Running || len(p.prog.Clips) == 0 {
		return
	}
	p.State = Running
	p.enter(p.idx)
}

func (p *Player) Pause() {
	if p.State == Running {
		p.State = Paused
	}
}

func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop returns to the start of the program.
func (p *Player) Stop() {
	p.State = Idle
	p.nowMs = 0
	p.idx = 0
	p.resetFade()
	p.crossfade(0)
}

// Seek jumps to program time t, clamped to the last millisecond of the
// program, and switches to the clip found there.
func (p *Player) Seek(t uint32) {
	if len(p.prog.Clips) == 0 {
		return
	}
	pos := uint64(t)
	if total := p.prog.TotalMs(); pos >= total {
		pos = total - 1
	}
	var acc uint64
	idx := 0
	for i, c := range p.prog.Clips {
		if pos < acc+uint64(c.DurationMs) {
			idx = i
			break
		}
		acc += uint64(c.DurationMs)
	}
	p.nowMs = pos
	p.enter(idx)
}

// Position reports the program time and the index of the current clip.
func (p *Player) Position() (ms uint64, clip int) { return p.nowMs, p.idx }

// Clip returns the current clip.
func (p *Player) Clip() Clip { return p.prog.Clips[p.idx] }

// Tick advances the timeline by dt milliseconds and fires hooks. A dt that
// spans several clips walks through each of them in order.
func (p *Player) Tick(dt uint32) {
	if p.State != Running || len(p.prog.Clips) == 0 || dt == 0 {
		return
	}
	p.nowMs += uint64(dt)
	for p.State == Running && p.step() {
	}
}

// step fires the hooks for the current clip and advances past it if it has
// ended. It reports whether it advanced.
func (p *Player) step() bool {
	clip, local := p.current()
	level := uint8(p.curve[p.idx].Sample(uint32(min(local, uint64(^uint32(0))))))
	if len(clip.Brightness) == 0 {
		level = 255
	}
	p.brightness(level)

	dur := uint64(clip.DurationMs)
	if clip.XFadeMs > 0 && local+uint64(clip.XFadeMs) >= dur {
		next := p.nextIndex()
		if !p.armed && next != -1 && p.hooks.ArmNext != nil {
			p.hooks.ArmNext(p.prog.Clips[next].Effect)
			p.armed = true
			p.armedIndex = next
		}
		if p.armed {
			var remain uint64
			if local < dur {
				remain = dur - local
			}
			alpha := uint8(255 - remain*255/uint64(clip.XFadeMs))
			if alpha != p.lastAlpha {
				p.crossfade(alpha)
				p.lastAlpha = alpha
			}
		}
	}

	if local < dur {
		return false
	}
	p.advance(local - dur)
	return true
}

func (p *Player) current() (Clip, uint64) {
	var acc uint64
	for i := 0; i < p.idx; i++ {
		acc += uint64(p.prog.Clips[i].DurationMs)
	}
	return p.prog.Clips[p.idx], p.nowMs - acc
}

func (p *Player) nextIndex() int {
	n := p.idx + 1
	if n >= len(p.prog.Clips) {
		if p.prog.Loop {
			return 0
		}
		return -1
	}
	return n
}

// advance moves to the next clip carrying over overshoot milliseconds.
func (p *Player) advance(overshoot uint64) {
	next := p.nextIndex()
	if next == -1 {
		p.State = Idle
		p.crossfade(0)
		p.resetFade()
		return
	}
	promoted := p.armed && p.armedIndex == next && p.lastAlpha == 255
	if next == 0 {
		p.nowMs = overshoot
	}
	p.idx = next
	p.resetFade()
	if !promoted {
		p.enter(next)
		return
	}
	p.lastLevel = -1
}

// enter makes clip i current without a fade.
func (p *Player) enter(i int) {
	p.idx = i
	p.resetFade()
	p.lastLevel = -1
	if p.hooks.SetEffect != nil {
		p.hooks.SetEffect(p.prog.Clips[i].Effect)
	}
	p.crossfade(0)
}

func (p *Player) crossfade(alpha uint8) {
	if p.hooks.SetCrossfade != nil {
		p.hooks.SetCrossfade(alpha)
	}
}

func (p *Player) brightness(level uint8) {
	if int(level) == p.lastLevel {
		return
	}
	p.lastLevel = int(level)
	if p.hooks.SetBrightness != nil {
		p.hooks.SetBrightness(level)
	}
}

// SafePlayer serializes access to a Player shared between the render loop
// and control handlers.
type SafePlayer struct {
	mu sync.Mutex
	P  *Player
}

func NewSafePlayer(h Hooks) *SafePlayer {
	return &SafePlayer{P: NewPlayer(h)}
}

func (s *SafePlayer) With(f func(p *Player)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.P)
}
