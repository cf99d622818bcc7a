package show_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/arcaluminis-fx/internal/show"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

type hookLog struct {
	calls  []string
	alphas []uint8
	levels []uint8
}

func (l *hookLog) hooks() show.Hooks {
	return show.Hooks{
		SetEffect:     func(name string) { l.calls = append(l.calls, "Set:"+name) },
		ArmNext:       func(name string) { l.calls = append(l.calls, "Arm:"+name) },
		SetCrossfade:  func(a uint8) { l.alphas = append(l.alphas, a) },
		SetBrightness: func(v uint8) { l.levels = append(l.levels, v) },
	}
}

func twoClips(loop bool) show.Program {
	return show.Program{
		Version: "show.v1",
		Loop:    loop,
		Clips: []show.Clip{
			{Name: "A", Effect: "red", DurationMs: 4000, XFadeMs: 2000},
			{Name: "B", Effect: "white", DurationMs: 4000},
		},
	}
}

func TestPlayerCrossfade(t *testing.T) {
	l := &hookLog{}
	p := show.NewPlayer(l.hooks())
	require.NoError(t, p.Load(twoClips(false)))
	p.Start()
	assert.Equal(t, show.Running, p.State)

	p.Tick(1900) // before the fade window
	p.Tick(200)  // 2100: arms B
	p.Tick(900)  // 3000
	p.Tick(1000) // 4000: fade completes, B is already active

	assert.Equal(t, []string{"Set:red", "Arm:white"}, l.calls)
	assert.Equal(t, []uint8{0, 13, 128, 255}, l.alphas)
	ms, clip := p.Position()
	assert.Equal(t, uint64(4000), ms)
	assert.Equal(t, 1, clip)
	assert.Equal(t, "B", p.Clip().Name)

	p.Tick(4000)
	assert.Equal(t, show.Idle, p.State, "end of a non-looping program")
	assert.Equal(t, uint8(0), l.alphas[len(l.alphas)-1])
}

func TestPlayerLoops(t *testing.T) {
	l := &hookLog{}
	p := show.NewPlayer(l.hooks())
	prog := show.Program{Loop: true, Clips: []show.Clip{
		{Name: "A", Effect: "red", DurationMs: 100},
		{Name: "B", Effect: "white", DurationMs: 100},
	}}
	require.NoError(t, p.Load(prog))
	p.Start()
	p.Tick(100)
	p.Tick(110)
	assert.Equal(t, []string{"Set:red", "Set:white", "Set:red"}, l.calls)
	ms, clip := p.Position()
	assert.Equal(t, uint64(10), ms, "overshoot carries into the next pass")
	assert.Equal(t, 0, clip)
	assert.Equal(t, show.Running, p.State)
}

func TestPlayerLongTickSpansClips(t *testing.T) {
	l := &hookLog{}
	p := show.NewPlayer(l.hooks())
	require.NoError(t, p.Load(show.Program{Clips: []show.Clip{
		{Name: "A", Effect: "red", DurationMs: 100},
		{Name: "B", Effect: "white", DurationMs: 100},
		{Name: "C", Effect: "red", DurationMs: 100},
	}}))
	p.Start()

	p.Tick(250)
	ms, clip := p.Position()
	assert.Equal(t, uint64(250), ms)
	assert.Equal(t, 2, clip)
	assert.Equal(t, []string{"Set:red", "Set:white", "Set:red"}, l.calls)

	p.Tick(100)
	assert.Equal(t, show.Idle, p.State, "past the end of a non-looping program")
}

func TestPlayerLongTickLoops(t *testing.T) {
	l := &hookLog{}
	p := show.NewPlayer(l.hooks())
	prog := show.Program{Loop: true, Clips: []show.Clip{
		{Name: "A", Effect: "red", DurationMs: 100},
		{Name: "B", Effect: "white", DurationMs: 100},
	}}
	require.NoError(t, p.Load(prog))
	p.Start()

	p.Tick(530)
	ms, clip := p.Position()
	assert.Equal(t, uint64(130), ms)
	assert.Equal(t, 1, clip)
	assert.Equal(t, show.Running, p.State)
}

func TestPlayerPauseSeekStop(t *testing.T) {
	l := &hookLog{}
	p := show.NewPlayer(l.hooks())
	assert.ErrorIs(t, p.Load(show.Program{}), show.ErrEmptyProgram)
	require.NoError(t, p.Load(twoClips(false)))

	p.Tick(100)
	ms, _ := p.Position()
	assert.Zero(t, ms, "idle players do not advance")

	p.Start()
	p.Pause()
	p.Tick(100)
	ms, _ = p.Position()
	assert.Zero(t, ms)
	p.Resume()
	p.Tick(100)
	ms, _ = p.Position()
	assert.Equal(t, uint64(100), ms)

	p.Seek(5000)
	ms, clip := p.Position()
	assert.Equal(t, uint64(5000), ms)
	assert.Equal(t, 1, clip)
	assert.Equal(t, "Set:white", l.calls[len(l.calls)-1])

	p.Seek(99999)
	ms, _ = p.Position()
	assert.Equal(t, uint64(7999), ms)

	p.Stop()
	ms, clip = p.Position()
	assert.Equal(t, show.Idle, p.State)
	assert.Zero(t, ms)
	assert.Zero(t, clip)
}

func TestPlayerBrightnessAutomation(t *testing.T) {
	l := &hookLog{}
	p := show.NewPlayer(l.hooks())
	require.NoError(t, p.Load(show.Program{Clips: []show.Clip{{
		Name: "A", Effect: "red", DurationMs: 2000,
		Brightness: []show.Keyframe{{AtMs: 0, Level: 0}, {AtMs: 1000, Level: 255}},
	}}}))
	p.Start()
	p.Tick(500)
	p.Tick(500)
	p.Tick(500)
	p.Tick(1)

	require.Len(t, l.levels, 2, "unchanged levels are not re-sent")
	assert.InDelta(t, 127, int(l.levels[0]), 1)
	assert.Equal(t, uint8(255), l.levels[1])
}

func TestPlayerDrivesEngine(t *testing.T) {
	out := &fakeOut{}
	e, err := show.NewEngine(1, registry(), out, 0)
	require.NoError(t, err)
	now := uint32(0)
	p := show.NewPlayer(e.Hooks(func() uint32 { return now }))
	require.NoError(t, p.Load(twoClips(true)))
	p.Start()
	assert.Equal(t, "red", e.Active())

	for now < 4000 {
		now += 25
		p.Tick(25)
		require.NoError(t, e.Render(now))
	}
	assert.Equal(t, "white", e.Active())
	assert.Equal(t, pixel.White, out.pixels()[0])
}
