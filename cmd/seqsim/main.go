// Command seqsim plays a show program against the effect catalog without
// hardware, logging every player event. It can dump the final frame as PNG.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/arcaluminis-fx/internal/catalog"
	"github.com/coreman2200/arcaluminis-fx/internal/show"
	"github.com/coreman2200/arcaluminis-fx/internal/sink"
)

func main() {
	var (
		programPath = flag.String("program", "", "path to a show program (yaml)")
		fps         = flag.Int("fps", 40, "simulation frames per second")
		count       = flag.Int("count", 60, "number of LEDs")
		realtime    = flag.Bool("realtime", false, "pace frames with a wall clock ticker")
		maxMs       = flag.Uint("max-ms", 10*60*1000, "stop after this much show time, for looping programs")
		pngPath     = flag.String("png", "", "write the last frame to this PNG file")
	)
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *programPath == "" || *fps <= 0 {
		log.Fatal().Msg("provide -program and a positive -fps")
	}
	prog, err := show.LoadProgram(*programPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load program")
	}
	reg := show.NewRegistry()
	catalog.Register(reg)
	if err := prog.Validate(reg); err != nil {
		log.Fatal().Err(err).Msg("validate program")
	}

	snap := sink.NewSnapshot()
	engine, err := show.NewEngine(*count, reg, snap, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("engine")
	}
	engine.Log = log.Logger

	var now uint32
	clock := func() uint32 { return now }
	hooks := engine.Hooks(clock)
	player := show.NewPlayer(show.Hooks{
		SetEffect: func(name string) {
			log.Info().Uint32("t", now).Str("effect", name).Msg("set effect")
			hooks.SetEffect(name)
		},
		ArmNext: func(name string) {
			log.Info().Uint32("t", now).Str("effect", name).Msg("arm next")
			hooks.ArmNext(name)
		},
		SetCrossfade: func(alpha uint8) {
			log.Debug().Uint32("t", now).Uint8("alpha", alpha).Msg("crossfade")
			hooks.SetCrossfade(alpha)
		},
		SetBrightness: func(level uint8) {
			log.Debug().Uint32("t", now).Uint8("level", level).Msg("brightness")
			hooks.SetBrightness(level)
		},
	})
	if err := player.Load(*prog); err != nil {
		log.Fatal().Err(err).Msg("load")
	}
	player.Start()

	dt := uint32(1000 / *fps)
	var tick <-chan time.Time
	if *realtime {
		t := time.NewTicker(time.Duration(dt) * time.Millisecond)
		defer t.Stop()
		tick = t.C
	}
	for player.State == show.Running && uint(now) < *maxMs {
		if tick != nil {
			<-tick
		}
		player.Tick(dt)
		now += dt
		if err := engine.Render(now); err != nil {
			log.Warn().Err(err).Msg("render")
		}
	}
	log.Info().Uint32("t", now).Uint64("frames", engine.FrameID()).Msg("done")

	if *pngPath == "" {
		return
	}
	f, err := os.Create(*pngPath)
	if err != nil {
		log.Fatal().Err(err).Msg("create png")
	}
	defer f.Close()
	if err := snap.EncodePNG(f, 0, 8); err != nil {
		log.Error().Err(err).Msg("encode png")
	}
}
