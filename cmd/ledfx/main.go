package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/arcaluminis-fx/internal/catalog"
	"github.com/coreman2200/arcaluminis-fx/internal/config"
	"github.com/coreman2200/arcaluminis-fx/internal/show"
	"github.com/coreman2200/arcaluminis-fx/internal/sink"
	"github.com/coreman2200/arcaluminis-fx/internal/ws"
	"github.com/coreman2200/arcaluminis-fx/modifier"
)

func main() {
	// ---- Flags (remain usable; config.yaml overrides what it sets) ----
	def := config.Default()
	var (
		driver     = flag.String("driver", def.Driver, "driver: spi | screen | sim")
		count      = flag.Int("count", def.Count, "number of LEDs on the strip")
		frameMs    = flag.Int("frame-ms", def.FrameMs, "frame interval in milliseconds")
		brightness = flag.Int("brightness", def.Brightness, "master brightness 0..255")
		effect     = flag.String("effect", def.Effect, "effect to play when no program is given")
		program    = flag.String("program", "", "path to a show program (yaml)")
		onExpire   = flag.String("on-expire", def.OnExpire, "when an effect ends: restart | hold | blank")
		spiPort    = flag.String("spi", "", "SPI port name; empty picks the first")
		addr       = flag.String("addr", def.Preview.Addr, "preview HTTP listen address; empty disables it")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		list       = flag.Bool("list", false, "list effects and exit")
		debug      = flag.Bool("debug", false, "log per-frame detail")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	reg := show.NewRegistry()
	catalog.Register(reg)
	if *list {
		for _, name := range reg.List() {
			os.Stdout.WriteString(name + "\n")
		}
		return
	}

	// ---- Effective config: flags, then config.yaml where it loads ----
	cfg := def
	cfg.Driver, cfg.Count, cfg.FrameMs = *driver, *count, *frameMs
	cfg.Brightness, cfg.Effect, cfg.Program = *brightness, *effect, *program
	cfg.OnExpire, cfg.SPI.Port, cfg.Preview.Addr = *onExpire, *spiPort, *addr
	if err := config.LoadInto(*configPath, cfg); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	policy, err := show.ParsePolicy(cfg.OnExpire)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// ---- Outputs: the selected driver, plus the preview hub ----
	out, selected := openDriver(cfg)
	snap := sink.NewSnapshot()
	hub := ws.NewHub(log.Logger, snap)
	hub.SetStatus("driver", selected)
	hub.SetStatus("count", cfg.Count)
	outputs := sink.Tee{out, snap, hub}

	engine, err := show.NewEngine(cfg.Count, reg, outputs, cfg.Channel)
	if err != nil {
		log.Fatal().Err(err).Msg("engine")
	}
	engine.Policy = policy
	engine.Gamma = cfg.Gamma
	engine.Limit = modifier.Limiter{
		WhiteCap:  uint16(cfg.Power.WhiteCap),
		ChannelmA: uint16(cfg.Power.ChannelmA),
		BudgetmA:  uint32(cfg.Power.BudgetmA),
	}
	engine.Log = log.Logger
	engine.SetBrightness(uint8(cfg.Brightness))

	boot := time.Now()
	clock := func() uint32 { return uint32(time.Since(boot).Milliseconds()) }

	player := show.NewSafePlayer(engine.Hooks(clock))
	if cfg.Program != "" {
		prog, err := show.LoadProgram(cfg.Program)
		if err == nil {
			err = prog.Validate(reg)
		}
		if err == nil {
			player.With(func(p *show.Player) { err = p.Load(*prog) })
		}
		if err != nil {
			log.Fatal().Err(err).Str("program", cfg.Program).Msg("program load failed")
		}
		player.With(func(p *show.Player) { p.Start() })
		log.Info().Str("program", cfg.Program).Int("clips", len(prog.Clips)).Msg("program loaded")
	} else if err := engine.SetEffect(cfg.Effect, clock()); err != nil {
		log.Fatal().Err(err).Msg("effect")
	}

	// ---- HTTP preview ----
	var srv *http.Server
	if cfg.Preview.Addr != "" {
		mux := http.NewServeMux()
		hub.Routes(mux)
		srv = &http.Server{
			Addr:         cfg.Preview.Addr,
			Handler:      withCORS(mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.Preview.Addr).Str("driver", selected).Msg("HTTP server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("http server crashed")
			}
		}()
	}

	// ---- Render loop until SIGINT/SIGTERM ----
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	renderLoop(ctx, engine, player, hub, clock, cfg.FrameInterval())
	log.Info().Msg("shutting down")

	if srv != nil {
		_ = srv.Close()
	}
	if err := outputs.Close(); err != nil {
		log.Warn().Err(err).Msg("close outputs")
	}
}

func renderLoop(ctx context.Context, e *show.Engine, player *show.SafePlayer, hub *ws.Hub, clock func() uint32, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := clock()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		now := clock()
		player.With(func(p *show.Player) { p.Tick(now - last) })
		last = now
		if err := e.Render(now); err != nil {
			log.Debug().Err(err).Msg("render")
		}
		hub.SetStatus("effect", e.Active())
	}
}

// openDriver opens the configured output, falling back to the simulator
// when hardware is unavailable.
func openDriver(cfg *config.Config) (sink.Sink, string) {
	sim := func() sink.Sink { return sink.NewSim(log.Logger, 40) }
	switch cfg.Driver {
	case "sim":
		return sim(), "sim"

	case "screen":
		return sink.NewScreen(cfg.Count), "screen"

	case "spi":
		freq := physic.Frequency(cfg.SPI.FreqKHz) * physic.KiloHertz
		drv, err := sink.OpenNRZ(cfg.SPI.Port, cfg.Count, freq)
		if err != nil {
			log.Warn().Err(err).
				Str("driver", "spi").
				Str("port", cfg.SPI.Port).
				Int("freq_khz", cfg.SPI.FreqKHz).
				Msg("SPI init failed; falling back to SIM")
			return sim(), "sim"
		}
		log.Info().Str("dev", drv.String()).Int("count", cfg.Count).Msg("SPI strip ready")
		return drv, "spi"

	default:
		log.Warn().Str("driver", cfg.Driver).Msg("unknown driver; using SIM")
		return sim(), "sim"
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
