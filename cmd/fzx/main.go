package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/fzx"
	"github.com/jakecoffman/fzx/internal/draw"
	"github.com/jakecoffman/fzx/internal/scene"
	"golang.org/x/term"
)

func main() {
	var (
		sceneName  = flag.String("scene", fzx.GetEnv("FZX_SCENE", "boxes"), "builtin scene name or path to a YAML scene")
		configPath = flag.String("config", fzx.GetEnv("FZX_CONFIG", ""), "path to a YAML config file")
		steps      = flag.Uint("steps", 600, "number of steps to simulate, 0 runs until interrupted in view mode")
		dt         = flag.Float64("dt", 1.0/60, "step length in seconds")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "random seed for scene placement")
		view       = flag.Bool("view", false, "render the simulation in the terminal")
		fps        = flag.Int("fps", 60, "frames per second in view mode")
		record     = flag.String("record", "", "write a msgpack snapshot per step to this file")
		level      = flag.String("log-level", "", "debug, info, warn or error")
		jsonLog    = flag.Bool("json-log", false, "log as JSON")
		list       = flag.Bool("list", false, "list builtin scenes and exit")
		dumpConfig = flag.String("dump-config", "", "write the effective config to this file and exit")
	)
	flag.Parse()

	if *list {
		for _, name := range scene.Names() {
			s, _ := scene.Get(name)
			fmt.Printf("%-10s %s\n", name, s.Description)
		}
		return
	}

	cfg := fzx.DefaultConfig()
	if *configPath != "" {
		loaded, err := fzx.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *level != "" {
		cfg.LogLevel = *level
	}

	var logger *log.Logger
	if *jsonLog {
		logger = fzx.NewJSONLogger(os.Stderr, cfg.LogLevel)
	} else {
		logger = fzx.NewLogger(os.Stderr, cfg.LogLevel)
	}

	if *dumpConfig != "" {
		if err := fzx.SaveConfig(cfg, *dumpConfig); err != nil {
			logger.Error("failed to save config", "err", err)
			os.Exit(1)
		}
		logger.Info("config written", "path", *dumpConfig)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, logger, cfg, options{
		scene:  *sceneName,
		seed:   *seed,
		steps:  *steps,
		dt:     float32(*dt),
		view:   *view,
		fps:    *fps,
		record: *record,
	})
	stop()
	if err != nil {
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}
}

type options struct {
	scene  string
	seed   int64
	steps  uint
	dt     float32
	view   bool
	fps    int
	record string
}

// run loads the scene and simulates it. Every failure returns here so the
// recording is always closed.
func run(ctx context.Context, logger *log.Logger, cfg *fzx.Config, opts options) (err error) {
	s, err := scene.Load(opts.scene)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}
	space, err := scene.New(s, cfg, opts.seed)
	if err != nil {
		return fmt.Errorf("failed to create space: %w", err)
	}
	space.SetLogger(logger.WithPrefix("space"))
	logger.Info("scene ready", "scene", s.Name, "bodies", space.BodyCount(), "collidables", space.CollidableCount(), "broad_phase", cfg.BroadPhase, "seed", opts.seed)

	var onStep func(*fzx.Space) error
	if opts.record != "" {
		f, ferr := os.Create(opts.record)
		if ferr != nil {
			return fmt.Errorf("failed to create recording: %w", ferr)
		}
		rec := fzx.NewRecorder(f)
		onStep = rec.Record
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close recording: %w", cerr)
			}
			logger.Info("recording written", "path", opts.record, "frames", rec.Frames())
		}()
	}

	if opts.view {
		return runView(ctx, space, logger, draw.ViewerOptions{
			FPS:    opts.fps,
			DT:     opts.dt,
			Steps:  opts.steps,
			Flags:  fzx.DRAW_SHAPES,
			Logger: logger,
			OnStep: onStep,
		})
	}
	return runHeadless(ctx, space, logger, opts.steps, opts.dt, onStep)
}

func runView(ctx context.Context, space *fzx.Space, logger *log.Logger, opts draw.ViewerOptions) error {
	if !draw.IsTerminal() {
		return fmt.Errorf("view mode needs a terminal")
	}
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()
	logger.Debug("entering view mode", "fps", opts.FPS)
	// logs would tear the frame
	space.SetLogger(nil)
	return draw.Run(ctx, space, os.Stdin, os.Stdout, opts)
}

func runHeadless(ctx context.Context, space *fzx.Space, logger *log.Logger, steps uint, dt float32, onStep func(*fzx.Space) error) error {
	if steps == 0 {
		return fmt.Errorf("headless mode needs a step count")
	}
	start := time.Now()
	for i := uint(0); i < steps; i++ {
		if ctx.Err() != nil {
			logger.Warn("interrupted", "step", i)
			break
		}
		space.Step(dt)
		if onStep != nil {
			if err := onStep(space); err != nil {
				return err
			}
		}
		if stats := space.Stats(); stats.Steps%60 == 0 {
			logger.Info("progress",
				"step", stats.Steps,
				"awake", stats.Awake,
				"sleeping", stats.Sleeping,
				"pairs", stats.Arbiters,
				"contacts", stats.Contacts,
			)
		}
	}
	elapsed := time.Since(start)
	stats := space.Stats()
	logger.Info("done",
		"steps", stats.Steps,
		"elapsed", elapsed,
		"per_step", elapsed/time.Duration(max(stats.Steps, 1)),
		"awake", stats.Awake,
		"sleeping", stats.Sleeping,
	)
	return nil
}
