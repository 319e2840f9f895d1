// Command echosim runs the echo simulator headless and writes snapshots.
//
// The sector engine and the M-mode engine tick on two independent loops
// at the configured frame rate. Both read the same case and view state.
// After the configured number of frames (or on SIGINT) the last sector
// frame and the M-mode display are written as PNG files.
//
// Usage:
//
//	echosim [-config echosim.yaml] [-case vsd] [-view PSAX] [-frames 300] [-out dir]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gogpu/echosim"
	"github.com/gogpu/echosim/catalog"
	"github.com/gogpu/echosim/config"
	"github.com/gogpu/echosim/mmode"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "config file (yaml or json)")
		caseID  = flag.String("case", "", "case id, overrides config")
		view    = flag.String("view", "", "PLAX, PSAX or A4C, overrides config")
		frames  = flag.Int("frames", -1, "frames to render, overrides config")
		out     = flag.String("out", "", "output directory, overrides config")
		list    = flag.Bool("list", false, "list built-in cases and exit")
	)
	flag.Parse()

	if *list {
		for _, c := range catalog.Builtin().Cases() {
			fmt.Printf("%-8s %3.0f bpm  %s\n", c.ID, c.HeartRate(), c.Name)
		}
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("echosim: %v", err)
	}
	if *caseID != "" {
		cfg.Case = *caseID
	}
	if *view != "" {
		cfg.View.Name = *view
	}
	if *frames >= 0 {
		cfg.Frames = *frames
	}
	if *out != "" {
		cfg.OutputDir = *out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("echosim: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	echosim.SetLogger(logger)

	c, err := catalog.Builtin().Get(cfg.Case)
	if err != nil {
		return err
	}
	vs := cfg.View.State()
	if !vs.View.Known() {
		logger.Warn("unknown view, using PLAX layout", "view", vs.View)
	}

	eng := echosim.NewEngine(cfg.Sector.Width, cfg.Sector.Height,
		echosim.WithMeasurementHandler(func(m *echosim.Measurement) {
			if m == nil {
				logger.Info("measurement cleared")
				return
			}
			logger.Info("measurement", "mm", fmt.Sprintf("%.1f", m.DistanceMm), "pxPerMm", m.PxPerMm)
		}))
	defer eng.Close()
	mm := mmode.New(cfg.MMode.Width, cfg.MMode.Height)

	for _, click := range cfg.Clicks {
		st := vs
		st.MeasureMode = true
		eng.Click(click.X, click.Y, st)
	}

	logger.Info("starting",
		"case", c.ID, "view", vs.View, "depthCm", vs.DepthCm,
		"frames", cfg.Frames, "fps", cfg.FPS, "engine", eng.ID())

	clock := echosim.NewClock(nil)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop(ctx, cfg.Interval(), cfg.Frames, func() {
			eng.Draw(c, vs, clock.Elapsed())
		})
	})
	g.Go(func() error {
		return loop(ctx, cfg.Interval(), cfg.Frames, func() {
			mm.Tick(c, vs, clock.Elapsed())
		})
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return writeOutputs(cfg, eng, mm, c, vs)
}

// loop calls tick every interval until frames ticks ran or ctx is done.
// frames == 0 runs until cancelled.
func loop(ctx context.Context, interval time.Duration, frames int, tick func()) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for n := 0; frames == 0 || n < frames; n++ {
		tick()
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
	return nil
}

func writeOutputs(cfg config.Config, eng *echosim.Engine, mm *mmode.Engine, c *catalog.Case, vs echosim.ViewState) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path, err := eng.SaveSnapshot(cfg.OutputDir, vs.View, c.ID)
	if err != nil {
		return err
	}
	fmt.Println(path)

	mpath := filepath.Join(cfg.OutputDir, strings.TrimSuffix(echosim.SnapshotName(vs.View, c.ID), ".png")+"-mmode.png")
	f, err := os.Create(mpath)
	if err != nil {
		return fmt.Errorf("create m-mode snapshot: %w", err)
	}
	if err := mm.Snapshot(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close m-mode snapshot: %w", err)
	}
	fmt.Println(mpath)

	if cfg.ValveTrace {
		tpath := filepath.Join(cfg.OutputDir, fmt.Sprintf("valves-%s.png", vs.View))
		if err := mmode.SaveValveTrace(tpath, vs.View, 200); err != nil {
			return err
		}
		fmt.Println(tpath)
	}
	return nil
}
