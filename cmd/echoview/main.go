// Command echoview shows the echo simulator in a window.
//
// The sector image fills the top of the window and the M-mode display the
// bottom band. Both engines tick once per display refresh.
//
// Keys: Space toggles freeze, D toggles color Doppler, M toggles
// measurement mode and Escape drops the caliper. In measurement mode a
// left click on the sector places a caliper point.
//
// Architecture:
//
//	echosim.Engine + mmode.Engine → gg.Context (ggcanvas) → gogpu window
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/gogpu/echosim"
	"github.com/gogpu/echosim/catalog"
	"github.com/gogpu/echosim/config"
	"github.com/gogpu/echosim/mmode"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
)

// mmodeShare is the fraction of the window height given to M-mode.
const mmodeShare = 0.3

func main() {
	cfgPath := flag.String("config", "", "config file (yaml or json)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("echoview: %v", err)
	}
	if level, err := cfg.Level(); err == nil {
		echosim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	c, err := catalog.Builtin().Get(cfg.Case)
	if err != nil {
		log.Fatalf("echoview: %v", err)
	}

	width := cfg.Sector.Width
	height := cfg.Sector.Height + cfg.MMode.Height

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("echosim: " + c.Name).
		WithSize(width, height).
		WithContinuousRender(false))

	eng := echosim.NewEngine(0, 0)
	mm := mmode.New(0, 0)
	clock := echosim.NewClock(nil)

	var frozen, doppler, measure atomic.Bool
	frozen.Store(cfg.View.Frozen)
	doppler.Store(cfg.View.ColorDoppler)
	measure.Store(cfg.View.MeasureMode)
	// sectorHeight is the height of the sector band at the last refresh.
	var sectorHeight atomic.Int64

	state := func() echosim.ViewState {
		vs := cfg.View.State()
		vs.Frozen = frozen.Load()
		vs.ColorDoppler = doppler.Load()
		vs.MeasureMode = measure.Load()
		return vs
	}

	var canvas *ggcanvas.Canvas
	var anim *gogpu.AnimationToken

	app.OnDraw(func(dc *gogpu.Context) {
		if anim == nil {
			anim = app.StartAnimation()
		}

		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}
		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			canvas, err = ggcanvas.New(provider, w, h)
			if err != nil {
				log.Fatalf("echoview: create canvas: %v", err)
			}
		}
		if cw, ch := canvas.Size(); cw != w || ch != h {
			if err := canvas.Resize(w, h); err != nil {
				log.Printf("echoview: resize canvas: %v", err)
			}
		}

		mh := int(float64(h) * mmodeShare)
		sh := h - mh
		sectorHeight.Store(int64(sh))
		if err := eng.Resize(w, sh); err != nil {
			log.Printf("echoview: resize sector: %v", err)
		}
		if err := mm.Resize(w, mh); err != nil {
			log.Printf("echoview: resize m-mode: %v", err)
		}

		vs := state()
		elapsed := clock.Elapsed()
		eng.Draw(c, vs, elapsed)
		mm.Tick(c, vs, elapsed)

		if err := canvas.Draw(func(cc *gg.Context) {
			cc.ClearWithColor(gg.Black)
			if img := eng.Image(); img != nil {
				cc.DrawImage(gg.ImageBufFromImage(img), 0, 0)
			}
			if err := mm.Render(cc, 0, float64(sh)); err != nil {
				echosim.Logger().Debug("echoview: m-mode render", "err", err)
			}
		}); err != nil {
			log.Printf("echoview: draw: %v", err)
		}
		if err := canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
			log.Printf("echoview: present: %v", err)
		}
	})

	events := app.EventSource()
	events.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		switch key {
		case gpucontext.KeySpace:
			echosim.Logger().Info("echoview: freeze toggled", "frozen", toggle(&frozen))
		case gpucontext.KeyD:
			echosim.Logger().Info("echoview: color doppler toggled", "on", toggle(&doppler))
		case gpucontext.KeyM:
			on := toggle(&measure)
			if !on {
				eng.ResetMeasurement()
			}
			echosim.Logger().Info("echoview: measurement mode toggled", "on", on)
		case gpucontext.KeyEscape:
			eng.ResetMeasurement()
		}
	})
	events.OnMousePress(func(button gpucontext.MouseButton, x, y float64) {
		if m := clickSector(eng, button, x, y, int(sectorHeight.Load()), state()); m != nil {
			echosim.Logger().Info("echoview: measurement", "mm", m.DistanceMm, "pxPerMm", m.PxPerMm)
		}
	})

	app.OnClose(func() {
		if anim != nil {
			anim.Stop()
		}
		_ = eng.Close()
		gg.CloseAccelerator()
	})

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}

// toggle flips b and returns the new value.
func toggle(b *atomic.Bool) bool {
	for {
		v := b.Load()
		if b.CompareAndSwap(v, !v) {
			return !v
		}
	}
}

// clickSector forwards a left click inside the sector band to eng.
// Clicks on the M-mode band below sectorH are ignored.
func clickSector(eng *echosim.Engine, button gpucontext.MouseButton, x, y float64, sectorH int, vs echosim.ViewState) *echosim.Measurement {
	if button != gpucontext.MouseButtonLeft || y < 0 || y >= float64(sectorH) {
		return nil
	}
	return eng.Click(x, y, vs)
}
