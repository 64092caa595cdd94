package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"transfont/clockface"
	"transfont/compositor"
	"transfont/config"
	"transfont/db"
	"transfont/glyphs"
	"transfont/misc"
	"transfont/preview"
	"transfont/sh1107"
	"transfont/timers"

	"github.com/d2r2/go-logger"
)

// Debug builds write frames to a PNG instead of driving the panel. CLOCK_DEBUG
// overrides this at runtime.
// go build -ldflags "-X 'main.DEBUG_MODE=false'" .
var DEBUG_MODE string = "true"
var FW_VERSION string = "0.2.0 (10.19.2026)"

var lg = logger.NewPackageLogger("main", logger.InfoLevel)

// panel is what the face is composed onto: the OLED, or a PNG preview when
// running without hardware.
type panel interface {
	compositor.Surface
	On()
	Off()
	Close()
	SetBrightness(level float64)
}

type previewPanel struct {
	*preview.Surface
}

func (previewPanel) On()                   {}
func (previewPanel) Off()                  {}
func (previewPanel) Close()                {}
func (previewPanel) SetBrightness(float64) {}

func openPanel(cfg config.Config) (panel, error) {
	if cfg.Debug {
		lg.Infof("🖼️ No panel in debug mode, writing frames to %s", cfg.PreviewPath)
		return previewPanel{preview.New(cfg.Width, cfg.Height, cfg.PreviewPath)}, nil
	}
	display, err := sh1107.New(cfg.I2CAddress, cfg.I2CBus, cfg.Rotation, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	return display, nil
}

func main() {
	defer logger.FinalizeLogger()

	config.DefaultDebug = DEBUG_MODE == "true"
	cfg, err := config.Load()
	if err != nil {
		lg.Fatalf("⚠️ Bad configuration: %v", err)
	}
	if cfg.Debug {
		for _, pkg := range []string{"main", "clockface", "compositor", "glyphs", "timers", "db", "preview", "misc", "config"} {
			logger.ChangePackageLogLevel(pkg, logger.DebugLevel)
		}
	}
	lg.Infof("🕰️ transfont v%s", FW_VERSION)

	// Init settings
	settings, err := db.Open(cfg.DBPath)
	if err != nil {
		lg.Fatalf("⚠️ Failed to open settings: %v", err)
	}
	defer settings.Close()
	if err := settings.SetOrCreate(db.Use24HourKey, cfg.Use24Hour); err != nil {
		lg.Fatalf("⚠️ Failed to seed settings: %v", err)
	}
	if err := settings.Set("FirmwareVersion", FW_VERSION); err != nil {
		lg.Errorf("⚠️ %v", err)
	}

	// Initialize the display
	display, err := openPanel(cfg)
	if err != nil {
		lg.Fatalf("⚠️ Failed to open display: %v", err)
	}
	defer display.Close()
	display.SetBrightness(cfg.Brightness)

	var indicator *misc.Indicator
	if cfg.IndicatorPin != "" {
		if indicator, err = misc.NewIndicator(cfg.IndicatorPin); err != nil {
			lg.Errorf("⚠️ Indicator disabled: %v", err)
			indicator = nil
		}
	}

	// Create a global context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create signal handlers for interrupts or shutdown requests
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	clock := timers.New(ctx, cfg.Location)
	comp := compositor.New()
	face, err := clockface.NewFace(clockface.Options{
		Glyphs:     glyphs.Embedded(),
		Compositor: comp,
		Format:     settings,
		Clock:      clock,
		OnColon:    indicator.Set,
		OnFrame:    func() { comp.Compose(display) },
	})
	if err != nil {
		lg.Fatalf("⚠️ %v", err)
	}

	if err := face.Start(); err != nil {
		lg.Fatalf("⚠️ Failed to start clock face: %v", err)
	}
	display.On()

	lg.Infof("Press CTRL+C to quit")
	select {
	case <-sigs:
		lg.Infof("Interrupt detected, exiting")
	case err := <-clock.Err():
		face.Shutdown()
		display.Off()
		lg.Fatalf("💥 Clock face failed: %v", err)
	}

	face.Shutdown()
	indicator.Off()
	display.Clear(sh1107.Black)
	display.Render()
	display.Off()
	lg.Infof("🛑 End of main() reached")
}
