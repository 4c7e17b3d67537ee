package main

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexusnext/nexusnext/engine"
	"github.com/nexusnext/nexusnext/engine/quality"
	"github.com/nexusnext/nexusnext/engine/renderer"
	"github.com/nexusnext/nexusnext/engine/scene"
	"github.com/nexusnext/nexusnext/engine/scroll"
	"github.com/nexusnext/nexusnext/engine/window"
)

var flagProfile bool

// showcaseCmd runs the animated brand experience in a native window.
var showcaseCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Run the animated WebGPU brand experience",
	RunE:  runShowcase,
}

func init() {
	showcaseCmd.Flags().BoolVar(&flagProfile, "profile", false, "log frame statistics")
}

func runShowcase(cmd *cobra.Command, args []string) error {
	network := quality.NetworkUnknown
	if cfg.Showcase.NetworkProbeURL != "" {
		probeCtx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
		network = quality.ProbeNetwork(probeCtx, http.DefaultClient, cfg.Showcase.NetworkProbeURL)
		cancel()
	}

	selector := quality.NewSelector(quality.Signals{
		ViewportWidth: cfg.Showcase.Width,
		Network:       network,
	})
	settings := selector.Current()
	logger.Info("quality tier selected",
		zap.String("tier", settings.Tier.String()),
		zap.Int("particles", settings.ParticleCount),
		zap.Bool("antialias", settings.Antialias),
	)

	win := window.NewWindow(
		window.WithTitle("Nexusnext"),
		window.WithWidth(cfg.Showcase.Width),
		window.WithHeight(cfg.Showcase.Height),
	)

	msaa := renderer.MSAAOff
	if settings.Antialias {
		msaa = renderer.MSAA4x
	}
	rend := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithMSAA(msaa),
		renderer.WithPowerPreference(settings.PowerPreference),
	)
	defer rend.Release()

	if err := rend.RegisterPipelines(particlePipeline(), strandPipeline()); err != nil {
		return err
	}

	tracker := scroll.NewTracker()

	sphere := scene.NewManager(scene.KindSphere,
		scene.WithLogger(logger),
		scene.WithRenderer(rend),
	)
	helix := scene.NewManager(scene.KindHelix,
		scene.WithLogger(logger),
		scene.WithRenderer(rend),
	)

	e := engine.NewEngine(
		engine.WithLogger(logger),
		engine.WithWindow(win),
		engine.WithRenderer(rend),
		engine.WithScrollTracker(tracker),
		engine.WithQualitySelector(selector),
		engine.WithScene(0, sphere),
		engine.WithScene(1, helix),
		engine.WithProfiling(flagProfile),
	)

	sphere.Mount(settings)
	helix.Mount(settings)

	e.Run()
	return nil
}
