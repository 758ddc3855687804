package drapery

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// VisualizerOptions configures NewVisualizer. Zero fields fall back to the
// embedded catalog, empty assets and no script.
type VisualizerOptions struct {
	Config  Config
	Catalog *Catalog
	Assets  *Assets
	Script  *TestRunner

	OnOrder         func(summary string)
	OnSampleRequest func(summary string)
}

// Visualizer is the curtain configurator as an ebiten.Game. Each tick runs
// input and script steps against the UI scene, which write through the
// Store; the store notifies the compositor and the panel synchronously,
// after which transitions advance.
type Visualizer struct {
	cfg        Config
	store      *Store
	compositor *Compositor
	panel      *Panel
	ui         *Scene
	script     *TestRunner

	unsubscribe func()
}

// NewVisualizer wires a store, compositor and control panel together.
func NewVisualizer(opts VisualizerOptions) (*Visualizer, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	cat := opts.Catalog
	if cat == nil {
		cat = DefaultCatalog()
	}
	store := NewStore(cat)
	v := &Visualizer{
		cfg:        opts.Config,
		store:      store,
		compositor: NewCompositor(opts.Config.CanvasViewport(), opts.Assets, store.Selection()),
		panel:      NewPanel(store, opts.Config.PanelBounds(), opts.Config.CanvasViewport()),
		ui:         NewScene(),
		script:     opts.Script,
	}
	v.panel.OnOrder = opts.OnOrder
	v.panel.OnSampleRequest = opts.OnSampleRequest
	v.ui.Root().AddChild(v.panel.Root())
	v.ui.ScreenshotDir = opts.Config.ScreenshotDir
	if opts.Config.Debug {
		v.ui.SetDebugMode(true)
		v.compositor.Scene().SetDebugMode(true)
	}
	if v.script != nil {
		v.script.SetTarget(store)
		v.ui.SetTestRunner(v.script)
	}

	v.unsubscribe = store.Subscribe(func(sel Selection) {
		v.compositor.Apply(sel)
		v.panel.Sync(sel)
	})
	Logger().Info().Str("summary", store.Summary()).Msg("visualizer ready")
	return v, nil
}

// Store returns the selection store.
func (v *Visualizer) Store() *Store { return v.store }

// Compositor returns the layer compositor.
func (v *Visualizer) Compositor() *Compositor { return v.compositor }

// Panel returns the control panel.
func (v *Visualizer) Panel() *Panel { return v.panel }

// UI returns the scene holding the panel and canvas overlays.
func (v *Visualizer) UI() *Scene { return v.ui }

// Step runs one tick of dt seconds: input and script steps first, then
// transitions.
func (v *Visualizer) Step(dt float32) {
	v.ui.Update()
	v.compositor.Update(dt)
	v.panel.Update(dt)
}

// Update implements ebiten.Game. A finished script ends the run once its
// screenshots are written.
func (v *Visualizer) Update() error {
	v.Step(1 / float32(ebiten.TPS()))
	if v.script != nil && v.script.Done() && v.ui.PendingScreenshots() == 0 {
		Logger().Info().Msg("script finished")
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (v *Visualizer) Draw(screen *ebiten.Image) {
	v.compositor.Draw(screen)
	v.ui.Draw(screen)
}

// Layout implements ebiten.Game with a fixed logical size.
func (v *Visualizer) Layout(_, _ int) (int, int) {
	return v.cfg.Window.Width, v.cfg.Window.Height
}

// Close detaches the visualizer from its store and releases the canvas.
func (v *Visualizer) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
	v.compositor.Dispose()
}
