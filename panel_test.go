package drapery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Screen points inside panel controls for the default 1240x600 layout.
var (
	ptColorTab  = [2]float64{953, 78}
	ptFabricTab = [2]float64{1060, 78}
	ptSizeTab   = [2]float64{1166, 78}
	ptNavy      = [2]float64{1020, 320}
	ptLinen     = [2]float64{1210, 180}
	ptVelvet    = [2]float64{1000, 300}
	ptXL        = [2]float64{1000, 320}
	ptZoom      = [2]float64{800, 30}
	ptOrder     = [2]float64{1000, 488}
	ptSample    = [2]float64{1000, 538}
)

type panelFixture struct {
	store *Store
	panel *Panel
	scene *Scene
}

func newPanelFixture(t *testing.T) *panelFixture {
	t.Helper()
	cfg := DefaultConfig()
	st := NewStore(DefaultCatalog())
	p := NewPanel(st, cfg.PanelBounds(), cfg.CanvasViewport())
	st.Subscribe(p.Sync)
	s := NewScene()
	s.Root().AddChild(p.Root())
	return &panelFixture{store: st, panel: p, scene: s}
}

func (f *panelFixture) click(pt [2]float64) {
	updateWorldTransform(f.scene.root, identityTransform, 1, false)
	f.scene.processPointer(pt[0], pt[1], true, MouseButtonLeft)
	f.scene.processPointer(pt[0], pt[1], false, MouseButtonLeft)
}

func TestPanelInitialState(t *testing.T) {
	f := newPanelFixture(t)
	p := f.panel

	assert.Equal(t, TabColor, p.ActiveBody())
	assert.False(t, p.Animating(), "first sync does not slide")
	assert.Equal(t, "Pure White · Plain · 200 × 270 cm", p.SummaryText())
	assert.Equal(t, p.SummaryText(), p.BadgeText())
	assert.Equal(t, "Zoom In", p.ZoomLabel())

	white := p.colors["white"]
	assert.True(t, white.frame.Visible)
	assert.True(t, white.marker.Visible)
	assert.Equal(t, selectedScale, white.group.ScaleX)
	assert.False(t, p.colors["navy"].frame.Visible)
	assert.True(t, p.designs["plain"].frame.Visible)
	assert.True(t, p.sizes["l"].frame.Visible)

	w, _ := p.badgeText.Label.Measure()
	assert.InDelta(t, w+20, p.badgeBack.ScaleX, 1e-9)
}

func TestPanelBuildsEveryOption(t *testing.T) {
	p := newPanelFixture(t).panel
	cat := DefaultCatalog()
	assert.Len(t, p.colors, len(cat.Colors()))
	assert.Len(t, p.designs, len(cat.Designs()))
	assert.Len(t, p.sizes, len(cat.Sizes()))
}

func TestPanelColorSwatchClick(t *testing.T) {
	f := newPanelFixture(t)
	f.click(ptNavy)

	sel := f.store.Selection()
	assert.Equal(t, "navy", sel.Color.ID)
	assert.False(t, f.panel.colors["white"].frame.Visible)
	assert.Equal(t, 1.0, f.panel.colors["white"].group.ScaleX)
	assert.True(t, f.panel.colors["navy"].frame.Visible)
	assert.Equal(t, markerLight, f.panel.colors["navy"].marker.Color)
	assert.Equal(t, markerDark, f.panel.colors["white"].marker.Color)
	assert.Equal(t, sel.Color.RGB(), f.panel.summaryDot.Color)
	assert.Equal(t, sel.Color.RGB(), f.panel.designs["velvet"].swatch.Color)
	assert.Equal(t, "Navy · Plain · 200 × 270 cm", f.panel.SummaryText())
}

func TestPanelTabSwitchSlidesBody(t *testing.T) {
	f := newPanelFixture(t)
	f.click(ptFabricTab)

	assert.Equal(t, TabFabric, f.store.Selection().ActiveTab)
	assert.Equal(t, TabFabric, f.panel.ActiveBody())
	assert.True(t, f.panel.Animating())
	body := f.panel.bodies[TabFabric]
	assert.Equal(t, bodyTop+bodySlide, body.Y)
	assert.Zero(t, body.Alpha)
	assert.False(t, f.panel.bodies[TabColor].Visible)
	assert.True(t, f.panel.tabs[TabFabric].underline.Visible)

	f.panel.Update(1)
	assert.False(t, f.panel.Animating())
	assert.InDelta(t, bodyTop, body.Y, 1e-6)
	assert.InDelta(t, 1.0, body.Alpha, 1e-6)

	f.click(ptColorTab)
	assert.Equal(t, TabColor, f.panel.ActiveBody())
}

func TestPanelHiddenBodyIgnoresClicks(t *testing.T) {
	f := newPanelFixture(t)
	f.click(ptLinen)
	assert.Equal(t, "plain", f.store.Selection().Design.ID)

	f.click(ptFabricTab)
	f.click(ptLinen)
	assert.Equal(t, "linen", f.store.Selection().Design.ID)
}

func TestPanelDesignAndSizeRows(t *testing.T) {
	f := newPanelFixture(t)

	f.click(ptFabricTab)
	f.click(ptVelvet)
	assert.Equal(t, "velvet", f.store.Selection().Design.ID)
	assert.True(t, f.panel.designs["velvet"].frame.Visible)
	assert.False(t, f.panel.designs["plain"].frame.Visible)

	f.click(ptSizeTab)
	f.panel.Update(1)
	f.click(ptXL)
	assert.Equal(t, "xl", f.store.Selection().Size.ID)
	assert.True(t, f.panel.sizes["xl"].frame.Visible)
	assert.False(t, f.panel.sizes["l"].frame.Visible)

	assert.Equal(t, "Pure White · Velvet · 240 × 300 cm", f.panel.BadgeText())
}

func TestPanelZoomButton(t *testing.T) {
	f := newPanelFixture(t)
	f.click(ptZoom)
	assert.True(t, f.store.Selection().Zoomed)
	assert.Equal(t, "Zoom Out", f.panel.ZoomLabel())

	f.click(ptZoom)
	assert.False(t, f.store.Selection().Zoomed)
	assert.Equal(t, "Zoom In", f.panel.ZoomLabel())
}

func TestPanelOrderAndSampleHooks(t *testing.T) {
	f := newPanelFixture(t)
	f.click(ptOrder) // nil hooks are fine

	var orders, samples []string
	f.panel.OnOrder = func(s string) { orders = append(orders, s) }
	f.panel.OnSampleRequest = func(s string) { samples = append(samples, s) }

	require.NoError(t, f.store.SetColor("sage"))
	f.click(ptOrder)
	f.click(ptSample)

	assert.Equal(t, []string{"Sage Green · Plain · 200 × 270 cm"}, orders)
	assert.Equal(t, orders, samples)
	assert.Equal(t, "sage", f.store.Selection().Color.ID, "buttons never write the selection")
}

func TestPanelFollowsStoreWrites(t *testing.T) {
	f := newPanelFixture(t)
	require.NoError(t, f.store.SetSize("s"))
	require.NoError(t, f.store.SetActiveTab(TabSize))

	assert.True(t, f.panel.sizes["s"].frame.Visible)
	assert.Equal(t, TabSize, f.panel.ActiveBody())
	assert.Equal(t, "Pure White · Plain · 140 × 220 cm", f.panel.SummaryText())
}
