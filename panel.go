package drapery

import (
	"strconv"

	"github.com/tanema/gween/ease"
)

// Panel palette.
var (
	panelBackground = MustParseHexColor("#FAF7F2")
	panelInk        = MustParseHexColor("#2B2620")
	panelMuted      = MustParseHexColor("#8A8178")
	panelRule       = MustParseHexColor("#E6DFD4")
	panelGold       = MustParseHexColor("#B8964E")
	panelCard       = MustParseHexColor("#FFFFFF")
	markerDark      = MustParseHexColor("#2B2620")
	markerLight     = MustParseHexColor("#FFFFFF")
)

const (
	panelPadding  = 20.0
	tabTop        = 60.0
	tabHeight     = 36.0
	bodyTop       = 112.0
	bodySlide     = 8.0
	bodyDuration  = 0.2
	swatchSize    = 56.0
	swatchColumns = 4
	swatchRowH    = 90.0
	rowHeight     = 52.0
	sizeRowHeight = 60.0
	summaryTop    = 430.0
	orderTop      = 468.0
	sampleTop     = 518.0
	buttonHeight  = 40.0
	zoomWidth     = 100.0
	zoomHeight    = 32.0
	badgeHeight   = 28.0
	selectedScale = 1.1
)

type colorSwatch struct {
	group  *Node
	frame  *Node
	marker *Node
}

type designRow struct {
	frame  *Node
	swatch *Node
}

type sizeRow struct {
	frame *Node
}

type tabButton struct {
	label     *Node
	underline *Node
}

// Panel is the control panel and the canvas overlays: the selection tabs
// and their bodies, the summary strip, the order buttons, the zoom button
// and the live badge. It only writes through the Store and only reads
// Selection snapshots handed to Sync.
type Panel struct {
	store  *Store
	root   *Node
	bounds Rect
	canvas Rect

	title, body, small *Font

	tabs    [tabCount]tabButton
	bodies  [tabCount]*Node
	colors  map[string]colorSwatch
	designs map[string]designRow
	sizes   map[string]sizeRow

	summaryDot  *Node
	summaryText *Node
	badge       *Node
	badgeBack   *Node
	badgeText   *Node
	zoomLabel   *Node

	swatchPatterns patternCache
	bodyTween      *TweenGroup

	sel    Selection
	synced bool

	// OnOrder and OnSampleRequest receive the summary line when the visitor
	// presses the order or sample button.
	OnOrder         func(summary string)
	OnSampleRequest func(summary string)
}

// NewPanel builds the panel in bounds and its overlays over canvas, both in
// screen coordinates, and syncs it to the store's current selection.
func NewPanel(store *Store, bounds, canvas Rect) *Panel {
	p := &Panel{
		store:   store,
		root:    NewContainer("ui"),
		bounds:  bounds,
		canvas:  canvas,
		title:   DefaultFont(20),
		body:    DefaultFont(14),
		small:   DefaultFont(11),
		colors:  make(map[string]colorSwatch),
		designs: make(map[string]designRow),
		sizes:   make(map[string]sizeRow),
	}
	p.root.Interactable = true
	p.build()
	p.Sync(store.Selection())
	return p
}

// Root returns the container holding every panel node.
func (p *Panel) Root() *Node { return p.root }

// Update advances the body slide-in by dt seconds.
func (p *Panel) Update(dt float32) {
	if p.bodyTween != nil {
		p.bodyTween.Update(dt)
		if p.bodyTween.Done {
			p.bodyTween = nil
		}
	}
}

// Animating reports whether a tab body is sliding in.
func (p *Panel) Animating() bool { return p.bodyTween != nil }

// ActiveBody returns the tab whose body is visible.
func (p *Panel) ActiveBody() Tab {
	for _, t := range Tabs {
		if p.bodies[t].Visible {
			return t
		}
	}
	return TabColor
}

// SummaryText returns the text shown in the summary strip.
func (p *Panel) SummaryText() string { return p.summaryText.Label.Text() }

// BadgeText returns the text of the canvas badge.
func (p *Panel) BadgeText() string { return p.badgeText.Label.Text() }

// ZoomLabel returns the caption of the zoom button.
func (p *Panel) ZoomLabel() string { return p.zoomLabel.Label.Text() }

// --- construction ---

func newLabel(name, content string, f *Font, c Color, x, y float64) *Node {
	n := NewText(name, content, f)
	n.Label.SetColor(c)
	n.SetPosition(x, y)
	return n
}

// newHitArea creates an invisible clickable w x h container.
func newHitArea(name string, x, y, w, h float64, onClick func()) *Node {
	n := NewContainer(name)
	n.SetPosition(x, y)
	n.Interactable = true
	n.HitShape = HitRect{Width: w, Height: h}
	n.OnClick = func(ClickContext) { onClick() }
	return n
}

func newFrame(name string, w, h, border float64, c Color) *Node {
	n := NewRect(name, w+2*border, h+2*border, c)
	n.SetPosition(-border, -border)
	return n
}

// report logs a failed store write. Controls never panic on bad input.
func report(err error, control string) {
	if err != nil {
		Logger().Error().Err(err).Str("control", control).Msg("selection write failed")
	}
}

func (p *Panel) build() {
	x0 := p.bounds.X
	inner := p.bounds.Width - 2*panelPadding

	panel := NewContainer("panel")
	panel.Interactable = true
	panel.SetPosition(x0, p.bounds.Y)
	p.root.AddChild(panel)

	panel.AddChild(NewRect("panel-bg", p.bounds.Width, p.bounds.Height, panelBackground))
	panel.AddChild(newLabel("title", "Curtain Visualizer", p.title, panelInk, panelPadding, 20))

	p.buildTabs(panel, inner)

	p.bodies[TabColor] = p.buildColorBody(inner)
	p.bodies[TabFabric] = p.buildFabricBody(inner)
	p.bodies[TabSize] = p.buildSizeBody(inner)
	for _, b := range p.bodies {
		b.SetPosition(panelPadding, bodyTop)
		panel.AddChild(b)
	}

	p.buildSummary(panel, inner)
	p.buildButtons(panel, inner)
	p.buildCanvasOverlays()
}

func (p *Panel) buildTabs(panel *Node, inner float64) {
	w := inner / float64(tabCount)
	panel.AddChild(NewRectAt("tab-rule", panelPadding, tabTop+tabHeight, inner, 1, panelRule))
	for i, t := range Tabs {
		tab := t
		x := panelPadding + float64(i)*w
		lw, lh := p.body.MeasureString(t.Label())
		label := newLabel("tab:"+t.String(), t.Label(), p.body, panelMuted, x+(w-lw)/2, tabTop+(tabHeight-lh)/2)
		underline := NewRectAt("tab-underline:"+t.String(), x, tabTop+tabHeight-2, w, 3, panelGold)
		underline.Visible = false
		panel.AddChild(label)
		panel.AddChild(underline)
		panel.AddChild(newHitArea("tab-hit:"+t.String(), x, tabTop, w, tabHeight, func() {
			report(p.store.SetActiveTab(tab), "tab")
		}))
		p.tabs[t] = tabButton{label: label, underline: underline}
	}
}

func (p *Panel) buildColorBody(inner float64) *Node {
	body := NewContainer("body:color")
	body.Interactable = true
	cellW := inner / swatchColumns
	for i, c := range p.store.Catalog().Colors() {
		opt := c
		col, row := i%swatchColumns, i/swatchColumns
		cx := float64(col)*cellW + cellW/2
		y := float64(row) * swatchRowH

		group := newHitArea("swatch:"+c.ID, cx, y+swatchSize/2, swatchSize, swatchSize, func() {
			report(p.store.SetColor(opt.ID), "color")
		})
		group.SetPivot(swatchSize/2, swatchSize/2)
		frame := newFrame("swatch-frame:"+c.ID, swatchSize, swatchSize, 3, panelGold)
		frame.Visible = false
		group.AddChild(frame)
		group.AddChild(NewRect("swatch-border:"+c.ID, swatchSize, swatchSize, panelRule))
		group.AddChild(NewRectAt("swatch-fill:"+c.ID, 1, 1, swatchSize-2, swatchSize-2, c.RGB()))
		marker := NewRectAt("swatch-marker:"+c.ID, swatchSize/2-6, swatchSize/2-6, 12, 12, markerLight)
		if CheckmarkContrast(c) {
			marker.Color = markerDark
		}
		marker.Visible = false
		group.AddChild(marker)
		body.AddChild(group)

		lw, _ := p.small.MeasureString(c.Label)
		body.AddChild(newLabel("swatch-label:"+c.ID, c.Label, p.small, panelInk, cx-lw/2, y+swatchSize+8))
		p.colors[c.ID] = colorSwatch{group: group, frame: frame, marker: marker}
	}
	return body
}

func (p *Panel) buildFabricBody(inner float64) *Node {
	body := NewContainer("body:fabric")
	body.Interactable = true
	const sw = 40.0
	for i, d := range p.store.Catalog().Designs() {
		opt := d
		row := newHitArea("design:"+d.ID, 0, float64(i)*rowHeight, inner, rowHeight-4, func() {
			report(p.store.SetDesign(opt.ID), "design")
		})
		frame := newFrame("design-frame:"+d.ID, inner, rowHeight-4, 2, panelGold)
		frame.Visible = false
		row.AddChild(frame)
		row.AddChild(NewRect("design-card:"+d.ID, inner, rowHeight-4, panelCard))

		swatch := NewRectAt("design-swatch:"+d.ID, 4, 4, sw, sw, ColorWhite)
		row.AddChild(swatch)
		if img := p.swatchPatterns.Get(d, int(sw), int(sw)); img != nil {
			tex := NewSprite("design-pattern:"+d.ID, img)
			tex.SetPosition(4, 4)
			row.AddChild(tex)
		}
		row.AddChild(newLabel("design-label:"+d.ID, d.Label, p.body, panelInk, sw+16, 6))
		row.AddChild(newLabel("design-subtitle:"+d.ID, d.Subtitle, p.small, panelMuted, sw+16, 26))
		body.AddChild(row)
		p.designs[d.ID] = designRow{frame: frame, swatch: swatch}
	}
	return body
}

func (p *Panel) buildSizeBody(inner float64) *Node {
	body := NewContainer("body:size")
	body.Interactable = true
	sizes := p.store.Catalog().Sizes()
	for i, z := range sizes {
		opt := z
		h := sizeRowHeight - 6
		row := newHitArea("size:"+z.ID, 0, float64(i)*sizeRowHeight, inner, h, func() {
			report(p.store.SetSize(opt.ID), "size")
		})
		frame := newFrame("size-frame:"+z.ID, inner, h, 2, panelGold)
		frame.Visible = false
		row.AddChild(frame)
		row.AddChild(NewRect("size-card:"+z.ID, inner, h, panelCard))

		// One bar per size, filled up to this row's position.
		for b := range sizes {
			bh := 12 + float64(b)*8
			c := panelRule
			if b <= i {
				c = panelInk
			}
			row.AddChild(NewRectAt("size-bar:"+z.ID+":"+strconv.Itoa(b), 12+float64(b)*9, h-8-bh, 6, bh, c))
		}
		row.AddChild(newLabel("size-label:"+z.ID, z.Label, p.body, panelInk, 60, 8))
		row.AddChild(newLabel("size-desc:"+z.ID, z.Description, p.small, panelMuted, 60, 30))
		body.AddChild(row)
		p.sizes[z.ID] = sizeRow{frame: frame}
	}
	return body
}

func (p *Panel) buildSummary(panel *Node, inner float64) {
	panel.AddChild(NewRectAt("summary-rule", panelPadding, summaryTop-10, inner, 1, panelRule))
	p.summaryDot = NewRectAt("summary-dot", panelPadding, summaryTop+2, 14, 14, ColorWhite)
	p.summaryText = newLabel("summary", "", p.small, panelInk, panelPadding+22, summaryTop+2)
	panel.AddChild(p.summaryDot)
	panel.AddChild(p.summaryText)
}

func (p *Panel) buildButtons(panel *Node, inner float64) {
	order := newHitArea("order", panelPadding, orderTop, inner, buttonHeight, func() {
		summary := p.store.Summary()
		Logger().Info().Str("summary", summary).Msg("order requested")
		if p.OnOrder != nil {
			p.OnOrder(summary)
		}
	})
	order.AddChild(NewRect("order-bg", inner, buttonHeight, panelInk))
	p.addCentered(order, "Order This Configuration", p.body, panelCard, inner, buttonHeight)
	panel.AddChild(order)

	sample := newHitArea("sample", panelPadding, sampleTop, inner, buttonHeight, func() {
		summary := p.store.Summary()
		Logger().Info().Str("summary", summary).Msg("sample requested")
		if p.OnSampleRequest != nil {
			p.OnSampleRequest(summary)
		}
	})
	sample.AddChild(newFrame("sample-border", inner, buttonHeight, 1, panelInk))
	sample.AddChild(NewRect("sample-bg", inner, buttonHeight, panelBackground))
	p.addCentered(sample, "Request a Fabric Sample", p.body, panelInk, inner, buttonHeight)
	panel.AddChild(sample)
}

func (p *Panel) addCentered(parent *Node, content string, f *Font, c Color, w, h float64) *Node {
	lw, lh := f.MeasureString(content)
	n := newLabel(parent.Name+"-label", content, f, c, (w-lw)/2, (h-lh)/2)
	parent.AddChild(n)
	return n
}

func (p *Panel) buildCanvasOverlays() {
	vx := p.canvas.X + p.canvas.Width - panelPadding - zoomWidth
	zoom := newHitArea("zoom", vx, p.canvas.Y+panelPadding, zoomWidth, zoomHeight, func() {
		p.store.ToggleZoom()
	})
	zoom.AddChild(NewRect("zoom-bg", zoomWidth, zoomHeight, panelCard.WithAlpha(0.9)))
	p.zoomLabel = p.addCentered(zoom, "Zoom In", p.body, panelInk, zoomWidth, zoomHeight)
	p.root.AddChild(zoom)

	p.badge = NewContainer("badge")
	p.badge.SetPosition(p.canvas.X+panelPadding, p.canvas.Y+p.canvas.Height-panelPadding-badgeHeight)
	p.badgeBack = NewRect("badge-bg", 1, badgeHeight, panelInk.WithAlpha(0.75))
	p.badgeText = newLabel("badge-text", "", p.small, panelCard, 10, 0)
	p.badge.AddChild(p.badgeBack)
	p.badge.AddChild(p.badgeText)
	p.root.AddChild(p.badge)
}

// --- sync ---

// Sync updates the panel to show sel. Switching the active tab slides the
// new body in.
func (p *Panel) Sync(sel Selection) {
	first := !p.synced
	prev := p.sel
	p.sel = sel
	p.synced = true

	if first || sel.ActiveTab != prev.ActiveTab {
		p.showTab(sel.ActiveTab, !first)
	}
	if first || sel.Color.ID != prev.Color.ID {
		p.syncColor(sel.Color)
	}
	if first || sel.Design.ID != prev.Design.ID {
		for id, row := range p.designs {
			row.frame.Visible = id == sel.Design.ID
		}
	}
	if first || sel.Size.ID != prev.Size.ID {
		for id, row := range p.sizes {
			row.frame.Visible = id == sel.Size.ID
		}
	}
	if first || sel.Zoomed != prev.Zoomed {
		label := "Zoom In"
		if sel.Zoomed {
			label = "Zoom Out"
		}
		p.setCentered(p.zoomLabel, label, zoomWidth, zoomHeight)
	}

	summary := sel.Summary()
	p.summaryText.Label.SetText(summary)
	p.badgeText.Label.SetText(summary)
	w, h := p.badgeText.Label.Measure()
	p.badgeBack.SetScale(w+20, badgeHeight)
	p.badgeText.SetPosition(10, (badgeHeight-h)/2)
}

func (p *Panel) setCentered(n *Node, content string, w, h float64) {
	n.Label.SetText(content)
	lw, lh := n.Label.Measure()
	n.SetPosition((w-lw)/2, (h-lh)/2)
}

func (p *Panel) showTab(active Tab, animate bool) {
	for _, t := range Tabs {
		on := t == active
		p.bodies[t].Visible = on
		p.tabs[t].underline.Visible = on
		if on {
			p.tabs[t].label.Label.SetColor(panelInk)
		} else {
			p.tabs[t].label.Label.SetColor(panelMuted)
		}
	}
	body := p.bodies[active]
	body.SetPosition(panelPadding, bodyTop)
	body.SetAlpha(1)
	p.bodyTween = nil
	if animate {
		p.bodyTween = TweenSlideIn(body, bodySlide, bodyDuration, ease.OutQuad)
	}
}

func (p *Panel) syncColor(c ColorOption) {
	rgb := c.RGB()
	for id, sw := range p.colors {
		on := id == c.ID
		sw.frame.Visible = on
		sw.marker.Visible = on
		if on {
			sw.group.SetScale(selectedScale, selectedScale)
		} else {
			sw.group.SetScale(1, 1)
		}
	}
	for _, row := range p.designs {
		row.swatch.Color = rgb
	}
	p.summaryDot.Color = rgb
}
