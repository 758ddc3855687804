package drapery

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// LayerKind identifies a layer of the composited preview.
type LayerKind uint8

const (
	LayerScene   LayerKind = iota // room photograph, full canvas
	LayerMask                     // fabric cut-out, sized by the curtain size
	LayerTint                     // selected color, multiplied over the mask
	LayerPattern                  // design texture, overlaid on top
)

func (k LayerKind) String() string {
	switch k {
	case LayerScene:
		return "scene"
	case LayerMask:
		return "mask"
	case LayerTint:
		return "tint"
	case LayerPattern:
		return "pattern"
	}
	return "unknown"
}

// Layer describes one layer of the settled stack.
type Layer struct {
	Kind    LayerKind
	Key     string
	Bounds  Rect
	Blend   BlendMode
	Opacity float64
	Color   Color              // tint only
	Pattern *PatternDescriptor // pattern only
}

// canvasBackground shows where no photograph is available.
var canvasBackground = MustParseHexColor("#1C1B19")

// Compositor turns a Selection into the layered preview: a room photo, the
// fabric mask for the selected size, a multiply tint in the selected color
// and an overlay pattern for the selected design. Changes cross-fade per
// layer and zoom is a camera over the finished canvas, so layer geometry
// never depends on zoom.
//
// Each mask instance is a fabric container holding the mask image and,
// while it is current, the tint and pattern groups. The tint and pattern
// therefore share the mask's enter scale and fade. An outgoing fabric keeps
// still copies of the tint and pattern it showed.
type Compositor struct {
	w, h   int
	scene  *Scene
	canvas *RenderTexture
	camera *Camera
	assets *Assets

	patterns patternCache

	sceneLayer *Node
	mask       *KeyedLayer // instances are fabric containers
	tint       *KeyedLayer
	pattern    *KeyedLayer

	sel    Selection
	bounds Rect
}

// NewCompositor creates a compositor presenting into viewport and applies
// the initial selection without animating it in. assets may be nil.
func NewCompositor(viewport Rect, assets *Assets, initial Selection) *Compositor {
	if assets == nil {
		assets = NewAssets(nil, nil)
	}
	w, h := int(viewport.Width), int(viewport.Height)
	c := &Compositor{
		w:       w,
		h:       h,
		scene:   NewScene(),
		canvas:  NewRenderTexture(w, h),
		camera:  NewCamera(viewport),
		assets:  assets,
		mask:    NewKeyedLayer("mask", MaskFadeDuration),
		tint:    NewKeyedLayer("tint", TintFadeDuration),
		pattern: NewKeyedLayer("pattern", PatternFadeDuration),
	}
	c.mask.SetEnterScaleY(MaskEnterScaleY)
	bg := canvasBackground
	c.scene.ClearColor = &bg

	if img := assets.Scene(w, h); img != nil {
		c.sceneLayer = NewSprite("scene", img)
	} else {
		c.sceneLayer = NewContainer("scene")
	}
	root := c.scene.Root()
	root.AddChild(c.sceneLayer)
	root.AddChild(c.mask.Group())

	c.apply(initial, true)
	c.finish()
	return c
}

// Selection returns the snapshot last applied.
func (c *Compositor) Selection() Selection { return c.sel }

// FabricBounds returns the canvas rectangle of the fabric layers.
func (c *Compositor) FabricBounds() Rect { return c.bounds }

// Camera returns the zoom camera.
func (c *Compositor) Camera() *Camera { return c.camera }

// Scene returns the canvas scene graph.
func (c *Compositor) Scene() *Scene { return c.scene }

// MaskLayer, TintLayer and PatternLayer expose the keyed layers.
func (c *Compositor) MaskLayer() *KeyedLayer    { return c.mask }
func (c *Compositor) TintLayer() *KeyedLayer    { return c.tint }
func (c *Compositor) PatternLayer() *KeyedLayer { return c.pattern }

// Apply diffs next against the last applied selection and starts the
// transitions of the layers whose key changed.
func (c *Compositor) Apply(next Selection) {
	c.apply(next, false)
}

func (c *Compositor) apply(next Selection, force bool) {
	prev := c.sel

	if force || next.Size.ID != prev.Size.ID {
		c.bounds = next.Size.Bounds(float64(c.w), float64(c.h))
		if old := c.mask.Current(); old != nil {
			c.freezeFabric(old.Node)
		}
		fabric := c.newFabricNode(next.Size)
		c.mask.Swap(next.Size.ID, fabric, 1)
		fabric.AddChild(c.tint.Group())
		fabric.AddChild(c.pattern.Group())
		c.tint.Each(c.reboundTint)
		c.pattern.Each(c.reboundPattern)
	}
	if force || next.Color.ID != prev.Color.ID {
		c.tint.Swap(next.Color.ID, c.newTintNode(next.Color), TintOpacity(next.Color))
	}
	if force || next.Design.ID != prev.Design.ID {
		if next.Design.HasPattern() {
			c.pattern.Swap(next.Design.ID, c.newPatternNode(next.Design), 1)
		} else {
			c.pattern.Clear()
		}
	}
	if !force && next.Zoomed != prev.Zoomed {
		zoom := 1.0
		if next.Zoomed {
			zoom = ZoomFactor
		}
		c.camera.ZoomTo(zoom, ZoomDuration, ZoomEase)
	}
	c.sel = next
}

// finish settles every running transition.
func (c *Compositor) finish() {
	for _, k := range []*KeyedLayer{c.mask, c.tint, c.pattern} {
		k.Each(func(li *LayerInstance) {
			li.fade.Finish()
			if li.scale != nil {
				li.scale.Finish()
			}
		})
		k.Update(0)
	}
	if c.sel.Zoomed {
		c.camera.ZoomTo(ZoomFactor, 0, nil)
	}
}

func (c *Compositor) pixelBounds() (w, h int) {
	return int(math.Round(c.bounds.Width)), int(math.Round(c.bounds.Height))
}

// newFabricNode builds the container of one size. Its first child is the
// mask image stretched over the fabric bounds, or an unrendered box of the
// same size when no mask image is loaded.
func (c *Compositor) newFabricNode(size SizeOption) *Node {
	fabric := NewContainer("fabric:" + size.ID)
	fabric.SetPosition(c.bounds.X, c.bounds.Y)

	w, h := c.pixelBounds()
	var content *Node
	if img := c.assets.Mask(size.ID, w, h); img != nil {
		content = NewSprite("mask:"+size.ID, img)
		content.SetScale(c.bounds.Width/float64(w), c.bounds.Height/float64(h))
	} else {
		content = NewRect("mask:"+size.ID, c.bounds.Width, c.bounds.Height, ColorWhite)
		content.Renderable = false
	}
	fabric.AddChild(content)
	return fabric
}

// freezeFabric leaves still copies of the live tint and pattern in an
// outgoing fabric, so it fades out in its color.
func (c *Compositor) freezeFabric(fabric *Node) {
	for _, k := range []*KeyedLayer{c.tint, c.pattern} {
		k.Each(func(li *LayerInstance) {
			fabric.AddChild(stillCopy(li.Node))
		})
	}
}

func stillCopy(n *Node) *Node {
	cp := NewSprite(n.Name, n.CustomImage())
	cp.SetPosition(n.X, n.Y)
	cp.SetScale(n.ScaleX, n.ScaleY)
	cp.SetAlpha(n.Alpha)
	cp.Color = n.Color
	cp.BlendMode = n.BlendMode
	return cp
}

func (c *Compositor) newTintNode(col ColorOption) *Node {
	n := NewRect("tint:"+col.ID, c.bounds.Width, c.bounds.Height, col.RGB())
	n.BlendMode = BlendMultiply
	return n
}

func (c *Compositor) newPatternNode(d DesignOption) *Node {
	n := NewSprite("pattern:"+d.ID, nil)
	n.BlendMode = BlendOverlay
	n.UserData = d
	c.fitPattern(n, d)
	return n
}

// fitPattern renders d for the current fabric bounds into n.
func (c *Compositor) fitPattern(n *Node, d DesignOption) {
	w, h := c.pixelBounds()
	n.SetCustomImage(c.patterns.Get(d, w, h))
	if w > 0 && h > 0 {
		n.SetScale(c.bounds.Width/float64(w), c.bounds.Height/float64(h))
	}
}

// reboundTint resizes a live tint instance to the current fabric bounds
// without touching its fade.
func (c *Compositor) reboundTint(li *LayerInstance) {
	li.Node.SetScale(c.bounds.Width, c.bounds.Height)
}

// reboundPattern regenerates a live pattern instance for the current
// fabric bounds without touching its fade.
func (c *Compositor) reboundPattern(li *LayerInstance) {
	if d, ok := li.Node.UserData.(DesignOption); ok {
		c.fitPattern(li.Node, d)
	}
}

// Update advances layer fades and the zoom animation by dt seconds.
func (c *Compositor) Update(dt float32) {
	c.mask.Update(dt)
	c.tint.Update(dt)
	c.pattern.Update(dt)
	c.camera.Update(dt)
}

// Transitioning reports whether any fade or the zoom is animating.
func (c *Compositor) Transitioning() bool {
	return c.mask.Transitioning() || c.tint.Transitioning() ||
		c.pattern.Transitioning() || c.camera.Animating()
}

// Layers returns the settled stack, bottom to top, read from the live
// layer instances: what the preview shows once every running transition
// has finished.
func (c *Compositor) Layers() []Layer {
	layers := []Layer{{
		Kind:    LayerScene,
		Key:     "scene",
		Bounds:  Rect{Width: float64(c.w), Height: float64(c.h)},
		Blend:   c.sceneLayer.BlendMode,
		Opacity: c.sceneLayer.Alpha,
	}}
	fabric := c.mask.Current()
	if fabric == nil {
		return layers
	}
	content := fabric.Node.ChildAt(0)
	layers = append(layers, Layer{
		Kind:    LayerMask,
		Key:     fabric.Key,
		Bounds:  settledRect(fabric.Node, content),
		Blend:   content.BlendMode,
		Opacity: fabric.Target(),
	})
	if li := c.tint.Current(); li != nil {
		layers = append(layers, Layer{
			Kind:    LayerTint,
			Key:     li.Key,
			Bounds:  settledRect(fabric.Node, li.Node),
			Blend:   li.Node.BlendMode,
			Opacity: li.Target(),
			Color:   li.Node.Color,
		})
	}
	if li := c.pattern.Current(); li != nil {
		l := Layer{
			Kind:    LayerPattern,
			Key:     li.Key,
			Bounds:  settledRect(fabric.Node, li.Node),
			Blend:   li.Node.BlendMode,
			Opacity: li.Target(),
		}
		if d, ok := li.Node.UserData.(DesignOption); ok {
			l.Pattern = d.Pattern
		}
		layers = append(layers, l)
	}
	return layers
}

// settledRect returns the canvas rectangle n covers inside fabric once the
// fabric's enter scale has finished.
func settledRect(fabric, n *Node) Rect {
	w, h := nodeDimensions(n)
	return Rect{X: fabric.X + n.X, Y: fabric.Y + n.Y, Width: w * n.ScaleX, Height: h * n.ScaleY}
}

// Draw renders the canvas and presents it through the zoom camera into the
// viewport of screen. Zoomed content outside the viewport is clipped.
func (c *Compositor) Draw(screen *ebiten.Image) {
	if c.canvas.Image() == nil {
		return
	}
	c.scene.Draw(c.canvas.Image())

	vp := c.camera.Viewport
	dst := screen.SubImage(image.Rect(
		int(vp.X), int(vp.Y),
		int(vp.X+vp.Width), int(vp.Y+vp.Height),
	)).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{GeoM: c.camera.GeoM(), Filter: ebiten.FilterLinear}
	dst.DrawImage(c.canvas.Image(), op)
}

// Dispose releases the canvas texture. A disposed compositor draws nothing.
func (c *Compositor) Dispose() {
	c.canvas.Dispose()
}
